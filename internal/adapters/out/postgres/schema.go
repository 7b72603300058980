package postgres

import (
	"helpdispatch/internal/adapters/out/postgres/categoryrepo"
	"helpdispatch/internal/adapters/out/postgres/helperrepo"
	"helpdispatch/internal/adapters/out/postgres/notificationrepo"
	"helpdispatch/internal/adapters/out/postgres/profilerepo"
	"helpdispatch/internal/adapters/out/postgres/requestrepo"

	"gorm.io/gorm"
)

// Models lists every table this service reads or writes.
func Models() []any {
	return []any{
		&profilerepo.ProfileDTO{},
		&categoryrepo.CategoryDTO{},
		&helperrepo.HelperDTO{},
		&requestrepo.ServiceRequestDTO{},
		&notificationrepo.BroadcastDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or extends the tables in Models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

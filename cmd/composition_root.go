package cmd

import (
	"log/slog"
	"net/http"

	httpin "helpdispatch/internal/adapters/in/http"
	"helpdispatch/internal/adapters/out/mediastore"
	"helpdispatch/internal/adapters/out/messages"
	"helpdispatch/internal/adapters/out/postgres"
	"helpdispatch/internal/adapters/out/postgres/categoryrepo"
	"helpdispatch/internal/adapters/out/postgres/helperrepo"
	"helpdispatch/internal/adapters/out/postgres/notificationrepo"
	"helpdispatch/internal/adapters/out/postgres/profilerepo"
	"helpdispatch/internal/adapters/out/postgres/requestrepo"
	"helpdispatch/internal/adapters/out/push"
	"helpdispatch/internal/core/application/usecases/commands"
	"helpdispatch/internal/core/application/usecases/queries"
	"helpdispatch/internal/core/domain/services"
	"helpdispatch/internal/jobs"
	"helpdispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry   *prometheus.Registry
	collectors *metrics.Collectors
	httpClient *http.Client
	messages   *messages.Catalog
	uploader   *mediastore.Uploader
	dispatcher *jobs.TaskDispatcher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	catalog, err := messages.NewCatalog(config.MessagesLang)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: config.NetworkCallTimeout}

	uploader, err := mediastore.NewUploader(config.MediaUploadBaseURL, config.MediaBucket, httpClient)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		collectors: metrics.New(registry),
		httpClient: httpClient,
		messages:   catalog,
		uploader:   uploader,
		dispatcher: jobs.NewTaskDispatcher(config.DispatchWorkers, config.DispatchQueueSize, registry, logger),
	}, nil
}

func (c *CompositionRoot) CreateCreateServiceRequestCommandHandler() *commands.CreateServiceRequestCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateServiceRequestCommandHandler(
		f,
		profilerepo.NewGormProfileReader(c.gormDB),
		commands.NewCategoryResolver(),
		c.dispatcher,
		c.CreateDispatchBroadcastCommandHandler(),
		c.CreateSideloadMediaCommandHandler(),
		c.config.NetworkCallTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateDispatchBroadcastCommandHandler() *commands.DispatchBroadcastCommandHandler {
	return commands.NewDispatchBroadcastCommandHandler(
		requestrepo.NewGormServiceRequestRepository(c.gormDB, nil),
		helperrepo.NewGormHelperPoolReader(c.gormDB),
		notificationrepo.NewGormNotificationWriter(c.gormDB),
		push.NewClient(c.config.AppBaseURL, c.httpClient),
		c.messages,
		services.NewEligibilityFilter(services.NewCategoryMatchPolicy()),
		c.collectors,
		c.config.NetworkCallTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateSideloadMediaCommandHandler() *commands.SideloadMediaCommandHandler {
	return commands.NewSideloadMediaCommandHandler(
		requestrepo.NewGormServiceRequestRepository(c.gormDB, nil),
		c.uploader,
		c.collectors,
		c.config.NetworkCallTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetBroadcastStatusQueryHandler() queries.GetBroadcastStatusQueryHandler {
	return queries.NewGetBroadcastStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	recovery := jobs.NewDispatchRecoveryJob(
		requestrepo.NewGormServiceRequestRepository(c.gormDB, nil),
		categoryrepo.NewGormCategoryRepository(c.gormDB, nil),
		profilerepo.NewGormProfileReader(c.gormDB),
		c.dispatcher,
		c.CreateDispatchBroadcastCommandHandler(),
		c.collectors,
		jobs.RecoveryConfig{
			Schedule:    c.config.DispatchSweepCron,
			StaleAfter:  c.config.DispatchStaleAfter,
			CallTimeout: c.config.NetworkCallTimeout,
		},
		c.logger,
	)
	return jobs.NewJobManager(c.dispatcher, recovery, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreateServiceRequestCommandHandler(),
		c.CreateGetBroadcastStatusQueryHandler(),
		c.logger,
	)
	return httpin.NewRouter(server, c.collectors, c.registry, c.logger)
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

// Package requestrepo persists service request aggregates.
package requestrepo

import (
	"time"

	"helpdispatch/internal/core/domain/model/kernel"
	"helpdispatch/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ServiceRequestDTO is the service_requests row. The assignment subsystem owns
// most columns after intake, so updates from this service are column-targeted.
type ServiceRequestDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID `gorm:"type:uuid;index"`
	CategoryID         uuid.UUID `gorm:"type:uuid;index"`
	Title              string
	Description        string
	AddressLine1       string
	AddressLine2       string
	Landmark           string
	ServiceAddress     string
	Latitude           *float64
	Longitude          *float64
	Images             pq.StringArray  `gorm:"type:text[]"`
	EstimatedPrice     float64         `gorm:"type:numeric(12,2)"`
	UrgencyLevel       string          `gorm:"size:16"`
	PaymentMethod      string          `gorm:"size:32"`
	Status             string          `gorm:"size:16;index"`
	BroadcastStatus    string          `gorm:"size:16"`
	StartOTP           string          `gorm:"column:start_otp;size:6"`
	EndOTP             string          `gorm:"column:end_otp;size:6"`
	ServiceTypeDetails request.Details `gorm:"type:jsonb;serializer:json"`
	BroadcastExpiresAt time.Time
	DispatchState      string `gorm:"size:16;index:idx_service_requests_dispatch"`
	DispatchReplayed   bool
	HelpersNotified    int
	DispatchClaimedAt  *time.Time
	DispatchedAt       *time.Time
	CreatedAt          time.Time `gorm:"index:idx_service_requests_dispatch"`
}

func (ServiceRequestDTO) TableName() string {
	return "service_requests"
}

func fromDomain(sr *request.ServiceRequest) ServiceRequestDTO {
	addr := sr.Address()
	codes := sr.Codes()
	marker := sr.Dispatch()

	dto := ServiceRequestDTO{
		ID:                 sr.ID().Bytes(),
		CustomerID:         sr.RequesterID().Bytes(),
		CategoryID:         sr.CategoryID().Bytes(),
		Title:              sr.Title(),
		Description:        sr.Description(),
		AddressLine1:       addr.Line1,
		AddressLine2:       addr.Line2,
		Landmark:           addr.Landmark,
		ServiceAddress:     addr.ServiceAddress,
		Images:             pq.StringArray(sr.Media()),
		EstimatedPrice:     sr.EstimatedPrice(),
		UrgencyLevel:       string(sr.Urgency()),
		PaymentMethod:      sr.PaymentMethod(),
		Status:             string(sr.Status()),
		BroadcastStatus:    string(sr.BroadcastStatus()),
		StartOTP:           codes.Start,
		EndOTP:             codes.End,
		ServiceTypeDetails: sr.Details(),
		BroadcastExpiresAt: sr.BroadcastExpiresAt(),
		DispatchState:      string(marker.State),
		DispatchReplayed:   marker.Replayed,
		HelpersNotified:    marker.HelpersNotified,
		DispatchClaimedAt:  marker.ClaimedAt,
		DispatchedAt:       marker.DispatchedAt,
		CreatedAt:          sr.CreatedAt(),
	}

	if loc, ok := sr.Location(); ok {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

func toDomain(dto ServiceRequestDTO) (*request.ServiceRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	var loc kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		if loc, err = kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude); err != nil {
			return nil, err
		}
	}

	return request.RestoreServiceRequest(request.RestoreServiceRequestParams{
		ID:          id,
		RequesterID: customerID,
		CategoryID:  categoryID,
		Title:       dto.Title,
		Description: dto.Description,
		Address: request.Address{
			Line1:          dto.AddressLine1,
			Line2:          dto.AddressLine2,
			Landmark:       dto.Landmark,
			ServiceAddress: dto.ServiceAddress,
		},
		Location:           loc,
		Media:              dto.Images,
		EstimatedPrice:     dto.EstimatedPrice,
		Urgency:            request.Urgency(dto.UrgencyLevel),
		PaymentMethod:      dto.PaymentMethod,
		Status:             request.Status(dto.Status),
		BroadcastStatus:    request.BroadcastStatus(dto.BroadcastStatus),
		Codes:              request.VerificationCodes{Start: dto.StartOTP, End: dto.EndOTP},
		Details:            dto.ServiceTypeDetails,
		CreatedAt:          dto.CreatedAt,
		BroadcastExpiresAt: dto.BroadcastExpiresAt,
		Dispatch: request.DispatchMarker{
			State:           request.DispatchState(dto.DispatchState),
			Replayed:        dto.DispatchReplayed,
			HelpersNotified: dto.HelpersNotified,
			ClaimedAt:       dto.DispatchClaimedAt,
			DispatchedAt:    dto.DispatchedAt,
		},
	})
}

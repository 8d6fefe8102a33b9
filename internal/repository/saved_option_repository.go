package repository

import (
	"context"

	"github.com/sahyog/freightbook-api/internal/models"

	"gorm.io/gorm"
)

// SavedOptionRepository defines the interface for the suggestion lookup
// lists. All three sets are append-only; duplicate inserts surface as
// gorm.ErrDuplicatedKey for the service layer to classify.
type SavedOptionRepository interface {
	Trucks(ctx context.Context) ([]string, error)
	Transports(ctx context.Context) ([]string, error)
	Destinations(ctx context.Context) ([]string, error)
	AddTruck(ctx context.Context, truckNo string) error
	AddTransport(ctx context.Context, name string) error
	AddDestination(ctx context.Context, name string) error
}

type savedOptionRepository struct {
	db *gorm.DB
}

// NewSavedOptionRepository creates a new saved option repository
func NewSavedOptionRepository(db *gorm.DB) SavedOptionRepository {
	return &savedOptionRepository{db: db}
}

func (r *savedOptionRepository) Trucks(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.SavedTruck{}).
		Order("truck_no ASC").
		Pluck("truck_no", &values).Error
	return values, err
}

func (r *savedOptionRepository) Transports(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.SavedTransport{}).
		Order("transport_name ASC").
		Pluck("transport_name", &values).Error
	return values, err
}

func (r *savedOptionRepository) Destinations(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.SavedDestination{}).
		Order("destination_name ASC").
		Pluck("destination_name", &values).Error
	return values, err
}

func (r *savedOptionRepository) AddTruck(ctx context.Context, truckNo string) error {
	return r.db.WithContext(ctx).Create(&models.SavedTruck{TruckNo: truckNo}).Error
}

func (r *savedOptionRepository) AddTransport(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Create(&models.SavedTransport{TransportName: name}).Error
}

func (r *savedOptionRepository) AddDestination(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Create(&models.SavedDestination{DestinationName: name}).Error
}

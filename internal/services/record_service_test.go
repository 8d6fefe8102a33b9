package services

import (
	"context"
	"testing"

	"github.com/sahyog/freightbook-api/internal/jobs"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/stretchr/testify/assert"

	"gorm.io/gorm"
)

// Mock SavedOptionRepository
type mockSavedOptionRepository struct {
	repository.SavedOptionRepository
	trucks       []string
	transports   []string
	destinations []string
}

func (m *mockSavedOptionRepository) Trucks(ctx context.Context) ([]string, error) {
	return m.trucks, nil
}
func (m *mockSavedOptionRepository) Transports(ctx context.Context) ([]string, error) {
	return m.transports, nil
}
func (m *mockSavedOptionRepository) Destinations(ctx context.Context) ([]string, error) {
	return m.destinations, nil
}
func (m *mockSavedOptionRepository) AddTruck(ctx context.Context, truckNo string) error {
	m.trucks = append(m.trucks, truckNo)
	return nil
}
func (m *mockSavedOptionRepository) AddTransport(ctx context.Context, name string) error {
	m.transports = append(m.transports, name)
	return nil
}
func (m *mockSavedOptionRepository) AddDestination(ctx context.Context, name string) error {
	m.destinations = append(m.destinations, name)
	return nil
}

func newTestRecordService(repo *mockRecordRepository, options *mockSavedOptionRepository) (*RecordService, *jobs.Worker) {
	worker := jobs.NewWorker(1)
	return NewRecordService(repo, options, worker), worker
}

func TestCreateRecordAssignsSerialNo(t *testing.T) {
	var created *models.TransportRecord
	repo := &mockRecordRepository{
		mockCount: func(ctx context.Context) (int64, error) { return 7, nil },
		mockCreate: func(ctx context.Context, record *models.TransportRecord) error {
			created = record
			return nil
		},
	}
	service, worker := newTestRecordService(repo, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	record, err := service.Create(context.Background(), &models.TransportRecord{
		Transport: "Sahyog Roadlines",
	})

	assert.NoError(t, err)
	assert.Equal(t, "8", record.SerialNo)
	assert.Equal(t, models.BalancePending, record.IsBalPaid)
	assert.NotNil(t, created)
}

func TestCreateRecordKeepsOperatorSerialNo(t *testing.T) {
	repo := &mockRecordRepository{}
	service, worker := newTestRecordService(repo, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	record, err := service.Create(context.Background(), &models.TransportRecord{
		SerialNo:  "42",
		Transport: "SAHYOG ROADLINES",
	})

	assert.NoError(t, err)
	assert.Equal(t, "42", record.SerialNo)
}

func TestCreateRecordNormalizesText(t *testing.T) {
	repo := &mockRecordRepository{}
	service, worker := newTestRecordService(repo, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	record, err := service.Create(context.Background(), &models.TransportRecord{
		Transport:   "  sahyog roadlines ",
		TruckNo:     "mh 12 ab 1234",
		Destination: "nagpur",
		BiltyNo:     " blt-99 ",
		Weight:      " 27 MT G ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "SAHYOG ROADLINES", record.Transport)
	assert.Equal(t, "MH 12 AB 1234", record.TruckNo)
	assert.Equal(t, "NAGPUR", record.Destination)
	assert.Equal(t, "BLT-99", record.BiltyNo)
	// Amount-like fields are trimmed, never upper-cased or reformatted
	assert.Equal(t, "27 MT G", record.Weight)
}

func TestCreateRecordRequiresCompany(t *testing.T) {
	service, worker := newTestRecordService(&mockRecordRepository{}, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	_, err := service.Create(context.Background(), &models.TransportRecord{})
	assert.ErrorIs(t, err, ErrCompanyRequired)
}

func TestCreateRecordDerivesFields(t *testing.T) {
	service, worker := newTestRecordService(&mockRecordRepository{}, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	record, err := service.Create(context.Background(), &models.TransportRecord{
		Transport:   "SAHYOG ROADLINES",
		Weight:      "20",
		Rate:        "500",
		BiltyCharge: "500",
		Advance:     "1000",
		Commission:  "200",
	})

	assert.NoError(t, err)
	assert.Equal(t, "10000.00", record.Total)
	assert.Equal(t, "9500.00", record.FreightAmount)
	assert.Equal(t, "8300.00", record.NetAmount)
}

func TestUpdateRecordRecomputes(t *testing.T) {
	existing := models.TransportRecord{
		ID:        "r1",
		Transport: "SAHYOG ROADLINES",
		Weight:    "20",
		Rate:      "500",
		Total:     "10000.00",
	}
	var saved *models.TransportRecord
	repo := &mockRecordRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.TransportRecord, error) {
			r := existing
			return &r, nil
		},
		mockUpdate: func(ctx context.Context, record *models.TransportRecord) error {
			saved = record
			return nil
		},
	}
	service, worker := newTestRecordService(repo, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	updates := existing
	updates.Weight = "25"
	record, err := service.Update(context.Background(), "r1", &updates)

	assert.NoError(t, err)
	assert.Equal(t, "12500.00", record.Total)
	assert.NotNil(t, saved)
}

func TestUpdateRecordNotFound(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindByID: func(ctx context.Context, id string) (*models.TransportRecord, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service, worker := newTestRecordService(repo, &mockSavedOptionRepository{})
	defer worker.Shutdown()

	_, err := service.Update(context.Background(), "missing", &models.TransportRecord{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSyncSavedOptions(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			return []models.TransportRecord{
				{TruckNo: "MH 12 AB 1234", Transport: "ALPHA CARRIERS", Destination: "NAGPUR"},
				{TruckNo: "GJ 05 XY 9876", Transport: "BETA LOGISTICS", Destination: "SURAT"},
			}, nil
		},
	}
	options := &mockSavedOptionRepository{}
	service, worker := newTestRecordService(repo, options)
	defer worker.Shutdown()

	err := service.SyncSavedOptions(context.Background())

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"MH 12 AB 1234", "GJ 05 XY 9876"}, options.trucks)
	assert.ElementsMatch(t, []string{"ALPHA CARRIERS", "BETA LOGISTICS"}, options.transports)
	assert.ElementsMatch(t, []string{"NAGPUR", "SURAT"}, options.destinations)
}

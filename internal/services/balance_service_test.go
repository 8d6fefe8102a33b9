package services

import (
	"context"
	"testing"

	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCompanySummariesGroupsAndOrders(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			return []models.TransportRecord{
				{Transport: "ALPHA CARRIERS", NetAmount: "2000.00", IsBalPaid: models.BalancePending},
				{Transport: "BETA LOGISTICS", NetAmount: "9000.00", IsBalPaid: models.BalancePending},
				{Transport: "ALPHA CARRIERS", NetAmount: "1500.00", IsBalPaid: models.BalancePending},
				{Transport: "BETA LOGISTICS", NetAmount: "4000.00", IsBalPaid: models.BalancePaid},
			}, nil
		},
	}
	service := NewBalanceService(repo)

	summaries, err := service.CompanySummaries(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 2)

	// Largest outstanding first
	assert.Equal(t, "BETA LOGISTICS", summaries[0].CompanyName)
	assert.Equal(t, 9000.0, summaries[0].Outstanding)
	assert.Equal(t, 2, summaries[0].TotalRecords)
	assert.Equal(t, 1, summaries[0].PaidRecords)
	assert.Equal(t, 1, summaries[0].PendingRecords)

	assert.Equal(t, "ALPHA CARRIERS", summaries[1].CompanyName)
	assert.Equal(t, 3500.0, summaries[1].Outstanding)
}

func TestCompanySummariesSkipsBlankCompany(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			return []models.TransportRecord{
				{Transport: "", NetAmount: "2000.00", IsBalPaid: models.BalancePending},
				{Transport: "   ", NetAmount: "1500.00", IsBalPaid: models.BalancePending},
				{Transport: "ALPHA CARRIERS", NetAmount: "1000.00", IsBalPaid: models.BalancePending},
			}, nil
		},
	}
	service := NewBalanceService(repo)

	summaries, err := service.CompanySummaries(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, "ALPHA CARRIERS", summaries[0].CompanyName)
}

func TestCompanySummariesFullyPaidCompany(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			return []models.TransportRecord{
				{Transport: "ALPHA CARRIERS", NetAmount: "2000.00", IsBalPaid: models.BalancePaid},
				{Transport: "ALPHA CARRIERS", NetAmount: "1500.00", IsBalPaid: models.BalancePaid},
			}, nil
		},
	}
	service := NewBalanceService(repo)

	summaries, err := service.CompanySummaries(context.Background())

	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].Outstanding)
	assert.Equal(t, 2, summaries[0].PaidRecords)
	assert.Equal(t, 0, summaries[0].PendingRecords)
}

func TestCompanySummariesServedFromCache(t *testing.T) {
	calls := 0
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			calls++
			return []models.TransportRecord{
				{Transport: "ALPHA CARRIERS", NetAmount: "1000.00", IsBalPaid: models.BalancePending},
			}, nil
		},
	}
	service := NewBalanceService(repo)

	_, err := service.CompanySummaries(context.Background())
	assert.NoError(t, err)
	_, err = service.CompanySummaries(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestRefreshCacheBypassesCache(t *testing.T) {
	calls := 0
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			calls++
			return nil, nil
		},
	}
	service := NewBalanceService(repo)

	_, _ = service.CompanySummaries(context.Background())
	_, _ = service.RefreshCache(context.Background())

	assert.Equal(t, 2, calls)
}

func TestCompanyOutstanding(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			return []models.TransportRecord{
				{Transport: "ALPHA CARRIERS", NetAmount: "1000.00", IsBalPaid: models.BalancePending},
			}, nil
		},
	}
	service := NewBalanceService(repo)

	out, err := service.CompanyOutstanding(context.Background(), "ALPHA CARRIERS")
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, out)

	out, err = service.CompanyOutstanding(context.Background(), "UNKNOWN")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, out)
}

func TestDashboardOverview(t *testing.T) {
	repo := &mockRecordRepository{
		mockFindAll: func(ctx context.Context) ([]models.TransportRecord, error) {
			return []models.TransportRecord{
				{Transport: "ALPHA CARRIERS", TruckNo: "MH12AB1234", Destination: "PUNE", Total: "10000", FreightAmount: "9500.00", NetAmount: "8300.00", IsBalPaid: models.BalancePending},
				{Transport: "BETA LOGISTICS", TruckNo: "GJ01CD5678", Destination: "SURAT", Total: "6000", FreightAmount: "5000.00", NetAmount: "5000.00", IsBalPaid: models.BalancePaid},
			}, nil
		},
	}
	service := NewBalanceService(repo)

	overview, err := service.DashboardOverview(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, overview.TotalRecords)
	assert.Equal(t, 16000.0, overview.TotalAmount)
	assert.Equal(t, 5000.0, overview.PaidAmount)
	assert.Equal(t, 8300.0, overview.UnpaidAmount)
	assert.Equal(t, 14500.0, overview.TotalFreight)
	assert.Equal(t, 8300.0, overview.TotalOutstanding)
	assert.Equal(t, 1, overview.CompaniesOwing)
	assert.Equal(t, 1, overview.PendingSettlements)
	assert.Equal(t, 2, overview.UniqueTrucks)
	assert.Equal(t, 2, overview.UniqueTransports)
	assert.Equal(t, 2, overview.UniqueDestinations)
	assert.Equal(t, 8000.0, overview.AvgAmount)
	assert.Equal(t, 50.0, overview.PaidPercentage)
}

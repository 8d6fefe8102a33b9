package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func exportTestRecords() []models.TransportRecord {
	return []models.TransportRecord{
		{
			SerialNo:      "1",
			LRDate:        "15-01-2024",
			BiltyNo:       "BLT-1",
			TruckNo:       "MH 12 AB 1234",
			Transport:     "ALPHA CARRIERS",
			Destination:   "NAGPUR",
			Weight:        "20",
			Rate:          "500",
			Total:         "10000.00",
			FreightAmount: "9500.00",
			NetAmount:     "8300.00",
			IsBalPaid:     models.BalancePending,
		},
		{
			SerialNo:  "2",
			Transport: "ALPHA CARRIERS",
			Total:     "5000.00",
			NetAmount: "5000.00",
			IsBalPaid: models.BalancePaid,
		},
	}
}

func TestExportCSV(t *testing.T) {
	repo := &mockRecordRepository{
		mockList: func(ctx context.Context, query *repository.ListQuery) ([]models.TransportRecord, int64, error) {
			// Exports always ask for the full set
			assert.Equal(t, -1, query.PerPage)
			return exportTestRecords(), 2, nil
		},
	}
	service := NewExportService(repo)

	data, filename, err := service.ExportCSV(context.Background(), nil)

	assert.NoError(t, err)
	assert.Contains(t, filename, "transport_records_")
	assert.Contains(t, filename, ".csv")

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, recordExportHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "MH 12 AB 1234", rows[1][4])
	assert.Equal(t, "8300.00", rows[1][17])
	assert.Equal(t, models.BalancePaid, rows[2][18])
}

func TestExportXLSX(t *testing.T) {
	repo := &mockRecordRepository{
		mockList: func(ctx context.Context, query *repository.ListQuery) ([]models.TransportRecord, int64, error) {
			return exportTestRecords(), 2, nil
		},
	}
	service := NewExportService(repo)

	data, filename, err := service.ExportXLSX(context.Background(), repository.NewListQuery())

	assert.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Records", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "SR NO", header)

	truck, err := f.GetCellValue("Records", "E2")
	assert.NoError(t, err)
	assert.Equal(t, "MH 12 AB 1234", truck)
}

func TestCompanyStatementPDF(t *testing.T) {
	repo := &mockRecordRepository{
		mockList: func(ctx context.Context, query *repository.ListQuery) ([]models.TransportRecord, int64, error) {
			assert.Equal(t, "ALPHA CARRIERS", query.Filters["company"])
			return exportTestRecords(), 2, nil
		},
	}
	service := NewExportService(repo)

	data, filename, err := service.CompanyStatementPDF(context.Background(), "ALPHA CARRIERS")

	assert.NoError(t, err)
	assert.Contains(t, filename, ".pdf")
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestCompanyStatementPDFRequiresCompany(t *testing.T) {
	service := NewExportService(&mockRecordRepository{})

	_, _, err := service.CompanyStatementPDF(context.Background(), "")
	assert.ErrorIs(t, err, ErrCompanyRequired)
}

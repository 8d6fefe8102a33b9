package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sahyog/freightbook-api/internal/calc"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// recordExportHeaders is the ledger column order used by every export format
var recordExportHeaders = []string{
	"SR NO", "SMS DATE", "LR DATE", "BILTY NO", "TRUCK NO", "TRANSPORT",
	"DESTINATION", "WEIGHT", "RATE", "TOTAL", "BILTY CHARGE", "FREIGHT AMOUNT",
	"ADVANCE", "ADVANCE DATE", "COMMISSION", "BALANCE PAID AMOUNT",
	"BALANCE PAID DATE", "NET AMOUNT", "IS BALANCE PAID", "DATE OF REACH",
	"DATE OF UNLOAD", "DAYS IN HOLD", "HOLDING CHARGE", "TOTAL HOLDING AMOUNT",
	"COURIER DATE", "CREATED AT",
}

// ExportService renders the record book as CSV, XLSX or a per-company PDF
// statement.
type ExportService struct {
	records repository.RecordRepository
}

// NewExportService creates a new export service
func NewExportService(records repository.RecordRepository) *ExportService {
	return &ExportService{records: records}
}

func exportRow(r *models.TransportRecord) []string {
	createdAt := ""
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt.Format("2006-01-02 15:04")
	}
	return []string{
		r.SerialNo, r.SMSDate, r.LRDate, r.BiltyNo, r.TruckNo, r.Transport,
		r.Destination, r.Weight, r.Rate, r.Total, r.BiltyCharge, r.FreightAmount,
		r.Advance, r.AdvanceDate, r.Commission, r.BalancePaidAmount,
		r.BalancePaidDate, r.NetAmount, r.IsBalPaid, r.DateOfReach,
		r.DateOfUnload, r.DayInHold, r.HoldingCharge, r.TotalHoldingAmount,
		r.CourierDate, createdAt,
	}
}

// ExportCSV writes the filtered record set as CSV
func (s *ExportService) ExportCSV(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	records, err := s.listForExport(ctx, query)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(recordExportHeaders)
	for i := range records {
		_ = writer.Write(exportRow(&records[i]))
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write csv: %w", err)
	}

	filename := fmt.Sprintf("transport_records_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX writes the filtered record set as a spreadsheet
func (s *ExportService) ExportXLSX(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	records, err := s.listForExport(ctx, query)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Records"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, header := range recordExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i := range records {
		for col, value := range exportRow(&records[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("transport_records_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// CompanyStatementPDF renders one company's outstanding statement
func (s *ExportService) CompanyStatementPDF(ctx context.Context, company string) ([]byte, string, error) {
	if company == "" {
		return nil, "", ErrCompanyRequired
	}

	query := repository.NewListQuery()
	query.PerPage = -1
	query.Filters["company"] = company
	query.SortBy = "created_at"
	query.SortDir = "asc"

	records, _, err := s.records.List(ctx, query)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load records: %w", err)
	}

	var outstanding float64
	var pending int
	for i := range records {
		r := &records[i]
		if r.IsPaid() {
			continue
		}
		pending++
		if out := calc.Outstanding(r); out > 0 {
			outstanding += out
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(120, 10, fmt.Sprintf("Statement: %s", company))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(80, 8, fmt.Sprintf("Generated: %s", time.Now().Format("02-01-2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(80, 8, fmt.Sprintf("Records: %d (pending %d)", len(records), pending))
	pdf.Ln(6)
	pdf.Cell(80, 8, fmt.Sprintf("Outstanding: %s", calc.FormatAmount(outstanding)))
	pdf.Ln(10)

	// Table header
	widths := []float64{20, 30, 35, 40, 25, 28, 28, 28, 22}
	headers := []string{"SR NO", "LR DATE", "TRUCK NO", "DESTINATION", "BILTY NO", "TOTAL", "NET", "BAL PAID", "STATUS"}

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i := range records {
		r := &records[i]
		status := "UNPAID"
		if r.IsPaid() {
			status = "PAID"
		}
		row := []string{
			r.SerialNo, r.LRDate, r.TruckNo, r.Destination, r.BiltyNo,
			r.Total, r.NetAmount, r.BalancePaidAmount, status,
		}
		for j, cell := range row {
			pdf.CellFormat(widths[j], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("statement_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// listForExport pulls every record matching the query, ignoring pagination
func (s *ExportService) listForExport(ctx context.Context, query *repository.ListQuery) ([]models.TransportRecord, error) {
	if query == nil {
		query = repository.NewListQuery()
	}
	query.PerPage = -1

	records, _, err := s.records.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

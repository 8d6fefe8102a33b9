package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahyog/freightbook-api/internal/calc"
	"github.com/sahyog/freightbook-api/internal/jobs"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/sahyog/freightbook-api/pkg/logger"

	"gorm.io/gorm"
)

// RecordService manages transport record entry. Every write passes through
// the dependent-field calculator so the derived columns can never drift from
// the raw inputs, and classification text is upper-cased the way the ledger
// books are kept.
type RecordService struct {
	repo    repository.RecordRepository
	options repository.SavedOptionRepository
	worker  *jobs.Worker
}

// NewRecordService creates a new record service
func NewRecordService(repo repository.RecordRepository, options repository.SavedOptionRepository, worker *jobs.Worker) *RecordService {
	return &RecordService{
		repo:    repo,
		options: options,
		worker:  worker,
	}
}

// Create persists a new transport record. The serial number defaults to
// count-of-existing-records + 1 when the operator left it blank, and the
// record's truck, company and destination are remembered as suggestions.
func (s *RecordService) Create(ctx context.Context, record *models.TransportRecord) (*models.TransportRecord, error) {
	normalizeRecord(record)

	if record.Transport == "" {
		return nil, ErrCompanyRequired
	}

	if record.SerialNo == "" {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count records: %w", err)
		}
		record.SerialNo = strconv.FormatInt(count+1, 10)
	}

	if record.IsBalPaid == "" {
		record.IsBalPaid = models.BalancePending
	}

	calc.Recompute(record)

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	s.rememberOptions(record)

	return record, nil
}

// Update applies operator edits to an existing record and re-derives the
// calculated fields.
func (s *RecordService) Update(ctx context.Context, id string, updates *models.TransportRecord) (*models.TransportRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	normalizeRecord(updates)
	applyRecordUpdates(record, updates)
	calc.Recompute(record)

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	s.rememberOptions(record)

	return record, nil
}

// Get returns one record by id
func (s *RecordService) Get(ctx context.Context, id string) (*models.TransportRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return record, nil
}

// List returns a filtered page of records
func (s *RecordService) List(ctx context.Context, query *repository.ListQuery) ([]models.TransportRecord, int64, error) {
	return s.repo.List(ctx, query)
}

// All returns the full record set
func (s *RecordService) All(ctx context.Context) ([]models.TransportRecord, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes a record outright. Allocations referencing it are left in
// place as payment history.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// TruckOptions returns the remembered truck numbers
func (s *RecordService) TruckOptions(ctx context.Context) ([]string, error) {
	return s.options.Trucks(ctx)
}

// TransportOptions returns the remembered company names
func (s *RecordService) TransportOptions(ctx context.Context) ([]string, error) {
	return s.options.Transports(ctx)
}

// DestinationOptions returns the remembered destinations
func (s *RecordService) DestinationOptions(ctx context.Context) ([]string, error) {
	return s.options.Destinations(ctx)
}

// RememberTruck adds a truck number to the suggestion list by hand
func (s *RecordService) RememberTruck(ctx context.Context, truckNo string) error {
	return s.rememberOption(ctx, truckNo, s.options.AddTruck)
}

// RememberTransport adds a company name to the suggestion list by hand
func (s *RecordService) RememberTransport(ctx context.Context, name string) error {
	return s.rememberOption(ctx, name, s.options.AddTransport)
}

// RememberDestination adds a destination to the suggestion list by hand
func (s *RecordService) RememberDestination(ctx context.Context, name string) error {
	return s.rememberOption(ctx, name, s.options.AddDestination)
}

func (s *RecordService) rememberOption(ctx context.Context, value string, add func(context.Context, string) error) error {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return ErrInvalidOption
	}
	if err := add(ctx, value); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to save option: %w", err)
	}
	return nil
}

// SyncSavedOptions backfills the suggestion lists from every value already
// present in the record set. Runs as a scheduled job.
func (s *RecordService) SyncSavedOptions(ctx context.Context) error {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	for i := range records {
		s.saveOptions(ctx, &records[i])
	}
	return nil
}

// rememberOptions stores the record's lookup values off the request path
func (s *RecordService) rememberOptions(record *models.TransportRecord) {
	truckNo := record.TruckNo
	transport := record.Transport
	destination := record.Destination
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		s.saveOptions(ctx, &models.TransportRecord{
			TruckNo:     truckNo,
			Transport:   transport,
			Destination: destination,
		})
		return nil
	})
}

// saveOptions inserts each non-empty lookup value, ignoring duplicates: the
// unique constraint doing its job is the expected case here.
func (s *RecordService) saveOptions(ctx context.Context, record *models.TransportRecord) {
	if record.TruckNo != "" {
		if err := s.options.AddTruck(ctx, record.TruckNo); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Failed to save truck suggestion", "truck", record.TruckNo, "error", err)
		}
	}
	if record.Transport != "" {
		if err := s.options.AddTransport(ctx, record.Transport); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Failed to save transport suggestion", "transport", record.Transport, "error", err)
		}
	}
	if record.Destination != "" {
		if err := s.options.AddDestination(ctx, record.Destination); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Failed to save destination suggestion", "destination", record.Destination, "error", err)
		}
	}
}

// normalizeRecord trims every text field and upper-cases the classification
// ones. Amount, rate, weight and date fields are only trimmed so operator
// notation like "27 MT G" or "FIX+RTO" survives as typed.
func normalizeRecord(r *models.TransportRecord) {
	upper := func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
	trim := strings.TrimSpace

	r.SerialNo = trim(r.SerialNo)
	r.BiltyNo = upper(r.BiltyNo)
	r.TruckNo = upper(r.TruckNo)
	r.Transport = upper(r.Transport)
	r.Destination = upper(r.Destination)
	r.IsBalPaid = upper(r.IsBalPaid)

	r.Weight = trim(r.Weight)
	r.Rate = trim(r.Rate)
	r.Total = trim(r.Total)
	r.BiltyCharge = trim(r.BiltyCharge)
	r.Advance = trim(r.Advance)
	r.Commission = trim(r.Commission)
	r.BalancePaidAmount = trim(r.BalancePaidAmount)
	r.DayInHold = trim(r.DayInHold)
	r.HoldingCharge = trim(r.HoldingCharge)

	r.SMSDate = trim(r.SMSDate)
	r.LRDate = trim(r.LRDate)
	r.AdvanceDate = trim(r.AdvanceDate)
	r.BalancePaidDate = trim(r.BalancePaidDate)
	r.DateOfReach = trim(r.DateOfReach)
	r.DateOfUnload = trim(r.DateOfUnload)
	r.CourierDate = trim(r.CourierDate)
}

// applyRecordUpdates copies the editable raw fields onto the stored record.
// Derived fields (total in computed mode, freight, days in hold, holding
// total, net) are recomputed afterwards, not copied.
func applyRecordUpdates(dst, src *models.TransportRecord) {
	dst.SerialNo = src.SerialNo
	dst.SMSDate = src.SMSDate
	dst.LRDate = src.LRDate
	dst.BiltyNo = src.BiltyNo
	dst.TruckNo = src.TruckNo
	dst.Transport = src.Transport
	dst.Destination = src.Destination
	dst.Weight = src.Weight
	dst.Rate = src.Rate
	dst.BiltyCharge = src.BiltyCharge
	dst.Advance = src.Advance
	dst.AdvanceDate = src.AdvanceDate
	dst.Commission = src.Commission
	dst.BalancePaidAmount = src.BalancePaidAmount
	dst.BalancePaidDate = src.BalancePaidDate
	dst.IsBalPaid = src.IsBalPaid
	dst.DateOfReach = src.DateOfReach
	dst.DateOfUnload = src.DateOfUnload
	dst.DayInHold = src.DayInHold
	dst.HoldingCharge = src.HoldingCharge
	dst.CourierDate = src.CourierDate

	// In fixed-rate mode the total is the operator's to set
	if calc.RateModeOf(src.Rate) == calc.RateModeFixed {
		dst.Total = src.Total
	}
}

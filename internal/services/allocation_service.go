package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sahyog/freightbook-api/internal/calc"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/sahyog/freightbook-api/internal/statemachine"
	"github.com/sahyog/freightbook-api/pkg/logger"

	"gorm.io/gorm"
)

// LumpSumAllocationInput is one slice of a lump sum directed at a record
type LumpSumAllocationInput struct {
	RecordID string  `json:"record_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
}

// AllocationResult reports what one allocation run did
type AllocationResult struct {
	UpdatedRecords []models.TransportRecord `json:"updated_records"`
	TotalAllocated float64                  `json:"total_allocated"`
	Remainder      float64                  `json:"remainder"`
}

// AllocationService distributes incoming payments across transport records.
// Company payments walk the unpaid records oldest first; lump sums are split
// explicitly by the operator. Either way nothing is written until the whole
// run is known to fit, and the writes land in one transaction.
type AllocationService struct {
	records     repository.RecordRepository
	lumpSums    repository.LumpSumRepository
	allocations repository.AllocationRepository
	validate    *validator.Validate
}

// NewAllocationService creates a new allocation service
func NewAllocationService(
	records repository.RecordRepository,
	lumpSums repository.LumpSumRepository,
	allocations repository.AllocationRepository,
) *AllocationService {
	return &AllocationService{
		records:     records,
		lumpSums:    lumpSums,
		allocations: allocations,
		validate:    validator.New(),
	}
}

// AllocateToCompany spreads a payment received from one transport company
// across that company's unpaid records, oldest first. Each record absorbs at
// most its outstanding balance; whatever the records cannot absorb comes back
// as the remainder for the operator to handle.
func (s *AllocationService) AllocateToCompany(ctx context.Context, company string, amount float64, paymentDate string) (*AllocationResult, error) {
	if company == "" {
		return nil, ErrCompanyRequired
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if paymentDate == "" {
		paymentDate = calc.Today()
	}

	records, err := s.records.FindUnpaidByCompany(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("failed to load unpaid records: %w", err)
	}

	updated, allocated := distribute(ctx, records, amount, paymentDate)

	if len(updated) > 0 {
		if err := s.allocations.ApplyBatch(ctx, updated, nil, nil); err != nil {
			return nil, fmt.Errorf("failed to apply allocation: %w", err)
		}
	}

	result := &AllocationResult{
		UpdatedRecords: make([]models.TransportRecord, len(updated)),
		TotalAllocated: allocated,
		Remainder:      amount - allocated,
	}
	for i, r := range updated {
		result.UpdatedRecords[i] = *r
	}

	if result.Remainder > 0 {
		logger.Info("Company payment not fully absorbed",
			"company", company,
			"amount", amount,
			"remainder", result.Remainder)
	}

	return result, nil
}

// AllocateLumpSum applies operator-chosen slices of a lump sum payment to
// individual records. The whole request is validated against the payment's
// remaining balance before anything is written; a single bad slice rejects
// the lot.
func (s *AllocationService) AllocateLumpSum(ctx context.Context, lumpSumID string, inputs []LumpSumAllocationInput) (*AllocationResult, error) {
	if len(inputs) == 0 {
		return nil, ErrInvalidAmount
	}

	var total float64
	for i := range inputs {
		if err := s.validate.Struct(&inputs[i]); err != nil {
			return nil, ErrInvalidAmount
		}
		total += inputs[i].Amount
	}

	payment, err := s.lumpSums.FindByID(ctx, lumpSumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load lump sum payment: %w", err)
	}

	if total > payment.RemainingBalance {
		return nil, ErrInsufficientBalance
	}

	date := calc.Today()
	loaded := make(map[string]*models.TransportRecord, len(inputs))
	updated := make([]*models.TransportRecord, 0, len(inputs))
	allocations := make([]*models.PaymentAllocation, 0, len(inputs))

	for _, input := range inputs {
		// Slices naming the same record must accumulate on one copy, or
		// the later save would overwrite the earlier slice's credit.
		record, ok := loaded[input.RecordID]
		if !ok {
			var err error
			record, err = s.records.FindByID(ctx, input.RecordID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrNotFound
				}
				return nil, fmt.Errorf("failed to load record %s: %w", input.RecordID, err)
			}
			loaded[input.RecordID] = record
			updated = append(updated, record)
		}

		record.LumpSumAllocatedAmount += input.Amount
		calc.Recompute(record)

		allocations = append(allocations, &models.PaymentAllocation{
			LumpSumPaymentID:  payment.ID,
			TransportRecordID: record.ID,
			AllocatedAmount:   input.Amount,
			AllocationDate:    date,
		})
	}

	payment.RemainingBalance -= total

	if err := s.allocations.ApplyBatch(ctx, updated, allocations, payment); err != nil {
		return nil, fmt.Errorf("failed to apply lump sum allocation: %w", err)
	}

	result := &AllocationResult{
		UpdatedRecords: make([]models.TransportRecord, len(updated)),
		TotalAllocated: total,
		Remainder:      payment.RemainingBalance,
	}
	for i, r := range updated {
		result.UpdatedRecords[i] = *r
	}
	return result, nil
}

// AllocationsForLumpSum lists everything carved out of one lump sum
func (s *AllocationService) AllocationsForLumpSum(ctx context.Context, lumpSumID string) ([]models.PaymentAllocation, error) {
	if _, err := s.lumpSums.FindByID(ctx, lumpSumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load lump sum payment: %w", err)
	}
	return s.allocations.FindByLumpSum(ctx, lumpSumID)
}

// AllocationsForRecord lists the lump sum slices applied to one record
func (s *AllocationService) AllocationsForRecord(ctx context.Context, recordID string) ([]models.PaymentAllocation, error) {
	return s.allocations.FindByRecord(ctx, recordID)
}

// distribute walks the records in order, paying down each outstanding
// balance until the amount runs out. Records already settled or with nothing
// outstanding are passed over. Returns the mutated records and the total it
// managed to place.
func distribute(ctx context.Context, records []models.TransportRecord, amount float64, paymentDate string) ([]*models.TransportRecord, float64) {
	remaining := amount
	updated := make([]*models.TransportRecord, 0)

	for i := range records {
		if remaining <= 0 {
			break
		}

		record := &records[i]
		outstanding := calc.Outstanding(record)
		if outstanding <= 0 {
			continue
		}

		applied := outstanding
		if remaining < applied {
			applied = remaining
		}

		newPaid := calc.ParseAmount(record.BalancePaidAmount) + applied
		record.BalancePaidAmount = calc.FormatAmount(newPaid)
		record.BalancePaidDate = paymentDate

		if newPaid >= calc.ParseAmount(record.NetAmount) {
			machine := statemachine.NewSettlementFSM(record)
			if err := machine.Settle(ctx); err != nil {
				logger.Warn("Failed to settle record", "record_id", record.ID, "error", err)
			}
		}

		remaining -= applied
		updated = append(updated, record)
	}

	return updated, amount - remaining
}

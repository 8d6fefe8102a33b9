package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sahyog/freightbook-api/internal/calc"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"

	"gorm.io/gorm"
)

// CreateLumpSumInput carries the fields for recording a new lump sum payment
type CreateLumpSumInput struct {
	CompanyName  string  `json:"company_name" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	DateReceived string  `json:"date_received"`
	Notes        string  `json:"notes"`
}

// LumpSumService manages lump sum payments received from transport companies
// before they are broken up across records.
type LumpSumService struct {
	repo        repository.LumpSumRepository
	allocations repository.AllocationRepository
	validate    *validator.Validate
}

// NewLumpSumService creates a new lump sum service
func NewLumpSumService(repo repository.LumpSumRepository, allocations repository.AllocationRepository) *LumpSumService {
	return &LumpSumService{
		repo:        repo,
		allocations: allocations,
		validate:    validator.New(),
	}
}

// Create records a newly received lump sum. The remaining balance starts
// equal to the amount and only allocation runs may draw it down.
func (s *LumpSumService) Create(ctx context.Context, input *CreateLumpSumInput) (*models.LumpSumPayment, error) {
	if err := s.validate.Struct(input); err != nil {
		if input.CompanyName == "" {
			return nil, ErrCompanyRequired
		}
		return nil, ErrInvalidAmount
	}

	payment := &models.LumpSumPayment{
		CompanyName:      strings.ToUpper(strings.TrimSpace(input.CompanyName)),
		Amount:           input.Amount,
		RemainingBalance: input.Amount,
		DateReceived:     strings.TrimSpace(input.DateReceived),
		Notes:            strings.TrimSpace(input.Notes),
	}
	if payment.DateReceived == "" {
		payment.DateReceived = calc.Today()
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create lump sum payment: %w", err)
	}
	return payment, nil
}

// Get returns one lump sum payment by id
func (s *LumpSumService) Get(ctx context.Context, id string) (*models.LumpSumPayment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load lump sum payment: %w", err)
	}
	return payment, nil
}

// List returns all lump sum payments, newest first
func (s *LumpSumService) List(ctx context.Context) ([]models.LumpSumPayment, error) {
	return s.repo.FindAll(ctx)
}

// ListAvailable returns payments with money still left to allocate
func (s *LumpSumService) ListAvailable(ctx context.Context) ([]models.LumpSumPayment, error) {
	return s.repo.FindAvailable(ctx)
}

// Delete removes a lump sum payment. Payments that have already been carved
// up stay put so allocation history keeps its paper trail.
func (s *LumpSumService) Delete(ctx context.Context, id string) error {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	allocated, err := s.allocations.SumForLumpSum(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check allocations: %w", err)
	}
	if allocated > 0 {
		return ErrInvalidState
	}

	return s.repo.Delete(ctx, payment.ID)
}

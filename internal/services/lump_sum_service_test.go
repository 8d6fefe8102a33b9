package services

import (
	"context"
	"testing"

	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/stretchr/testify/assert"

	"gorm.io/gorm"
)

type recordingLumpSumRepository struct {
	repository.LumpSumRepository
	created *models.LumpSumPayment
	deleted string
	stored  *models.LumpSumPayment
}

func (m *recordingLumpSumRepository) Create(ctx context.Context, payment *models.LumpSumPayment) error {
	m.created = payment
	return nil
}

func (m *recordingLumpSumRepository) FindByID(ctx context.Context, id string) (*models.LumpSumPayment, error) {
	if m.stored != nil && m.stored.ID == id {
		return m.stored, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *recordingLumpSumRepository) Delete(ctx context.Context, id string) error {
	m.deleted = id
	return nil
}

type sumAllocationRepository struct {
	repository.AllocationRepository
	sum float64
}

func (m *sumAllocationRepository) SumForLumpSum(ctx context.Context, lumpSumID string) (float64, error) {
	return m.sum, nil
}

func TestCreateLumpSum(t *testing.T) {
	repo := &recordingLumpSumRepository{}
	service := NewLumpSumService(repo, &sumAllocationRepository{})

	payment, err := service.Create(context.Background(), &CreateLumpSumInput{
		CompanyName:  " alpha carriers ",
		Amount:       50000,
		DateReceived: "15-01-2024",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ALPHA CARRIERS", payment.CompanyName)
	assert.Equal(t, 50000.0, payment.Amount)
	assert.Equal(t, 50000.0, payment.RemainingBalance)
	assert.Equal(t, "15-01-2024", payment.DateReceived)
	assert.NotNil(t, repo.created)
}

func TestCreateLumpSumValidation(t *testing.T) {
	service := NewLumpSumService(&recordingLumpSumRepository{}, &sumAllocationRepository{})

	_, err := service.Create(context.Background(), &CreateLumpSumInput{Amount: 100})
	assert.ErrorIs(t, err, ErrCompanyRequired)

	_, err = service.Create(context.Background(), &CreateLumpSumInput{CompanyName: "ALPHA", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.Create(context.Background(), &CreateLumpSumInput{CompanyName: "ALPHA", Amount: -50})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDeleteLumpSumWithAllocationsRefused(t *testing.T) {
	repo := &recordingLumpSumRepository{
		stored: &models.LumpSumPayment{ID: "ls1", Amount: 1000, RemainingBalance: 500},
	}
	service := NewLumpSumService(repo, &sumAllocationRepository{sum: 500})

	err := service.Delete(context.Background(), "ls1")

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, repo.deleted)
}

func TestDeleteUnallocatedLumpSum(t *testing.T) {
	repo := &recordingLumpSumRepository{
		stored: &models.LumpSumPayment{ID: "ls1", Amount: 1000, RemainingBalance: 1000},
	}
	service := NewLumpSumService(repo, &sumAllocationRepository{sum: 0})

	err := service.Delete(context.Background(), "ls1")

	assert.NoError(t, err)
	assert.Equal(t, "ls1", repo.deleted)
}

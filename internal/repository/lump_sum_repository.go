package repository

import (
	"context"

	"github.com/sahyog/freightbook-api/internal/models"

	"gorm.io/gorm"
)

// LumpSumRepository defines the interface for lump sum payment data access
type LumpSumRepository interface {
	FindByID(ctx context.Context, id string) (*models.LumpSumPayment, error)
	FindAll(ctx context.Context) ([]models.LumpSumPayment, error)
	FindAvailable(ctx context.Context) ([]models.LumpSumPayment, error)
	Create(ctx context.Context, payment *models.LumpSumPayment) error
	Update(ctx context.Context, payment *models.LumpSumPayment) error
	Delete(ctx context.Context, id string) error
}

type lumpSumRepository struct {
	db *gorm.DB
}

// NewLumpSumRepository creates a new lump sum payment repository
func NewLumpSumRepository(db *gorm.DB) LumpSumRepository {
	return &lumpSumRepository{db: db}
}

func (r *lumpSumRepository) FindByID(ctx context.Context, id string) (*models.LumpSumPayment, error) {
	var payment models.LumpSumPayment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *lumpSumRepository) FindAll(ctx context.Context) ([]models.LumpSumPayment, error) {
	var payments []models.LumpSumPayment
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// FindAvailable returns payments that still have money left to distribute
func (r *lumpSumRepository) FindAvailable(ctx context.Context) ([]models.LumpSumPayment, error) {
	var payments []models.LumpSumPayment
	err := r.db.WithContext(ctx).
		Where("remaining_balance > 0").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *lumpSumRepository) Create(ctx context.Context, payment *models.LumpSumPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *lumpSumRepository) Update(ctx context.Context, payment *models.LumpSumPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *lumpSumRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.LumpSumPayment{}, "id = ?", id).Error
}

// AllocationRepository defines the interface for payment allocation data access
type AllocationRepository interface {
	Create(ctx context.Context, allocation *models.PaymentAllocation) error
	FindByLumpSum(ctx context.Context, lumpSumID string) ([]models.PaymentAllocation, error)
	FindByRecord(ctx context.Context, recordID string) ([]models.PaymentAllocation, error)
	SumForLumpSum(ctx context.Context, lumpSumID string) (float64, error)
	ApplyBatch(ctx context.Context, records []*models.TransportRecord, allocations []*models.PaymentAllocation, payment *models.LumpSumPayment) error
	Delete(ctx context.Context, id string) error
}

type allocationRepository struct {
	db *gorm.DB
}

// NewAllocationRepository creates a new payment allocation repository
func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) Create(ctx context.Context, allocation *models.PaymentAllocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

// FindByLumpSum loads a payment's allocations with the referenced record so
// lists can show truck, company and destination without extra lookups. The
// record reference is weak: a deleted record simply leaves the association
// nil.
func (r *allocationRepository) FindByLumpSum(ctx context.Context, lumpSumID string) ([]models.PaymentAllocation, error) {
	var allocations []models.PaymentAllocation
	err := r.db.WithContext(ctx).
		Where("lump_sum_payment_id = ?", lumpSumID).
		Preload("TransportRecord").
		Order("created_at ASC").
		Find(&allocations).Error
	return allocations, err
}

func (r *allocationRepository) FindByRecord(ctx context.Context, recordID string) ([]models.PaymentAllocation, error) {
	var allocations []models.PaymentAllocation
	err := r.db.WithContext(ctx).
		Where("transport_record_id = ?", recordID).
		Order("created_at ASC").
		Find(&allocations).Error
	return allocations, err
}

// SumForLumpSum totals everything already allocated out of one payment
func (r *allocationRepository) SumForLumpSum(ctx context.Context, lumpSumID string) (float64, error) {
	var result struct {
		Total float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.PaymentAllocation{}).
		Select("COALESCE(SUM(allocated_amount), 0) as total").
		Where("lump_sum_payment_id = ?", lumpSumID).
		Scan(&result).Error

	return result.Total, err
}

// ApplyBatch persists the outcome of one allocation run in a single
// transaction: the updated records, the allocation rows and the payment's new
// remaining balance all land together or not at all.
func (r *allocationRepository) ApplyBatch(ctx context.Context, records []*models.TransportRecord, allocations []*models.PaymentAllocation, payment *models.LumpSumPayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := tx.Save(record).Error; err != nil {
				return err
			}
		}
		for _, allocation := range allocations {
			if err := tx.Create(allocation).Error; err != nil {
				return err
			}
		}
		if payment != nil {
			if err := tx.Save(payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *allocationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.PaymentAllocation{}, "id = ?", id).Error
}

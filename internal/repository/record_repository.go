package repository

import (
	"context"
	"strings"

	"github.com/sahyog/freightbook-api/internal/models"

	"gorm.io/gorm"
)

// RecordRepository defines the interface for transport record data access
type RecordRepository interface {
	FindByID(ctx context.Context, id string) (*models.TransportRecord, error)
	FindAll(ctx context.Context) ([]models.TransportRecord, error)
	FindUnpaidByCompany(ctx context.Context, company string) ([]models.TransportRecord, error)
	List(ctx context.Context, query *ListQuery) ([]models.TransportRecord, int64, error)
	Create(ctx context.Context, record *models.TransportRecord) error
	Update(ctx context.Context, record *models.TransportRecord) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new transport record repository
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) FindByID(ctx context.Context, id string) (*models.TransportRecord, error) {
	var record models.TransportRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns the full record set, newest first, the order the entry
// screens list it in.
func (r *recordRepository) FindAll(ctx context.Context) ([]models.TransportRecord, error) {
	var records []models.TransportRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// FindUnpaidByCompany returns a company's pending records oldest first. The
// allocation engine depends on this order: when a payment cannot cover
// everything, the earliest invoices are settled first.
func (r *recordRepository) FindUnpaidByCompany(ctx context.Context, company string) ([]models.TransportRecord, error) {
	var records []models.TransportRecord
	err := r.db.WithContext(ctx).
		Where("transport = ? AND isbalpaid <> ?", company, models.BalancePaid).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *recordRepository) List(ctx context.Context, query *ListQuery) ([]models.TransportRecord, int64, error) {
	var records []models.TransportRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&models.TransportRecord{})

	// Status filter maps the UI's paid/unpaid toggle onto isbalpaid
	switch query.Filters["status"] {
	case "paid":
		db = db.Where("isbalpaid = ?", models.BalancePaid)
	case "unpaid":
		db = db.Where("isbalpaid = ?", models.BalancePending)
	}

	if company := query.Filters["company"]; company != "" {
		db = db.Where("transport = ?", company)
	}

	// Free-text search across the fields operators actually look things up by
	if search := query.Filters["search"]; search != "" {
		term := "%" + search + "%"
		db = db.Where("(truckno ILIKE ? OR transport ILIKE ? OR destination ILIKE ? OR biltyno ILIKE ?)",
			term, term, term, term)
	}

	// Date filter matches either of the entry dates, substring style, since
	// both are stored as display text
	if date := query.Filters["date"]; date != "" {
		term := "%" + date + "%"
		db = db.Where("(lrdate LIKE ? OR smsdate LIKE ?)", term, term)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if query.SortBy != "" {
		dir := "ASC"
		if strings.EqualFold(query.SortDir, "desc") {
			dir = "DESC"
		}
		switch query.SortBy {
		case "srno", "lrdate", "smsdate", "truckno", "transport", "destination", "created_at":
			order = query.SortBy + " " + dir
		}
	}

	err := db.Order(order).
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *recordRepository) Create(ctx context.Context, record *models.TransportRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) Update(ctx context.Context, record *models.TransportRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *recordRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.TransportRecord{}, "id = ?", id).Error
}

func (r *recordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TransportRecord{}).Count(&count).Error
	return count, err
}

package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Record      RecordRepository
	LumpSum     LumpSumRepository
	Allocation  AllocationRepository
	SavedOption SavedOptionRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Record:      NewRecordRepository(db),
		LumpSum:     NewLumpSumRepository(db),
		Allocation:  NewAllocationRepository(db),
		SavedOption: NewSavedOptionRepository(db),
	}
}

// ListQuery carries pagination, sorting and free-form filters for list
// endpoints.
type ListQuery struct {
	Page    int
	PerPage int
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery returns a ListQuery with sane defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = 20
	}
	return (page - 1) * perPage
}

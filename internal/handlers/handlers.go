package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahyog/freightbook-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health  *HealthHandler
	Record  *RecordHandler
	Company *CompanyHandler
	LumpSum *LumpSumHandler
	Option  *OptionHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(),
		Record:  NewRecordHandler(svcs.Record, svcs.Export, svcs.Allocation),
		Company: NewCompanyHandler(svcs.Balance, svcs.Allocation, svcs.Export),
		LumpSum: NewLumpSumHandler(svcs.LumpSum, svcs.Allocation, svcs.Balance),
		Option:  NewOptionHandler(svcs.Record),
	}
}

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInsufficientBalance), errors.Is(err, services.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrCompanyRequired),
		errors.Is(err, services.ErrInvalidOption):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahyog/freightbook-api/internal/services"
)

type CompanyHandler struct {
	balanceService    *services.BalanceService
	allocationService *services.AllocationService
	exportService     *services.ExportService
}

func NewCompanyHandler(balanceService *services.BalanceService, allocationService *services.AllocationService, exportService *services.ExportService) *CompanyHandler {
	return &CompanyHandler{
		balanceService:    balanceService,
		allocationService: allocationService,
		exportService:     exportService,
	}
}

// Summaries returns the per-company outstanding rollup
func (h *CompanyHandler) Summaries(c *gin.Context) {
	summaries, err := h.balanceService.CompanySummaries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": summaries})
}

// Overview returns the dashboard headline block
func (h *CompanyHandler) Overview(c *gin.Context) {
	overview, err := h.balanceService.DashboardOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

type allocateRequest struct {
	CompanyName string  `json:"company_name" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	PaymentDate string  `json:"payment_date"`
}

// Allocate spreads a company payment across its unpaid records
func (h *CompanyHandler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.allocationService.AllocateToCompany(c.Request.Context(), req.CompanyName, req.Amount, req.PaymentDate)
	if err != nil {
		respondError(c, err)
		return
	}

	// Balances changed under the cache
	if _, err := h.balanceService.RefreshCache(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StatementPDF downloads one company's statement
func (h *CompanyHandler) StatementPDF(c *gin.Context) {
	company := c.Query("company")
	data, filename, err := h.exportService.CompanyStatementPDF(c.Request.Context(), company)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

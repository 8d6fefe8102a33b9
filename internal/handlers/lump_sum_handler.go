package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahyog/freightbook-api/internal/services"
)

type LumpSumHandler struct {
	lumpSumService    *services.LumpSumService
	allocationService *services.AllocationService
	balanceService    *services.BalanceService
}

func NewLumpSumHandler(lumpSumService *services.LumpSumService, allocationService *services.AllocationService, balanceService *services.BalanceService) *LumpSumHandler {
	return &LumpSumHandler{
		lumpSumService:    lumpSumService,
		allocationService: allocationService,
		balanceService:    balanceService,
	}
}

func (h *LumpSumHandler) Index(c *gin.Context) {
	var err error
	var payments []interface{}

	if c.Query("available") == "true" {
		list, e := h.lumpSumService.ListAvailable(c.Request.Context())
		err = e
		for i := range list {
			payments = append(payments, list[i].ToResponse())
		}
	} else {
		list, e := h.lumpSumService.List(c.Request.Context())
		err = e
		for i := range list {
			payments = append(payments, list[i].ToResponse())
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lump_sums": payments})
}

func (h *LumpSumHandler) Show(c *gin.Context) {
	payment, err := h.lumpSumService.Get(c.Request.Context(), c.Param("lump_sum_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lump_sum": payment.ToResponse()})
}

func (h *LumpSumHandler) Create(c *gin.Context) {
	var input services.CreateLumpSumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.lumpSumService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lump_sum": payment.ToResponse()})
}

func (h *LumpSumHandler) Delete(c *gin.Context) {
	if err := h.lumpSumService.Delete(c.Request.Context(), c.Param("lump_sum_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lump sum deleted"})
}

// Allocations lists everything carved out of one lump sum
func (h *LumpSumHandler) Allocations(c *gin.Context) {
	allocations, err := h.allocationService.AllocationsForLumpSum(c.Request.Context(), c.Param("lump_sum_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range allocations {
		responses = append(responses, allocations[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"allocations": responses})
}

type lumpSumAllocateRequest struct {
	Allocations []services.LumpSumAllocationInput `json:"allocations" binding:"required"`
}

// Allocate splits a lump sum across the chosen records
func (h *LumpSumHandler) Allocate(c *gin.Context) {
	var req lumpSumAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.allocationService.AllocateLumpSum(c.Request.Context(), c.Param("lump_sum_id"), req.Allocations)
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

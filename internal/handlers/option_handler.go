package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahyog/freightbook-api/internal/services"
)

// OptionHandler serves the entry-form suggestion lists
type OptionHandler struct {
	recordService *services.RecordService
}

func NewOptionHandler(recordService *services.RecordService) *OptionHandler {
	return &OptionHandler{recordService: recordService}
}

type addOptionRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *OptionHandler) addOption(c *gin.Context, save func(ctx context.Context, value string) error) {
	var req addOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := save(c.Request.Context(), req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "option saved"})
}

func (h *OptionHandler) AddTruck(c *gin.Context) {
	h.addOption(c, h.recordService.RememberTruck)
}

func (h *OptionHandler) AddTransport(c *gin.Context) {
	h.addOption(c, h.recordService.RememberTransport)
}

func (h *OptionHandler) AddDestination(c *gin.Context) {
	h.addOption(c, h.recordService.RememberDestination)
}

func (h *OptionHandler) Trucks(c *gin.Context) {
	options, err := h.recordService.TruckOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

func (h *OptionHandler) Transports(c *gin.Context) {
	options, err := h.recordService.TransportOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

func (h *OptionHandler) Destinations(c *gin.Context) {
	options, err := h.recordService.DestinationOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

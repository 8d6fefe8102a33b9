package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sahyog/freightbook-api/internal/models"
	"github.com/sahyog/freightbook-api/internal/repository"
	"github.com/sahyog/freightbook-api/internal/services"
)

type RecordHandler struct {
	recordService     *services.RecordService
	exportService     *services.ExportService
	allocationService *services.AllocationService
}

func NewRecordHandler(recordService *services.RecordService, exportService *services.ExportService, allocationService *services.AllocationService) *RecordHandler {
	return &RecordHandler{
		recordService:     recordService,
		exportService:     exportService,
		allocationService: allocationService,
	}
}

// listQueryFromRequest reads the shared list parameters off the request
func listQueryFromRequest(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 {
		query.PerPage = 20
	}
	query.Filters["status"] = c.Query("status")
	query.Filters["company"] = c.Query("company")
	query.Filters["search"] = c.Query("search")
	query.Filters["date"] = c.Query("date")

	// Sort parameter format: field-direction
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	return query
}

func (h *RecordHandler) Index(c *gin.Context) {
	query := listQueryFromRequest(c)

	records, total, err := h.recordService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for i := range records {
		responses = append(responses, records[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"records": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

func (h *RecordHandler) Show(c *gin.Context) {
	record, err := h.recordService.Get(c.Request.Context(), c.Param("record_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record.ToResponse()})
}

func (h *RecordHandler) Create(c *gin.Context) {
	var record models.TransportRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.recordService.Create(c.Request.Context(), &record)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": created.ToResponse()})
}

func (h *RecordHandler) Update(c *gin.Context) {
	var updates models.TransportRecord
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.recordService.Update(c.Request.Context(), c.Param("record_id"), &updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record": record.ToResponse()})
}

func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.recordService.Delete(c.Request.Context(), c.Param("record_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "record deleted"})
}

// Allocations lists the lump sum slices applied against one record
func (h *RecordHandler) Allocations(c *gin.Context) {
	allocations, err := h.allocationService.AllocationsForRecord(c.Request.Context(), c.Param("record_id"))
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

func (h *RecordHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.exportService.ExportCSV(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *RecordHandler) ExportXLSX(c *gin.Context) {
	data, filename, err := h.exportService.ExportXLSX(c.Request.Context(), listQueryFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

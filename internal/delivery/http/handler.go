package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spoolscan/backend/internal/domain"
	"github.com/spoolscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	lookup *usecase.LookupService
	store  domain.CatalogStore
}

// NewHandler creates a new HTTP handler
func NewHandler(lookup *usecase.LookupService, store domain.CatalogStore) *Handler {
	return &Handler{lookup: lookup, store: store}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "spoolscan-backend",
		"version": "1.0.0",
	})
}

// lookupRequest is the body of a barcode lookup call
type lookupRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// Lookup resolves a scanned barcode into a catalog record. Terminal
// lookup conditions come back as 200 with errorMessage set; only a
// malformed request is a client error.
func (h *Handler) Lookup(c *gin.Context) {
	if h.lookup == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup service unavailable"})
		return
	}

	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	result := h.lookup.LookupAndMap(c.Request.Context(), req.Barcode)
	c.JSON(http.StatusOK, result)
}

// sectionResponse is one page of a catalog section
type sectionResponse struct {
	Items  []domain.CatalogItem `json:"items"`
	Total  int                  `json:"total"`
	Offset int                  `json:"offset"`
	Limit  int                  `json:"limit"`
}

// ListSection returns one ordered page of a browsable catalog section,
// optionally filtered by a case-insensitive substring query
func (h *Handler) ListSection(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog store unavailable"})
		return
	}

	query := c.Query("query")
	offset := parseIntDefault(c.Query("offset"), 0)
	limit := parseIntDefault(c.Query("limit"), 50)
	ctx := c.Request.Context()

	var (
		items []domain.CatalogItem
		total int
		err   error
	)

	switch c.Param("section") {
	case "manufacturers":
		var page []domain.Manufacturer
		if page, err = h.store.ListManufacturers(ctx, query, offset, limit); err == nil {
			total, err = h.store.CountManufacturers(ctx, query)
			items = make([]domain.CatalogItem, len(page))
			for i := range page {
				items[i] = domain.ManufacturerItem(&page[i])
			}
		}
	case "materials":
		var page []domain.Material
		if page, err = h.store.ListMaterials(ctx, query, offset, limit); err == nil {
			total, err = h.store.CountMaterials(ctx, query)
			items = make([]domain.CatalogItem, len(page))
			for i := range page {
				items[i] = domain.MaterialItem(&page[i])
			}
		}
	case "carriers":
		var page []domain.Carrier
		if page, err = h.store.ListCarriers(ctx, query, offset, limit); err == nil {
			total, err = h.store.CountCarriers(ctx, query)
			items = make([]domain.CatalogItem, len(page))
			for i := range page {
				items[i] = domain.CarrierItem(&page[i])
			}
		}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown catalog section"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if items == nil {
		items = []domain.CatalogItem{}
	}
	c.JSON(http.StatusOK, sectionResponse{Items: items, Total: total, Offset: offset, Limit: limit})
}

// mappingsResponse is one recency-ordered page of barcode mappings
type mappingsResponse struct {
	Mappings []domain.SpoolMapping `json:"mappings"`
	Total    int                   `json:"total"`
	Offset   int                   `json:"offset"`
	Limit    int                   `json:"limit"`
}

// ListMappings returns stored barcode mappings, newest first, each
// hydrated with its material and carrier
func (h *Handler) ListMappings(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog store unavailable"})
		return
	}

	offset := parseIntDefault(c.Query("offset"), 0)
	limit := parseIntDefault(c.Query("limit"), 50)
	ctx := c.Request.Context()

	mappings, err := h.store.ListSpools(ctx, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := h.store.CountSpools(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if mappings == nil {
		mappings = []domain.SpoolMapping{}
	}
	c.JSON(http.StatusOK, mappingsResponse{Mappings: mappings, Total: total, Offset: offset, Limit: limit})
}

// DeleteMapping removes a mapping by id. Deletion is always explicit;
// nothing else in the system removes mappings.
func (h *Handler) DeleteMapping(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog store unavailable"})
		return
	}

	err := h.store.DeleteSpool(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrMappingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseIntDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	value, err := strconv.Atoi(s)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

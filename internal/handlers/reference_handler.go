package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// ReferenceHandler exposes the CPV and NUTS reference catalogs
// #IMPLEMENTATION_DECISION: Public endpoints; registration forms need these
// before the user has an account
type ReferenceHandler struct {
	referenceService services.ReferenceService
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(referenceService services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// ListCPVCodes handles GET /api/v1/reference/cpv
// @Summary List CPV procurement codes
// @Description Lists CPV codes, optionally scoped to children of a parent code
// @Tags Reference
// @Produce json
// @Param parent query string false "Parent CPV code"
// @Success 200 {array} models.CPVCode
// @Router /reference/cpv [get]
func (h *ReferenceHandler) ListCPVCodes(c *gin.Context) {
	var parentCode *string
	if raw := c.Query("parent"); raw != "" {
		parentCode = &raw
	}

	codes, err := h.referenceService.ListCPV(c.Request.Context(), parentCode)
	if err != nil {
		respondServiceError(c, err, "Failed to list CPV codes")
		return
	}
	c.JSON(http.StatusOK, codes)
}

// GetCPVCode handles GET /api/v1/reference/cpv/:code
// @Summary Look up one CPV code
// @Tags Reference
// @Produce json
// @Param code path string true "CPV code string"
// @Success 200 {object} models.CPVCode
// @Failure 404 {object} ErrorResponse
// @Router /reference/cpv/{code} [get]
func (h *ReferenceHandler) GetCPVCode(c *gin.Context) {
	code, err := h.referenceService.GetCPVByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err, "Failed to load CPV code")
		return
	}
	c.JSON(http.StatusOK, code)
}

// ListNUTSCodes handles GET /api/v1/reference/nuts
// @Summary List NUTS region codes
// @Description Lists NUTS codes, optionally filtered by hierarchy level
// @Tags Reference
// @Produce json
// @Param level query int false "NUTS level (0-3)"
// @Success 200 {array} models.NUTSCode
// @Failure 400 {object} ErrorResponse
// @Router /reference/nuts [get]
func (h *ReferenceHandler) ListNUTSCodes(c *gin.Context) {
	var level *int
	if raw := c.Query("level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 3 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Level must be an integer between 0 and 3",
			})
			return
		}
		level = &parsed
	}

	codes, err := h.referenceService.ListNUTS(c.Request.Context(), level)
	if err != nil {
		respondServiceError(c, err, "Failed to list NUTS codes")
		return
	}
	c.JSON(http.StatusOK, codes)
}

// RegisterRoutes registers reference data routes
func (h *ReferenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reference := rg.Group("/reference")
	{
		reference.GET("/cpv", h.ListCPVCodes)
		reference.GET("/cpv/:code", h.GetCPVCode)
		reference.GET("/nuts", h.ListNUTSCodes)
	}
}

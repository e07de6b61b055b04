package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// AnnouncementHandler handles announcement board endpoints
// #INTEGRATION_POINT: Admins author announcements; every role reads its own feed
type AnnouncementHandler struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// AnnouncementRequest represents the create/update announcement request body
type AnnouncementRequest struct {
	Title     string     `json:"title" binding:"required"`
	Body      string     `json:"body" binding:"required"`
	Audience  string     `json:"audience,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreateAnnouncement handles POST /api/v1/admin/announcements
// @Summary Create an announcement
// @Description Publishes an announcement to all users or a specific role
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AnnouncementRequest true "Announcement"
// @Success 201 {object} models.Announcement
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	req, ok := h.bindAnnouncement(c)
	if !ok {
		return
	}

	announcement, err := h.announcementService.Create(c.Request.Context(), adminID, req)
	if err != nil {
		h.respondAnnouncementError(c, err, "Failed to create announcement")
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// UpdateAnnouncement handles PUT /api/v1/admin/announcements/:id
// @Summary Update an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Param request body AnnouncementRequest true "Announcement"
// @Success 200 {object} models.Announcement
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	announcementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := h.bindAnnouncement(c)
	if !ok {
		return
	}

	announcement, err := h.announcementService.Update(c.Request.Context(), announcementID, req)
	if err != nil {
		h.respondAnnouncementError(c, err, "Failed to update announcement")
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// DeleteAnnouncement handles DELETE /api/v1/admin/announcements/:id
// @Summary Delete an announcement
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	announcementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), announcementID); err != nil {
		respondServiceError(c, err, "Failed to delete announcement")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Announcement deleted"})
}

// ListAllAnnouncements handles GET /api/v1/admin/announcements
// @Summary List every announcement including expired ones
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Announcement]
// @Failure 403 {object} ErrorResponse
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) ListAllAnnouncements(c *gin.Context) {
	result, err := h.announcementService.ListAll(c.Request.Context(), parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list announcements")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetFeed handles GET /api/v1/announcements
// @Summary Get the announcement feed for the caller's role
// @Description Returns unexpired announcements addressed to everyone or to
// @Description the caller's role
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Announcement]
// @Failure 401 {object} ErrorResponse
// @Router /announcements [get]
func (h *AnnouncementHandler) GetFeed(c *gin.Context) {
	role, ok := middleware.GetRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	result, err := h.announcementService.ListForRole(c.Request.Context(), role, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to load announcements")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnnouncementHandler) bindAnnouncement(c *gin.Context) (services.AnnouncementRequest, bool) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Title and body are required",
		})
		return services.AnnouncementRequest{}, false
	}

	return services.AnnouncementRequest{
		Title:     req.Title,
		Body:      req.Body,
		Audience:  models.AnnouncementAudience(strings.ToUpper(req.Audience)),
		ExpiresAt: req.ExpiresAt,
	}, true
}

func (h *AnnouncementHandler) respondAnnouncementError(c *gin.Context, err error, fallbackMessage string) {
	if errors.Is(err, models.ErrInvalidAudience) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_audience",
			Message: "Audience must be all, suppliers or entities",
		})
		return
	}
	respondServiceError(c, err, fallbackMessage)
}

// RegisterRoutes registers announcement routes
func (h *AnnouncementHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	rg.GET("/announcements", authMiddleware, h.GetFeed)

	admin := rg.Group("/admin/announcements")
	admin.Use(authMiddleware)
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", h.CreateAnnouncement)
		admin.GET("", h.ListAllAnnouncements)
		admin.PUT("/:id", h.UpdateAnnouncement)
		admin.DELETE("/:id", h.DeleteAnnouncement)
	}
}

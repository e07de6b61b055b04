package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// AccountHandler handles admin account management endpoints
// #INTEGRATION_POINT: Admin portal uses these endpoints for supplier approval
type AccountHandler struct {
	accountService services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// SetActiveRequest represents the account activation request body
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// PendingCountResponse reports the number of suppliers awaiting review
type PendingCountResponse struct {
	PendingSuppliers int64 `json:"pending_suppliers"`
}

// ListSuppliers handles GET /api/v1/admin/suppliers
// @Summary List supplier profiles
// @Description Lists suppliers, optionally filtered by approval status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Supplier]
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/suppliers [get]
func (h *AccountHandler) ListSuppliers(c *gin.Context) {
	var status *models.SupplierStatus
	if raw := c.Query("status"); raw != "" {
		s := models.SupplierStatus(strings.ToUpper(raw))
		if !s.IsValid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_status",
				Message: "Unknown supplier status",
			})
			return
		}
		status = &s
	}

	result, err := h.accountService.ListSuppliers(c.Request.Context(), status, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSupplier handles GET /api/v1/admin/suppliers/:id
// @Summary Get a supplier profile
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {object} ErrorResponse
// @Router /admin/suppliers/{id} [get]
func (h *AccountHandler) GetSupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	supplier, err := h.accountService.GetSupplier(c.Request.Context(), supplierID)
	if err != nil {
		respondServiceError(c, err, "Failed to load supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// ApproveSupplier handles POST /api/v1/admin/suppliers/:id/approve
// @Summary Approve a pending supplier
// @Description Approved suppliers may save and submit questionnaire responses
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/suppliers/{id}/approve [post]
func (h *AccountHandler) ApproveSupplier(c *gin.Context) {
	h.decideSupplier(c, true)
}

// RejectSupplier handles POST /api/v1/admin/suppliers/:id/reject
// @Summary Reject a pending supplier
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/suppliers/{id}/reject [post]
func (h *AccountHandler) RejectSupplier(c *gin.Context) {
	h.decideSupplier(c, false)
}

func (h *AccountHandler) decideSupplier(c *gin.Context, approve bool) {
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	var supplier *models.Supplier
	var err error
	if approve {
		supplier, err = h.accountService.ApproveSupplier(c.Request.Context(), supplierID, adminID)
	} else {
		supplier, err = h.accountService.RejectSupplier(c.Request.Context(), supplierID, adminID)
	}
	if err != nil {
		if errors.Is(err, services.ErrSupplierAlreadyDecided) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "already_decided",
				Message: "This supplier has already been approved or rejected",
			})
			return
		}
		respondServiceError(c, err, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// ListUsers handles GET /api/v1/admin/users
// @Summary List user accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (admin, supplier, procuring_entity)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.User]
// @Failure 401 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AccountHandler) ListUsers(c *gin.Context) {
	var role *models.UserRole
	if raw := c.Query("role"); raw != "" {
		r := models.UserRole(strings.ToUpper(raw))
		if !r.IsValid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_role",
				Message: "Unknown user role",
			})
			return
		}
		role = &r
	}

	result, err := h.accountService.ListUsers(c.Request.Context(), role, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetUserActive handles PATCH /api/v1/admin/users/:id/active
// @Summary Activate or deactivate an account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body SetActiveRequest true "Activation request"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id}/active [patch]
func (h *AccountHandler) SetUserActive(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "is_active is required",
		})
		return
	}

	user, err := h.accountService.SetUserActive(c.Request.Context(), userID, *req.IsActive)
	if err != nil {
		if errors.Is(err, services.ErrCannotDeactivateAdmin) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "Admin accounts cannot be deactivated",
			})
			return
		}
		respondServiceError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, ToUserResponse(user))
}

// GetPendingCount handles GET /api/v1/admin/suppliers/pending-count
// @Summary Count suppliers awaiting review
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PendingCountResponse
// @Router /admin/suppliers/pending-count [get]
func (h *AccountHandler) GetPendingCount(c *gin.Context) {
	count, err := h.accountService.PendingSupplierCount(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to count pending suppliers")
		return
	}
	c.JSON(http.StatusOK, PendingCountResponse{PendingSuppliers: count})
}

// RegisterRoutes registers admin account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authMiddleware)
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/suppliers", h.ListSuppliers)
		admin.GET("/suppliers/pending-count", h.GetPendingCount)
		admin.GET("/suppliers/:id", h.GetSupplier)
		admin.POST("/suppliers/:id/approve", h.ApproveSupplier)
		admin.POST("/suppliers/:id/reject", h.RejectSupplier)
		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:id/active", h.SetUserActive)
	}
}

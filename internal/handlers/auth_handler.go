package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prequaliq/prequaliq_backend/internal/auth"
	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// AuthHandler handles authentication endpoints
// #INTEGRATION_POINT: Login and registration for all three portal roles
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterSupplierRequest represents the supplier registration request body
type RegisterSupplierRequest struct {
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required"`
	ContactName        string   `json:"contact_name,omitempty"`
	CompanyName        string   `json:"company_name" binding:"required"`
	RegistrationNumber string   `json:"registration_number,omitempty"`
	Address            string   `json:"address,omitempty"`
	NUTSCodeID         *string  `json:"nuts_code_id,omitempty"`
	CPVCodeIDs         []string `json:"cpv_code_ids,omitempty"`
}

// RegisterEntityRequest represents the procuring entity registration request body
type RegisterEntityRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	ContactName  string `json:"contact_name,omitempty"`
	EntityName   string `json:"entity_name" binding:"required"`
	Description  string `json:"description,omitempty"`
	Address      string `json:"address,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the token refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// RegistrationResponse represents a successful registration
type RegistrationResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

// RegisterSupplier handles POST /api/v1/auth/register/supplier
// @Summary Register a supplier account
// @Description Creates a supplier account; the profile stays pending until an admin approves it
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterSupplierRequest true "Registration request"
// @Success 201 {object} RegistrationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register/supplier [post]
func (h *AuthHandler) RegisterSupplier(c *gin.Context) {
	var req RegisterSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Email, password and company name are required",
		})
		return
	}

	serviceReq := services.RegisterSupplierRequest{
		Email:              req.Email,
		Password:           req.Password,
		ContactName:        req.ContactName,
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
	}
	if req.NUTSCodeID != nil {
		nutsID, err := objectIDFromHexString(*req.NUTSCodeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid NUTS code id",
			})
			return
		}
		serviceReq.NUTSCodeID = &nutsID
	}
	for _, raw := range req.CPVCodeIDs {
		cpvID, err := objectIDFromHexString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid CPV code id",
			})
			return
		}
		serviceReq.CPVCodeIDs = append(serviceReq.CPVCodeIDs, cpvID)
	}

	user, _, err := h.authService.RegisterSupplier(c.Request.Context(), serviceReq)
	if err != nil {
		h.respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{
		User:    ToUserResponse(user),
		Message: "Registration received. Your account awaits admin approval.",
	})
}

// RegisterEntity handles POST /api/v1/auth/register/entity
// @Summary Register a procuring entity account
// @Description Creates a procuring entity account and profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterEntityRequest true "Registration request"
// @Success 201 {object} RegistrationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register/entity [post]
func (h *AuthHandler) RegisterEntity(c *gin.Context) {
	var req RegisterEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Email, password and entity name are required",
		})
		return
	}

	user, _, err := h.authService.RegisterProcuringEntity(c.Request.Context(), services.RegisterEntityRequest{
		Email:        req.Email,
		Password:     req.Password,
		ContactName:  req.ContactName,
		EntityName:   req.EntityName,
		Description:  req.Description,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		h.respondRegistrationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{
		User:    ToUserResponse(user),
		Message: "Registration complete. You can log in now.",
	})
}

func (h *AuthHandler) respondRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "email_taken",
			Message: "This email is already registered",
		})
	case errors.Is(err, services.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "weak_password",
			Message: err.Error(),
		})
	default:
		respondServiceError(c, err, "Registration failed")
	}
}

// Login handles POST /api/v1/auth/login
// @Summary Log in with email and password
// @Description Authenticates a user and returns a JWT token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Email and password are required",
		})
		return
	}

	pair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid email or password",
			})
			return
		}
		if errors.Is(err, services.ErrAccountInactive) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "account_inactive",
				Message: "This account has been deactivated",
			})
			return
		}
		respondServiceError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		ExpiresIn:    pair.ExpiresIn,
		User:         ToUserResponse(user),
	})
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh the token pair
// @Description Exchanges a valid refresh token for a fresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh request"
// @Success 200 {object} auth.TokenPair
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Refresh token is required",
		})
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) || errors.Is(err, auth.ErrInvalidToken) ||
			errors.Is(err, auth.ErrInvalidClaims) || errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "Refresh token is invalid or expired",
			})
			return
		}
		if errors.Is(err, services.ErrAccountInactive) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "account_inactive",
				Message: "This account has been deactivated",
			})
			return
		}
		respondServiceError(c, err, "Token refresh failed")
		return
	}

	c.JSON(http.StatusOK, pair)
}

// GetMe handles GET /api/v1/auth/me
// @Summary Get the current user's profile
// @Description Returns the authenticated user with its role-specific profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Profile
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register/supplier", h.RegisterSupplier)
		authGroup.POST("/register/entity", h.RegisterEntity)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
		authGroup.GET("/me", authMiddleware, h.GetMe)
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ToUserResponse converts a User model to UserResponse
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}
}

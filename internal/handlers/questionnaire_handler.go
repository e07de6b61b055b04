package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// QuestionnaireHandler handles questionnaire authoring and browsing endpoints
// #INTEGRATION_POINT: Procuring entities author questionnaires; suppliers browse active ones
type QuestionnaireHandler struct {
	questionnaireService services.QuestionnaireService
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(questionnaireService services.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

// QuestionnaireRequest represents the create/update questionnaire request body
type QuestionnaireRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description,omitempty"`
	CPVCodeID   string                   `json:"cpv_code_id" binding:"required"`
	Deadline    time.Time                `json:"deadline" binding:"required"`
	Questions   []services.QuestionInput `json:"questions" binding:"required"`
}

// CreateQuestionnaire handles POST /api/v1/questionnaires
// @Summary Create a questionnaire
// @Description Creates a questionnaire with its questions in one atomic operation
// @Tags Questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuestionnaireRequest true "Create request"
// @Success 201 {object} services.QuestionnaireDetail
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /questionnaires [post]
func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	entityID, userID, req, ok := h.bindAuthoringRequest(c)
	if !ok {
		return
	}

	cpvID, err := primitive.ObjectIDFromHex(req.CPVCodeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid CPV code id",
		})
		return
	}

	detail, err := h.questionnaireService.Create(c.Request.Context(), entityID, userID, services.CreateQuestionnaireRequest{
		Title:       req.Title,
		Description: req.Description,
		CPVCodeID:   cpvID,
		Deadline:    req.Deadline,
		Questions:   req.Questions,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create questionnaire")
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// GetQuestionnaire handles GET /api/v1/questionnaires/:id
// @Summary Get a questionnaire with its questions
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Success 200 {object} services.QuestionnaireDetail
// @Failure 404 {object} ErrorResponse
// @Router /questionnaires/{id} [get]
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.questionnaireService.Get(c.Request.Context(), questionnaireID)
	if err != nil {
		respondServiceError(c, err, "Failed to load questionnaire")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateQuestionnaire handles PUT /api/v1/questionnaires/:id
// @Summary Update a questionnaire
// @Description Updates questionnaire fields and replaces its question set wholesale
// @Tags Questionnaires
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Param request body QuestionnaireRequest true "Update request"
// @Success 200 {object} services.QuestionnaireDetail
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questionnaires/{id} [put]
func (h *QuestionnaireHandler) UpdateQuestionnaire(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entityID, _, req, ok := h.bindAuthoringRequest(c)
	if !ok {
		return
	}

	cpvID, err := primitive.ObjectIDFromHex(req.CPVCodeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid CPV code id",
		})
		return
	}

	detail, err := h.questionnaireService.Update(c.Request.Context(), questionnaireID, entityID, services.UpdateQuestionnaireRequest{
		Title:       req.Title,
		Description: req.Description,
		CPVCodeID:   cpvID,
		Deadline:    req.Deadline,
		Questions:   req.Questions,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotQuestionnaireOwner) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "You do not own this questionnaire",
			})
			return
		}
		respondServiceError(c, err, "Failed to update questionnaire")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ToggleQuestionnaire handles POST /api/v1/questionnaires/:id/toggle
// @Summary Toggle a questionnaire's active flag
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Success 200 {object} models.Questionnaire
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /questionnaires/{id}/toggle [post]
func (h *QuestionnaireHandler) ToggleQuestionnaire(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entityID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	questionnaire, err := h.questionnaireService.ToggleStatus(c.Request.Context(), questionnaireID, entityID)
	if err != nil {
		if errors.Is(err, services.ErrNotQuestionnaireOwner) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "You do not own this questionnaire",
			})
			return
		}
		respondServiceError(c, err, "Failed to toggle questionnaire")
		return
	}

	c.JSON(http.StatusOK, questionnaire)
}

// DeleteQuestionnaire handles DELETE /api/v1/questionnaires/:id
// @Summary Delete a questionnaire
// @Description Deletes a questionnaire with its questions and draft responses; blocked once responses were submitted
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /questionnaires/{id} [delete]
func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entityID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	err := h.questionnaireService.Delete(c.Request.Context(), questionnaireID, entityID)
	if err != nil {
		if errors.Is(err, services.ErrNotQuestionnaireOwner) {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: "You do not own this questionnaire",
			})
			return
		}
		if errors.Is(err, services.ErrQuestionnaireLocked) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "has_submissions",
				Message: "Questionnaires with submitted responses cannot be deleted",
			})
			return
		}
		respondServiceError(c, err, "Failed to delete questionnaire")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Questionnaire deleted"})
}

// ListMyQuestionnaires handles GET /api/v1/questionnaires
// @Summary List the entity's own questionnaires
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Questionnaire]
// @Failure 401 {object} ErrorResponse
// @Router /questionnaires [get]
func (h *QuestionnaireHandler) ListMyQuestionnaires(c *gin.Context) {
	entityID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	result, err := h.questionnaireService.ListByEntity(c.Request.Context(), entityID, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list questionnaires")
		return
	}
	c.JSON(http.StatusOK, result)
}

// BrowseQuestionnaires handles GET /api/v1/questionnaires/browse
// @Summary Browse active questionnaires
// @Description Lists active questionnaires for suppliers, optionally filtered by CPV tag
// @Tags Questionnaires
// @Produce json
// @Security BearerAuth
// @Param cpv_code_id query string false "Filter by CPV code ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Questionnaire]
// @Failure 400 {object} ErrorResponse
// @Router /questionnaires/browse [get]
func (h *QuestionnaireHandler) BrowseQuestionnaires(c *gin.Context) {
	var cpvCodeID *primitive.ObjectID
	if raw := c.Query("cpv_code_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid CPV code id",
			})
			return
		}
		cpvCodeID = &id
	}

	result, err := h.questionnaireService.ListActive(c.Request.Context(), cpvCodeID, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to browse questionnaires")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuestionnaireHandler) bindAuthoringRequest(c *gin.Context) (entityID, userID primitive.ObjectID, req QuestionnaireRequest, ok bool) {
	entityID, hasProfile := middleware.GetProfileID(c)
	userID, hasUser := middleware.GetUserID(c)
	if !hasProfile || !hasUser {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return entityID, userID, req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Title, CPV code, deadline and questions are required",
		})
		return entityID, userID, req, false
	}

	return entityID, userID, req, true
}

// RegisterRoutes registers questionnaire routes
func (h *QuestionnaireHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	questionnaires := rg.Group("/questionnaires")
	questionnaires.Use(authMiddleware)
	{
		// Supplier browsing comes before :id so "browse" is not captured as an ID
		questionnaires.GET("/browse", middleware.RequireSupplier(), h.BrowseQuestionnaires)

		questionnaires.POST("", middleware.RequireEntity(), h.CreateQuestionnaire)
		questionnaires.GET("", middleware.RequireEntity(), h.ListMyQuestionnaires)
		questionnaires.GET("/:id", h.GetQuestionnaire)
		questionnaires.PUT("/:id", middleware.RequireEntity(), h.UpdateQuestionnaire)
		questionnaires.DELETE("/:id", middleware.RequireEntity(), h.DeleteQuestionnaire)
		questionnaires.POST("/:id/toggle", middleware.RequireEntity(), h.ToggleQuestionnaire)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// ResponseHandler handles questionnaire response endpoints
// #INTEGRATION_POINT: Suppliers answer questionnaires; entities review submissions
type ResponseHandler struct {
	responseService services.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseService services.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService}
}

// SaveResponseRequest represents the JSON save request body
type SaveResponseRequest struct {
	Answers []services.AnswerInput `json:"answers" binding:"required"`
}

// SaveResponse handles PUT /api/v1/responses/questionnaires/:id
// @Summary Save draft answers for a questionnaire
// @Description Creates the draft on first save and upserts one answer per
// @Description question. Accepts JSON, or multipart/form-data with an
// @Description "answers" JSON field plus one file part per document answer
// @Description named "file_<question_id>".
// @Tags Responses
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Param request body SaveResponseRequest true "Answers to save"
// @Success 200 {object} services.ResponseDetail
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /responses/questionnaires/{id} [put]
func (h *ResponseHandler) SaveResponse(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplierID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	answers, closeFiles, ok := h.bindAnswers(c)
	if !ok {
		return
	}
	defer closeFiles()

	detail, err := h.responseService.SaveResponse(c.Request.Context(), questionnaireID, supplierID, answers)
	if err != nil {
		h.respondResponseError(c, err, "Failed to save response")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// bindAnswers reads answers from a JSON body or a multipart form. Multipart
// requests carry the answers as a JSON-encoded "answers" field; files attach
// to their question via a "file_<question_id>" part. The returned closer
// releases the opened file parts and must run after the service has consumed
// the upload streams; large parts are backed by temp files, so closing them
// early would invalidate the readers.
func (h *ResponseHandler) bindAnswers(c *gin.Context) ([]services.AnswerInput, func(), bool) {
	noFiles := func() {}

	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/") {
		var req SaveResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "An answers array is required",
			})
			return nil, noFiles, false
		}
		return req.Answers, noFiles, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid multipart form",
		})
		return nil, noFiles, false
	}

	var answers []services.AnswerInput
	if err := json.Unmarshal([]byte(c.PostForm("answers")), &answers); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "The answers field must be a JSON array",
		})
		return nil, noFiles, false
	}

	var opened []multipart.File
	closeFiles := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for i := range answers {
		files := form.File["file_"+answers[i].QuestionID]
		if len(files) == 0 {
			continue
		}
		fileHeader := files[0]
		file, err := fileHeader.Open()
		if err != nil {
			closeFiles()
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "Failed to read uploaded file",
			})
			return nil, noFiles, false
		}
		opened = append(opened, file)

		answers[i].Upload = &services.UploadRequest{
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
			Content:  file,
		}
	}

	return answers, closeFiles, true
}

// SubmitResponse handles POST /api/v1/responses/questionnaires/:id/submit
// @Summary Submit the draft response
// @Description Validates that every required question is answered, then
// @Description finalizes the response. Submitted responses are immutable.
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Success 200 {object} models.QuestionnaireResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} MissingAnswersResponse
// @Router /responses/questionnaires/{id}/submit [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplierID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	response, err := h.responseService.Submit(c.Request.Context(), questionnaireID, supplierID)
	if err != nil {
		h.respondResponseError(c, err, "Failed to submit response")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMyResponse handles GET /api/v1/responses/questionnaires/:id/mine
// @Summary Get the supplier's own response
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Success 200 {object} services.ResponseDetail
// @Failure 404 {object} ErrorResponse
// @Router /responses/questionnaires/{id}/mine [get]
func (h *ResponseHandler) GetMyResponse(c *gin.Context) {
	questionnaireID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplierID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	detail, err := h.responseService.GetForSupplier(c.Request.Context(), questionnaireID, supplierID)
	if err != nil {
		respondServiceError(c, err, "Failed to load response")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListMyResponses handles GET /api/v1/responses/mine
// @Summary List the supplier's own responses
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.QuestionnaireResponse]
// @Failure 401 {object} ErrorResponse
// @Router /responses/mine [get]
func (h *ResponseHandler) ListMyResponses(c *gin.Context) {
	supplierID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	result, err := h.responseService.ListBySupplier(c.Request.Context(), supplierID, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list responses")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListQuestionnaireResponses handles GET /api/v1/responses/questionnaires/:id
// @Summary List responses to one of the entity's questionnaires
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.QuestionnaireResponse]
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /responses/questionnaires/{id} [get]
func (h *ResponseHandler) ListQuestionnaireResponses(c *gin.Context) {
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

	result, err := h.responseService.ListByQuestionnaire(c.Request.Context(), questionnaireID, entityID, parsePagination(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list responses")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetResponse handles GET /api/v1/responses/:id
// @Summary Get a response for review
// @Description Returns a response with questions and answers; only the owner
// @Description of the questionnaire may review it
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Response ID"
// @Success 200 {object} services.ResponseDetail
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /responses/{id} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	responseID, ok := parseIDParam(c, "id")
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

	detail, err := h.responseService.GetForEntity(c.Request.Context(), responseID, entityID)
	if err != nil {
		respondServiceError(c, err, "Failed to load response")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// respondResponseError maps response lifecycle errors before the generic fallback
func (h *ResponseHandler) respondResponseError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, services.ErrSupplierNotApproved):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "supplier_not_approved",
			Message: "Your supplier account has not been approved yet",
		})
	case errors.Is(err, services.ErrQuestionnaireClosed):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "questionnaire_closed",
			Message: "This questionnaire is no longer accepting responses",
		})
	case errors.Is(err, models.ErrResponseSubmitted):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "already_submitted",
			Message: "This response has already been submitted",
		})
	case errors.Is(err, services.ErrQuestionMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "question_mismatch",
			Message: "One of the answers references a question outside this questionnaire",
		})
	case errors.Is(err, models.ErrDocumentNotOwned):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "document_not_owned",
			Message: "Referenced document belongs to a different supplier",
		})
	case errors.Is(err, services.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "file_too_large",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrFileTypeBlocked):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "file_type_blocked",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrDocumentUploadFailed):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "upload_failed",
			Message: "A document upload failed, no answers were saved",
		})
	default:
		respondServiceError(c, err, fallbackMessage)
	}
}

// RegisterRoutes registers response routes
func (h *ResponseHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	responses := rg.Group("/responses")
	responses.Use(authMiddleware)
	{
		responses.PUT("/questionnaires/:id", middleware.RequireSupplier(), h.SaveResponse)
		responses.POST("/questionnaires/:id/submit", middleware.RequireSupplier(), h.SubmitResponse)
		responses.GET("/questionnaires/:id/mine", middleware.RequireSupplier(), h.GetMyResponse)
		responses.GET("/mine", middleware.RequireSupplier(), h.ListMyResponses)

		responses.GET("/questionnaires/:id", middleware.RequireEntity(), h.ListQuestionnaireResponses)
		responses.GET("/:id", middleware.RequireEntity(), h.GetResponse)
	}
}

// Package handlers provides HTTP handlers for API endpoints.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// parsePagination reads page/limit query parameters with defaults
func parsePagination(c *gin.Context) repository.PaginationOptions {
	opts := repository.DefaultPaginationOptions()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 100 {
		opts.Limit = limit
	}
	return opts
}

// parseIDParam parses the :id path parameter as an ObjectID
func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid " + name + " parameter",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}

// objectIDFromHexString parses an ObjectID from a request body string
func objectIDFromHexString(raw string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(raw)
}

// respondServiceError maps a service error onto an HTTP status using the
// model error classifiers. Endpoint-specific sentinels are handled by the
// caller before falling back to this.
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	var missing *models.MissingAnswersError
	if errors.As(err, &missing) {
		c.JSON(http.StatusUnprocessableEntity, MissingAnswersResponse{
			Error:              "missing_required_answers",
			Message:            "Required questions are missing answers",
			MissingQuestionIDs: missing.QuestionIDs,
		})
		return
	}

	switch {
	case models.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case models.IsValidationError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
	case models.IsConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
	case models.IsAuthError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: fallbackMessage,
		})
	}
}

// MissingAnswersResponse reports submit validation failures with the
// offending question IDs
type MissingAnswersResponse struct {
	Error              string   `json:"error"`
	Message            string   `json:"message"`
	MissingQuestionIDs []string `json:"missing_question_ids"`
}

// MessageResponse is a generic confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// DocumentHandler handles document upload and retrieval endpoints
// #INTEGRATION_POINT: Files are referenced by questionnaire answers
type DocumentHandler struct {
	documentService services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// UploadDocument handles POST /api/v1/documents
// @Summary Upload a document
// @Description Stores a file and returns its metadata. The file is sent as
// @Description the "file" multipart field; "document_type" is optional.
// @Tags Documents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param document_type formData string false "Document classification"
// @Success 201 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	owner, userID, ok := h.resolveOwner(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "A file field is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	document, err := h.documentService.Upload(c.Request.Context(), owner, userID, services.UploadRequest{
		FileName:     fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		DocumentType: c.PostForm("document_type"),
		Content:      file,
	})
	if err != nil {
		h.respondDocumentError(c, err, "Failed to store document")
		return
	}

	c.JSON(http.StatusCreated, document)
}

// GetDocument handles GET /api/v1/documents/:id
// @Summary Get document metadata
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	document, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, document)
}

// DownloadDocument handles GET /api/v1/documents/:id/download
// @Summary Download the stored file
// @Tags Documents
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	document, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+document.FileName+`"`)
	c.Header("Content-Type", document.MimeType)
	c.File(document.FilePath)
}

// DeleteDocument handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Description Removes the metadata record and the stored file
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	document, ok := h.loadOwnedDocument(c)
	if !ok {
		return
	}

	if err := h.documentService.Remove(c.Request.Context(), document.ID); err != nil {
		respondServiceError(c, err, "Failed to delete document")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Document deleted"})
}

// ListMyDocuments handles GET /api/v1/documents
// @Summary List the caller's own documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} repository.PaginatedResult[models.Document]
// @Failure 401 {object} ErrorResponse
// @Router /documents [get]
func (h *DocumentHandler) ListMyDocuments(c *gin.Context) {
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return
	}

	role, _ := middleware.GetRole(c)
	var result interface{}
	var err error
	if role == models.UserRoleProcuringEntity {
		result, err = h.documentService.ListByEntity(c.Request.Context(), profileID, parsePagination(c))
	} else {
		result, err = h.documentService.ListBySupplier(c.Request.Context(), profileID, parsePagination(c))
	}
	if err != nil {
		respondServiceError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, result)
}

// resolveOwner builds the document owner from the caller's role and profile
func (h *DocumentHandler) resolveOwner(c *gin.Context) (services.DocumentOwner, primitive.ObjectID, bool) {
	userID, hasUser := middleware.GetUserID(c)
	profileID, hasProfile := middleware.GetProfileID(c)
	if !hasUser || !hasProfile {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return services.DocumentOwner{}, userID, false
	}

	role, _ := middleware.GetRole(c)
	owner := services.DocumentOwner{}
	if role == models.UserRoleProcuringEntity {
		owner.ProcuringEntityID = &profileID
	} else {
		owner.SupplierID = &profileID
	}
	return owner, userID, true
}

// loadOwnedDocument loads the document and checks the caller owns it
// #SECURITY_CONCERN: Documents are private to their uploader
func (h *DocumentHandler) loadOwnedDocument(c *gin.Context) (*models.Document, bool) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	profileID, ok := middleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid session",
		})
		return nil, false
	}

	document, err := h.documentService.Get(c.Request.Context(), documentID)
	if err != nil {
		respondServiceError(c, err, "Failed to load document")
		return nil, false
	}

	if !document.IsOwnedBySupplier(profileID) && !document.IsOwnedByEntity(profileID) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You do not own this document",
		})
		return nil, false
	}
	return document, true
}

// respondDocumentError maps upload errors before the generic fallback
func (h *DocumentHandler) respondDocumentError(c *gin.Context, err error, fallbackMessage string) {
	switch {
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
	default:
		respondServiceError(c, err, fallbackMessage)
	}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	documents := rg.Group("/documents")
	documents.Use(authMiddleware)
	{
		documents.POST("", h.UploadDocument)
		documents.GET("", h.ListMyDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.GET("/:id/download", h.DownloadDocument)
		documents.DELETE("/:id", h.DeleteDocument)
	}
}

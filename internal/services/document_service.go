package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// Custom errors for document service
var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeBlocked = errors.New("file mime type is not allowed")
)

// DocumentOwner identifies the profile a document belongs to.
// Exactly one of SupplierID/ProcuringEntityID is set.
type DocumentOwner struct {
	SupplierID        *primitive.ObjectID
	ProcuringEntityID *primitive.ObjectID
}

// UploadRequest carries a file upload
type UploadRequest struct {
	FileName     string
	MimeType     string
	Size         int64
	DocumentType string
	Content      io.Reader
}

// DocumentService handles document storage and metadata
// #INTEGRATION_POINT: File bytes live on local disk; metadata in MongoDB
// #IMPLEMENTATION_DECISION: Stored names are UUIDs so client file names
// can never traverse or collide on disk
type DocumentService interface {
	// Upload validates and stores a file, returning its metadata record
	Upload(ctx context.Context, owner DocumentOwner, uploadedBy primitive.ObjectID, req UploadRequest) (*models.Document, error)

	// Get returns document metadata
	Get(ctx context.Context, id primitive.ObjectID) (*models.Document, error)

	// Remove deletes the metadata record and the stored file (best effort)
	Remove(ctx context.Context, id primitive.ObjectID) error

	// ListBySupplier lists documents uploaded by a supplier
	ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Document], error)

	// ListByEntity lists documents uploaded by a procuring entity
	ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Document], error)
}

// DocumentConfig holds document storage configuration
type DocumentConfig struct {
	UploadDir        string
	MaxUploadSize    int64
	AllowedMimeTypes []string
}

// documentService implements DocumentService
type documentService struct {
	documentRepo repository.DocumentRepository
	cfg          DocumentConfig
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo repository.DocumentRepository, cfg DocumentConfig) (DocumentService, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &documentService{documentRepo: documentRepo, cfg: cfg}, nil
}

// Upload validates and stores a file, returning its metadata record
// #BUSINESS_RULE: Size and mime type limits are enforced server-side
func (s *documentService) Upload(ctx context.Context, owner DocumentOwner, uploadedBy primitive.ObjectID, req UploadRequest) (*models.Document, error) {
	if req.Size > s.cfg.MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, req.Size)
	}
	if !s.mimeAllowed(req.MimeType) {
		return nil, fmt.Errorf("%w: %s", ErrFileTypeBlocked, req.MimeType)
	}

	storedName := uuid.New().String() + safeExtension(req.FileName)
	storedPath := filepath.Join(s.cfg.UploadDir, storedName)

	written, err := s.writeFile(storedPath, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDocumentStorage, err)
	}

	document := &models.Document{
		SupplierID:        owner.SupplierID,
		ProcuringEntityID: owner.ProcuringEntityID,
		DocumentType:      strings.TrimSpace(req.DocumentType),
		FileName:          filepath.Base(req.FileName),
		FilePath:          storedPath,
		FileSize:          written,
		MimeType:          req.MimeType,
		UploadedBy:        uploadedBy,
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		// Orphaned bytes are worse than a failed request; remove the file
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to store document metadata: %w", err)
	}

	return document, nil
}

func (s *documentService) writeFile(path string, content io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, err
	}

	// MaxUploadSize+1 so an oversized stream is detected, not truncated silently
	written, err := io.Copy(f, io.LimitReader(content, s.cfg.MaxUploadSize+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	if written > s.cfg.MaxUploadSize {
		os.Remove(path)
		return 0, ErrFileTooLarge
	}
	return written, nil
}

// Get returns document metadata
func (s *documentService) Get(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

// Remove deletes the metadata record and the stored file (best effort)
func (s *documentService) Remove(ctx context.Context, id primitive.ObjectID) error {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}
	// The record is gone; a leftover file only wastes disk
	os.Remove(document.FilePath)
	return nil
}

// ListBySupplier lists documents uploaded by a supplier
func (s *documentService) ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Document], error) {
	return s.documentRepo.ListBySupplier(ctx, supplierID, opts)
}

// ListByEntity lists documents uploaded by a procuring entity
func (s *documentService) ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Document], error) {
	return s.documentRepo.ListByEntity(ctx, entityID, opts)
}

func (s *documentService) mimeAllowed(mimeType string) bool {
	for _, allowed := range s.cfg.AllowedMimeTypes {
		if strings.EqualFold(allowed, mimeType) {
			return true
		}
	}
	return false
}

// safeExtension keeps a short, lowercase extension from the client name
func safeExtension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}

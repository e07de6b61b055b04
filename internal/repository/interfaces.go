// Package repository defines interfaces for data access and their MongoDB implementations
// #ORM_PATTERN: Repository pattern with interfaces for testability and abstraction
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/models"
)

// PaginationOptions contains pagination parameters
type PaginationOptions struct {
	Page    int
	Limit   int
	SortBy  string
	SortDir int // 1 for ascending, -1 for descending
}

// DefaultPaginationOptions returns default pagination settings
// #DATA_ASSUMPTION: Pagination defaults to 20 items per page
func DefaultPaginationOptions() PaginationOptions {
	return PaginationOptions{
		Page:    1,
		Limit:   20,
		SortBy:  "created_at",
		SortDir: -1,
	}
}

// PaginatedResult contains paginated query results
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// UserRepository defines operations for user accounts
// #QUERY_INTERFACE: User data access patterns
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID finds a user by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// GetByEmail finds a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update updates a user
	Update(ctx context.Context, user *models.User) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error

	// List lists users, optionally filtered by role
	List(ctx context.Context, role *models.UserRole, opts PaginationOptions) (*PaginatedResult[models.User], error)
}

// SupplierRepository defines operations for supplier profiles
// #QUERY_INTERFACE: Supplier data access patterns
type SupplierRepository interface {
	// Create creates a new supplier profile
	Create(ctx context.Context, supplier *models.Supplier) error

	// GetByID finds a supplier by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Supplier, error)

	// GetByUserID finds a supplier profile by its owning user
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Supplier, error)

	// Update updates a supplier profile
	Update(ctx context.Context, supplier *models.Supplier) error

	// ListByStatus lists suppliers, optionally filtered by approval status
	ListByStatus(ctx context.Context, status *models.SupplierStatus, opts PaginationOptions) (*PaginatedResult[models.Supplier], error)

	// CountByStatus counts suppliers by approval status
	CountByStatus(ctx context.Context, status models.SupplierStatus) (int64, error)
}

// ProcuringEntityRepository defines operations for procuring entity profiles
// #QUERY_INTERFACE: Procuring entity data access patterns
type ProcuringEntityRepository interface {
	// Create creates a new procuring entity profile
	Create(ctx context.Context, entity *models.ProcuringEntity) error

	// GetByID finds a procuring entity by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProcuringEntity, error)

	// GetByUserID finds a procuring entity profile by its owning user
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ProcuringEntity, error)

	// Update updates a procuring entity profile
	Update(ctx context.Context, entity *models.ProcuringEntity) error
}

// ReferenceRepository defines read-mostly operations for CPV and NUTS codes
// #QUERY_INTERFACE: Reference data lookup patterns
type ReferenceRepository interface {
	// GetCPVByID finds a CPV code by ID
	GetCPVByID(ctx context.Context, id primitive.ObjectID) (*models.CPVCode, error)

	// GetCPVByCode finds a CPV code by its code string
	GetCPVByCode(ctx context.Context, code string) (*models.CPVCode, error)

	// ListCPV lists CPV codes, optionally scoped to the children of a parent code
	ListCPV(ctx context.Context, parentCode *string) ([]models.CPVCode, error)

	// GetNUTSByID finds a NUTS code by ID
	GetNUTSByID(ctx context.Context, id primitive.ObjectID) (*models.NUTSCode, error)

	// ListNUTS lists NUTS codes, optionally filtered by level
	ListNUTS(ctx context.Context, level *int) ([]models.NUTSCode, error)

	// SeedCPV inserts CPV codes if the collection is empty (idempotent)
	SeedCPV(ctx context.Context, codes []models.CPVCode) (int64, error)

	// SeedNUTS inserts NUTS codes if the collection is empty (idempotent)
	SeedNUTS(ctx context.Context, codes []models.NUTSCode) (int64, error)
}

// QuestionnaireRepository defines operations for questionnaires
// #QUERY_INTERFACE: Questionnaire data access patterns
type QuestionnaireRepository interface {
	// Create creates a new questionnaire
	Create(ctx context.Context, questionnaire *models.Questionnaire) error

	// GetByID finds a questionnaire by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Questionnaire, error)

	// Update updates a questionnaire
	Update(ctx context.Context, questionnaire *models.Questionnaire) error

	// Delete deletes a questionnaire
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListByEntity lists questionnaires owned by a procuring entity
	ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Questionnaire], error)

	// ListActive lists active questionnaires, optionally filtered by CPV tag
	ListActive(ctx context.Context, cpvCodeID *primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Questionnaire], error)
}

// QuestionRepository defines operations for questions
// #QUERY_INTERFACE: Question data access patterns
type QuestionRepository interface {
	// CreateMany inserts a batch of questions
	CreateMany(ctx context.Context, questions []models.Question) error

	// GetByID finds a question by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)

	// ListByQuestionnaire lists a questionnaire's questions in display order
	ListByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) ([]models.Question, error)

	// DeleteByQuestionnaire deletes all questions for a questionnaire
	DeleteByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) (int64, error)

	// CountByQuestionnaire counts questions for a questionnaire
	CountByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) (int64, error)
}

// ResponseRepository defines operations for questionnaire responses
// #QUERY_INTERFACE: Response lifecycle data access patterns
type ResponseRepository interface {
	// Create creates a new response; duplicate (questionnaire, supplier)
	// pairs are rejected by the unique index
	Create(ctx context.Context, response *models.QuestionnaireResponse) error

	// GetByID finds a response by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.QuestionnaireResponse, error)

	// GetByQuestionnaireAndSupplier finds the single response for a pair
	GetByQuestionnaireAndSupplier(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*models.QuestionnaireResponse, error)

	// MarkSubmitted transitions a draft response to submitted; the update
	// is conditional on status=draft so concurrent submits cannot both win
	MarkSubmitted(ctx context.Context, id primitive.ObjectID) (*models.QuestionnaireResponse, error)

	// ListByQuestionnaire lists responses for a questionnaire
	ListByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.QuestionnaireResponse], error)

	// ListBySupplier lists responses belonging to a supplier
	ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.QuestionnaireResponse], error)

	// CountSubmittedByQuestionnaire counts submitted responses for a questionnaire
	CountSubmittedByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) (int64, error)

	// DeleteByQuestionnaire deletes all responses for a questionnaire and
	// returns the deleted response IDs for answer cleanup
	DeleteByQuestionnaire(ctx context.Context, questionnaireID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// AnswerRepository defines operations for answers
// #QUERY_INTERFACE: Answer upsert patterns keyed by (response, question)
type AnswerRepository interface {
	// Upsert inserts or overwrites the answer for (responseID, questionID)
	Upsert(ctx context.Context, answer *models.Answer) error

	// GetByResponseAndQuestion finds the answer for a (response, question) pair
	GetByResponseAndQuestion(ctx context.Context, responseID, questionID primitive.ObjectID) (*models.Answer, error)

	// ListByResponse lists all answers belonging to a response
	ListByResponse(ctx context.Context, responseID primitive.ObjectID) ([]models.Answer, error)

	// DeleteByResponses deletes all answers belonging to the given responses
	DeleteByResponses(ctx context.Context, responseIDs []primitive.ObjectID) (int64, error)
}

// DocumentRepository defines operations for uploaded documents
// #QUERY_INTERFACE: Document metadata access patterns
type DocumentRepository interface {
	// Create creates a new document record
	Create(ctx context.Context, document *models.Document) error

	// GetByID finds a document by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error)

	// Delete deletes a document record
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListBySupplier lists documents uploaded by a supplier
	ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Document], error)

	// ListByEntity lists documents uploaded by a procuring entity
	ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts PaginationOptions) (*PaginatedResult[models.Document], error)
}

// AnnouncementRepository defines operations for announcements
// #QUERY_INTERFACE: Announcement board access patterns
type AnnouncementRepository interface {
	// Create creates a new announcement
	Create(ctx context.Context, announcement *models.Announcement) error

	// GetByID finds an announcement by ID
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error)

	// Update updates an announcement
	Update(ctx context.Context, announcement *models.Announcement) error

	// Delete deletes an announcement
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListForRole lists unexpired announcements visible to a role
	ListForRole(ctx context.Context, role models.UserRole, opts PaginationOptions) (*PaginatedResult[models.Announcement], error)

	// ListAll lists all announcements including expired ones (admin view)
	ListAll(ctx context.Context, opts PaginationOptions) (*PaginatedResult[models.Announcement], error)
}

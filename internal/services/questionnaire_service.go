package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// Custom errors for questionnaire service
var (
	ErrNotQuestionnaireOwner = errors.New("questionnaire belongs to a different procuring entity")
	ErrQuestionnaireLocked   = errors.New("questionnaire has submitted responses and cannot be deleted")
)

// QuestionnaireService handles questionnaire authoring business logic
// #INTEGRATION_POINT: Used by questionnaire handler for procuring entity authoring
type QuestionnaireService interface {
	// Create creates a questionnaire together with its questions
	Create(ctx context.Context, entityID, userID primitive.ObjectID, req CreateQuestionnaireRequest) (*QuestionnaireDetail, error)

	// Get returns a questionnaire with its ordered questions
	Get(ctx context.Context, id primitive.ObjectID) (*QuestionnaireDetail, error)

	// Update updates questionnaire fields and replaces its question set
	Update(ctx context.Context, id, entityID primitive.ObjectID, req UpdateQuestionnaireRequest) (*QuestionnaireDetail, error)

	// ToggleStatus flips the active flag
	ToggleStatus(ctx context.Context, id, entityID primitive.ObjectID) (*models.Questionnaire, error)

	// Delete deletes a questionnaire with its questions, draft responses and answers
	Delete(ctx context.Context, id, entityID primitive.ObjectID) error

	// ListByEntity lists questionnaires owned by a procuring entity
	ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Questionnaire], error)

	// ListActive lists active questionnaires for supplier browsing
	ListActive(ctx context.Context, cpvCodeID *primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Questionnaire], error)
}

// QuestionInput carries one question definition from the client
type QuestionInput struct {
	QuestionText     string              `json:"question_text" binding:"required"`
	QuestionType     models.QuestionType `json:"question_type" binding:"required"`
	Options          []string            `json:"options,omitempty"`
	IsRequired       bool                `json:"is_required"`
	RequiresDocument bool                `json:"requires_document"`
	DocumentType     string              `json:"document_type,omitempty"`
}

// CreateQuestionnaireRequest carries the data to create a questionnaire
type CreateQuestionnaireRequest struct {
	Title       string
	Description string
	CPVCodeID   primitive.ObjectID
	Deadline    time.Time
	Questions   []QuestionInput
}

// UpdateQuestionnaireRequest carries the data to update a questionnaire
type UpdateQuestionnaireRequest struct {
	Title       string
	Description string
	CPVCodeID   primitive.ObjectID
	Deadline    time.Time
	Questions   []QuestionInput
}

// QuestionnaireDetail bundles a questionnaire with its ordered questions
type QuestionnaireDetail struct {
	Questionnaire *models.Questionnaire `json:"questionnaire"`
	Questions     []models.Question     `json:"questions"`
}

// questionnaireService implements QuestionnaireService
type questionnaireService struct {
	db                TxRunner
	questionnaireRepo repository.QuestionnaireRepository
	questionRepo      repository.QuestionRepository
	responseRepo      repository.ResponseRepository
	answerRepo        repository.AnswerRepository
	referenceRepo     repository.ReferenceRepository
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(
	db TxRunner,
	questionnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	answerRepo repository.AnswerRepository,
	referenceRepo repository.ReferenceRepository,
) QuestionnaireService {
	return &questionnaireService{
		db:                db,
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		responseRepo:      responseRepo,
		answerRepo:        answerRepo,
		referenceRepo:     referenceRepo,
	}
}

// Create creates a questionnaire together with its questions
// #BUSINESS_RULE: A questionnaire needs at least one question
func (s *questionnaireService) Create(ctx context.Context, entityID, userID primitive.ObjectID, req CreateQuestionnaireRequest) (*QuestionnaireDetail, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, models.ErrInvalidInput
	}
	if len(req.Questions) == 0 {
		return nil, models.ErrQuestionnaireNoQuestions
	}

	// The CPV tag must reference a known code
	if _, err := s.referenceRepo.GetCPVByID(ctx, req.CPVCodeID); err != nil {
		return nil, err
	}

	questionnaire := &models.Questionnaire{
		ProcuringEntityID: entityID,
		CPVCodeID:         req.CPVCodeID,
		Title:             strings.TrimSpace(req.Title),
		Description:       strings.TrimSpace(req.Description),
		Deadline:          req.Deadline,
		CreatedBy:         userID,
	}
	questionnaire.BeforeCreate()

	questions, err := buildQuestions(questionnaire.ID, req.Questions)
	if err != nil {
		return nil, err
	}

	// Questionnaire and questions land atomically
	err = s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.questionnaireRepo.Create(sessCtx, questionnaire); err != nil {
			return err
		}
		return s.questionRepo.CreateMany(sessCtx, questions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create questionnaire: %w", err)
	}

	return &QuestionnaireDetail{Questionnaire: questionnaire, Questions: questions}, nil
}

// Get returns a questionnaire with its ordered questions
func (s *questionnaireService) Get(ctx context.Context, id primitive.ObjectID) (*QuestionnaireDetail, error) {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByQuestionnaire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return &QuestionnaireDetail{Questionnaire: questionnaire, Questions: questions}, nil
}

// Update updates questionnaire fields and replaces its question set
// #IMPLEMENTATION_DECISION: Questions are replaced wholesale inside a transaction.
// Existing answers keep pointing at the deleted question IDs and are simply
// never matched again; they are not cleaned up here.
func (s *questionnaireService) Update(ctx context.Context, id, entityID primitive.ObjectID, req UpdateQuestionnaireRequest) (*QuestionnaireDetail, error) {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !questionnaire.IsOwnedBy(entityID) {
		return nil, ErrNotQuestionnaireOwner
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, models.ErrInvalidInput
	}
	if len(req.Questions) == 0 {
		return nil, models.ErrQuestionnaireNoQuestions
	}

	if _, err := s.referenceRepo.GetCPVByID(ctx, req.CPVCodeID); err != nil {
		return nil, err
	}

	questionnaire.Title = strings.TrimSpace(req.Title)
	questionnaire.Description = strings.TrimSpace(req.Description)
	questionnaire.CPVCodeID = req.CPVCodeID
	questionnaire.Deadline = req.Deadline

	questions, err := buildQuestions(questionnaire.ID, req.Questions)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.questionnaireRepo.Update(sessCtx, questionnaire); err != nil {
			return err
		}
		if _, err := s.questionRepo.DeleteByQuestionnaire(sessCtx, questionnaire.ID); err != nil {
			return err
		}
		return s.questionRepo.CreateMany(sessCtx, questions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update questionnaire: %w", err)
	}

	return &QuestionnaireDetail{Questionnaire: questionnaire, Questions: questions}, nil
}

// ToggleStatus flips the active flag
func (s *questionnaireService) ToggleStatus(ctx context.Context, id, entityID primitive.ObjectID) (*models.Questionnaire, error) {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !questionnaire.IsOwnedBy(entityID) {
		return nil, ErrNotQuestionnaireOwner
	}

	questionnaire.ToggleStatus()
	if err := s.questionnaireRepo.Update(ctx, questionnaire); err != nil {
		return nil, fmt.Errorf("failed to toggle questionnaire: %w", err)
	}
	return questionnaire, nil
}

// Delete deletes a questionnaire with its questions, draft responses and answers
// #BUSINESS_RULE: Deletion is blocked once any response has been submitted
func (s *questionnaireService) Delete(ctx context.Context, id, entityID primitive.ObjectID) error {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !questionnaire.IsOwnedBy(entityID) {
		return ErrNotQuestionnaireOwner
	}

	submitted, err := s.responseRepo.CountSubmittedByQuestionnaire(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count submissions: %w", err)
	}
	if submitted > 0 {
		return ErrQuestionnaireLocked
	}

	err = s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		responseIDs, err := s.responseRepo.DeleteByQuestionnaire(sessCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.answerRepo.DeleteByResponses(sessCtx, responseIDs); err != nil {
			return err
		}
		if _, err := s.questionRepo.DeleteByQuestionnaire(sessCtx, id); err != nil {
			return err
		}
		return s.questionnaireRepo.Delete(sessCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete questionnaire: %w", err)
	}
	return nil
}

// ListByEntity lists questionnaires owned by a procuring entity
func (s *questionnaireService) ListByEntity(ctx context.Context, entityID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Questionnaire], error) {
	return s.questionnaireRepo.ListByEntity(ctx, entityID, opts)
}

// ListActive lists active questionnaires for supplier browsing
func (s *questionnaireService) ListActive(ctx context.Context, cpvCodeID *primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Questionnaire], error) {
	return s.questionnaireRepo.ListActive(ctx, cpvCodeID, opts)
}

// buildQuestions validates and materializes question inputs with fresh IDs
func buildQuestions(questionnaireID primitive.ObjectID, inputs []QuestionInput) ([]models.Question, error) {
	questions := make([]models.Question, len(inputs))
	for i, in := range inputs {
		q := models.Question{
			QuestionnaireID:  questionnaireID,
			QuestionText:     strings.TrimSpace(in.QuestionText),
			QuestionType:     in.QuestionType,
			IsRequired:       in.IsRequired,
			RequiresDocument: in.RequiresDocument,
			DocumentType:     strings.TrimSpace(in.DocumentType),
			Order:            i,
		}
		// Empty option arrays collapse to nil so Validate can enforce
		// that options are present exactly for choice types
		if len(in.Options) > 0 {
			q.Options = in.Options
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions[i] = q
	}
	return questions, nil
}

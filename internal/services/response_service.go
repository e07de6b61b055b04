package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// Custom errors for response service
var (
	ErrSupplierNotApproved  = errors.New("supplier must be approved before answering questionnaires")
	ErrQuestionnaireClosed  = errors.New("questionnaire is not accepting responses")
	ErrNotResponseOwner     = errors.New("response belongs to a different supplier")
	ErrQuestionMismatch     = errors.New("question does not belong to this questionnaire")
	ErrDocumentUploadFailed = errors.New("document upload failed, answers were not saved")
)

// ResponseService handles the supplier response lifecycle
// #INTEGRATION_POINT: Used by response handler; the core of the portal
type ResponseService interface {
	// SaveResponse creates or updates the supplier's draft for a questionnaire,
	// upserting one answer per submitted question
	SaveResponse(ctx context.Context, questionnaireID, supplierID primitive.ObjectID, answers []AnswerInput) (*ResponseDetail, error)

	// Submit finalizes the supplier's response after validating coverage
	Submit(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*models.QuestionnaireResponse, error)

	// GetForSupplier returns the supplier's own response with answers
	GetForSupplier(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*ResponseDetail, error)

	// GetForEntity returns a response for review by the questionnaire owner
	GetForEntity(ctx context.Context, responseID, entityID primitive.ObjectID) (*ResponseDetail, error)

	// ListByQuestionnaire lists responses to a questionnaire for its owner
	ListByQuestionnaire(ctx context.Context, questionnaireID, entityID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error)

	// ListBySupplier lists the supplier's own responses
	ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error)
}

// AnswerInput carries one answer from the client
// #DATA_ASSUMPTION: DocumentID references an already-uploaded document owned
// by the same supplier; Upload carries a fresh file for this answer. At most
// one of the two is set.
type AnswerInput struct {
	QuestionID      string   `json:"question_id" binding:"required"`
	AnswerText      string   `json:"answer_text,omitempty"`
	SelectedOptions []string `json:"selected_options,omitempty"`
	DocumentID      string   `json:"document_id,omitempty"`

	// Upload is populated by the handler from multipart form data
	Upload *UploadRequest `json:"-"`
}

// ResponseDetail bundles a response with its answers and question set
type ResponseDetail struct {
	Response  *models.QuestionnaireResponse `json:"response"`
	Questions []models.Question             `json:"questions"`
	Answers   []models.Answer               `json:"answers"`
}

// responseService implements ResponseService
type responseService struct {
	db                TxRunner
	responseRepo      repository.ResponseRepository
	answerRepo        repository.AnswerRepository
	questionnaireRepo repository.QuestionnaireRepository
	questionRepo      repository.QuestionRepository
	supplierRepo      repository.SupplierRepository
	documents         DocumentService
}

// NewResponseService creates a new response service
func NewResponseService(
	db TxRunner,
	responseRepo repository.ResponseRepository,
	answerRepo repository.AnswerRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	supplierRepo repository.SupplierRepository,
	documents DocumentService,
) ResponseService {
	return &responseService{
		db:                db,
		responseRepo:      responseRepo,
		answerRepo:        answerRepo,
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		supplierRepo:      supplierRepo,
		documents:         documents,
	}
}

// SaveResponse creates or updates the supplier's draft for a questionnaire
// #BUSINESS_RULE: Only approved suppliers may save; submitted responses are immutable
// #IMPLEMENTATION_DECISION: The response row is created implicitly on first save;
// answers are upserted per (response, question) so partial saves never clobber
// questions that were not part of the request
func (s *responseService) SaveResponse(ctx context.Context, questionnaireID, supplierID primitive.ObjectID, answers []AnswerInput) (*ResponseDetail, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsApproved() {
		return nil, ErrSupplierNotApproved
	}

	questionnaire, err := s.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if !questionnaire.AcceptsResponses() {
		return nil, ErrQuestionnaireClosed
	}

	questions, err := s.questionRepo.ListByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	questionsByID := make(map[primitive.ObjectID]*models.Question, len(questions))
	for i := range questions {
		questionsByID[questions[i].ID] = &questions[i]
	}

	response, err := s.getOrCreateDraft(ctx, questionnaireID, supplierID)
	if err != nil {
		return nil, err
	}
	if response.IsSubmitted() {
		return nil, models.ErrResponseSubmitted
	}

	// Resolve every answer before touching the database so one bad answer
	// fails the whole request instead of half of it
	resolved := make([]models.Answer, 0, len(answers))
	uploads := make([]*UploadRequest, 0, len(answers))
	for _, in := range answers {
		questionID, err := primitive.ObjectIDFromHex(in.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad question id %q", models.ErrInvalidInput, in.QuestionID)
		}
		question, ok := questionsByID[questionID]
		if !ok {
			return nil, ErrQuestionMismatch
		}

		value, err := models.ResolveAnswerValue(question, in.AnswerText, in.SelectedOptions)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", in.QuestionID, err)
		}

		answer := models.Answer{
			ResponseID:  response.ID,
			QuestionID:  questionID,
			AnswerText:  in.AnswerText,
			AnswerValue: value,
		}

		if in.DocumentID != "" {
			documentID, err := primitive.ObjectIDFromHex(in.DocumentID)
			if err != nil {
				return nil, fmt.Errorf("%w: bad document id %q", models.ErrInvalidInput, in.DocumentID)
			}
			document, err := s.documents.Get(ctx, documentID)
			if err != nil {
				return nil, err
			}
			if !document.IsOwnedBySupplier(supplierID) {
				return nil, models.ErrDocumentNotOwned
			}
			answer.DocumentID = &documentID
		}

		resolved = append(resolved, answer)
		uploads = append(uploads, in.Upload)
	}

	// Fresh uploads are stored before any answer row is written. One
	// failed upload aborts the whole save; already-stored files from
	// this batch are removed best-effort.
	var storedIDs []primitive.ObjectID
	for i, upload := range uploads {
		if upload == nil {
			continue
		}
		document, err := s.documents.Upload(ctx, DocumentOwner{SupplierID: &supplierID}, supplier.UserID, *upload)
		if err != nil {
			for _, id := range storedIDs {
				_ = s.documents.Remove(ctx, id)
			}
			return nil, fmt.Errorf("%w: %w", ErrDocumentUploadFailed, err)
		}
		storedIDs = append(storedIDs, document.ID)
		docID := document.ID
		resolved[i].DocumentID = &docID
	}

	// All upserts land atomically
	err = s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for i := range resolved {
			if err := s.answerRepo.Upsert(sessCtx, &resolved[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The answers never landed; drop the documents stored for them
		for _, id := range storedIDs {
			_ = s.documents.Remove(ctx, id)
		}
		return nil, fmt.Errorf("failed to save answers: %w", err)
	}

	saved, err := s.answerRepo.ListByResponse(ctx, response.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	return &ResponseDetail{Response: response, Questions: questions, Answers: saved}, nil
}

// getOrCreateDraft finds the supplier's response or creates a fresh draft.
// Create races resolve via the unique (questionnaire, supplier) index: the
// loser re-reads the winner's row.
func (s *responseService) getOrCreateDraft(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	response, err := s.responseRepo.GetByQuestionnaireAndSupplier(ctx, questionnaireID, supplierID)
	if err == nil {
		return response, nil
	}
	if !errors.Is(err, models.ErrResponseNotFound) {
		return nil, err
	}

	response = &models.QuestionnaireResponse{
		QuestionnaireID: questionnaireID,
		SupplierID:      supplierID,
	}
	createErr := s.responseRepo.Create(ctx, response)
	if createErr == nil {
		return response, nil
	}
	if errors.Is(createErr, models.ErrResponseExists) {
		return s.responseRepo.GetByQuestionnaireAndSupplier(ctx, questionnaireID, supplierID)
	}
	return nil, fmt.Errorf("failed to create response: %w", createErr)
}

// Submit finalizes the supplier's response after validating coverage
// #BUSINESS_RULE: Every required question needs a non-empty answer, or a
// document reference when the question requires a document
// #IMPLEMENTATION_DECISION: The status flip is a conditional update so two
// concurrent submits cannot both succeed
func (s *responseService) Submit(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsApproved() {
		return nil, ErrSupplierNotApproved
	}

	questionnaire, err := s.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if !questionnaire.AcceptsResponses() {
		return nil, ErrQuestionnaireClosed
	}

	response, err := s.responseRepo.GetByQuestionnaireAndSupplier(ctx, questionnaireID, supplierID)
	if err != nil {
		return nil, err
	}
	if response.IsSubmitted() {
		return nil, models.ErrResponseSubmitted
	}

	questions, err := s.questionRepo.ListByQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	answers, err := s.answerRepo.ListByResponse(ctx, response.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	answersByQuestion := make(map[primitive.ObjectID]*models.Answer, len(answers))
	for i := range answers {
		answersByQuestion[answers[i].QuestionID] = &answers[i]
	}

	var missing []string
	for i := range questions {
		q := &questions[i]
		if !q.IsRequired {
			continue
		}
		answer, ok := answersByQuestion[q.ID]
		if !ok || !answer.Covers(q) {
			missing = append(missing, q.ID.Hex())
		}
	}
	if len(missing) > 0 {
		return nil, &models.MissingAnswersError{QuestionIDs: missing}
	}

	return s.responseRepo.MarkSubmitted(ctx, response.ID)
}

// GetForSupplier returns the supplier's own response with answers
func (s *responseService) GetForSupplier(ctx context.Context, questionnaireID, supplierID primitive.ObjectID) (*ResponseDetail, error) {
	response, err := s.responseRepo.GetByQuestionnaireAndSupplier(ctx, questionnaireID, supplierID)
	if err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, response)
}

// GetForEntity returns a response for review by the questionnaire owner
// #BUSINESS_RULE: Entities only see responses to their own questionnaires
func (s *responseService) GetForEntity(ctx context.Context, responseID, entityID primitive.ObjectID) (*ResponseDetail, error) {
	response, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		return nil, err
	}

	questionnaire, err := s.questionnaireRepo.GetByID(ctx, response.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	if !questionnaire.IsOwnedBy(entityID) {
		return nil, models.ErrForbidden
	}

	return s.loadDetail(ctx, response)
}

func (s *responseService) loadDetail(ctx context.Context, response *models.QuestionnaireResponse) (*ResponseDetail, error) {
	questions, err := s.questionRepo.ListByQuestionnaire(ctx, response.QuestionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	answers, err := s.answerRepo.ListByResponse(ctx, response.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	return &ResponseDetail{Response: response, Questions: questions, Answers: answers}, nil
}

// ListByQuestionnaire lists responses to a questionnaire for its owner
func (s *responseService) ListByQuestionnaire(ctx context.Context, questionnaireID, entityID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error) {
	questionnaire, err := s.questionnaireRepo.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if !questionnaire.IsOwnedBy(entityID) {
		return nil, models.ErrForbidden
	}
	return s.responseRepo.ListByQuestionnaire(ctx, questionnaireID, opts)
}

// ListBySupplier lists the supplier's own responses
func (s *responseService) ListBySupplier(ctx context.Context, supplierID primitive.ObjectID, opts repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error) {
	return s.responseRepo.ListBySupplier(ctx, supplierID, opts)
}

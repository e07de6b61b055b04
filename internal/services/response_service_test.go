package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// fakeTxRunner executes the transaction body directly
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(_ context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	return fn(nil)
}

// fakeSupplierRepo is an in-memory SupplierRepository
type fakeSupplierRepo struct {
	suppliers map[primitive.ObjectID]*models.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[primitive.ObjectID]*models.Supplier)}
}

func (r *fakeSupplierRepo) Create(_ context.Context, supplier *models.Supplier) error {
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, models.ErrSupplierNotFound
	}
	return s, nil
}

func (r *fakeSupplierRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*models.Supplier, error) {
	for _, s := range r.suppliers {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, models.ErrSupplierNotFound
}

func (r *fakeSupplierRepo) Update(_ context.Context, supplier *models.Supplier) error {
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *fakeSupplierRepo) ListByStatus(_ context.Context, _ *models.SupplierStatus, _ repository.PaginationOptions) (*repository.PaginatedResult[models.Supplier], error) {
	return &repository.PaginatedResult[models.Supplier]{}, nil
}

func (r *fakeSupplierRepo) CountByStatus(_ context.Context, _ models.SupplierStatus) (int64, error) {
	return 0, nil
}

// fakeQuestionnaireRepo is an in-memory QuestionnaireRepository
type fakeQuestionnaireRepo struct {
	questionnaires map[primitive.ObjectID]*models.Questionnaire
}

func newFakeQuestionnaireRepo() *fakeQuestionnaireRepo {
	return &fakeQuestionnaireRepo{questionnaires: make(map[primitive.ObjectID]*models.Questionnaire)}
}

func (r *fakeQuestionnaireRepo) Create(_ context.Context, q *models.Questionnaire) error {
	r.questionnaires[q.ID] = q
	return nil
}

func (r *fakeQuestionnaireRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Questionnaire, error) {
	q, ok := r.questionnaires[id]
	if !ok {
		return nil, models.ErrQuestionnaireNotFound
	}
	return q, nil
}

func (r *fakeQuestionnaireRepo) Update(_ context.Context, q *models.Questionnaire) error {
	r.questionnaires[q.ID] = q
	return nil
}

func (r *fakeQuestionnaireRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.questionnaires, id)
	return nil
}

func (r *fakeQuestionnaireRepo) ListByEntity(_ context.Context, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.Questionnaire], error) {
	return &repository.PaginatedResult[models.Questionnaire]{}, nil
}

func (r *fakeQuestionnaireRepo) ListActive(_ context.Context, _ *primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.Questionnaire], error) {
	return &repository.PaginatedResult[models.Questionnaire]{}, nil
}

// fakeQuestionRepo is an in-memory QuestionRepository
type fakeQuestionRepo struct {
	questions []models.Question
}

func (r *fakeQuestionRepo) CreateMany(_ context.Context, questions []models.Question) error {
	r.questions = append(r.questions, questions...)
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Question, error) {
	for i := range r.questions {
		if r.questions[i].ID == id {
			return &r.questions[i], nil
		}
	}
	return nil, models.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) ListByQuestionnaire(_ context.Context, questionnaireID primitive.ObjectID) ([]models.Question, error) {
	var out []models.Question
	for _, q := range r.questions {
		if q.QuestionnaireID == questionnaireID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) DeleteByQuestionnaire(_ context.Context, questionnaireID primitive.ObjectID) (int64, error) {
	var kept []models.Question
	var deleted int64
	for _, q := range r.questions {
		if q.QuestionnaireID == questionnaireID {
			deleted++
			continue
		}
		kept = append(kept, q)
	}
	r.questions = kept
	return deleted, nil
}

func (r *fakeQuestionRepo) CountByQuestionnaire(_ context.Context, questionnaireID primitive.ObjectID) (int64, error) {
	var n int64
	for _, q := range r.questions {
		if q.QuestionnaireID == questionnaireID {
			n++
		}
	}
	return n, nil
}

// fakeResponseRepo is an in-memory ResponseRepository enforcing the unique
// (questionnaire, supplier) constraint
type fakeResponseRepo struct {
	responses map[primitive.ObjectID]*models.QuestionnaireResponse
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: make(map[primitive.ObjectID]*models.QuestionnaireResponse)}
}

func (r *fakeResponseRepo) Create(_ context.Context, response *models.QuestionnaireResponse) error {
	for _, existing := range r.responses {
		if existing.QuestionnaireID == response.QuestionnaireID && existing.SupplierID == response.SupplierID {
			return models.ErrResponseExists
		}
	}
	response.BeforeCreate()
	r.responses[response.ID] = response
	return nil
}

func (r *fakeResponseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	resp, ok := r.responses[id]
	if !ok {
		return nil, models.ErrResponseNotFound
	}
	return resp, nil
}

func (r *fakeResponseRepo) GetByQuestionnaireAndSupplier(_ context.Context, questionnaireID, supplierID primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	for _, resp := range r.responses {
		if resp.QuestionnaireID == questionnaireID && resp.SupplierID == supplierID {
			return resp, nil
		}
	}
	return nil, models.ErrResponseNotFound
}

func (r *fakeResponseRepo) MarkSubmitted(_ context.Context, id primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	resp, ok := r.responses[id]
	if !ok {
		return nil, models.ErrResponseNotFound
	}
	if resp.IsSubmitted() {
		return nil, models.ErrResponseSubmitted
	}
	if err := resp.Submit(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *fakeResponseRepo) ListByQuestionnaire(_ context.Context, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error) {
	return &repository.PaginatedResult[models.QuestionnaireResponse]{}, nil
}

func (r *fakeResponseRepo) ListBySupplier(_ context.Context, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error) {
	return &repository.PaginatedResult[models.QuestionnaireResponse]{}, nil
}

func (r *fakeResponseRepo) CountSubmittedByQuestionnaire(_ context.Context, questionnaireID primitive.ObjectID) (int64, error) {
	var n int64
	for _, resp := range r.responses {
		if resp.QuestionnaireID == questionnaireID && resp.IsSubmitted() {
			n++
		}
	}
	return n, nil
}

func (r *fakeResponseRepo) DeleteByQuestionnaire(_ context.Context, questionnaireID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var deleted []primitive.ObjectID
	for id, resp := range r.responses {
		if resp.QuestionnaireID == questionnaireID {
			deleted = append(deleted, id)
			delete(r.responses, id)
		}
	}
	return deleted, nil
}

// fakeAnswerRepo mirrors the Mongo upsert semantics: document_id only
// overwrites when the incoming answer carries one
type answerKey struct {
	responseID primitive.ObjectID
	questionID primitive.ObjectID
}

type fakeAnswerRepo struct {
	answers map[answerKey]*models.Answer
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[answerKey]*models.Answer)}
}

func (r *fakeAnswerRepo) Upsert(_ context.Context, answer *models.Answer) error {
	key := answerKey{responseID: answer.ResponseID, questionID: answer.QuestionID}
	existing, ok := r.answers[key]
	if !ok {
		stored := *answer
		stored.BeforeCreate()
		r.answers[key] = &stored
		return nil
	}
	existing.AnswerText = answer.AnswerText
	existing.AnswerValue = answer.AnswerValue
	if answer.DocumentID != nil {
		existing.DocumentID = answer.DocumentID
	}
	existing.BeforeUpdate()
	return nil
}

func (r *fakeAnswerRepo) GetByResponseAndQuestion(_ context.Context, responseID, questionID primitive.ObjectID) (*models.Answer, error) {
	a, ok := r.answers[answerKey{responseID: responseID, questionID: questionID}]
	if !ok {
		return nil, models.ErrAnswerNotFound
	}
	return a, nil
}

func (r *fakeAnswerRepo) ListByResponse(_ context.Context, responseID primitive.ObjectID) ([]models.Answer, error) {
	var out []models.Answer
	for key, a := range r.answers {
		if key.responseID == responseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) DeleteByResponses(_ context.Context, responseIDs []primitive.ObjectID) (int64, error) {
	var deleted int64
	for key := range r.answers {
		for _, id := range responseIDs {
			if key.responseID == id {
				delete(r.answers, key)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

// fakeDocumentService stores document metadata in memory and can be told
// to fail the nth upload
type fakeDocumentService struct {
	documents   map[primitive.ObjectID]*models.Document
	removed     []primitive.ObjectID
	uploadCalls int
	failOnCall  int // 1-based; 0 means never fail
}

func newFakeDocumentService() *fakeDocumentService {
	return &fakeDocumentService{documents: make(map[primitive.ObjectID]*models.Document)}
}

func (s *fakeDocumentService) Upload(_ context.Context, owner DocumentOwner, uploadedBy primitive.ObjectID, req UploadRequest) (*models.Document, error) {
	s.uploadCalls++
	if s.failOnCall > 0 && s.uploadCalls == s.failOnCall {
		return nil, models.ErrDocumentStorage
	}
	document := &models.Document{
		SupplierID:        owner.SupplierID,
		ProcuringEntityID: owner.ProcuringEntityID,
		FileName:          req.FileName,
		MimeType:          req.MimeType,
		FileSize:          req.Size,
		UploadedBy:        uploadedBy,
	}
	document.BeforeCreate()
	s.documents[document.ID] = document
	return document, nil
}

func (s *fakeDocumentService) Get(_ context.Context, id primitive.ObjectID) (*models.Document, error) {
	d, ok := s.documents[id]
	if !ok {
		return nil, models.ErrDocumentNotFound
	}
	return d, nil
}

func (s *fakeDocumentService) Remove(_ context.Context, id primitive.ObjectID) error {
	delete(s.documents, id)
	s.removed = append(s.removed, id)
	return nil
}

func (s *fakeDocumentService) ListBySupplier(_ context.Context, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.Document], error) {
	return &repository.PaginatedResult[models.Document]{}, nil
}

func (s *fakeDocumentService) ListByEntity(_ context.Context, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.Document], error) {
	return &repository.PaginatedResult[models.Document]{}, nil
}

// responseFixture wires a response service over fakes with one approved
// supplier and one active questionnaire
type responseFixture struct {
	service       ResponseService
	suppliers     *fakeSupplierRepo
	responses     *fakeResponseRepo
	answers       *fakeAnswerRepo
	documents     *fakeDocumentService
	supplier      *models.Supplier
	questionnaire *models.Questionnaire
	textQ         models.Question
	radioQ        models.Question
	docQ          models.Question
	optionalQ     models.Question
}

func newResponseFixture(t *testing.T) *responseFixture {
	t.Helper()

	suppliers := newFakeSupplierRepo()
	questionnaires := newFakeQuestionnaireRepo()
	questions := &fakeQuestionRepo{}
	responses := newFakeResponseRepo()
	answers := newFakeAnswerRepo()
	documents := newFakeDocumentService()

	supplier := &models.Supplier{
		UserID:      primitive.NewObjectID(),
		CompanyName: "Acme Supplies",
	}
	supplier.BeforeCreate()
	supplier.Approve(primitive.NewObjectID())
	suppliers.suppliers[supplier.ID] = supplier

	questionnaire := &models.Questionnaire{
		ProcuringEntityID: primitive.NewObjectID(),
		Title:             "Road maintenance prequalification",
		Deadline:          time.Now().UTC().Add(30 * 24 * time.Hour),
	}
	questionnaire.BeforeCreate()
	questionnaires.questionnaires[questionnaire.ID] = questionnaire

	textQ := models.Question{
		QuestionnaireID: questionnaire.ID,
		QuestionText:    "Years of experience",
		QuestionType:    models.QuestionTypeNumber,
		IsRequired:      true,
		Order:           0,
	}
	textQ.BeforeCreate()
	radioQ := models.Question{
		QuestionnaireID: questionnaire.ID,
		QuestionText:    "Company size",
		QuestionType:    models.QuestionTypeRadio,
		Options:         []string{"small", "medium", "large"},
		IsRequired:      true,
		Order:           1,
	}
	radioQ.BeforeCreate()
	docQ := models.Question{
		QuestionnaireID:  questionnaire.ID,
		QuestionText:     "Insurance certificate",
		QuestionType:     models.QuestionTypeText,
		IsRequired:       true,
		RequiresDocument: true,
		Order:            2,
	}
	docQ.BeforeCreate()
	optionalQ := models.Question{
		QuestionnaireID: questionnaire.ID,
		QuestionText:    "Additional remarks",
		QuestionType:    models.QuestionTypeTextarea,
		Order:           3,
	}
	optionalQ.BeforeCreate()
	questions.questions = []models.Question{textQ, radioQ, docQ, optionalQ}

	service := NewResponseService(
		fakeTxRunner{},
		responses,
		answers,
		questionnaires,
		questions,
		suppliers,
		documents,
	)

	return &responseFixture{
		service:       service,
		suppliers:     suppliers,
		responses:     responses,
		answers:       answers,
		documents:     documents,
		supplier:      supplier,
		questionnaire: questionnaire,
		textQ:         textQ,
		radioQ:        radioQ,
		docQ:          docQ,
		optionalQ:     optionalQ,
	}
}

func TestSaveResponse_CreatesDraftImplicitly(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	detail, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "12"},
	})
	if err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}
	if detail.Response.Status != models.ResponseStatusDraft {
		t.Errorf("Status = %v, want draft", detail.Response.Status)
	}
	if len(detail.Answers) != 1 {
		t.Fatalf("Answers = %d, want 1", len(detail.Answers))
	}

	// A second save reuses the same draft
	again, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.radioQ.ID.Hex(), AnswerText: "medium"},
	})
	if err != nil {
		t.Fatalf("second SaveResponse() error = %v", err)
	}
	if again.Response.ID != detail.Response.ID {
		t.Error("second save should reuse the existing draft")
	}
	if len(f.responses.responses) != 1 {
		t.Errorf("response rows = %d, want 1", len(f.responses.responses))
	}
}

func TestSaveResponse_PartialSavePreservesOtherAnswers(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	if _, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "12"},
		{QuestionID: f.radioQ.ID.Hex(), AnswerText: "small"},
	}); err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}

	// Re-save only the number question
	detail, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "15"},
	})
	if err != nil {
		t.Fatalf("partial SaveResponse() error = %v", err)
	}
	if len(detail.Answers) != 2 {
		t.Fatalf("Answers = %d, want 2 (radio answer must survive)", len(detail.Answers))
	}

	radio, err := f.answers.GetByResponseAndQuestion(ctx, detail.Response.ID, f.radioQ.ID)
	if err != nil {
		t.Fatalf("radio answer lost: %v", err)
	}
	if radio.AnswerText != "small" {
		t.Errorf("radio answer = %q, want %q", radio.AnswerText, "small")
	}
}

func TestSaveResponse_RejectsUnapprovedSupplier(t *testing.T) {
	f := newResponseFixture(t)

	pending := &models.Supplier{UserID: primitive.NewObjectID(), CompanyName: "Newcomer"}
	pending.BeforeCreate()
	f.suppliers.suppliers[pending.ID] = pending

	_, err := f.service.SaveResponse(context.Background(), f.questionnaire.ID, pending.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "1"},
	})
	if !errors.Is(err, ErrSupplierNotApproved) {
		t.Errorf("SaveResponse() error = %v, want %v", err, ErrSupplierNotApproved)
	}
}

func TestSaveResponse_RejectsClosedQuestionnaire(t *testing.T) {
	f := newResponseFixture(t)

	f.questionnaire.IsActive = false
	_, err := f.service.SaveResponse(context.Background(), f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "1"},
	})
	if !errors.Is(err, ErrQuestionnaireClosed) {
		t.Errorf("inactive: SaveResponse() error = %v, want %v", err, ErrQuestionnaireClosed)
	}

	f.questionnaire.IsActive = true
	f.questionnaire.Deadline = time.Now().UTC().Add(-time.Hour)
	_, err = f.service.SaveResponse(context.Background(), f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "1"},
	})
	if !errors.Is(err, ErrQuestionnaireClosed) {
		t.Errorf("expired: SaveResponse() error = %v, want %v", err, ErrQuestionnaireClosed)
	}
}

func TestSaveResponse_RejectsForeignQuestion(t *testing.T) {
	f := newResponseFixture(t)

	_, err := f.service.SaveResponse(context.Background(), f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: primitive.NewObjectID().Hex(), AnswerText: "1"},
	})
	if !errors.Is(err, ErrQuestionMismatch) {
		t.Errorf("SaveResponse() error = %v, want %v", err, ErrQuestionMismatch)
	}
}

func TestSaveResponse_BadAnswerWritesNothing(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	_, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "42"},
		{QuestionID: f.radioQ.ID.Hex(), AnswerText: "gigantic"}, // not an option
	})
	if !errors.Is(err, models.ErrInvalidAnswerFormat) {
		t.Fatalf("SaveResponse() error = %v, want %v", err, models.ErrInvalidAnswerFormat)
	}

	// The valid first answer must not have landed either
	if len(f.answers.answers) != 0 {
		t.Errorf("answers written = %d, want 0", len(f.answers.answers))
	}
}

func TestSaveResponse_RejectsSubmittedResponse(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	mustSubmitFixture(t, f)

	_, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "99"},
	})
	if !errors.Is(err, models.ErrResponseSubmitted) {
		t.Errorf("SaveResponse() after submit error = %v, want %v", err, models.ErrResponseSubmitted)
	}
}

func TestSaveResponse_RejectsForeignDocument(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	otherSupplierID := primitive.NewObjectID()
	foreign, err := f.documents.Upload(ctx, DocumentOwner{SupplierID: &otherSupplierID}, primitive.NewObjectID(), UploadRequest{FileName: "cert.pdf"})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	_, err = f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.docQ.ID.Hex(), DocumentID: foreign.ID.Hex()},
	})
	if !errors.Is(err, models.ErrDocumentNotOwned) {
		t.Errorf("SaveResponse() error = %v, want %v", err, models.ErrDocumentNotOwned)
	}
}

func TestSaveResponse_StoresUploads(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	detail, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{
			QuestionID: f.docQ.ID.Hex(),
			AnswerText: "attached",
			Upload:     &UploadRequest{FileName: "insurance.pdf", MimeType: "application/pdf", Content: strings.NewReader("%PDF")},
		},
	})
	if err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}

	answer, err := f.answers.GetByResponseAndQuestion(ctx, detail.Response.ID, f.docQ.ID)
	if err != nil {
		t.Fatalf("answer missing: %v", err)
	}
	if answer.DocumentID == nil {
		t.Fatal("answer should reference the stored document")
	}
	if _, err := f.documents.Get(ctx, *answer.DocumentID); err != nil {
		t.Errorf("stored document missing: %v", err)
	}
}

func TestSaveResponse_UploadFailureAbortsSave(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()
	f.documents.failOnCall = 2

	_, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.docQ.ID.Hex(), Upload: &UploadRequest{FileName: "a.pdf", Content: strings.NewReader("a")}},
		{QuestionID: f.optionalQ.ID.Hex(), Upload: &UploadRequest{FileName: "b.pdf", Content: strings.NewReader("b")}},
	})
	if !errors.Is(err, ErrDocumentUploadFailed) {
		t.Fatalf("SaveResponse() error = %v, want %v", err, ErrDocumentUploadFailed)
	}

	// No answers landed and the successful first upload was rolled back
	if len(f.answers.answers) != 0 {
		t.Errorf("answers written = %d, want 0", len(f.answers.answers))
	}
	if len(f.documents.removed) != 1 {
		t.Errorf("removed documents = %d, want 1", len(f.documents.removed))
	}
	if len(f.documents.documents) != 0 {
		t.Errorf("stored documents = %d, want 0", len(f.documents.documents))
	}
}

func TestSaveResponse_DocumentCarryForward(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	detail, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{
			QuestionID: f.docQ.ID.Hex(),
			AnswerText: "v1",
			Upload:     &UploadRequest{FileName: "insurance.pdf", Content: strings.NewReader("x")},
		},
	})
	if err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}
	first, _ := f.answers.GetByResponseAndQuestion(ctx, detail.Response.ID, f.docQ.ID)
	if first.DocumentID == nil {
		t.Fatal("first save should attach a document")
	}
	originalDoc := *first.DocumentID

	// Re-save the answer text without a new file; the document reference stays
	if _, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.docQ.ID.Hex(), AnswerText: "v2"},
	}); err != nil {
		t.Fatalf("re-save error = %v", err)
	}

	second, _ := f.answers.GetByResponseAndQuestion(ctx, detail.Response.ID, f.docQ.ID)
	if second.AnswerText != "v2" {
		t.Errorf("AnswerText = %q, want v2", second.AnswerText)
	}
	if second.DocumentID == nil || *second.DocumentID != originalDoc {
		t.Error("document reference should carry forward on re-save without a file")
	}
}

func TestSaveResponse_RepeatedSaveIsIdempotent(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	input := []AnswerInput{{QuestionID: f.textQ.ID.Hex(), AnswerText: "12"}}

	first, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, input)
	if err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}
	second, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, input)
	if err != nil {
		t.Fatalf("repeated SaveResponse() error = %v", err)
	}

	if second.Response.ID != first.Response.ID {
		t.Error("repeated save must reuse the same response")
	}
	if len(f.responses.responses) != 1 {
		t.Errorf("response rows = %d, want 1", len(f.responses.responses))
	}
	if len(f.answers.answers) != 1 {
		t.Fatalf("answer rows = %d, want 1", len(f.answers.answers))
	}

	answer, err := f.answers.GetByResponseAndQuestion(ctx, first.Response.ID, f.textQ.ID)
	if err != nil {
		t.Fatalf("answer missing: %v", err)
	}
	if answer.AnswerText != "12" {
		t.Errorf("AnswerText = %q, want %q", answer.AnswerText, "12")
	}
}

func TestResponseLifecycle_DraftToSubmitted(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	// First save creates the draft
	detail, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "10"},
		{QuestionID: f.radioQ.ID.Hex(), AnswerText: "medium"},
	})
	if err != nil {
		t.Fatalf("first SaveResponse() error = %v", err)
	}
	if detail.Response.Status != models.ResponseStatusDraft {
		t.Fatalf("Status = %v, want draft", detail.Response.Status)
	}
	if len(detail.Answers) != 2 {
		t.Fatalf("Answers = %d, want 2", len(detail.Answers))
	}

	// A later partial save fills in the remaining required question
	detail, err = f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{
			QuestionID: f.docQ.ID.Hex(),
			AnswerText: "attached",
			Upload:     &UploadRequest{FileName: "insurance.pdf", Content: strings.NewReader("x")},
		},
	})
	if err != nil {
		t.Fatalf("partial SaveResponse() error = %v", err)
	}
	if len(detail.Answers) != 3 {
		t.Fatalf("Answers = %d, want 3 (earlier answers must survive)", len(detail.Answers))
	}
	text, err := f.answers.GetByResponseAndQuestion(ctx, detail.Response.ID, f.textQ.ID)
	if err != nil {
		t.Fatalf("number answer lost: %v", err)
	}
	if text.AnswerText != "10" {
		t.Errorf("AnswerText = %q, want %q", text.AnswerText, "10")
	}

	// Submit finalizes the response
	submitted, err := f.service.Submit(ctx, f.questionnaire.ID, f.supplier.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if submitted.Status != models.ResponseStatusSubmitted {
		t.Errorf("Status = %v, want submitted", submitted.Status)
	}
	if submitted.SubmittedAt == nil {
		t.Error("SubmittedAt should be set")
	}

	// Writes after submission are rejected and leave the answers untouched
	_, err = f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "changed"},
	})
	if !errors.Is(err, models.ErrResponseSubmitted) {
		t.Fatalf("post-submit SaveResponse() error = %v, want %v", err, models.ErrResponseSubmitted)
	}
	text, err = f.answers.GetByResponseAndQuestion(ctx, detail.Response.ID, f.textQ.ID)
	if err != nil {
		t.Fatalf("number answer lost: %v", err)
	}
	if text.AnswerText != "10" {
		t.Errorf("post-submit AnswerText = %q, want %q unchanged", text.AnswerText, "10")
	}
}

func TestSubmit_MissingRequiredAnswers(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	// Answer only the number question; radio and document stay open
	if _, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "12"},
	}); err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}

	_, err := f.service.Submit(ctx, f.questionnaire.ID, f.supplier.ID)
	var missing *models.MissingAnswersError
	if !errors.As(err, &missing) {
		t.Fatalf("Submit() error = %v, want MissingAnswersError", err)
	}
	if len(missing.QuestionIDs) != 2 {
		t.Fatalf("missing questions = %v, want 2 entries", missing.QuestionIDs)
	}
	want := map[string]bool{f.radioQ.ID.Hex(): true, f.docQ.ID.Hex(): true}
	for _, id := range missing.QuestionIDs {
		if !want[id] {
			t.Errorf("unexpected missing question %s", id)
		}
	}

	// The response stays a draft
	resp, _ := f.responses.GetByQuestionnaireAndSupplier(ctx, f.questionnaire.ID, f.supplier.ID)
	if resp.IsSubmitted() {
		t.Error("failed submit must not flip the status")
	}
}

func TestSubmit_Succeeds(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	mustSubmitFixture(t, f)

	resp, err := f.responses.GetByQuestionnaireAndSupplier(ctx, f.questionnaire.ID, f.supplier.ID)
	if err != nil {
		t.Fatalf("response missing: %v", err)
	}
	if !resp.IsSubmitted() {
		t.Error("response should be submitted")
	}
	if resp.SubmittedAt == nil {
		t.Error("SubmittedAt should be set")
	}

	// Submitted is terminal
	if _, err := f.service.Submit(ctx, f.questionnaire.ID, f.supplier.ID); !errors.Is(err, models.ErrResponseSubmitted) {
		t.Errorf("second Submit() error = %v, want %v", err, models.ErrResponseSubmitted)
	}
}

func TestSubmit_RequiresExistingDraft(t *testing.T) {
	f := newResponseFixture(t)

	_, err := f.service.Submit(context.Background(), f.questionnaire.ID, f.supplier.ID)
	if !errors.Is(err, models.ErrResponseNotFound) {
		t.Errorf("Submit() error = %v, want %v", err, models.ErrResponseNotFound)
	}
}

func TestGetForEntity_OwnershipEnforced(t *testing.T) {
	f := newResponseFixture(t)
	ctx := context.Background()

	detail, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "12"},
	})
	if err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}

	if _, err := f.service.GetForEntity(ctx, detail.Response.ID, f.questionnaire.ProcuringEntityID); err != nil {
		t.Errorf("owner GetForEntity() error = %v", err)
	}

	if _, err := f.service.GetForEntity(ctx, detail.Response.ID, primitive.NewObjectID()); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("foreign GetForEntity() error = %v, want %v", err, models.ErrForbidden)
	}
}

// mustSubmitFixture answers every required question and submits
func mustSubmitFixture(t *testing.T, f *responseFixture) {
	t.Helper()
	ctx := context.Background()

	if _, err := f.service.SaveResponse(ctx, f.questionnaire.ID, f.supplier.ID, []AnswerInput{
		{QuestionID: f.textQ.ID.Hex(), AnswerText: "12"},
		{QuestionID: f.radioQ.ID.Hex(), AnswerText: "large"},
		{
			QuestionID: f.docQ.ID.Hex(),
			Upload:     &UploadRequest{FileName: "insurance.pdf", Content: strings.NewReader("x")},
		},
	}); err != nil {
		t.Fatalf("SaveResponse() error = %v", err)
	}
	if _, err := f.service.Submit(ctx, f.questionnaire.ID, f.supplier.ID); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
}

package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/middleware"
	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
	"github.com/prequaliq/prequaliq_backend/internal/services"
)

// stubResponseService records SaveResponse input and drains upload streams
type stubResponseService struct {
	savedAnswers []services.AnswerInput
	uploadBytes  int64
	uploadErr    error
}

func (s *stubResponseService) SaveResponse(_ context.Context, _, _ primitive.ObjectID, answers []services.AnswerInput) (*services.ResponseDetail, error) {
	s.savedAnswers = answers
	for _, a := range answers {
		if a.Upload == nil {
			continue
		}
		n, err := io.Copy(io.Discard, a.Upload.Content)
		s.uploadBytes += n
		if err != nil {
			s.uploadErr = err
		}
	}
	response := &models.QuestionnaireResponse{}
	response.BeforeCreate()
	return &services.ResponseDetail{Response: response}, nil
}

func (s *stubResponseService) Submit(_ context.Context, _, _ primitive.ObjectID) (*models.QuestionnaireResponse, error) {
	return nil, models.ErrResponseNotFound
}

func (s *stubResponseService) GetForSupplier(_ context.Context, _, _ primitive.ObjectID) (*services.ResponseDetail, error) {
	return nil, models.ErrResponseNotFound
}

func (s *stubResponseService) GetForEntity(_ context.Context, _, _ primitive.ObjectID) (*services.ResponseDetail, error) {
	return nil, models.ErrResponseNotFound
}

func (s *stubResponseService) ListByQuestionnaire(_ context.Context, _, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error) {
	return &repository.PaginatedResult[models.QuestionnaireResponse]{}, nil
}

func (s *stubResponseService) ListBySupplier(_ context.Context, _ primitive.ObjectID, _ repository.PaginationOptions) (*repository.PaginatedResult[models.QuestionnaireResponse], error) {
	return &repository.PaginatedResult[models.QuestionnaireResponse]{}, nil
}

// newSaveResponseRouter wires the save endpoint with an authenticated supplier
func newSaveResponseRouter(svc services.ResponseService) *gin.Engine {
	handler := NewResponseHandler(svc)

	router := gin.New()
	// Tiny in-memory budget so every file part spills to a disk temp file
	router.MaxMultipartMemory = 1
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyProfileID, primitive.NewObjectID().Hex())
		c.Next()
	})
	router.PUT("/responses/questionnaires/:id", handler.SaveResponse)
	return router
}

func TestSaveResponse_MultipartFileSurvivesDiskSpill(t *testing.T) {
	svc := &stubResponseService{}
	router := newSaveResponseRouter(svc)

	questionID := primitive.NewObjectID().Hex()
	payload := bytes.Repeat([]byte("x"), 64*1024)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("answers", `[{"question_id":"`+questionID+`","answer_text":"attached"}]`); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	part, err := writer.CreateFormFile("file_"+questionID, "certificate.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("part.Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close() error = %v", err)
	}

	req := httptest.NewRequest("PUT", "/responses/questionnaires/"+primitive.NewObjectID().Hex(), &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d (%s)", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.uploadErr != nil {
		t.Fatalf("service could not read the upload stream: %v", svc.uploadErr)
	}
	if svc.uploadBytes != int64(len(payload)) {
		t.Errorf("service read %d bytes, want %d", svc.uploadBytes, len(payload))
	}
	if len(svc.savedAnswers) != 1 {
		t.Fatalf("saved answers = %d, want 1", len(svc.savedAnswers))
	}
	if svc.savedAnswers[0].Upload == nil {
		t.Fatal("answer should carry the uploaded file")
	}
	if svc.savedAnswers[0].Upload.FileName != "certificate.pdf" {
		t.Errorf("FileName = %q", svc.savedAnswers[0].Upload.FileName)
	}
}

func TestSaveResponse_JSONBody(t *testing.T) {
	svc := &stubResponseService{}
	router := newSaveResponseRouter(svc)

	questionID := primitive.NewObjectID().Hex()
	body := `{"answers":[{"question_id":"` + questionID + `","answer_text":"12"}]}`

	req := httptest.NewRequest("PUT", "/responses/questionnaires/"+primitive.NewObjectID().Hex(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d (%s)", http.StatusOK, w.Code, w.Body.String())
	}
	if len(svc.savedAnswers) != 1 || svc.savedAnswers[0].QuestionID != questionID {
		t.Errorf("saved answers = %+v", svc.savedAnswers)
	}
}

func TestSaveResponse_MultipartBadAnswersField(t *testing.T) {
	svc := &stubResponseService{}
	router := newSaveResponseRouter(svc)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("answers", "not-json"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close() error = %v", err)
	}

	req := httptest.NewRequest("PUT", "/responses/questionnaires/"+primitive.NewObjectID().Hex(), &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if svc.savedAnswers != nil {
		t.Error("service must not be called for a malformed answers field")
	}
}

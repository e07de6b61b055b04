package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestResponseStatus_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   ResponseStatus
		expected string
	}{
		{"Draft lowercase", ResponseStatusDraft, `"draft"`},
		{"Submitted lowercase", ResponseStatusSubmitted, `"submitted"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.status)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalJSON() = %v, want %v", string(got), tt.expected)
			}
		})
	}
}

func TestQuestionnaireResponse_BeforeCreate(t *testing.T) {
	r := QuestionnaireResponse{}
	r.BeforeCreate()

	if r.ID.IsZero() {
		t.Error("BeforeCreate() should assign an ID")
	}
	if r.Status != ResponseStatusDraft {
		t.Errorf("Status = %v, want %v", r.Status, ResponseStatusDraft)
	}
	if r.CreatedAt.IsZero() {
		t.Error("BeforeCreate() should set CreatedAt")
	}
}

func TestQuestionnaireResponse_Submit(t *testing.T) {
	r := QuestionnaireResponse{}
	r.BeforeCreate()

	if err := r.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !r.IsSubmitted() {
		t.Error("IsSubmitted() = false after Submit()")
	}
	if r.SubmittedAt == nil {
		t.Error("SubmittedAt should be set after Submit()")
	}
	if r.IsMutable() {
		t.Error("IsMutable() = true after Submit()")
	}

	// Submitted is terminal
	if err := r.Submit(); !errors.Is(err, ErrResponseSubmitted) {
		t.Errorf("second Submit() error = %v, want %v", err, ErrResponseSubmitted)
	}
}

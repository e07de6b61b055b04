package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResponseStatus represents the lifecycle state of a questionnaire response
// #IMPLEMENTATION_DECISION: DRAFT -> SUBMITTED, submitted is terminal
type ResponseStatus string

const (
	ResponseStatusDraft     ResponseStatus = "DRAFT"
	ResponseStatusSubmitted ResponseStatus = "SUBMITTED"
)

// MarshalJSON converts ResponseStatus to lowercase for JSON serialization
func (rs ResponseStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(rs)))
}

// UnmarshalJSON converts lowercase JSON to ResponseStatus
func (rs *ResponseStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*rs = ResponseStatus(strings.ToUpper(s))
	return nil
}

// IsValid checks if the ResponseStatus is a valid value
func (rs ResponseStatus) IsValid() bool {
	switch rs {
	case ResponseStatusDraft, ResponseStatusSubmitted:
		return true
	}
	return false
}

// QuestionnaireResponse represents a supplier's single response to a questionnaire
// #CARDINALITY_ASSUMPTION: At most one response per (questionnaire, supplier) pair,
// enforced by a unique compound index and upsert semantics
// #DATA_ASSUMPTION: Created implicitly on the first draft save
type QuestionnaireResponse struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaire_id" json:"questionnaire_id"`
	SupplierID      primitive.ObjectID `bson:"supplier_id" json:"supplier_id"`

	Status      ResponseStatus `bson:"status" json:"status"`
	SubmittedAt *time.Time     `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for questionnaire responses
func (QuestionnaireResponse) CollectionName() string {
	return "questionnaire_responses"
}

// BeforeCreate sets default values before inserting a new response
func (r *QuestionnaireResponse) BeforeCreate() {
	now := time.Now().UTC()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = ResponseStatusDraft
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (r *QuestionnaireResponse) BeforeUpdate() {
	r.UpdatedAt = time.Now().UTC()
}

// Submit transitions the response to the terminal submitted state
func (r *QuestionnaireResponse) Submit() error {
	if r.IsSubmitted() {
		return ErrResponseSubmitted
	}
	now := time.Now().UTC()
	r.Status = ResponseStatusSubmitted
	r.SubmittedAt = &now
	r.UpdatedAt = now
	return nil
}

// IsSubmitted returns true if the response has reached the terminal state
func (r *QuestionnaireResponse) IsSubmitted() bool {
	return r.Status == ResponseStatusSubmitted
}

// IsMutable returns true while the response may still be edited
func (r *QuestionnaireResponse) IsMutable() bool {
	return r.Status == ResponseStatusDraft
}

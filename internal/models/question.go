package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType represents the input type of a question
// #IMPLEMENTATION_DECISION: The full set of form field types the portal renders
type QuestionType string

const (
	QuestionTypeText           QuestionType = "TEXT"
	QuestionTypeTextarea       QuestionType = "TEXTAREA"
	QuestionTypeNumber         QuestionType = "NUMBER"
	QuestionTypeDate           QuestionType = "DATE"
	QuestionTypeYesNo          QuestionType = "YES_NO"
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeRadio          QuestionType = "RADIO"
	QuestionTypeCheckbox       QuestionType = "CHECKBOX"
	QuestionTypeDropdown       QuestionType = "DROPDOWN"
)

// MarshalJSON converts QuestionType to lowercase for JSON serialization
func (qt QuestionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(qt)))
}

// UnmarshalJSON converts lowercase JSON to QuestionType
func (qt *QuestionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*qt = QuestionType(strings.ToUpper(s))
	return nil
}

// IsValid checks if the QuestionType is a valid value
func (qt QuestionType) IsValid() bool {
	switch qt {
	case QuestionTypeText, QuestionTypeTextarea, QuestionTypeNumber, QuestionTypeDate,
		QuestionTypeYesNo, QuestionTypeMultipleChoice, QuestionTypeRadio,
		QuestionTypeCheckbox, QuestionTypeDropdown:
		return true
	}
	return false
}

// RequiresOptions returns true if this question type must carry a fixed option set
// Options are required exactly for the choice types; all others carry none.
func (qt QuestionType) RequiresOptions() bool {
	switch qt {
	case QuestionTypeMultipleChoice, QuestionTypeRadio, QuestionTypeCheckbox, QuestionTypeDropdown:
		return true
	}
	return false
}

// AllowsMultipleSelections returns true if an answer may select several options
func (qt QuestionType) AllowsMultipleSelections() bool {
	return qt == QuestionTypeMultipleChoice || qt == QuestionTypeCheckbox
}

// Question represents an individual questionnaire question
// #DATA_ASSUMPTION: Questions are replaced wholesale on questionnaire edit, never patched
// #CARDINALITY_ASSUMPTION: Questionnaire 1:N Questions
type Question struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaire_id" json:"questionnaire_id"`

	// Content
	QuestionText string       `bson:"question_text" json:"question_text"`
	QuestionType QuestionType `bson:"question_type" json:"question_type"`

	// Options (ordered, non-nil exactly for choice types)
	Options []string `bson:"options,omitempty" json:"options,omitempty"`

	// Constraints
	IsRequired       bool   `bson:"is_required" json:"is_required"`
	RequiresDocument bool   `bson:"requires_document" json:"requires_document"`
	DocumentType     string `bson:"document_type,omitempty" json:"document_type,omitempty"`

	// Display/validation order
	Order int `bson:"order" json:"order"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for questions
func (Question) CollectionName() string {
	return "questions"
}

// BeforeCreate sets default values before inserting a new question
func (q *Question) BeforeCreate() {
	now := time.Now().UTC()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now
	q.UpdatedAt = now
}

// BeforeUpdate sets the UpdatedAt timestamp
func (q *Question) BeforeUpdate() {
	q.UpdatedAt = time.Now().UTC()
}

// Validate checks the question's internal consistency
// #BUSINESS_RULE: options non-nil exactly when the type is a choice type
func (q *Question) Validate() error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return ErrInvalidInput
	}
	if !q.QuestionType.IsValid() {
		return ErrInvalidQuestionType
	}
	if q.QuestionType.RequiresOptions() {
		if len(q.Options) == 0 {
			return ErrMissingQuestionOptions
		}
	} else if q.Options != nil {
		return ErrUnexpectedOptions
	}
	return nil
}

// HasOption returns true if the given option belongs to the fixed option set
func (q *Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// IsChoiceQuestion returns true if the question carries a fixed option set
func (q *Question) IsChoiceQuestion() bool {
	return q.QuestionType.RequiresOptions()
}

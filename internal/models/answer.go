package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerValueKind tags the typed representation of an answer value
// #IMPLEMENTATION_DECISION: The raw value is resolved once per question type at the
// boundary instead of being re-sniffed on every read
type AnswerValueKind string

const (
	AnswerValueText        AnswerValueKind = "TEXT"
	AnswerValueMultiChoice AnswerValueKind = "MULTI_CHOICE"
	AnswerValueNumber      AnswerValueKind = "NUMBER"
	AnswerValueDate        AnswerValueKind = "DATE"
	AnswerValueBool        AnswerValueKind = "BOOL"
)

// MarshalJSON converts AnswerValueKind to lowercase for JSON serialization
func (k AnswerValueKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(k)))
}

// UnmarshalJSON converts lowercase JSON to AnswerValueKind
func (k *AnswerValueKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = AnswerValueKind(strings.ToUpper(s))
	return nil
}

// AnswerValue is the tagged variant holding the typed form of an answer.
// Exactly the field matching Kind is meaningful.
type AnswerValue struct {
	Kind       AnswerValueKind `bson:"kind" json:"kind"`
	Text       string          `bson:"text,omitempty" json:"text,omitempty"`
	Selections []string        `bson:"selections,omitempty" json:"selections,omitempty"`
	Number     *float64        `bson:"number,omitempty" json:"number,omitempty"`
	Date       *time.Time      `bson:"date,omitempty" json:"date,omitempty"`
	Bool       *bool           `bson:"bool,omitempty" json:"bool,omitempty"`
}

// IsEmpty returns true if the value carries no usable answer
func (v AnswerValue) IsEmpty() bool {
	switch v.Kind {
	case AnswerValueText:
		return strings.TrimSpace(v.Text) == ""
	case AnswerValueMultiChoice:
		return len(v.Selections) == 0
	case AnswerValueNumber:
		return v.Number == nil
	case AnswerValueDate:
		return v.Date == nil
	case AnswerValueBool:
		return v.Bool == nil
	}
	return true
}

// DisplayText returns the human-readable form of the value
func (v AnswerValue) DisplayText() string {
	switch v.Kind {
	case AnswerValueText:
		return v.Text
	case AnswerValueMultiChoice:
		return strings.Join(v.Selections, ", ")
	case AnswerValueNumber:
		if v.Number == nil {
			return ""
		}
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case AnswerValueDate:
		if v.Date == nil {
			return ""
		}
		return v.Date.Format("2006-01-02")
	case AnswerValueBool:
		if v.Bool == nil {
			return ""
		}
		if *v.Bool {
			return "yes"
		}
		return "no"
	}
	return ""
}

// ResolveAnswerValue builds the typed value for a question from the raw
// text and option selections sent by the client.
// #BUSINESS_RULE: Choice selections must come from the question's fixed option set
func ResolveAnswerValue(q *Question, answerText string, selections []string) (AnswerValue, error) {
	switch q.QuestionType {
	case QuestionTypeText, QuestionTypeTextarea:
		return AnswerValue{Kind: AnswerValueText, Text: answerText}, nil

	case QuestionTypeNumber:
		if strings.TrimSpace(answerText) == "" {
			return AnswerValue{Kind: AnswerValueNumber}, nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(answerText), 64)
		if err != nil {
			return AnswerValue{}, ErrInvalidAnswerFormat
		}
		return AnswerValue{Kind: AnswerValueNumber, Number: &n}, nil

	case QuestionTypeDate:
		if strings.TrimSpace(answerText) == "" {
			return AnswerValue{Kind: AnswerValueDate}, nil
		}
		d, err := time.Parse("2006-01-02", strings.TrimSpace(answerText))
		if err != nil {
			return AnswerValue{}, ErrInvalidAnswerFormat
		}
		return AnswerValue{Kind: AnswerValueDate, Date: &d}, nil

	case QuestionTypeYesNo:
		switch strings.ToLower(strings.TrimSpace(answerText)) {
		case "":
			return AnswerValue{Kind: AnswerValueBool}, nil
		case "yes", "true":
			b := true
			return AnswerValue{Kind: AnswerValueBool, Bool: &b}, nil
		case "no", "false":
			b := false
			return AnswerValue{Kind: AnswerValueBool, Bool: &b}, nil
		}
		return AnswerValue{}, ErrInvalidAnswerFormat

	case QuestionTypeRadio, QuestionTypeDropdown:
		if strings.TrimSpace(answerText) == "" {
			return AnswerValue{Kind: AnswerValueText}, nil
		}
		if !q.HasOption(answerText) {
			return AnswerValue{}, ErrInvalidAnswerFormat
		}
		return AnswerValue{Kind: AnswerValueText, Text: answerText}, nil

	case QuestionTypeCheckbox, QuestionTypeMultipleChoice:
		// Checkbox answers historically arrive CSV-joined in answerText
		if len(selections) == 0 && strings.TrimSpace(answerText) != "" {
			for _, part := range strings.Split(answerText, ",") {
				if s := strings.TrimSpace(part); s != "" {
					selections = append(selections, s)
				}
			}
		}
		for _, sel := range selections {
			if !q.HasOption(sel) {
				return AnswerValue{}, ErrInvalidAnswerFormat
			}
		}
		return AnswerValue{Kind: AnswerValueMultiChoice, Selections: selections}, nil
	}

	return AnswerValue{}, ErrInvalidQuestionType
}

// Answer represents a supplier's answer to one question within a response
// #CARDINALITY_ASSUMPTION: Keyed uniquely by (response_id, question_id) -
// re-saving a draft replaces, never duplicates
// #DATA_ASSUMPTION: DocumentID borrows a reference to an uploaded document;
// the document itself does not know about the answer
type Answer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResponseID primitive.ObjectID `bson:"response_id" json:"response_id"`
	QuestionID primitive.ObjectID `bson:"question_id" json:"question_id"`

	AnswerText  string              `bson:"answer_text,omitempty" json:"answer_text,omitempty"`
	AnswerValue AnswerValue         `bson:"answer_value" json:"answer_value"`
	DocumentID  *primitive.ObjectID `bson:"document_id,omitempty" json:"document_id,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for answers
func (Answer) CollectionName() string {
	return "answers"
}

// BeforeCreate sets default values before inserting a new answer
func (a *Answer) BeforeCreate() {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
}

// BeforeUpdate sets the UpdatedAt timestamp
func (a *Answer) BeforeUpdate() {
	a.UpdatedAt = time.Now().UTC()
}

// HasDocument returns true if the answer references an uploaded document
func (a *Answer) HasDocument() bool {
	return a.DocumentID != nil
}

// Covers reports whether this answer satisfies the given question for
// submission: a non-empty answer, or a document reference when the
// question requires one.
func (a *Answer) Covers(q *Question) bool {
	if !a.AnswerValue.IsEmpty() || strings.TrimSpace(a.AnswerText) != "" {
		return true
	}
	return q.RequiresDocument && a.HasDocument()
}

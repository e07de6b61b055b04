package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestQuestionType_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		qt       QuestionType
		expected string
	}{
		{"Text lowercase", QuestionTypeText, `"text"`},
		{"YesNo lowercase", QuestionTypeYesNo, `"yes_no"`},
		{"MultipleChoice lowercase", QuestionTypeMultipleChoice, `"multiple_choice"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.qt)
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("MarshalJSON() = %v, want %v", string(got), tt.expected)
			}
		})
	}
}

func TestQuestionType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected QuestionType
	}{
		{"Text from lowercase", `"text"`, QuestionTypeText},
		{"Dropdown from lowercase", `"dropdown"`, QuestionTypeDropdown},
		{"Radio from uppercase", `"RADIO"`, QuestionTypeRadio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got QuestionType
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("UnmarshalJSON() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestQuestionType_RequiresOptions(t *testing.T) {
	tests := []struct {
		name     string
		qt       QuestionType
		expected bool
	}{
		{"Text carries no options", QuestionTypeText, false},
		{"Number carries no options", QuestionTypeNumber, false},
		{"YesNo carries no options", QuestionTypeYesNo, false},
		{"Radio requires options", QuestionTypeRadio, true},
		{"Dropdown requires options", QuestionTypeDropdown, true},
		{"Checkbox requires options", QuestionTypeCheckbox, true},
		{"MultipleChoice requires options", QuestionTypeMultipleChoice, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.qt.RequiresOptions(); got != tt.expected {
				t.Errorf("RequiresOptions() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestQuestionType_AllowsMultipleSelections(t *testing.T) {
	if !QuestionTypeCheckbox.AllowsMultipleSelections() {
		t.Error("checkbox should allow multiple selections")
	}
	if !QuestionTypeMultipleChoice.AllowsMultipleSelections() {
		t.Error("multiple choice should allow multiple selections")
	}
	if QuestionTypeRadio.AllowsMultipleSelections() {
		t.Error("radio should not allow multiple selections")
	}
	if QuestionTypeDropdown.AllowsMultipleSelections() {
		t.Error("dropdown should not allow multiple selections")
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{
			name:     "Valid text question",
			question: Question{QuestionText: "Company size?", QuestionType: QuestionTypeText},
			wantErr:  nil,
		},
		{
			name: "Valid radio question with options",
			question: Question{
				QuestionText: "ISO 9001 certified?",
				QuestionType: QuestionTypeRadio,
				Options:      []string{"Yes", "No", "In progress"},
			},
			wantErr: nil,
		},
		{
			name:     "Empty question text",
			question: Question{QuestionText: "   ", QuestionType: QuestionTypeText},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "Invalid question type",
			question: Question{QuestionText: "Anything?", QuestionType: QuestionType("SLIDER")},
			wantErr:  ErrInvalidQuestionType,
		},
		{
			name:     "Choice question without options",
			question: Question{QuestionText: "Pick one", QuestionType: QuestionTypeDropdown},
			wantErr:  ErrMissingQuestionOptions,
		},
		{
			name: "Text question with options",
			question: Question{
				QuestionText: "Describe",
				QuestionType: QuestionTypeTextarea,
				Options:      []string{"stray"},
			},
			wantErr: ErrUnexpectedOptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestion_HasOption(t *testing.T) {
	q := Question{
		QuestionText: "Region?",
		QuestionType: QuestionTypeDropdown,
		Options:      []string{"North", "South"},
	}

	if !q.HasOption("North") {
		t.Error("HasOption(North) = false, want true")
	}
	if q.HasOption("East") {
		t.Error("HasOption(East) = true, want false")
	}
	if q.HasOption("north") {
		t.Error("HasOption is case sensitive; got a match for lowercase")
	}
}

func TestQuestion_BeforeCreate(t *testing.T) {
	q := Question{QuestionText: "Q", QuestionType: QuestionTypeText}
	q.BeforeCreate()

	if q.ID.IsZero() {
		t.Error("BeforeCreate() should assign an ID")
	}
	if q.CreatedAt.IsZero() || q.UpdatedAt.IsZero() {
		t.Error("BeforeCreate() should set timestamps")
	}
}

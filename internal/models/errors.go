package models

import (
	"errors"
	"fmt"
	"strings"
)

// Model validation and operation errors
var (
	// General errors
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidUserRole    = errors.New("invalid user role")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Supplier errors
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSupplierNotApproved = errors.New("supplier is not approved")
	ErrSupplierExists      = errors.New("supplier profile already exists for this user")

	// Procuring entity errors
	ErrEntityNotFound = errors.New("procuring entity not found")
	ErrEntityExists   = errors.New("procuring entity profile already exists for this user")

	// Reference data errors
	ErrCPVCodeNotFound  = errors.New("cpv code not found")
	ErrNUTSCodeNotFound = errors.New("nuts code not found")

	// Questionnaire errors
	ErrQuestionnaireNotFound       = errors.New("questionnaire not found")
	ErrQuestionnaireInactive       = errors.New("questionnaire is not active")
	ErrQuestionnaireExpired        = errors.New("questionnaire deadline has passed")
	ErrQuestionnaireNoQuestions    = errors.New("questionnaire requires at least one question")
	ErrQuestionnaireHasSubmissions = errors.New("questionnaire has submitted responses and cannot be deleted")

	// Question errors
	ErrQuestionNotFound       = errors.New("question not found")
	ErrInvalidQuestionType    = errors.New("invalid question type")
	ErrMissingQuestionOptions = errors.New("choice questions require options")
	ErrUnexpectedOptions      = errors.New("non-choice questions must not carry options")
	ErrInvalidAnswerFormat    = errors.New("invalid answer format")

	// Response errors
	ErrResponseNotFound  = errors.New("response not found")
	ErrResponseExists    = errors.New("response already exists for this questionnaire")
	ErrResponseSubmitted = errors.New("response has already been submitted")

	// Answer errors
	ErrAnswerNotFound = errors.New("answer not found")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentTooLarge = errors.New("document exceeds the maximum allowed size")
	ErrDocumentBadType  = errors.New("document mime type is not allowed")
	ErrDocumentNotOwned = errors.New("document does not belong to the caller")
	ErrDocumentStorage  = errors.New("document storage failure")

	// Announcement errors
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidAudience      = errors.New("invalid announcement audience")
)

// MissingAnswersError reports which required questions lack a usable
// answer when a response is submitted.
// #INTEGRATION_POINT: Handlers serialize QuestionIDs so the client can
// highlight the offending questions
type MissingAnswersError struct {
	QuestionIDs []string
}

// Error implements the error interface
func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("required questions missing answers: %s", strings.Join(e.QuestionIDs, ", "))
}

// Is makes MissingAnswersError match ErrInvalidInput for classification
func (e *MissingAnswersError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IsNotFoundError returns true if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrEntityNotFound) ||
		errors.Is(err, ErrCPVCodeNotFound) ||
		errors.Is(err, ErrNUTSCodeNotFound) ||
		errors.Is(err, ErrQuestionnaireNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrResponseNotFound) ||
		errors.Is(err, ErrAnswerNotFound) ||
		errors.Is(err, ErrDocumentNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound)
}

// IsValidationError returns true if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidUserRole) ||
		errors.Is(err, ErrInvalidQuestionType) ||
		errors.Is(err, ErrMissingQuestionOptions) ||
		errors.Is(err, ErrUnexpectedOptions) ||
		errors.Is(err, ErrInvalidAnswerFormat) ||
		errors.Is(err, ErrQuestionnaireNoQuestions) ||
		errors.Is(err, ErrInvalidAudience) ||
		errors.Is(err, ErrDocumentTooLarge) ||
		errors.Is(err, ErrDocumentBadType)
}

// IsConflictError returns true if the error is a conflict/state error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrSupplierExists) ||
		errors.Is(err, ErrEntityExists) ||
		errors.Is(err, ErrResponseExists) ||
		errors.Is(err, ErrResponseSubmitted) ||
		errors.Is(err, ErrQuestionnaireHasSubmissions)
}

// IsAuthError returns true if the error is an authentication/authorization error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUserInactive) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrSupplierNotApproved)
}

// Package repository provides data access layer factories
// #IMPLEMENTATION_DECISION: Factory functions wrap raw MongoDB constructors for our database.Client
package repository

import (
	"github.com/prequaliq/prequaliq_backend/internal/database"
)

// NewUserRepository creates a new user repository using our database client
func NewUserRepository(client *database.Client) UserRepository {
	return NewMongoUserRepository(client.Database())
}

// NewSupplierRepository creates a new supplier repository using our database client
func NewSupplierRepository(client *database.Client) SupplierRepository {
	return NewMongoSupplierRepository(client.Database())
}

// NewProcuringEntityRepository creates a new procuring entity repository
func NewProcuringEntityRepository(client *database.Client) ProcuringEntityRepository {
	return NewMongoProcuringEntityRepository(client.Database())
}

// NewReferenceRepository creates a new reference data repository
func NewReferenceRepository(client *database.Client) ReferenceRepository {
	return NewMongoReferenceRepository(client.Database())
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(client *database.Client) QuestionnaireRepository {
	return NewMongoQuestionnaireRepository(client.Database())
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(client *database.Client) QuestionRepository {
	return NewMongoQuestionRepository(client.Database())
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(client *database.Client) ResponseRepository {
	return NewMongoResponseRepository(client.Database())
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(client *database.Client) AnswerRepository {
	return NewMongoAnswerRepository(client.Database())
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(client *database.Client) DocumentRepository {
	return NewMongoDocumentRepository(client.Database())
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(client *database.Client) AnnouncementRepository {
	return NewMongoAnnouncementRepository(client.Database())
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Questionnaire represents a pre-qualification questionnaire published by a procuring entity
// #CARDINALITY_ASSUMPTION: ProcuringEntity 1:N Questionnaires
// #DATA_ASSUMPTION: The CPV tag may be edited after creation; immutability is not enforced
type Questionnaire struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProcuringEntityID primitive.ObjectID `bson:"procuring_entity_id" json:"procuring_entity_id"`
	CPVCodeID         primitive.ObjectID `bson:"cpv_code_id" json:"cpv_code_id"`

	// Basic info
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Deadline    time.Time `bson:"deadline" json:"deadline"`
	IsActive    bool      `bson:"is_active" json:"is_active"`

	// Audit fields
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for questionnaires
func (Questionnaire) CollectionName() string {
	return "questionnaires"
}

// BeforeCreate sets default values before inserting a new questionnaire
func (q *Questionnaire) BeforeCreate() {
	now := time.Now().UTC()
	if q.ID.IsZero() {
		q.ID = primitive.NewObjectID()
	}
	q.CreatedAt = now
	q.UpdatedAt = now
	q.IsActive = true
}

// BeforeUpdate sets the UpdatedAt timestamp
func (q *Questionnaire) BeforeUpdate() {
	q.UpdatedAt = time.Now().UTC()
}

// ToggleStatus flips the active flag
func (q *Questionnaire) ToggleStatus() {
	q.IsActive = !q.IsActive
	q.UpdatedAt = time.Now().UTC()
}

// IsExpired returns true if the deadline has passed
func (q *Questionnaire) IsExpired() bool {
	return time.Now().UTC().After(q.Deadline)
}

// AcceptsResponses returns true if suppliers may still save responses
// Deadline expiry is a best-effort check; the client blocks expired
// questionnaires in the UI as well.
func (q *Questionnaire) AcceptsResponses() bool {
	return q.IsActive && !q.IsExpired()
}

// IsOwnedBy returns true if the questionnaire belongs to the given procuring entity
func (q *Questionnaire) IsOwnedBy(entityID primitive.ObjectID) bool {
	return q.ProcuringEntityID == entityID
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcuringEntity represents a procuring organization profile extending a user account
// #CARDINALITY_ASSUMPTION: User 1:1 ProcuringEntity - profile belongs to exactly one user
type ProcuringEntity struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	// Organization info
	Name         string `bson:"name" json:"name"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	ContactEmail string `bson:"contact_email,omitempty" json:"contact_email,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for procuring entities
func (ProcuringEntity) CollectionName() string {
	return "procuring_entities"
}

// BeforeCreate sets default values before inserting a new procuring entity
func (e *ProcuringEntity) BeforeCreate() {
	now := time.Now().UTC()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.CreatedAt = now
	e.UpdatedAt = now
}

// BeforeUpdate sets the UpdatedAt timestamp
func (e *ProcuringEntity) BeforeUpdate() {
	e.UpdatedAt = time.Now().UTC()
}

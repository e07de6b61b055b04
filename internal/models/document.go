package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document represents an uploaded file with its stored metadata
// #DATA_ASSUMPTION: Exactly one of SupplierID/ProcuringEntityID is set, depending on uploader
// #CARDINALITY_ASSUMPTION: Referenced by zero or more answers; the document does not
// track those references - ownership stays with the uploader
type Document struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SupplierID        *primitive.ObjectID `bson:"supplier_id,omitempty" json:"supplier_id,omitempty"`
	ProcuringEntityID *primitive.ObjectID `bson:"procuring_entity_id,omitempty" json:"procuring_entity_id,omitempty"`

	// File metadata
	DocumentType string `bson:"document_type,omitempty" json:"document_type,omitempty"`
	FileName     string `bson:"file_name" json:"file_name"`
	FilePath     string `bson:"file_path" json:"file_path"`
	FileSize     int64  `bson:"file_size" json:"file_size"`
	MimeType     string `bson:"mime_type" json:"mime_type"`

	// Provenance
	UploadedBy primitive.ObjectID `bson:"uploaded_by" json:"uploaded_by"`
	IsVerified bool               `bson:"is_verified" json:"is_verified"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for documents
func (Document) CollectionName() string {
	return "documents"
}

// BeforeCreate sets default values before inserting a new document
func (d *Document) BeforeCreate() {
	now := time.Now().UTC()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = now
	d.UpdatedAt = now
}

// BeforeUpdate sets the UpdatedAt timestamp
func (d *Document) BeforeUpdate() {
	d.UpdatedAt = time.Now().UTC()
}

// IsOwnedBySupplier returns true if the given supplier uploaded the document
func (d *Document) IsOwnedBySupplier(supplierID primitive.ObjectID) bool {
	return d.SupplierID != nil && *d.SupplierID == supplierID
}

// IsOwnedByEntity returns true if the given procuring entity uploaded the document
func (d *Document) IsOwnedByEntity(entityID primitive.ObjectID) bool {
	return d.ProcuringEntityID != nil && *d.ProcuringEntityID == entityID
}

// Verify marks the document as verified
func (d *Document) Verify() {
	d.IsVerified = true
	d.UpdatedAt = time.Now().UTC()
}

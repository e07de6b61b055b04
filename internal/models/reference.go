package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CPVCode represents a Common Procurement Vocabulary category code
// #DATA_ASSUMPTION: The CPV tree is read-only reference data, seeded at startup
type CPVCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Description string             `bson:"description" json:"description"`
	ParentCode  string             `bson:"parent_code,omitempty" json:"parent_code,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// CollectionName returns the MongoDB collection name for CPV codes
func (CPVCode) CollectionName() string {
	return "cpv_codes"
}

// BeforeCreate sets default values before inserting a new CPV code
func (c *CPVCode) BeforeCreate() {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now().UTC()
}

// IsRoot returns true if the code has no parent in the tree
func (c *CPVCode) IsRoot() bool {
	return c.ParentCode == ""
}

// NUTSCode represents a European regional classification code
// #DATA_ASSUMPTION: Used only for supplier geography tagging
type NUTSCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Description string             `bson:"description" json:"description"`
	Level       int                `bson:"level" json:"level"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// CollectionName returns the MongoDB collection name for NUTS codes
func (NUTSCode) CollectionName() string {
	return "nuts_codes"
}

// BeforeCreate sets default values before inserting a new NUTS code
func (n *NUTSCode) BeforeCreate() {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now().UTC()
}

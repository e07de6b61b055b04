package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SupplierStatus represents the admin-approval state of a supplier
// #IMPLEMENTATION_DECISION: PENDING -> APPROVED/REJECTED, approval gates response saving
type SupplierStatus string

const (
	SupplierStatusPending  SupplierStatus = "PENDING"
	SupplierStatusApproved SupplierStatus = "APPROVED"
	SupplierStatusRejected SupplierStatus = "REJECTED"
)

// MarshalJSON converts SupplierStatus to lowercase for JSON serialization
func (ss SupplierStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(ss)))
}

// UnmarshalJSON converts lowercase JSON to SupplierStatus
func (ss *SupplierStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ss = SupplierStatus(strings.ToUpper(s))
	return nil
}

// IsValid checks if the SupplierStatus is a valid value
func (ss SupplierStatus) IsValid() bool {
	switch ss {
	case SupplierStatusPending, SupplierStatusApproved, SupplierStatusRejected:
		return true
	}
	return false
}

// Supplier represents a supplier profile extending a user account
// #CARDINALITY_ASSUMPTION: User 1:1 Supplier - profile belongs to exactly one user
// #DATA_ASSUMPTION: CPV capability tags and NUTS region are optional at registration
type Supplier struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	// Company info
	CompanyName        string `bson:"company_name" json:"company_name"`
	RegistrationNumber string `bson:"registration_number,omitempty" json:"registration_number,omitempty"`
	Address            string `bson:"address,omitempty" json:"address,omitempty"`

	// Classification
	NUTSCodeID *primitive.ObjectID  `bson:"nuts_code_id,omitempty" json:"nuts_code_id,omitempty"`
	CPVCodeIDs []primitive.ObjectID `bson:"cpv_code_ids,omitempty" json:"cpv_code_ids,omitempty"`

	// Approval
	Status     SupplierStatus      `bson:"status" json:"status"`
	ApprovedBy *primitive.ObjectID `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ApprovedAt *time.Time          `bson:"approved_at,omitempty" json:"approved_at,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for suppliers
func (Supplier) CollectionName() string {
	return "suppliers"
}

// BeforeCreate sets default values before inserting a new supplier
func (s *Supplier) BeforeCreate() {
	now := time.Now().UTC()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Status = SupplierStatusPending
	if s.CPVCodeIDs == nil {
		s.CPVCodeIDs = []primitive.ObjectID{}
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (s *Supplier) BeforeUpdate() {
	s.UpdatedAt = time.Now().UTC()
}

// Approve marks the supplier as approved by an admin
func (s *Supplier) Approve(adminID primitive.ObjectID) {
	now := time.Now().UTC()
	s.Status = SupplierStatusApproved
	s.ApprovedBy = &adminID
	s.ApprovedAt = &now
	s.UpdatedAt = now
}

// Reject marks the supplier as rejected by an admin
func (s *Supplier) Reject(adminID primitive.ObjectID) {
	now := time.Now().UTC()
	s.Status = SupplierStatusRejected
	s.ApprovedBy = &adminID
	s.UpdatedAt = now
}

// IsApproved returns true if the supplier may submit responses
func (s *Supplier) IsApproved() bool {
	return s.Status == SupplierStatusApproved
}

// IsPending returns true if the supplier awaits admin review
func (s *Supplier) IsPending() bool {
	return s.Status == SupplierStatusPending
}

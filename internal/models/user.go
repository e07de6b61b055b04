package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the role of a user account
// #IMPLEMENTATION_DECISION: UPPERCASE in Go code, lowercase in JSON serialization
type UserRole string

const (
	UserRoleAdmin           UserRole = "ADMIN"
	UserRoleSupplier        UserRole = "SUPPLIER"
	UserRoleProcuringEntity UserRole = "PROCURING_ENTITY"
)

// MarshalJSON converts UserRole to lowercase for JSON serialization
func (ur UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(ur)))
}

// UnmarshalJSON converts lowercase JSON to UserRole
func (ur *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ur = UserRole(strings.ToUpper(s))
	return nil
}

// IsValid checks if the UserRole is a valid value
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleSupplier, UserRoleProcuringEntity:
		return true
	}
	return false
}

// User represents an account with role-based access to the portal
// #DATA_ASSUMPTION: Email is unique across the entire system
// #CARDINALITY_ASSUMPTION: User 1:0..1 Supplier profile, User 1:0..1 ProcuringEntity profile
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         UserRole           `bson:"role" json:"role"`

	// Status
	IsActive    bool       `bson:"is_active" json:"is_active"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`

	// Audit fields
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for users
func (User) CollectionName() string {
	return "users"
}

// BeforeCreate sets default values before inserting a new user
func (u *User) BeforeCreate() {
	now := time.Now().UTC()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	u.IsActive = true
}

// BeforeUpdate sets the UpdatedAt timestamp
func (u *User) BeforeUpdate() {
	u.UpdatedAt = time.Now().UTC()
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsSupplier returns true if the user has supplier role
func (u *User) IsSupplier() bool {
	return u.Role == UserRoleSupplier
}

// IsProcuringEntity returns true if the user has procuring entity role
func (u *User) IsProcuringEntity() bool {
	return u.Role == UserRoleProcuringEntity
}

// CanLogin returns true if the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

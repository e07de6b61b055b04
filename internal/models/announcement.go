package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnnouncementAudience represents who an announcement is addressed to
type AnnouncementAudience string

const (
	AudienceSuppliers AnnouncementAudience = "SUPPLIERS"
	AudienceEntities  AnnouncementAudience = "ENTITIES"
	AudienceAll       AnnouncementAudience = "ALL"
)

// MarshalJSON converts AnnouncementAudience to lowercase for JSON serialization
func (aa AnnouncementAudience) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(string(aa)))
}

// UnmarshalJSON converts lowercase JSON to AnnouncementAudience
func (aa *AnnouncementAudience) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*aa = AnnouncementAudience(strings.ToUpper(s))
	return nil
}

// IsValid checks if the AnnouncementAudience is a valid value
func (aa AnnouncementAudience) IsValid() bool {
	switch aa {
	case AudienceSuppliers, AudienceEntities, AudienceAll:
		return true
	}
	return false
}

// Includes returns true if the audience covers the given user role
func (aa AnnouncementAudience) Includes(role UserRole) bool {
	switch aa {
	case AudienceAll:
		return true
	case AudienceSuppliers:
		return role == UserRoleSupplier
	case AudienceEntities:
		return role == UserRoleProcuringEntity
	}
	return false
}

// Announcement represents a broadcast message on the portal's announcement board
// #DATA_ASSUMPTION: Announcements expire; expired ones are filtered out of listings
type Announcement struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title    string               `bson:"title" json:"title"`
	Body     string               `bson:"body" json:"body"`
	Audience AnnouncementAudience `bson:"audience" json:"audience"`

	ExpiresAt *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`

	// Audit fields
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// CollectionName returns the MongoDB collection name for announcements
func (Announcement) CollectionName() string {
	return "announcements"
}

// BeforeCreate sets default values before inserting a new announcement
func (a *Announcement) BeforeCreate() {
	now := time.Now().UTC()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Audience == "" {
		a.Audience = AudienceAll
	}
}

// BeforeUpdate sets the UpdatedAt timestamp
func (a *Announcement) BeforeUpdate() {
	a.UpdatedAt = time.Now().UTC()
}

// IsExpired returns true if the announcement should no longer be shown
func (a *Announcement) IsExpired() bool {
	return a.ExpiresAt != nil && time.Now().UTC().After(*a.ExpiresAt)
}

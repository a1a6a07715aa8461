package domain

import (
	"time"

	"github.com/google/uuid"
)

// StampID is a value object for stamp identity.
type StampID struct{ uuid.UUID }

// NewStampID creates a new StampID from uuid.
func NewStampID(id uuid.UUID) StampID { return StampID{UUID: id} }

// String returns the canonical string form.
func (s StampID) String() string { return s.UUID.String() }

// Category classifies a stamp. Unknown values are rejected at the boundary;
// CategoryOther is the default when none is given.
type Category string

const (
	CategoryWork   Category = "work"
	CategoryHome   Category = "home"
	CategoryTravel Category = "travel"
	CategoryDining Category = "dining"
	CategoryHiking Category = "hiking"
	CategoryOther  Category = "other"
)

// ParseCategory returns the Category for s, or false if s is not one of the
// known values.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryWork, CategoryHome, CategoryTravel, CategoryDining, CategoryHiking, CategoryOther:
		return Category(s), true
	}
	return "", false
}

func (c Category) String() string { return string(c) }

// Photo is a reference to an uploaded image: the public URL and the media
// store key needed to delete it later.
type Photo struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Stamp is a user's geotagged journal entry. OwnerID is set once at creation
// from the authenticated identity and is never client-writable afterwards.
type Stamp struct {
	ID          StampID
	OwnerID     UserID
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Category    Category
	Photos      []Photo
	Notes       string
	VisitedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

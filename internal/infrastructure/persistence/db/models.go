package db

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Stamp struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Category    string
	Photos      []byte // jsonb array of {url, publicId}
	Notes       string
	VisitedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package stamps

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
)

// CreateInput carries request fields that passed boundary validation. OwnerID
// comes from the authenticated identity; a client-supplied owner never
// reaches this struct.
type CreateInput struct {
	OwnerID     domain.UserID
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Category    domain.Category
	Photos      []domain.Photo
	Notes       string
	VisitedAt   *time.Time
}

// Create inserts a new stamp owned by the caller.
type Create struct {
	stamps ports.StampRepository
}

func NewCreate(stamps ports.StampRepository) *Create {
	return &Create{stamps: stamps}
}

func (uc *Create) Execute(ctx context.Context, input CreateInput) (*domain.Stamp, error) {
	now := time.Now()
	visited := now
	if input.VisitedAt != nil {
		visited = *input.VisitedAt
	}
	category := input.Category
	if category == "" {
		category = domain.CategoryOther
	}
	photos := input.Photos
	if photos == nil {
		photos = []domain.Photo{}
	}
	stamp := &domain.Stamp{
		ID:          domain.NewStampID(uuid.New()),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     input.Address,
		Category:    category,
		Photos:      photos,
		Notes:       input.Notes,
		VisitedAt:   visited,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stamps.Create(ctx, stamp); err != nil {
		return nil, err
	}
	return stamp, nil
}

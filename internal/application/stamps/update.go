package stamps

import (
	"context"
	"time"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
)

// UpdateInput is a partial patch: nil fields are left untouched. There is no
// owner field here; an owner supplied by the client is stripped at the
// boundary and can never be rewritten.
type UpdateInput struct {
	Title       *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	Address     *string
	Category    *domain.Category
	Photos      *[]domain.Photo
	Notes       *string
	VisitedAt   *time.Time
}

// Update applies a partial patch to a stamp after the existence and
// ownership gates pass.
type Update struct {
	stamps ports.StampRepository
}

func NewUpdate(stamps ports.StampRepository) *Update {
	return &Update{stamps: stamps}
}

func (uc *Update) Execute(ctx context.Context, stampID domain.StampID, owner domain.UserID, patch UpdateInput) (*domain.Stamp, error) {
	stamp, err := fetchOwned(ctx, uc.stamps, stampID, owner)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		stamp.Title = *patch.Title
	}
	if patch.Description != nil {
		stamp.Description = *patch.Description
	}
	if patch.Latitude != nil {
		stamp.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		stamp.Longitude = *patch.Longitude
	}
	if patch.Address != nil {
		stamp.Address = *patch.Address
	}
	if patch.Category != nil {
		stamp.Category = *patch.Category
	}
	if patch.Photos != nil {
		stamp.Photos = *patch.Photos
	}
	if patch.Notes != nil {
		stamp.Notes = *patch.Notes
	}
	if patch.VisitedAt != nil {
		stamp.VisitedAt = *patch.VisitedAt
	}
	stamp.UpdatedAt = time.Now()
	if err := uc.stamps.Update(ctx, stamp); err != nil {
		return nil, err
	}
	return stamp, nil
}

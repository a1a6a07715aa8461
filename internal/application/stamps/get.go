package stamps

import (
	"context"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
	domerrors "github.com/chima-angwe/location-stamper-backend/internal/domain/errors"
)

// Get fetches a single stamp for its owner.
type Get struct {
	stamps ports.StampRepository
}

func NewGet(stamps ports.StampRepository) *Get {
	return &Get{stamps: stamps}
}

func (uc *Get) Execute(ctx context.Context, stampID domain.StampID, owner domain.UserID) (*domain.Stamp, error) {
	return fetchOwned(ctx, uc.stamps, stampID, owner)
}

// fetchOwned runs the two sequential guard steps shared by every
// single-record operation: existence first (404), ownership second (401).
// The ordering is user-facing and must not be inverted.
func fetchOwned(ctx context.Context, repo ports.StampRepository, stampID domain.StampID, owner domain.UserID) (*domain.Stamp, error) {
	stamp, err := repo.GetByID(ctx, stampID)
	if err != nil {
		return nil, err
	}
	if stamp == nil {
		return nil, domerrors.ErrStampNotFound
	}
	if stamp.OwnerID != owner {
		return nil, domerrors.ErrNotOwner
	}
	return stamp, nil
}

package stamps

import (
	"context"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
)

// Delete removes a stamp after the existence and ownership gates pass.
// Removal is a hard delete; there are no dependent records to cascade.
type Delete struct {
	stamps ports.StampRepository
}

func NewDelete(stamps ports.StampRepository) *Delete {
	return &Delete{stamps: stamps}
}

func (uc *Delete) Execute(ctx context.Context, stampID domain.StampID, owner domain.UserID) error {
	if _, err := fetchOwned(ctx, uc.stamps, stampID, owner); err != nil {
		return err
	}
	return uc.stamps.Delete(ctx, stampID)
}

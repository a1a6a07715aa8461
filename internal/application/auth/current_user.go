package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
	domerrors "github.com/chima-angwe/location-stamper-backend/internal/domain/errors"
)

// CurrentUser resolves the authenticated identity to its profile.
type CurrentUser struct {
	users ports.UserRepository
}

func NewCurrentUser(users ports.UserRepository) *CurrentUser {
	return &CurrentUser{users: users}
}

func (uc *CurrentUser) Execute(ctx context.Context, identity ports.Identity) (*domain.User, error) {
	id, err := uuid.Parse(identity.UserID)
	if err != nil {
		return nil, domerrors.ErrUserNotFound
	}
	user, err := uc.users.GetByID(ctx, domain.NewUserID(id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return user, nil
}

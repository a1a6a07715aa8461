package ports

import (
	"context"

	"github.com/chima-angwe/location-stamper-backend/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// SortKey is a whitelisted stamp sort field.
type SortKey string

const (
	SortByCreatedAt   SortKey = "createdAt"
	SortByVisitedDate SortKey = "visitedDate"
	SortByTitle       SortKey = "title"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListQuery is a store-level stamp query. OwnerID is always set: list access
// is scoped to the owner by construction, never by a post-hoc check.
type ListQuery struct {
	OwnerID  domain.UserID
	Category *domain.Category
	SortBy   SortKey
	Order    SortOrder
	Offset   int
	Limit    int
}

// StampRepository defines persistence for stamps. GetByID returns (nil, nil)
// when no row matches. Count applies the same filter as List but ignores
// Offset/Limit.
type StampRepository interface {
	Create(ctx context.Context, stamp *domain.Stamp) error
	GetByID(ctx context.Context, stampID domain.StampID) (*domain.Stamp, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Stamp, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
	Update(ctx context.Context, stamp *domain.Stamp) error
	Delete(ctx context.Context, stampID domain.StampID) error
}

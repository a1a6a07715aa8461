package stamps

import (
	"context"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListInput carries validated list parameters. Page and Limit are already
// bounds-checked at the boundary (page >= 1, 1 <= limit <= 100).
type ListInput struct {
	OwnerID  domain.UserID
	Page     int
	Limit    int
	Category *domain.Category
	SortBy   ports.SortKey
	Order    ports.SortOrder
}

// ListResult is a page of stamps plus pagination metadata. Total counts all
// rows matching the filter before pagination is applied.
type ListResult struct {
	Items       []*domain.Stamp
	Total       int64
	Page        int
	Limit       int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// List translates request parameters into a store query scoped to the owner.
type List struct {
	stamps ports.StampRepository
}

func NewList(stamps ports.StampRepository) *List {
	return &List{stamps: stamps}
}

func (uc *List) Execute(ctx context.Context, input ListInput) (*ListResult, error) {
	page := input.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = ports.SortByCreatedAt
	}
	order := input.Order
	if order == "" {
		order = ports.OrderDesc
	}

	q := ports.ListQuery{
		OwnerID:  input.OwnerID,
		Category: input.Category,
		SortBy:   sortBy,
		Order:    order,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	total, err := uc.stamps.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	items, err := uc.stamps.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Stamp{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListResult{
		Items:       items,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
	"github.com/chima-angwe/location-stamper-backend/internal/infrastructure/persistence/db"
)

// sortColumns maps request-level sort keys to column names. Only values from
// this map ever reach the ORDER BY clause.
var sortColumns = map[ports.SortKey]string{
	ports.SortByCreatedAt:   "created_at",
	ports.SortByVisitedDate: "visited_at",
	ports.SortByTitle:       "title",
}

type StampRepository struct {
	q *db.Queries
}

func NewStampRepository(q *db.Queries) *StampRepository {
	return &StampRepository{q: q}
}

func (r *StampRepository) Create(ctx context.Context, stamp *domain.Stamp) error {
	photos, err := json.Marshal(stamp.Photos)
	if err != nil {
		return err
	}
	return r.q.CreateStamp(ctx, db.CreateStampParams{
		ID:          stamp.ID.UUID,
		OwnerID:     stamp.OwnerID.UUID,
		Title:       stamp.Title,
		Description: stamp.Description,
		Latitude:    stamp.Latitude,
		Longitude:   stamp.Longitude,
		Address:     stamp.Address,
		Category:    stamp.Category.String(),
		Photos:      photos,
		Notes:       stamp.Notes,
		VisitedAt:   stamp.VisitedAt,
		CreatedAt:   stamp.CreatedAt,
		UpdatedAt:   stamp.UpdatedAt,
	})
}

func (r *StampRepository) GetByID(ctx context.Context, stampID domain.StampID) (*domain.Stamp, error) {
	s, err := r.q.GetStampByID(ctx, stampID.UUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dbStampToDomain(s)
}

func (r *StampRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Stamp, error) {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort key %q", q.SortBy)
	}
	category := ""
	if q.Category != nil {
		category = q.Category.String()
	}
	rows, err := r.q.ListStamps(ctx, db.ListStampsParams{
		OwnerID:     q.OwnerID.UUID,
		Category:    category,
		OrderColumn: column,
		Desc:        q.Order == ports.OrderDesc,
		Limit:       int32(q.Limit),
		Offset:      int32(q.Offset),
	})
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Stamp, 0, len(rows))
	for _, row := range rows {
		stamp, err := dbStampToDomain(row)
		if err != nil {
			return nil, err
		}
		list = append(list, stamp)
	}
	return list, nil
}

func (r *StampRepository) Count(ctx context.Context, q ports.ListQuery) (int64, error) {
	category := ""
	if q.Category != nil {
		category = q.Category.String()
	}
	return r.q.CountStamps(ctx, q.OwnerID.UUID, category)
}

func (r *StampRepository) Update(ctx context.Context, stamp *domain.Stamp) error {
	photos, err := json.Marshal(stamp.Photos)
	if err != nil {
		return err
	}
	return r.q.UpdateStamp(ctx, db.UpdateStampParams{
		ID:          stamp.ID.UUID,
		Title:       stamp.Title,
		Description: stamp.Description,
		Latitude:    stamp.Latitude,
		Longitude:   stamp.Longitude,
		Address:     stamp.Address,
		Category:    stamp.Category.String(),
		Photos:      photos,
		Notes:       stamp.Notes,
		VisitedAt:   stamp.VisitedAt,
		UpdatedAt:   stamp.UpdatedAt,
	})
}

func (r *StampRepository) Delete(ctx context.Context, stampID domain.StampID) error {
	return r.q.DeleteStamp(ctx, stampID.UUID)
}

func dbStampToDomain(s db.Stamp) (*domain.Stamp, error) {
	photos := []domain.Photo{}
	if len(s.Photos) > 0 {
		if err := json.Unmarshal(s.Photos, &photos); err != nil {
			return nil, err
		}
	}
	return &domain.Stamp{
		ID:          domain.NewStampID(s.ID),
		OwnerID:     domain.NewUserID(s.OwnerID),
		Title:       s.Title,
		Description: s.Description,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Address:     s.Address,
		Category:    domain.Category(s.Category),
		Photos:      photos,
		Notes:       s.Notes,
		VisitedAt:   s.VisitedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

var _ ports.StampRepository = (*StampRepository)(nil)

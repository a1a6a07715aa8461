package handlers

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
	"github.com/chima-angwe/location-stamper-backend/internal/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID domain.UserID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, _ string) (string, error) { return "token-for-" + userID, nil }

func (fakeIssuer) Verify(tokenString string) (ports.Identity, error) {
	userID, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return ports.Identity{}, errors.New("bad token")
	}
	return ports.Identity{UserID: userID}, nil
}

type fakeStampRepo struct {
	stamps map[domain.StampID]*domain.Stamp
}

func newFakeStampRepo() *fakeStampRepo {
	return &fakeStampRepo{stamps: make(map[domain.StampID]*domain.Stamp)}
}

func (r *fakeStampRepo) Create(_ context.Context, stamp *domain.Stamp) error {
	clone := *stamp
	r.stamps[stamp.ID] = &clone
	return nil
}

func (r *fakeStampRepo) GetByID(_ context.Context, stampID domain.StampID) (*domain.Stamp, error) {
	s, ok := r.stamps[stampID]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *fakeStampRepo) matches(s *domain.Stamp, q ports.ListQuery) bool {
	if s.OwnerID != q.OwnerID {
		return false
	}
	if q.Category != nil && s.Category != *q.Category {
		return false
	}
	return true
}

func (r *fakeStampRepo) List(_ context.Context, q ports.ListQuery) ([]*domain.Stamp, error) {
	var out []*domain.Stamp
	for _, s := range r.stamps {
		if r.matches(s, q) {
			clone := *s
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch q.SortBy {
		case ports.SortByTitle:
			less = out[i].Title < out[j].Title
		case ports.SortByVisitedDate:
			less = out[i].VisitedAt.Before(out[j].VisitedAt)
		default:
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if q.Order == ports.OrderDesc {
			return !less
		}
		return less
	})
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeStampRepo) Count(_ context.Context, q ports.ListQuery) (int64, error) {
	var n int64
	for _, s := range r.stamps {
		if r.matches(s, q) {
			n++
		}
	}
	return n, nil
}

func (r *fakeStampRepo) Update(_ context.Context, stamp *domain.Stamp) error {
	clone := *stamp
	r.stamps[stamp.ID] = &clone
	return nil
}

func (r *fakeStampRepo) Delete(_ context.Context, stampID domain.StampID) error {
	delete(r.stamps, stampID)
	return nil
}

type fakeMediaStore struct {
	stored  []string
	deleted []string
	err     error
}

func (m *fakeMediaStore) Store(_ context.Context, body io.Reader, _ int64, _ string) (*ports.StoredObject, error) {
	if m.err != nil {
		return nil, m.err
	}
	_, _ = io.Copy(io.Discard, body)
	key := "photos/2026/09/01/fake-" + string(rune('a'+len(m.stored)))
	m.stored = append(m.stored, key)
	return &ports.StoredObject{URL: "https://media.example.com/" + key, PublicID: key}, nil
}

func (m *fakeMediaStore) Delete(_ context.Context, publicID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, publicID)
	return nil
}

var (
	_ ports.UserRepository  = (*fakeUserRepo)(nil)
	_ ports.PasswordHasher  = fakeHasher{}
	_ ports.TokenIssuer     = fakeIssuer{}
	_ ports.StampRepository = (*fakeStampRepo)(nil)
	_ ports.MediaStore      = (*fakeMediaStore)(nil)
)

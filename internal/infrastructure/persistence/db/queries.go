package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const createUserSQL = `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateUserParams struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.Exec(ctx, createUserSQL,
		arg.ID, arg.Email, arg.Name, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getUserByEmailSQL = `
SELECT id, email, name, password_hash, created_at, updated_at
FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, getUserByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByIDSQL = `
SELECT id, email, name, password_hash, created_at, updated_at
FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := q.db.QueryRow(ctx, getUserByIDSQL, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const createStampSQL = `
INSERT INTO stamps (id, owner_id, title, description, latitude, longitude,
	address, category, photos, notes, visited_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

type CreateStampParams struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Category    string
	Photos      []byte
	Notes       string
	VisitedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateStamp(ctx context.Context, arg CreateStampParams) error {
	_, err := q.db.Exec(ctx, createStampSQL,
		arg.ID, arg.OwnerID, arg.Title, arg.Description, arg.Latitude, arg.Longitude,
		arg.Address, arg.Category, arg.Photos, arg.Notes, arg.VisitedAt, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const stampColumns = `id, owner_id, title, description, latitude, longitude,
	address, category, photos, notes, visited_at, created_at, updated_at`

const getStampByIDSQL = `SELECT ` + stampColumns + ` FROM stamps WHERE id = $1`

func (q *Queries) GetStampByID(ctx context.Context, id uuid.UUID) (Stamp, error) {
	var s Stamp
	err := q.db.QueryRow(ctx, getStampByIDSQL, id).Scan(
		&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Latitude, &s.Longitude,
		&s.Address, &s.Category, &s.Photos, &s.Notes, &s.VisitedAt, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListStampsParams drives the owner-scoped listing query. OrderColumn must be
// one of the whitelisted column names mapped by the repository; it is
// interpolated into the statement, never taken from request input directly.
type ListStampsParams struct {
	OwnerID     uuid.UUID
	Category    string // empty matches every category
	OrderColumn string
	Desc        bool
	Limit       int32
	Offset      int32
}

func (q *Queries) ListStamps(ctx context.Context, arg ListStampsParams) ([]Stamp, error) {
	direction := "ASC"
	if arg.Desc {
		direction = "DESC"
	}
	sql := fmt.Sprintf(`SELECT %s FROM stamps
WHERE owner_id = $1 AND ($2 = '' OR category = $2)
ORDER BY %s %s LIMIT $3 OFFSET $4`, stampColumns, arg.OrderColumn, direction)

	rows, err := q.db.Query(ctx, sql, arg.OwnerID, arg.Category, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Stamp
	for rows.Next() {
		var s Stamp
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Latitude, &s.Longitude,
			&s.Address, &s.Category, &s.Photos, &s.Notes, &s.VisitedAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const countStampsSQL = `
SELECT COUNT(*) FROM stamps
WHERE owner_id = $1 AND ($2 = '' OR category = $2)
`

func (q *Queries) CountStamps(ctx context.Context, ownerID uuid.UUID, category string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countStampsSQL, ownerID, category).Scan(&n)
	return n, err
}

const updateStampSQL = `
UPDATE stamps SET title = $2, description = $3, latitude = $4, longitude = $5,
	address = $6, category = $7, photos = $8, notes = $9, visited_at = $10,
	updated_at = $11
WHERE id = $1
`

type UpdateStampParams struct {
	ID          uuid.UUID
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Category    string
	Photos      []byte
	Notes       string
	VisitedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) UpdateStamp(ctx context.Context, arg UpdateStampParams) error {
	_, err := q.db.Exec(ctx, updateStampSQL,
		arg.ID, arg.Title, arg.Description, arg.Latitude, arg.Longitude,
		arg.Address, arg.Category, arg.Photos, arg.Notes, arg.VisitedAt, arg.UpdatedAt)
	return err
}

const deleteStampSQL = `DELETE FROM stamps WHERE id = $1`

func (q *Queries) DeleteStamp(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteStampSQL, id)
	return err
}

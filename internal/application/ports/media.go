package ports

import (
	"context"
	"io"
)

// StoredObject is the media host's reference to an uploaded file.
type StoredObject struct {
	URL      string
	PublicID string
}

// MediaStore relays photo bytes to an external object store. Delete is
// idempotent: removing a reference that no longer exists is not an error.
type MediaStore interface {
	Store(ctx context.Context, body io.Reader, size int64, contentType string) (*StoredObject, error)
	Delete(ctx context.Context, publicID string) error
}

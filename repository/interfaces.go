package repository

import (
	"context"
	"errors"
	"time"

	"obrafoto/models"
)

// ErrNotFound is returned when a lookup by id or email matches nothing.
// Handlers translate it to 404; every other error is a 500.
var ErrNotFound = errors.New("not found")

// ErrPayloadWithoutType guards the store invariant: a record with binary
// data must declare a content type.
var ErrPayloadWithoutType = errors.New("image payload without content type")

// FolderSummary is one derived folder: its name and the createdAt of its
// most recent image.
type FolderSummary struct {
	Name         string
	LastActivity time.Time
}

// ImageStore persists capture records.
type ImageStore interface {
	Put(ctx context.Context, img *models.Image) (string, error)
	Get(ctx context.Context, id string) (*models.Image, error)
	ListByFolder(ctx context.Context, folder string) ([]models.Image, error)
	Delete(ctx context.Context, id string) error
	// Folders lists distinct non-empty folder names with the timestamp of
	// each folder's newest image, computed in a single aggregation.
	Folders(ctx context.Context) ([]FolderSummary, error)
	// LatestInFolder returns the most recently created image of a folder.
	LatestInFolder(ctx context.Context, folder string) (*models.Image, error)
}

// UserStore persists tbusuario records.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (string, error)
	Patch(ctx context.Context, id string, patch map[string]any) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

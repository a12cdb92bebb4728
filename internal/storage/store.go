package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no scene exists for the requested id.
	ErrNotFound = errors.New("scene not found")
	// ErrVersionConflict is returned when an update carries a stale version.
	ErrVersionConflict = errors.New("scene version conflict")
	// ErrVerifyFailed is returned when a read-after-write check does not
	// match the content that was just written.
	ErrVerifyFailed = errors.New("content verification failed after write")
)

// Scene is one stored unit of narrative content.
type Scene struct {
	ID        int64
	Title     string
	Position  int
	Content   string
	Version   int64
	UpdatedAt time.Time
}

// SceneStore persists narrative scenes. Content updates are guarded by an
// optimistic version check so concurrent migrations cannot silently clobber
// each other, and every write is verified by reading the row back.
type SceneStore interface {
	// SaveScene inserts a new scene and fills in its ID and Version.
	SaveScene(ctx context.Context, scene *Scene) error

	// GetScene retrieves a scene by id, or ErrNotFound.
	GetScene(ctx context.Context, id int64) (*Scene, error)

	// ListScenes returns all scenes ordered by position.
	ListScenes(ctx context.Context) ([]*Scene, error)

	// UpdateContent replaces a scene's content iff its stored version still
	// equals expectVersion, then verifies the write by reading it back.
	// Returns ErrVersionConflict on a stale version, ErrNotFound for a
	// missing id.
	UpdateContent(ctx context.Context, id int64, content string, expectVersion int64) error

	Close() error
}

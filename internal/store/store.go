// Package store persists project snapshots. The engine owns the live
// project; the store only sees full snapshots, saved after sync events and
// loaded on startup.
package store

import (
	"context"
	"errors"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// ErrNotFound is returned when no project matches the requested id.
var ErrNotFound = errors.New("store: project not found")

// Store reads and writes project snapshots.
type Store interface {
	// SaveProject upserts a full project snapshot keyed by project id.
	SaveProject(ctx context.Context, p *model.CTRLProject) error

	// LoadProject returns the snapshot for a project id, or ErrNotFound.
	LoadProject(ctx context.Context, id string) (*model.CTRLProject, error)

	// LatestProject returns the most recently modified snapshot, or
	// ErrNotFound when the store is empty.
	LatestProject(ctx context.Context) (*model.CTRLProject, error)

	// DeleteProject removes a snapshot. Deleting a missing id is not an
	// error.
	DeleteProject(ctx context.Context, id string) error
}

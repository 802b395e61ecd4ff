package eventbus

import (
	"context"
	"fmt"

	"github.com/ctrlstudio/modelsync/internal/model"
	"github.com/ctrlstudio/modelsync/internal/store"
)

// ProjectSource yields a snapshot of the current project. Satisfied by the
// sync engine.
type ProjectSource interface {
	Project() (*model.CTRLProject, error)
}

// SaveConsumer persists a project snapshot after every sync event. Because
// the bus dispatches from a single goroutine, saves never overlap.
type SaveConsumer struct {
	source ProjectSource
	store  store.Store
}

// NewSaveConsumer creates an autosave consumer.
func NewSaveConsumer(source ProjectSource, st store.Store) *SaveConsumer {
	return &SaveConsumer{source: source, store: st}
}

func (c *SaveConsumer) HandleEvent(ctx context.Context, evt model.SyncEvent) error {
	p, err := c.source.Project()
	if err != nil {
		return fmt.Errorf("snapshotting project after %s: %w", evt.Type, err)
	}
	if err := c.store.SaveProject(ctx, p); err != nil {
		return fmt.Errorf("autosaving project after %s: %w", evt.Type, err)
	}
	return nil
}

package eventbus

import (
	"context"
	"log"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// LogConsumer logs all sync events for observability.
type LogConsumer struct{}

func NewLogConsumer() *LogConsumer { return &LogConsumer{} }

func (c *LogConsumer) HandleEvent(_ context.Context, evt model.SyncEvent) error {
	modes := make([]string, len(evt.AffectedModes))
	for i, m := range evt.AffectedModes {
		modes[i] = string(m)
	}
	log.Printf("event: %s by %s — affects=%v", evt.Type, evt.UserID, modes)
	return nil
}

package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlstudio/modelsync/internal/model"
	"github.com/ctrlstudio/modelsync/internal/store"
)

type collector struct {
	mu   sync.Mutex
	seen []model.SyncEventType
}

func (c *collector) HandleEvent(_ context.Context, evt model.SyncEvent) error {
	c.mu.Lock()
	c.seen = append(c.seen, evt.Type)
	c.mu.Unlock()
	return nil
}

func (c *collector) types() []model.SyncEventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.SyncEventType, len(c.seen))
	copy(out, c.seen)
	return out
}

func TestBus_DispatchesInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := New(16)
	col := &collector{}
	bus.Subscribe("collector", col)
	bus.Start(ctx)

	bus.Publish(ctx, model.NewSyncEvent(model.EventComponentCreate, "u", nil, model.ModeCode))
	bus.Publish(ctx, model.NewSyncEvent(model.EventComponentUpdate, "u", nil, model.ModeCode))
	bus.Publish(ctx, model.NewSyncEvent(model.EventComponentDelete, "u", nil, model.ModeCode))

	require.Eventually(t, func() bool {
		return len(col.types()) == 3
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []model.SyncEventType{
		model.EventComponentCreate,
		model.EventComponentUpdate,
		model.EventComponentDelete,
	}, col.types())

	cancel()
	bus.Stop()
}

func TestBus_DrainsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := New(16)
	col := &collector{}
	bus.Subscribe("collector", col)

	bus.Publish(ctx, model.NewSyncEvent(model.EventScreenCreate, "u", nil, model.ModeLogic))
	bus.Publish(ctx, model.NewSyncEvent(model.EventScreenDelete, "u", nil, model.ModeLogic))

	bus.Start(ctx)
	cancel()
	bus.Stop()

	assert.Len(t, col.types(), 2)
}

type staticSource struct {
	p *model.CTRLProject
}

func (s staticSource) Project() (*model.CTRLProject, error) { return s.p.Clone() }

func TestSaveConsumer_PersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	p := model.NewProject("Demo")
	c := NewSaveConsumer(staticSource{p: p}, st)

	evt := model.NewSyncEvent(model.EventComponentCreate, "u", nil, model.ModeCode)
	require.NoError(t, c.HandleEvent(ctx, evt))

	got, err := st.LoadProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo", got.Name)
}

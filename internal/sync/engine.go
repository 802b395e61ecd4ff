// Package sync implements the bidirectional synchronization engine that
// keeps the three projections of a project — visual design, visual logic,
// and generated code — consistent as any one of them is edited.
//
// The engine is a mutex-guarded single writer. Every edit enters through
// one of the SyncFrom* entry points, becomes a typed SyncEvent, mutates the
// shared model, regenerates the derived projections, and is then broadcast
// to listeners. Edits from different goroutines serialize and all apply,
// in arrival order. A listener that calls back into the engine
// synchronously gets a silent no-op, not a nested generation pass. This is
// a deliberate, crude cycle breaker — downstream consumers rely on seeing
// exactly one generation pass per external edit.
package sync

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ctrlstudio/modelsync/internal/codegen"
	"github.com/ctrlstudio/modelsync/internal/identity"
	"github.com/ctrlstudio/modelsync/internal/model"
)

// Engine owns the live project and orchestrates propagation between
// projections. Exported methods are safe for concurrent use: sync passes
// from different goroutines run one at a time, each waiting its turn. Only
// a re-entrant sync — a listener calling back in while its own pass is
// still running — is dropped.
type Engine struct {
	mu    sync.Mutex    // guards project and gen
	opMu  sync.Mutex    // serializes whole sync passes across goroutines
	owner atomic.Uint64 // goroutine running the in-flight pass, 0 when idle

	project *model.CTRLProject
	gen     codegen.Generator

	ident identity.Provider

	lmu       sync.Mutex
	listeners map[model.SyncEventType][]*Subscription
	anySubs   []*Subscription

	conflicts []model.CodeConflict
}

// New creates an engine owning the given project.
func New(project *model.CTRLProject, ident identity.Provider) (*Engine, error) {
	if project == nil {
		return nil, fmt.Errorf("sync: nil project")
	}
	gen, err := codegen.ForFramework(project.Settings.Framework)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		ident = identity.ContextProvider{}
	}
	return &Engine{
		project:   project,
		gen:       gen,
		ident:     ident,
		listeners: make(map[model.SyncEventType][]*Subscription),
	}, nil
}

// NodeKind discriminates logic-sync payloads.
type NodeKind string

const (
	KindNode       NodeKind = "node"
	KindConnection NodeKind = "connection"
)

// SyncFromDesign applies a design-mode component edit. Payload types by
// change: create takes a model.UIComponent, update a model.ComponentUpdate,
// delete a component id string.
func (e *Engine) SyncFromDesign(ctx context.Context, change model.ChangeType, data any) error {
	var (
		t       model.SyncEventType
		payload any
	)
	switch change {
	case model.ChangeCreate:
		c, ok := data.(model.UIComponent)
		if !ok {
			return fmt.Errorf("sync: design create expects UIComponent, got %T", data)
		}
		t, payload = model.EventComponentCreate, model.ComponentCreate{Component: c}
	case model.ChangeUpdate:
		u, ok := data.(model.ComponentUpdate)
		if !ok {
			return fmt.Errorf("sync: design update expects ComponentUpdate, got %T", data)
		}
		t, payload = model.EventComponentUpdate, u
	case model.ChangeDelete:
		id, ok := data.(string)
		if !ok {
			return fmt.Errorf("sync: design delete expects component id, got %T", data)
		}
		t, payload = model.EventComponentDelete, model.ComponentDelete{ComponentID: id}
	default:
		return fmt.Errorf("sync: unknown change type %q", change)
	}
	evt := model.NewSyncEvent(t, e.ident.UserID(ctx), payload, model.ModeLogic, model.ModeCode)
	return e.processSyncEvent(evt)
}

// SyncFromLogic applies a logic-mode edit. Payload types: node create takes
// a model.LogicNode, node update a model.NodeUpdate, node delete a node id
// string; connection create takes a model.LogicConnection, connection
// delete a connection id string.
func (e *Engine) SyncFromLogic(ctx context.Context, change model.ChangeType, kind NodeKind, data any) error {
	var (
		t       model.SyncEventType
		payload any
	)
	switch kind {
	case KindNode:
		switch change {
		case model.ChangeCreate:
			n, ok := data.(model.LogicNode)
			if !ok {
				return fmt.Errorf("sync: node create expects LogicNode, got %T", data)
			}
			t, payload = model.EventLogicNodeCreate, model.NodeCreate{Node: n}
		case model.ChangeUpdate:
			u, ok := data.(model.NodeUpdate)
			if !ok {
				return fmt.Errorf("sync: node update expects NodeUpdate, got %T", data)
			}
			t, payload = model.EventLogicNodeUpdate, u
		case model.ChangeDelete:
			id, ok := data.(string)
			if !ok {
				return fmt.Errorf("sync: node delete expects node id, got %T", data)
			}
			t, payload = model.EventLogicNodeDelete, model.NodeDelete{NodeID: id}
		default:
			return fmt.Errorf("sync: unknown change type %q", change)
		}
	case KindConnection:
		switch change {
		case model.ChangeCreate:
			c, ok := data.(model.LogicConnection)
			if !ok {
				return fmt.Errorf("sync: connection create expects LogicConnection, got %T", data)
			}
			t, payload = model.EventLogicConnectionCreate, model.ConnectionCreate{Connection: c}
		case model.ChangeDelete:
			id, ok := data.(string)
			if !ok {
				return fmt.Errorf("sync: connection delete expects connection id, got %T", data)
			}
			t, payload = model.EventLogicConnectionDelete, model.ConnectionDelete{ConnectionID: id}
		default:
			return fmt.Errorf("sync: connections support create and delete, not %q", change)
		}
	default:
		return fmt.Errorf("sync: unknown node kind %q", kind)
	}
	evt := model.NewSyncEvent(t, e.ident.UserID(ctx), payload, model.ModeDesign, model.ModeCode)
	return e.processSyncEvent(evt)
}

// SyncFromCode applies a code-mode file edit. Payload types: create takes a
// model.CodeFile, update a model.FileUpdate, delete a file path string.
func (e *Engine) SyncFromCode(ctx context.Context, change model.ChangeType, data any) error {
	var (
		t       model.SyncEventType
		payload any
	)
	switch change {
	case model.ChangeCreate:
		f, ok := data.(model.CodeFile)
		if !ok {
			return fmt.Errorf("sync: code create expects CodeFile, got %T", data)
		}
		t, payload = model.EventCodeFileCreate, model.FileCreate{File: f}
	case model.ChangeUpdate:
		u, ok := data.(model.FileUpdate)
		if !ok {
			return fmt.Errorf("sync: code update expects FileUpdate, got %T", data)
		}
		t, payload = model.EventCodeFileUpdate, u
	case model.ChangeDelete:
		path, ok := data.(string)
		if !ok {
			return fmt.Errorf("sync: code delete expects file path, got %T", data)
		}
		t, payload = model.EventCodeFileDelete, model.FileDelete{Path: path}
	default:
		return fmt.Errorf("sync: unknown change type %q", change)
	}
	evt := model.NewSyncEvent(t, e.ident.UserID(ctx), payload, model.ModeDesign, model.ModeLogic)
	return e.processSyncEvent(evt)
}

// SyncScreen applies a screen edit. Payload types: create takes a
// model.Screen, update a model.ScreenUpdate, delete a screen id string.
func (e *Engine) SyncScreen(ctx context.Context, change model.ChangeType, data any) error {
	var (
		t       model.SyncEventType
		payload any
	)
	switch change {
	case model.ChangeCreate:
		s, ok := data.(model.Screen)
		if !ok {
			return fmt.Errorf("sync: screen create expects Screen, got %T", data)
		}
		t, payload = model.EventScreenCreate, model.ScreenCreate{Screen: s}
	case model.ChangeUpdate:
		u, ok := data.(model.ScreenUpdate)
		if !ok {
			return fmt.Errorf("sync: screen update expects ScreenUpdate, got %T", data)
		}
		t, payload = model.EventScreenUpdate, u
	case model.ChangeDelete:
		id, ok := data.(string)
		if !ok {
			return fmt.Errorf("sync: screen delete expects screen id, got %T", data)
		}
		t, payload = model.EventScreenDelete, model.ScreenDelete{ScreenID: id}
	default:
		return fmt.Errorf("sync: unknown change type %q", change)
	}
	evt := model.NewSyncEvent(t, e.ident.UserID(ctx), payload, model.ModeLogic, model.ModeCode)
	return e.processSyncEvent(evt)
}

// UpdateSettings changes the project's code generation target and triggers
// a full regeneration pass.
func (e *Engine) UpdateSettings(ctx context.Context, settings model.ProjectSettings) error {
	if !settings.Framework.Valid() || !settings.Language.Valid() || !settings.Styling.Valid() {
		return fmt.Errorf("sync: invalid project settings %+v", settings)
	}
	evt := model.NewSyncEvent(model.EventSettingsUpdate, e.ident.UserID(ctx),
		model.SettingsUpdate{Settings: settings}, model.ModeCode)
	return e.processSyncEvent(evt)
}

// processSyncEvent runs one full sync pass: mutate, regenerate, notify.
// Passes from other goroutines queue on opMu and all apply. A re-entrant
// call — a listener syncing on the goroutine that is mid-pass — is dropped
// rather than deadlocked or nested.
func (e *Engine) processSyncEvent(evt model.SyncEvent) error {
	gid := goroutineID()
	if e.owner.Load() == gid {
		log.Printf("sync: busy, dropping %s event %s", evt.Type, evt.ID)
		return nil
	}

	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.owner.Store(gid)
	defer e.owner.Store(0)

	if err := e.apply(evt); err != nil {
		return fmt.Errorf("sync: applying %s: %w", evt.Type, err)
	}

	// Listeners run after the mutation completes, still inside the pass,
	// so their re-entrant syncs drop.
	e.notify(evt)
	return nil
}

// goroutineID parses the current goroutine's id out of its stack header
// ("goroutine N [running]:"); the runtime exposes no direct accessor.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return math.MaxUint64
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return math.MaxUint64
	}
	return id
}

// Conflicts returns regenerations suppressed because the target component
// was marked manually edited.
func (e *Engine) Conflicts() []model.CodeConflict {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.CodeConflict, len(e.conflicts))
	copy(out, e.conflicts)
	return out
}

// Package wire defines the WebSocket protocol for collaborative editing.
// Clients push edits from whichever mode they are in; the server applies
// them through the sync engine and broadcasts the resulting events to
// every connected client.
package wire

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server WebSocket messages.
type ClientMessage struct {
	Type string          `json:"type"` // "sync", "project", "validate", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// SyncData is the payload for "sync" messages. Scope picks the entity kind
// and, with Change, determines the shape of Payload.
type SyncData struct {
	Scope   Scope            `json:"scope"`
	Change  model.ChangeType `json:"change"`
	Payload json.RawMessage  `json:"payload"`
}

// Scope names the entity kind a sync message targets.
type Scope string

const (
	ScopeComponent  Scope = "component"
	ScopeNode       Scope = "node"
	ScopeConnection Scope = "connection"
	ScopeFile       Scope = "file"
	ScopeScreen     Scope = "screen"
	ScopeSettings   Scope = "settings"
)

// decodePayload turns the raw payload into the concrete value the engine's
// entry points expect for this scope and change.
func decodePayload(d SyncData) (any, error) {
	into := func(v any) error {
		if err := json.Unmarshal(d.Payload, v); err != nil {
			return fmt.Errorf("decoding %s %s payload: %w", d.Scope, d.Change, err)
		}
		return nil
	}

	if d.Change == model.ChangeDelete {
		var ref deleteRef
		if err := into(&ref); err != nil {
			return nil, err
		}
		return ref.ref()
	}

	var target any
	switch {
	case d.Scope == ScopeComponent && d.Change == model.ChangeCreate:
		target = &model.UIComponent{}
	case d.Scope == ScopeComponent && d.Change == model.ChangeUpdate:
		target = &model.ComponentUpdate{}
	case d.Scope == ScopeNode && d.Change == model.ChangeCreate:
		target = &model.LogicNode{}
	case d.Scope == ScopeNode && d.Change == model.ChangeUpdate:
		target = &model.NodeUpdate{}
	case d.Scope == ScopeConnection && d.Change == model.ChangeCreate:
		target = &model.LogicConnection{}
	case d.Scope == ScopeFile && d.Change == model.ChangeCreate:
		target = &model.CodeFile{}
	case d.Scope == ScopeFile && d.Change == model.ChangeUpdate:
		target = &model.FileUpdate{}
	case d.Scope == ScopeScreen && d.Change == model.ChangeCreate:
		target = &model.Screen{}
	case d.Scope == ScopeScreen && d.Change == model.ChangeUpdate:
		target = &model.ScreenUpdate{}
	case d.Scope == ScopeSettings && d.Change == model.ChangeUpdate:
		target = &model.ProjectSettings{}
	default:
		return nil, fmt.Errorf("unsupported sync: scope=%s change=%s", d.Scope, d.Change)
	}
	if err := into(target); err != nil {
		return nil, err
	}
	// The engine's entry points take values, not pointers.
	return reflect.ValueOf(target).Elem().Interface(), nil
}

// deleteRef is the payload for every delete: one identifier, whichever key
// the client used.
type deleteRef struct {
	ID   string `json:"id,omitempty"`
	Path string `json:"path,omitempty"`
}

func (r *deleteRef) ref() (any, error) {
	if r.ID != "" {
		return r.ID, nil
	}
	if r.Path != "" {
		return r.Path, nil
	}
	return nil, fmt.Errorf("delete payload needs an id or path")
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client WebSocket messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "hello", "event", "project", "validation", "ack", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// HelloData is sent on connect.
type HelloData struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name"`
	Actor       string `json:"actor"`
}

// AckData confirms a sync was applied.
type AckData struct {
	Scope  Scope            `json:"scope"`
	Change model.ChangeType `json:"change"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

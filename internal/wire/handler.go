package wire

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ctrlstudio/modelsync/internal/identity"
	"github.com/ctrlstudio/modelsync/internal/model"
	engine "github.com/ctrlstudio/modelsync/internal/sync"
)

// Handler manages WebSocket connections for collaborative editing.
type Handler struct {
	engine *engine.Engine
	hub    *Hub
}

// NewHandler creates a WebSocket handler.
func NewHandler(e *engine.Engine, hub *Hub) *Handler {
	return &Handler{engine: e, hub: hub}
}

// ServeHTTP upgrades to WebSocket and runs the message loop.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("wire: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	actor := r.Header.Get("X-Actor")
	if actor == "" {
		actor = r.URL.Query().Get("actor")
	}
	if actor == "" {
		actor = "anonymous"
	}
	ctx := identity.WithActor(r.Context(), actor)

	id := h.hub.register(conn, actor)
	defer h.hub.unregister(id)

	p, err := h.engine.Project()
	if err != nil {
		log.Printf("wire: snapshot for hello: %v", err)
		return
	}
	h.send(ctx, conn, ServerMessage{
		Type: "hello",
		Data: HelloData{ProjectID: p.ID, ProjectName: p.Name, Actor: actor},
	})

	for {
		var msg ClientMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("wire: connection closed: %v", websocket.CloseStatus(err))
			}
			return
		}

		switch msg.Type {
		case "sync":
			h.handleSync(ctx, conn, msg)
		case "project":
			h.handleProject(ctx, conn, msg)
		case "validate":
			h.send(ctx, conn, ServerMessage{
				Type:      "validation",
				RequestID: msg.ID,
				Data:      h.engine.Validate(),
			})
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type",
				fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (h *Handler) handleSync(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	var data SyncData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid sync data")
		return
	}

	payload, err := decodePayload(data)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_payload", err.Error())
		return
	}

	switch data.Scope {
	case ScopeComponent:
		err = h.engine.SyncFromDesign(ctx, data.Change, payload)
	case ScopeNode:
		err = h.engine.SyncFromLogic(ctx, data.Change, engine.KindNode, payload)
	case ScopeConnection:
		err = h.engine.SyncFromLogic(ctx, data.Change, engine.KindConnection, payload)
	case ScopeFile:
		err = h.engine.SyncFromCode(ctx, data.Change, payload)
	case ScopeScreen:
		err = h.engine.SyncScreen(ctx, data.Change, payload)
	case ScopeSettings:
		err = h.engine.UpdateSettings(ctx, payload.(model.ProjectSettings))
	default:
		h.sendError(ctx, conn, msg.ID, "invalid_scope", fmt.Sprintf("unknown scope %q", data.Scope))
		return
	}
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "sync_failed", err.Error())
		return
	}

	h.send(ctx, conn, ServerMessage{
		Type:      "ack",
		RequestID: msg.ID,
		Data:      AckData{Scope: data.Scope, Change: data.Change},
	})
}

func (h *Handler) handleProject(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	p, err := h.engine.Project()
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "snapshot_failed", err.Error())
		return
	}
	h.send(ctx, conn, ServerMessage{Type: "project", RequestID: msg.ID, Data: p})
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Printf("wire: write error: %v", err)
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message},
	})
}

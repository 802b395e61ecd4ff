package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ctrlstudio/modelsync/internal/model"
	engine "github.com/ctrlstudio/modelsync/internal/sync"
)

// projectHandler exposes the sync engine over REST. Every mutation routes
// through the engine's sync entry points so HTTP edits broadcast exactly
// like websocket edits.
type projectHandler struct {
	engine *engine.Engine
}

// ── Project ─────────────────────────────────────────────────────────────────

func (h *projectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.Project()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SNAPSHOT_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *projectHandler) ExportProject(w http.ResponseWriter, r *http.Request) {
	data, err := h.engine.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="project.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *projectHandler) ImportProject(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.engine.Import(data); err != nil {
		writeError(w, http.StatusBadRequest, "IMPORT_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

func (h *projectHandler) ValidateProject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Validate())
}

func (h *projectHandler) GetConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts := h.engine.Conflicts()
	if conflicts == nil {
		conflicts = []model.CodeConflict{}
	}
	writeJSON(w, http.StatusOK, conflicts)
}

// ── Components ──────────────────────────────────────────────────────────────

func (h *projectHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var c model.UIComponent
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	// A body without an id is a request to create from type defaults.
	if c.ID == "" {
		built, err := model.NewComponent(c.Type, c.Position)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
			return
		}
		if c.Name != "" {
			built.Name = c.Name
		}
		built.ScreenID = c.ScreenID
		built.ParentID = c.ParentID
		built.Events = c.Events
		c = built
	}
	if err := h.engine.SyncFromDesign(r.Context(), model.ChangeCreate, c); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID})
}

func (h *projectHandler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var patch model.ComponentPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	u := model.ComponentUpdate{ComponentID: chi.URLParam(r, "id"), Updates: patch}
	if err := h.engine.SyncFromDesign(r.Context(), model.ChangeUpdate, u); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *projectHandler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	if err := h.engine.SyncFromDesign(r.Context(), model.ChangeDelete, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Logic nodes ─────────────────────────────────────────────────────────────

func (h *projectHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var n model.LogicNode
	if err := decodeJSON(r, &n); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if n.ID == "" {
		built, err := model.NewLogicNode(n.Type, n.Position)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
			return
		}
		if n.Name != "" {
			built.Name = n.Name
		}
		if len(n.Data) > 0 {
			built.Data = n.Data
		}
		n = built
	}
	if err := h.engine.SyncFromLogic(r.Context(), model.ChangeCreate, engine.KindNode, n); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": n.ID})
}

func (h *projectHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var patch model.NodePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	u := model.NodeUpdate{NodeID: chi.URLParam(r, "id"), Updates: patch}
	if err := h.engine.SyncFromLogic(r.Context(), model.ChangeUpdate, engine.KindNode, u); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *projectHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	if err := h.engine.SyncFromLogic(r.Context(), model.ChangeDelete, engine.KindNode, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Connections ─────────────────────────────────────────────────────────────

func (h *projectHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var c model.LogicConnection
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.engine.SyncFromLogic(r.Context(), model.ChangeCreate, engine.KindConnection, c); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": c.ID})
}

func (h *projectHandler) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	if err := h.engine.SyncFromLogic(r.Context(), model.ChangeDelete, engine.KindConnection, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Code files ──────────────────────────────────────────────────────────────

func (h *projectHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var f model.CodeFile
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if f.ID == "" {
		f = model.NewCodeFile(f.Path, f.Content, false)
	}
	if err := h.engine.SyncFromCode(r.Context(), model.ChangeCreate, f); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": f.Path})
}

func (h *projectHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var u model.FileUpdate
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.engine.SyncFromCode(r.Context(), model.ChangeUpdate, u); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *projectHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "MISSING_PATH", "path query parameter is required")
		return
	}
	if err := h.engine.SyncFromCode(r.Context(), model.ChangeDelete, path); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Screens ─────────────────────────────────────────────────────────────────

func (h *projectHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var s model.Screen
	if err := decodeJSON(r, &s); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if s.ID == "" {
		built, err := model.NewScreen(s.Name, s.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
			return
		}
		s = built
	}
	if err := h.engine.SyncScreen(r.Context(), model.ChangeCreate, s); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": s.ID})
}

func (h *projectHandler) UpdateScreen(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var patch model.ScreenPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	u := model.ScreenUpdate{ScreenID: chi.URLParam(r, "id"), Updates: patch}
	if err := h.engine.SyncScreen(r.Context(), model.ChangeUpdate, u); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *projectHandler) DeleteScreen(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	if err := h.engine.SyncScreen(r.Context(), model.ChangeDelete, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ── Settings ────────────────────────────────────────────────────────────────

func (h *projectHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r, ok := actorContext(w, r)
	if !ok {
		return
	}
	var s model.ProjectSettings
	if err := decodeJSON(r, &s); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.engine.UpdateSettings(r.Context(), s); err != nil {
		writeError(w, http.StatusBadRequest, "SYNC_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

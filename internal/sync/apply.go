package sync

import (
	"fmt"
	"log"
	"time"

	"github.com/ctrlstudio/modelsync/internal/codegen"
	"github.com/ctrlstudio/modelsync/internal/codeparse"
	"github.com/ctrlstudio/modelsync/internal/model"
)

// apply mutates the project for one event and regenerates whatever the
// mutation invalidated. Events referencing entities that no longer exist
// are logged and dropped rather than failed: cross-mode edits race, and a
// stale reference is not an error.
func (e *Engine) apply(evt model.SyncEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	switch evt.Type {
	case model.EventComponentCreate:
		err = e.applyComponentCreate(evt.Data.(model.ComponentCreate))
	case model.EventComponentUpdate:
		err = e.applyComponentUpdate(evt.Data.(model.ComponentUpdate))
	case model.EventComponentDelete:
		err = e.applyComponentDelete(evt.Data.(model.ComponentDelete))
	case model.EventLogicNodeCreate:
		err = e.applyNodeCreate(evt.Data.(model.NodeCreate))
	case model.EventLogicNodeUpdate:
		err = e.applyNodeUpdate(evt.Data.(model.NodeUpdate))
	case model.EventLogicNodeDelete:
		err = e.applyNodeDelete(evt.Data.(model.NodeDelete))
	case model.EventLogicConnectionCreate:
		err = e.applyConnectionCreate(evt.Data.(model.ConnectionCreate))
	case model.EventLogicConnectionDelete:
		err = e.applyConnectionDelete(evt.Data.(model.ConnectionDelete))
	case model.EventCodeFileCreate:
		err = e.applyFileCreate(evt.Data.(model.FileCreate))
	case model.EventCodeFileUpdate:
		err = e.applyFileUpdate(evt.Data.(model.FileUpdate))
	case model.EventCodeFileDelete:
		err = e.applyFileDelete(evt.Data.(model.FileDelete))
	case model.EventScreenCreate:
		err = e.applyScreenCreate(evt.Data.(model.ScreenCreate))
	case model.EventScreenUpdate:
		err = e.applyScreenUpdate(evt.Data.(model.ScreenUpdate))
	case model.EventScreenDelete:
		err = e.applyScreenDelete(evt.Data.(model.ScreenDelete))
	case model.EventSettingsUpdate:
		err = e.applySettingsUpdate(evt.Data.(model.SettingsUpdate))
	default:
		log.Printf("sync: ignoring unknown event type %q", evt.Type)
		return nil
	}
	if err != nil {
		return err
	}
	e.project.Modified = evt.Timestamp
	return nil
}

func (e *Engine) genCtx() codegen.Context {
	return codegen.Context{Settings: e.project.Settings, Project: e.project}
}

// ── Components ───────────────────────────────────────────────────────────────

func (e *Engine) applyComponentCreate(p model.ComponentCreate) error {
	c := p.Component
	if !c.Type.Valid() {
		return fmt.Errorf("unknown component type %q", c.Type)
	}
	if e.project.FindComponent(c.ID) != nil {
		return fmt.Errorf("component %s already exists", c.ID)
	}

	// Events arriving unwired get a mirror node in the logic graph so the
	// logic projection reflects the new component immediately.
	for i := range c.Events {
		if c.Events[i].LogicNodeID != "" || c.Events[i].Handler != "" {
			continue
		}
		n, err := model.NewEventNode(&c, c.Events[i].Type, c.Position)
		if err != nil {
			return err
		}
		c.Events[i].LogicNodeID = n.ID
		e.project.LogicGraph.Nodes = append(e.project.LogicGraph.Nodes, n)
	}

	e.project.Components = append(e.project.Components, c)
	if c.ScreenID != "" {
		if s := e.project.FindScreen(c.ScreenID); s != nil {
			s.ComponentIDs = append(s.ComponentIDs, c.ID)
			s.Modified = time.Now().UTC()
		}
	}
	if c.ParentID != "" {
		if parent := e.project.FindComponent(c.ParentID); parent != nil {
			parent.Children = append(parent.Children, c.ID)
		}
	}

	for i := range e.project.Components {
		if e.project.Components[i].ID == c.ID {
			if err := e.regenerateComponent(&e.project.Components[i]); err != nil {
				return err
			}
			break
		}
	}
	for _, id := range mirrorNodeIDs(e.project, c.ID) {
		if n := e.project.FindNode(id); n != nil {
			if err := e.regenerateNodeStub(n, ""); err != nil {
				return err
			}
		}
	}
	// The parent's markup references children by name, so it is stale now.
	if c.ParentID != "" {
		if parent := e.project.FindComponent(c.ParentID); parent != nil {
			if err := e.regenerateComponent(parent); err != nil {
				return err
			}
		}
	}
	return e.ensureRuntimeFiles()
}

func (e *Engine) applyComponentUpdate(p model.ComponentUpdate) error {
	c := e.project.FindComponent(p.ComponentID)
	if c == nil {
		log.Printf("sync: update for missing component %s, dropping", p.ComponentID)
		return nil
	}

	u := p.Updates
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.ParentID != nil {
		c.ParentID = *u.ParentID
	}
	if u.ScreenID != nil {
		c.ScreenID = *u.ScreenID
	}
	if u.Position != nil {
		c.Position = *u.Position
	}
	if u.Size != nil {
		c.Size = *u.Size
	}
	if u.Styling != nil {
		c.Styling = *u.Styling
	}
	for _, k := range u.Props.SortedKeys() {
		if c.Props == nil {
			c.Props = model.ValueMap{}
		}
		c.Props[k] = u.Props[k]
	}
	for _, k := range u.State.SortedKeys() {
		if c.State == nil {
			c.State = model.ValueMap{}
		}
		c.State[k] = u.State[k]
	}
	if u.Events != nil {
		c.Events = u.Events
	}
	if u.Visible != nil {
		c.Visible = *u.Visible
	}
	if u.Locked != nil {
		c.Locked = *u.Locked
	}
	if u.ZIndex != nil {
		c.ZIndex = *u.ZIndex
	}
	c.Modified = time.Now().UTC()

	// A new unwired event needs its mirror node, same as on create.
	for i := range c.Events {
		if c.Events[i].LogicNodeID != "" || c.Events[i].Handler != "" {
			continue
		}
		n, err := model.NewEventNode(c, c.Events[i].Type, c.Position)
		if err != nil {
			return err
		}
		c.Events[i].LogicNodeID = n.ID
		e.project.LogicGraph.Nodes = append(e.project.LogicGraph.Nodes, n)
		if err := e.regenerateNodeStub(e.project.FindNode(n.ID), ""); err != nil {
			return err
		}
		c = e.project.FindComponent(p.ComponentID) // appends may reallocate
	}

	if err := e.regenerateComponent(c); err != nil {
		return err
	}
	if c.ParentID != "" {
		if parent := e.project.FindComponent(c.ParentID); parent != nil {
			return e.regenerateComponent(parent)
		}
	}
	return nil
}

// applyComponentDelete cascades: the component's generated file, its mirror
// event nodes and their stubs, connections touching those nodes, and every
// reference from screens, parents and children all go in the same pass, so
// validation stays clean afterwards.
func (e *Engine) applyComponentDelete(p model.ComponentDelete) error {
	c := e.project.FindComponent(p.ComponentID)
	if c == nil {
		log.Printf("sync: delete for missing component %s, dropping", p.ComponentID)
		return nil
	}
	id := c.ID
	parentID := c.ParentID
	filePath := c.CodeMetadata.FilePath
	generated := append([]string(nil), c.CodeMetadata.GeneratedFiles...)

	doomed := mirrorNodeIDs(e.project, id)
	doomedSet := make(map[string]bool, len(doomed))
	for _, nid := range doomed {
		doomedSet[nid] = true
	}

	// Stub paths before the nodes disappear.
	ext := codegen.ScriptExt(e.project.Settings)
	var stubPaths []string
	for _, nid := range doomed {
		if n := e.project.FindNode(nid); n != nil {
			stubPaths = append(stubPaths, codegen.NodeFilePath(n, ext))
		}
	}

	e.project.Components = deleteComponent(e.project.Components, id)

	nodes := e.project.LogicGraph.Nodes[:0]
	for _, n := range e.project.LogicGraph.Nodes {
		if !doomedSet[n.ID] {
			nodes = append(nodes, n)
		}
	}
	e.project.LogicGraph.Nodes = nodes

	conns := e.project.LogicGraph.Connections[:0]
	for _, conn := range e.project.LogicGraph.Connections {
		if !doomedSet[conn.FromNodeID] && !doomedSet[conn.ToNodeID] {
			conns = append(conns, conn)
		}
	}
	e.project.LogicGraph.Connections = conns

	// Orphaned children are promoted, not deleted.
	for i := range e.project.Components {
		cc := &e.project.Components[i]
		if cc.ParentID == id {
			cc.ParentID = ""
		}
		cc.Children = removeString(cc.Children, id)
		for j := range cc.Events {
			if doomedSet[cc.Events[j].LogicNodeID] {
				cc.Events[j].LogicNodeID = ""
			}
		}
	}
	for i := range e.project.Screens {
		e.project.Screens[i].ComponentIDs = removeString(e.project.Screens[i].ComponentIDs, id)
	}

	if filePath != "" {
		e.removeFile(filePath)
	}
	for _, p := range generated {
		e.removeFile(p)
	}
	for _, p := range stubPaths {
		e.removeFile(p)
	}

	if parentID != "" {
		if parent := e.project.FindComponent(parentID); parent != nil {
			return e.regenerateComponent(parent)
		}
	}
	return nil
}

// mirrorNodeIDs lists logic nodes auto-created from the component's events.
func mirrorNodeIDs(p *model.CTRLProject, componentID string) []string {
	var out []string
	for i := range p.LogicGraph.Nodes {
		if p.LogicGraph.Nodes[i].ComponentID() == componentID {
			out = append(out, p.LogicGraph.Nodes[i].ID)
		}
	}
	return out
}

// ── Logic nodes and connections ──────────────────────────────────────────────

func (e *Engine) applyNodeCreate(p model.NodeCreate) error {
	n := p.Node
	if !n.Type.Valid() {
		return fmt.Errorf("unknown logic node type %q", n.Type)
	}
	if e.project.FindNode(n.ID) != nil {
		return fmt.Errorf("logic node %s already exists", n.ID)
	}
	e.project.LogicGraph.Nodes = append(e.project.LogicGraph.Nodes, n)

	// An event node created from the logic side wires itself to its
	// component's matching event, the inverse of the design-side flow.
	if cid := n.ComponentID(); cid != "" && n.Type == model.NodeEvent {
		if c := e.project.FindComponent(cid); c != nil {
			if et, ok := n.Data.GetString("eventType"); ok {
				wired := false
				for i := range c.Events {
					if string(c.Events[i].Type) == et && c.Events[i].LogicNodeID == "" {
						c.Events[i].LogicNodeID = n.ID
						wired = true
						break
					}
				}
				if !wired && model.EventType(et).Valid() {
					c.Events = append(c.Events, model.ComponentEvent{
						Type:        model.EventType(et),
						LogicNodeID: n.ID,
					})
				}
				c.Modified = time.Now().UTC()
				if err := e.regenerateComponent(c); err != nil {
					return err
				}
			}
		}
	}
	return e.regenerateNodeStub(e.project.FindNode(n.ID), "")
}

func (e *Engine) applyNodeUpdate(p model.NodeUpdate) error {
	n := e.project.FindNode(p.NodeID)
	if n == nil {
		log.Printf("sync: update for missing logic node %s, dropping", p.NodeID)
		return nil
	}
	oldPath := codegen.NodeFilePath(n, codegen.ScriptExt(e.project.Settings))

	u := p.Updates
	if u.Name != nil {
		n.Name = *u.Name
	}
	if u.Position != nil {
		n.Position = *u.Position
	}
	for _, k := range u.Data.SortedKeys() {
		if n.Data == nil {
			n.Data = model.ValueMap{}
		}
		n.Data[k] = u.Data[k]
	}
	n.Modified = time.Now().UTC()
	return e.regenerateNodeStub(n, oldPath)
}

func (e *Engine) applyNodeDelete(p model.NodeDelete) error {
	n := e.project.FindNode(p.NodeID)
	if n == nil {
		log.Printf("sync: delete for missing logic node %s, dropping", p.NodeID)
		return nil
	}
	id := n.ID
	stubPath := codegen.NodeFilePath(n, codegen.ScriptExt(e.project.Settings))

	// Connections die with either endpoint; the surviving peers' stubs
	// carry routing comments that are stale now.
	peers := map[string]bool{}
	conns := e.project.LogicGraph.Connections[:0]
	for _, conn := range e.project.LogicGraph.Connections {
		if conn.FromNodeID == id || conn.ToNodeID == id {
			if conn.FromNodeID != id {
				peers[conn.FromNodeID] = true
			}
			if conn.ToNodeID != id {
				peers[conn.ToNodeID] = true
			}
			continue
		}
		conns = append(conns, conn)
	}
	e.project.LogicGraph.Connections = conns

	nodes := e.project.LogicGraph.Nodes[:0]
	for _, nn := range e.project.LogicGraph.Nodes {
		if nn.ID != id {
			nodes = append(nodes, nn)
		}
	}
	e.project.LogicGraph.Nodes = nodes
	e.removeFile(stubPath)

	// Unwire component events that pointed at the node and refresh.
	for i := range e.project.Components {
		c := &e.project.Components[i]
		touched := false
		for j := range c.Events {
			if c.Events[j].LogicNodeID == id {
				c.Events[j].LogicNodeID = ""
				touched = true
			}
		}
		if touched {
			c.Modified = time.Now().UTC()
			if err := e.regenerateComponent(c); err != nil {
				return err
			}
		}
	}
	for pid := range peers {
		if peer := e.project.FindNode(pid); peer != nil {
			if err := e.regenerateNodeStub(peer, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) applyConnectionCreate(p model.ConnectionCreate) error {
	conn := p.Connection
	from := e.project.FindNode(conn.FromNodeID)
	to := e.project.FindNode(conn.ToNodeID)
	if from == nil || to == nil {
		log.Printf("sync: connection %s references missing node, dropping", conn.ID)
		return nil
	}
	if !conn.Type.Valid() {
		return fmt.Errorf("unknown connection type %q", conn.Type)
	}
	e.project.LogicGraph.Connections = append(e.project.LogicGraph.Connections, conn)
	if err := e.regenerateNodeStub(from, ""); err != nil {
		return err
	}
	return e.regenerateNodeStub(to, "")
}

func (e *Engine) applyConnectionDelete(p model.ConnectionDelete) error {
	idx := -1
	for i, conn := range e.project.LogicGraph.Connections {
		if conn.ID == p.ConnectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("sync: delete for missing connection %s, dropping", p.ConnectionID)
		return nil
	}
	conn := e.project.LogicGraph.Connections[idx]
	e.project.LogicGraph.Connections = append(
		e.project.LogicGraph.Connections[:idx],
		e.project.LogicGraph.Connections[idx+1:]...)

	for _, nid := range []string{conn.FromNodeID, conn.ToNodeID} {
		if n := e.project.FindNode(nid); n != nil {
			if err := e.regenerateNodeStub(n, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// ── Code files ───────────────────────────────────────────────────────────────

func (e *Engine) applyFileCreate(p model.FileCreate) error {
	f := p.File
	if f.Path == "" {
		return fmt.Errorf("code file create with empty path")
	}
	e.upsertFile(f)
	e.parseBack(e.project.FindFileByPath(f.Path))
	return nil
}

func (e *Engine) applyFileUpdate(p model.FileUpdate) error {
	f := e.project.FindFileByPath(p.Path)
	if f == nil {
		log.Printf("sync: update for missing code file %s, dropping", p.Path)
		return nil
	}
	// An editor echoing the file back unchanged is not a hand edit.
	if f.Content == p.Content {
		return nil
	}
	f.Content = p.Content
	f.Size = len(p.Content)
	f.LineCount = countLines(p.Content)
	f.LastModified = time.Now().UTC()

	// Hand-editing a generated component file flips the manual flag, which
	// suppresses future regeneration until the human resolves it.
	if f.Generated {
		if c := e.componentForPath(f.Path); c != nil {
			c.CodeMetadata.ManuallyEdited = true
			c.Modified = time.Now().UTC()
		}
	}
	e.parseBack(f)
	return nil
}

func (e *Engine) applyFileDelete(p model.FileDelete) error {
	if e.project.FindFileByPath(p.Path) == nil {
		log.Printf("sync: delete for missing code file %s, dropping", p.Path)
		return nil
	}
	if c := e.componentForPath(p.Path); c != nil {
		c.CodeMetadata.FilePath = ""
		c.CodeMetadata.GeneratedFiles = removeString(c.CodeMetadata.GeneratedFiles, p.Path)
		c.Modified = time.Now().UTC()
	}
	e.removeFile(p.Path)
	return nil
}

// parseBack lifts structural facts out of an edited file into the owning
// component: props it doesn't know get zero values, handlers it doesn't
// know become unwired events. A failed parse changes nothing.
func (e *Engine) parseBack(f *model.CodeFile) {
	if f == nil {
		return
	}
	ext, ok := codeparse.Parse(f)
	if !ok {
		return
	}
	c := e.componentForPath(f.Path)
	if c == nil && ext.ComponentName != "" {
		for i := range e.project.Components {
			cand := &e.project.Components[i]
			if ext.ComponentName == codegen.PascalName(cand.Name) {
				c = cand
				break
			}
		}
	}
	if c == nil {
		return
	}

	changed := false
	for name, typ := range ext.Props {
		if c.Props == nil {
			c.Props = model.ValueMap{}
		}
		if _, exists := c.Props[name]; !exists {
			c.Props[name] = codeparse.ZeroValueFor(typ)
			changed = true
		}
	}
	for _, h := range ext.Handlers {
		et, ok := codeparse.EventTypeForHandler(h)
		if !ok {
			continue
		}
		found := false
		for _, evt := range c.Events {
			if evt.Type == et {
				found = true
				break
			}
		}
		if !found {
			c.Events = append(c.Events, model.ComponentEvent{Type: et})
			changed = true
		}
	}
	if changed {
		c.Modified = time.Now().UTC()
	}
}

// ── Screens ──────────────────────────────────────────────────────────────────

func (e *Engine) applyScreenCreate(p model.ScreenCreate) error {
	s := p.Screen
	if !s.Type.Valid() {
		return fmt.Errorf("unknown screen type %q", s.Type)
	}
	if e.project.FindScreen(s.ID) != nil {
		return fmt.Errorf("screen %s already exists", s.ID)
	}
	e.project.Screens = append(e.project.Screens, s)
	return nil
}

func (e *Engine) applyScreenUpdate(p model.ScreenUpdate) error {
	s := e.project.FindScreen(p.ScreenID)
	if s == nil {
		log.Printf("sync: update for missing screen %s, dropping", p.ScreenID)
		return nil
	}
	if p.Updates.Name != nil {
		s.Name = *p.Updates.Name
	}
	if p.Updates.ComponentIDs != nil {
		s.ComponentIDs = p.Updates.ComponentIDs
	}
	s.Modified = time.Now().UTC()
	return nil
}

func (e *Engine) applyScreenDelete(p model.ScreenDelete) error {
	idx := -1
	for i := range e.project.Screens {
		if e.project.Screens[i].ID == p.ScreenID {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Printf("sync: delete for missing screen %s, dropping", p.ScreenID)
		return nil
	}
	e.project.Screens = append(e.project.Screens[:idx], e.project.Screens[idx+1:]...)
	for i := range e.project.Components {
		if e.project.Components[i].ScreenID == p.ScreenID {
			e.project.Components[i].ScreenID = ""
		}
	}
	return nil
}

// ── Settings ─────────────────────────────────────────────────────────────────

// applySettingsUpdate swaps the generation target and regenerates every
// generated file from scratch. Stale generated files from the previous
// target are dropped first; manually edited components keep their files
// and surface as conflicts instead.
func (e *Engine) applySettingsUpdate(p model.SettingsUpdate) error {
	gen, err := codegen.ForFramework(p.Settings.Framework)
	if err != nil {
		return err
	}

	kept := e.project.CodeModel.Files[:0]
	for _, f := range e.project.CodeModel.Files {
		if !f.Generated || e.manuallyEditedPath(f.Path) {
			kept = append(kept, f)
		}
	}
	e.project.CodeModel.Files = kept

	e.project.Settings = p.Settings
	e.gen = gen

	for i := range e.project.Components {
		c := &e.project.Components[i]
		if !c.CodeMetadata.ManuallyEdited {
			c.CodeMetadata.FilePath = ""
			c.CodeMetadata.GeneratedFiles = nil
		}
		if err := e.regenerateComponent(c); err != nil {
			return err
		}
	}
	for i := range e.project.LogicGraph.Nodes {
		if err := e.regenerateNodeStub(&e.project.LogicGraph.Nodes[i], ""); err != nil {
			return err
		}
	}
	return e.ensureRuntimeFiles()
}

func (e *Engine) manuallyEditedPath(path string) bool {
	c := e.componentForPath(path)
	return c != nil && c.CodeMetadata.ManuallyEdited
}

// ── Regeneration ─────────────────────────────────────────────────────────────

// regenerateComponent rewrites the component's source file in place. A
// manually edited component is never overwritten; the suppressed pass is
// recorded as a conflict for the UI to surface.
func (e *Engine) regenerateComponent(c *model.UIComponent) error {
	if c.CodeMetadata.ManuallyEdited {
		e.conflicts = append(e.conflicts, model.CodeConflict{
			ComponentID: c.ID,
			Path:        c.CodeMetadata.FilePath,
			Reason:      "component is marked manually edited; regeneration skipped",
			DetectedAt:  time.Now().UTC(),
		})
		log.Printf("sync: skipping regeneration of manually edited component %s (%s)", c.Name, c.ID)
		return nil
	}

	f, err := e.gen.Component(c, e.genCtx())
	if err != nil {
		return fmt.Errorf("generating component %s: %w", c.ID, err)
	}
	if old := c.CodeMetadata.FilePath; old != "" && old != f.Path {
		e.removeFile(old)
	}
	e.upsertFile(f)

	c.CodeMetadata.FilePath = f.Path
	c.CodeMetadata.GeneratedFiles = []string{f.Path}
	c.CodeMetadata.LastGenerated = time.Now().UTC()
	return nil
}

// regenerateNodeStub rewrites a node's logic stub. oldPath, when non-empty
// and different, is removed first (a rename).
func (e *Engine) regenerateNodeStub(n *model.LogicNode, oldPath string) error {
	if n == nil {
		return nil
	}
	f, err := e.gen.LogicNode(n, e.genCtx())
	if err != nil {
		return fmt.Errorf("generating stub for node %s: %w", n.ID, err)
	}
	if oldPath != "" && oldPath != f.Path {
		e.removeFile(oldPath)
	}
	e.upsertFile(f)
	return nil
}

func (e *Engine) ensureRuntimeFiles() error {
	for _, f := range codegen.RuntimeFiles(e.project.Settings) {
		e.upsertFile(f)
	}
	return nil
}

// upsertFile replaces the file at f.Path in place, preserving the existing
// entry's id so external references stay stable, or appends a new entry.
func (e *Engine) upsertFile(f model.CodeFile) {
	if existing := e.project.FindFileByPath(f.Path); existing != nil {
		f.ID = existing.ID
		*existing = f
		return
	}
	e.project.CodeModel.Files = append(e.project.CodeModel.Files, f)
}

func (e *Engine) removeFile(path string) {
	for i := range e.project.CodeModel.Files {
		if e.project.CodeModel.Files[i].Path == path {
			e.project.CodeModel.Files = append(
				e.project.CodeModel.Files[:i],
				e.project.CodeModel.Files[i+1:]...)
			return
		}
	}
}

// componentForPath finds the component whose generated file lives at path.
func (e *Engine) componentForPath(path string) *model.UIComponent {
	for i := range e.project.Components {
		c := &e.project.Components[i]
		if c.CodeMetadata.FilePath == path {
			return c
		}
		for _, g := range c.CodeMetadata.GeneratedFiles {
			if g == path {
				return c
			}
		}
	}
	return nil
}

func deleteComponent(cs []model.UIComponent, id string) []model.UIComponent {
	for i := range cs {
		if cs[i].ID == id {
			return append(cs[:i], cs[i+1:]...)
		}
	}
	return cs
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, v := range ss {
		if v != s {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
		}
	}
	return n
}

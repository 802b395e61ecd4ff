// Package model defines the canonical in-memory representation of a CTRL
// project: screens, UI components, the logic graph, and the code model.
// These are pure data structures; behavior lives in the sync engine and
// the code generators. All entity references are scoped to one project.
package model

import (
	"encoding/json"
	"time"
)

// CTRLProject is the root aggregate. It exclusively owns every other entity;
// exactly one project is live per editing session.
type CTRLProject struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Screens    []Screen        `json:"screens"`
	Components []UIComponent   `json:"components"`
	LogicGraph LogicGraph      `json:"logic_graph"`
	CodeModel  CodeModel       `json:"code_model"`
	Settings   ProjectSettings `json:"settings"`

	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// ProjectSettings selects the code generation target.
type ProjectSettings struct {
	Framework Framework     `json:"framework"`
	Language  Language      `json:"language"`
	Styling   StylingSystem `json:"styling"`
}

// Dependency is one entry in the project's dependency manifest.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dev     bool   `json:"dev,omitempty"`
}

// Screen is a top-level view that owns an ordered set of components.
// ComponentIDs may dangle after out-of-order edits; the validator flags
// dangling entries as warnings, not errors.
type Screen struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         ScreenType `json:"type"`
	ComponentIDs []string   `json:"component_ids,omitempty"`
	Created      time.Time  `json:"created"`
	Modified     time.Time  `json:"modified"`
}

// Point is a canvas position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform holds optional layout transforms.
type Transform struct {
	Rotation float64 `json:"rotation,omitempty"`
	ScaleX   float64 `json:"scale_x,omitempty"`
	ScaleY   float64 `json:"scale_y,omitempty"`
}

// Styling holds the visual attributes code generation consumes. Length
// values ("8px", "1rem", bare "8") are kept as strings; bare numbers are
// treated as pixels when emitted.
type Styling struct {
	Background   string            `json:"background,omitempty"`
	Color        string            `json:"color,omitempty"`
	Border       string            `json:"border,omitempty"`
	BorderRadius string            `json:"border_radius,omitempty"`
	Padding      string            `json:"padding,omitempty"`
	Margin       string            `json:"margin,omitempty"`
	FontSize     string            `json:"font_size,omitempty"`
	FontWeight   string            `json:"font_weight,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// ComponentEvent binds a UI event to behavior: either a logic node (by id)
// or a verbatim handler string. LogicNodeID wins when both are set.
type ComponentEvent struct {
	Type        EventType `json:"type"`
	LogicNodeID string    `json:"logic_node_id,omitempty"`
	Handler     string    `json:"handler,omitempty"`
}

// CodeMetadata tracks the generated artifacts belonging to a component and
// whether a human has hand-edited them. When ManuallyEdited is set,
// regeneration must not silently overwrite (see CodeConflict).
type CodeMetadata struct {
	FilePath       string    `json:"file_path,omitempty"`
	GeneratedFiles []string  `json:"generated_files,omitempty"`
	ManuallyEdited bool      `json:"manually_edited,omitempty"`
	LastGenerated  time.Time `json:"last_generated,omitzero"`
}

// UIComponent is a positioned, styled visual element.
//
// Invariants: ParentID, if set, references an existing component; ScreenID,
// if set, references an existing screen; every id in Children is a component
// whose ParentID equals this component's ID.
type UIComponent struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     ComponentType `json:"type"`
	ParentID string        `json:"parent_id,omitempty"`
	ScreenID string        `json:"screen_id,omitempty"`

	Position  Point      `json:"position"`
	Size      Size       `json:"size"`
	Transform *Transform `json:"transform,omitempty"`
	Styling   Styling    `json:"styling"`

	Props  ValueMap         `json:"props,omitempty"`
	State  ValueMap         `json:"state,omitempty"`
	Events []ComponentEvent `json:"events,omitempty"`

	Children []string `json:"children,omitempty"`
	Locked   bool     `json:"locked,omitempty"`
	Visible  bool     `json:"visible"`
	ZIndex   int      `json:"z_index,omitempty"`

	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	CodeMetadata CodeMetadata `json:"code_metadata"`
}

// LogicGraph holds the visual-programming projection of the project.
type LogicGraph struct {
	Nodes       []LogicNode       `json:"nodes"`
	Connections []LogicConnection `json:"connections"`
	Variables   []LogicVariable   `json:"variables"`
	Functions   []LogicFunction   `json:"functions"`
}

// LogicPort is a typed input or output on a logic node.
type LogicPort struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"data_type"` // "execution", "string", "number", "boolean", "any"
}

// LogicNode is one unit of visual-logic behavior.
//
// Invariant: a node auto-created to mirror a component event carries
// Data["componentId"] pointing at a live component; deleting that component
// deletes the node.
type LogicNode struct {
	ID       string        `json:"id"`
	Type     LogicNodeType `json:"type"`
	Name     string        `json:"name"`
	Position Point         `json:"position"`
	Size     Size          `json:"size"`
	Data     ValueMap      `json:"data,omitempty"`
	Inputs   []LogicPort   `json:"inputs,omitempty"`
	Outputs  []LogicPort   `json:"outputs,omitempty"`
	Created  time.Time     `json:"created"`
	Modified time.Time     `json:"modified"`
}

// ComponentID returns the owning component id for nodes auto-created from
// component events, or "" for free-standing nodes.
func (n *LogicNode) ComponentID() string {
	s, _ := n.Data.GetString("componentId")
	return s
}

// LogicConnection is a directed edge between two node ports. Both referenced
// nodes must exist; a connection is deleted in the same transaction that
// deletes either endpoint.
type LogicConnection struct {
	ID         string         `json:"id"`
	FromNodeID string         `json:"from_node_id"`
	FromPortID string         `json:"from_port_id"`
	ToNodeID   string         `json:"to_node_id"`
	ToPortID   string         `json:"to_port_id"`
	Type       ConnectionType `json:"type"`
}

// LogicVariable is a named, typed value in the logic graph.
type LogicVariable struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"` // "string", "number", "boolean", "list", "map"
	Initial Value  `json:"initial"`
}

// LogicFunction is a reusable group of nodes callable from the graph.
type LogicFunction struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Parameters []LogicPort `json:"parameters,omitempty"`
	ReturnType string      `json:"return_type,omitempty"`
	NodeIDs    []string    `json:"node_ids,omitempty"`
}

// CodeModel is the generated-source projection of the project.
type CodeModel struct {
	Files       []CodeFile        `json:"files"`
	EntryPoint  string            `json:"entry_point,omitempty"`
	BuildConfig map[string]string `json:"build_config,omitempty"`
}

// CodeFile is one tracked source file. Path is unique within the project.
// Generated files are fully overwritten on regeneration unless the owning
// component is marked manually edited.
type CodeFile struct {
	ID           string    `json:"id"`
	Path         string    `json:"path"`
	Content      string    `json:"content"`
	Generated    bool      `json:"generated"`
	Editable     bool      `json:"editable"`
	Imports      []string  `json:"imports,omitempty"`
	Exports      []string  `json:"exports,omitempty"`
	Size         int       `json:"size"`
	LineCount    int       `json:"line_count"`
	LastModified time.Time `json:"last_modified"`
}

// CodeConflict records a regeneration that was suppressed because the
// target file's component is marked manually edited.
type CodeConflict struct {
	ComponentID string    `json:"component_id"`
	Path        string    `json:"path"`
	Reason      string    `json:"reason"`
	DetectedAt  time.Time `json:"detected_at"`
}

// SyncEvent is the ephemeral, typed description of one change. It is
// constructed by a SyncFrom* call, consumed synchronously by the engine,
// broadcast to listeners, and never persisted as project state.
type SyncEvent struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	UserID        string        `json:"user_id"`
	Type          SyncEventType `json:"type"`
	Data          any           `json:"data"`
	AffectedModes []Mode        `json:"affected_modes"`
}

// ChangeType is the caller-facing create/update/delete discriminator used
// by the SyncFrom* entry points.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

var changeTypes = map[ChangeType]bool{
	ChangeCreate: true, ChangeUpdate: true, ChangeDelete: true,
}

// Valid reports whether t is a known change type.
func (t ChangeType) Valid() bool { return changeTypes[t] }

func (t *ChangeType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "change type", t, changeTypes)
}

// ── Event payloads ───────────────────────────────────────────────────────────

// ComponentCreate is the payload of a component.create event.
type ComponentCreate struct {
	Component UIComponent `json:"component"`
}

// ComponentUpdate is the payload of a component.update event. Nil pointer
// fields are left untouched; non-nil ones are merged into the component.
type ComponentUpdate struct {
	ComponentID string          `json:"component_id"`
	Updates     ComponentPatch  `json:"updates"`
}

// ComponentPatch is a partial component used for merging updates.
type ComponentPatch struct {
	Name     *string           `json:"name,omitempty"`
	ParentID *string           `json:"parent_id,omitempty"`
	ScreenID *string           `json:"screen_id,omitempty"`
	Position *Point            `json:"position,omitempty"`
	Size     *Size             `json:"size,omitempty"`
	Styling  *Styling          `json:"styling,omitempty"`
	Props    ValueMap          `json:"props,omitempty"`
	State    ValueMap          `json:"state,omitempty"`
	Events   []ComponentEvent  `json:"events,omitempty"`
	Visible  *bool             `json:"visible,omitempty"`
	Locked   *bool             `json:"locked,omitempty"`
	ZIndex   *int              `json:"z_index,omitempty"`
}

// ComponentDelete is the payload of a component.delete event.
type ComponentDelete struct {
	ComponentID string `json:"component_id"`
}

// NodeCreate is the payload of a logic.node.create event.
type NodeCreate struct {
	Node LogicNode `json:"node"`
}

// NodeUpdate is the payload of a logic.node.update event.
type NodeUpdate struct {
	NodeID  string    `json:"node_id"`
	Updates NodePatch `json:"updates"`
}

// NodePatch is a partial logic node used for merging updates.
type NodePatch struct {
	Name     *string  `json:"name,omitempty"`
	Position *Point   `json:"position,omitempty"`
	Data     ValueMap `json:"data,omitempty"`
}

// NodeDelete is the payload of a logic.node.delete event.
type NodeDelete struct {
	NodeID string `json:"node_id"`
}

// ConnectionCreate is the payload of a logic.connection.create event.
type ConnectionCreate struct {
	Connection LogicConnection `json:"connection"`
}

// ConnectionDelete is the payload of a logic.connection.delete event.
type ConnectionDelete struct {
	ConnectionID string `json:"connection_id"`
}

// FileCreate is the payload of a code.file.create event.
type FileCreate struct {
	File CodeFile `json:"file"`
}

// FileUpdate is the payload of a code.file.update event. The file is
// addressed by path, the code model's unique key.
type FileUpdate struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FileDelete is the payload of a code.file.delete event.
type FileDelete struct {
	Path string `json:"path"`
}

// ScreenCreate is the payload of a screen.create event.
type ScreenCreate struct {
	Screen Screen `json:"screen"`
}

// ScreenUpdate is the payload of a screen.update event.
type ScreenUpdate struct {
	ScreenID string      `json:"screen_id"`
	Updates  ScreenPatch `json:"updates"`
}

// ScreenPatch is a partial screen used for merging updates.
type ScreenPatch struct {
	Name         *string  `json:"name,omitempty"`
	ComponentIDs []string `json:"component_ids,omitempty"`
}

// ScreenDelete is the payload of a screen.delete event.
type ScreenDelete struct {
	ScreenID string `json:"screen_id"`
}

// SettingsUpdate is the payload of a project.settings.update event.
type SettingsUpdate struct {
	Settings ProjectSettings `json:"settings"`
}

// ── Lookup helpers ───────────────────────────────────────────────────────────

// FindComponent returns a pointer into Components for the given id, or nil.
func (p *CTRLProject) FindComponent(id string) *UIComponent {
	for i := range p.Components {
		if p.Components[i].ID == id {
			return &p.Components[i]
		}
	}
	return nil
}

// FindScreen returns a pointer into Screens for the given id, or nil.
func (p *CTRLProject) FindScreen(id string) *Screen {
	for i := range p.Screens {
		if p.Screens[i].ID == id {
			return &p.Screens[i]
		}
	}
	return nil
}

// FindNode returns a pointer into LogicGraph.Nodes for the given id, or nil.
func (p *CTRLProject) FindNode(id string) *LogicNode {
	for i := range p.LogicGraph.Nodes {
		if p.LogicGraph.Nodes[i].ID == id {
			return &p.LogicGraph.Nodes[i]
		}
	}
	return nil
}

// FindFileByPath returns a pointer into CodeModel.Files for the given path,
// or nil. Path is the unique key for code files.
func (p *CTRLProject) FindFileByPath(path string) *CodeFile {
	for i := range p.CodeModel.Files {
		if p.CodeModel.Files[i].Path == path {
			return &p.CodeModel.Files[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the project via its canonical JSON form.
func (p *CTRLProject) Clone() (*CTRLProject, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out CTRLProject
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func newID() string { return uuid.New().String() }

// NewProject creates an empty project with default settings.
func NewProject(name string) *CTRLProject {
	now := time.Now().UTC()
	return &CTRLProject{
		ID:       newID(),
		Name:     name,
		Version:  "1.0.0",
		Created:  now,
		Modified: now,
		Screens:  []Screen{},
		Components: []UIComponent{},
		LogicGraph: LogicGraph{
			Nodes:       []LogicNode{},
			Connections: []LogicConnection{},
			Variables:   []LogicVariable{},
			Functions:   []LogicFunction{},
		},
		CodeModel: CodeModel{Files: []CodeFile{}},
		Settings: ProjectSettings{
			Framework: FrameworkReact,
			Language:  LanguageTypeScript,
			Styling:   StylingTailwind,
		},
	}
}

// NewScreen creates a screen with a generated id and current timestamps.
func NewScreen(name string, t ScreenType) (Screen, error) {
	if !t.Valid() {
		return Screen{}, fmt.Errorf("unknown screen type %q", t)
	}
	now := time.Now().UTC()
	return Screen{
		ID:       newID(),
		Name:     name,
		Type:     t,
		Created:  now,
		Modified: now,
	}, nil
}

// NewComponent creates a component of the given type at the given position,
// with default size, styling and props taken from the per-type defaults
// table. Unknown types are rejected.
func NewComponent(t ComponentType, pos Point) (UIComponent, error) {
	d, err := DefaultsFor(t)
	if err != nil {
		return UIComponent{}, err
	}
	now := time.Now().UTC()
	return UIComponent{
		ID:       newID(),
		Name:     defaultComponentName(t),
		Type:     t,
		Position: pos,
		Size:     d.Size,
		Styling:  d.Styling,
		Props:    d.Props,
		State:    ValueMap{},
		Visible:  true,
		Created:  now,
		Modified: now,
	}, nil
}

func defaultComponentName(t ComponentType) string {
	s := string(t)
	return string(s[0]-'a'+'A') + s[1:]
}

// nodePorts maps each logic node type to its default input/output ports.
// Port ids are stable per type so connections survive regeneration.
var nodePorts = map[LogicNodeType]struct{ in, out []LogicPort }{
	NodeEvent: {
		out: []LogicPort{{ID: "exec-out", Name: "then", DataType: "execution"}},
	},
	NodeCondition: {
		in: []LogicPort{
			{ID: "exec-in", Name: "exec", DataType: "execution"},
			{ID: "value-in", Name: "value", DataType: "boolean"},
		},
		out: []LogicPort{
			{ID: "true-out", Name: "true", DataType: "execution"},
			{ID: "false-out", Name: "false", DataType: "execution"},
		},
	},
	NodeAction: {
		in:  []LogicPort{{ID: "exec-in", Name: "exec", DataType: "execution"}},
		out: []LogicPort{{ID: "exec-out", Name: "then", DataType: "execution"}},
	},
	NodeVariable: {
		out: []LogicPort{{ID: "value-out", Name: "value", DataType: "any"}},
	},
	NodeFunction: {
		in:  []LogicPort{{ID: "exec-in", Name: "exec", DataType: "execution"}},
		out: []LogicPort{
			{ID: "exec-out", Name: "then", DataType: "execution"},
			{ID: "result-out", Name: "result", DataType: "any"},
		},
	},
	NodeAPICall: {
		in: []LogicPort{{ID: "exec-in", Name: "exec", DataType: "execution"}},
		out: []LogicPort{
			{ID: "success-out", Name: "success", DataType: "execution"},
			{ID: "error-out", Name: "error", DataType: "execution"},
			{ID: "response-out", Name: "response", DataType: "any"},
		},
	},
	NodeNavigation: {
		in: []LogicPort{{ID: "exec-in", Name: "exec", DataType: "execution"}},
	},
	NodeStateChange: {
		in: []LogicPort{
			{ID: "exec-in", Name: "exec", DataType: "execution"},
			{ID: "value-in", Name: "value", DataType: "any"},
		},
		out: []LogicPort{{ID: "exec-out", Name: "then", DataType: "execution"}},
	},
	NodeTimer: {
		in:  []LogicPort{{ID: "exec-in", Name: "start", DataType: "execution"}},
		out: []LogicPort{{ID: "exec-out", Name: "elapsed", DataType: "execution"}},
	},
	NodeMathOperation: {
		in: []LogicPort{
			{ID: "a-in", Name: "a", DataType: "number"},
			{ID: "b-in", Name: "b", DataType: "number"},
		},
		out: []LogicPort{{ID: "result-out", Name: "result", DataType: "number"}},
	},
	NodeLoop: {
		in: []LogicPort{
			{ID: "exec-in", Name: "exec", DataType: "execution"},
			{ID: "items-in", Name: "items", DataType: "any"},
		},
		out: []LogicPort{
			{ID: "body-out", Name: "body", DataType: "execution"},
			{ID: "done-out", Name: "done", DataType: "execution"},
		},
	},
	NodeDataTransform: {
		in:  []LogicPort{{ID: "value-in", Name: "value", DataType: "any"}},
		out: []LogicPort{{ID: "value-out", Name: "value", DataType: "any"}},
	},
}

// NewLogicNode creates a node of the given type at the given position with
// that type's default ports. Unknown types are rejected.
func NewLogicNode(t LogicNodeType, pos Point) (LogicNode, error) {
	ports, ok := nodePorts[t]
	if !ok {
		return LogicNode{}, fmt.Errorf("unknown logic node type %q", t)
	}
	now := time.Now().UTC()
	return LogicNode{
		ID:       newID(),
		Type:     t,
		Name:     string(t),
		Position: pos,
		Size:     Size{Width: 180, Height: 80},
		Data:     ValueMap{},
		Inputs:   clonePorts(ports.in),
		Outputs:  clonePorts(ports.out),
		Created:  now,
		Modified: now,
	}, nil
}

func clonePorts(ps []LogicPort) []LogicPort {
	if ps == nil {
		return nil
	}
	out := make([]LogicPort, len(ps))
	copy(out, ps)
	return out
}

// NewEventNode creates the logic node that mirrors one component event.
func NewEventNode(c *UIComponent, evt EventType, pos Point) (LogicNode, error) {
	n, err := NewLogicNode(NodeEvent, pos)
	if err != nil {
		return LogicNode{}, err
	}
	n.Name = fmt.Sprintf("%s.%s", c.Name, evt)
	n.Data = ValueMap{
		"componentId": String(c.ID),
		"eventType":   String(string(evt)),
	}
	return n, nil
}

// NewCodeFile creates a code file entry with derived size and line count.
func NewCodeFile(path, content string, generated bool) CodeFile {
	return CodeFile{
		ID:           newID(),
		Path:         path,
		Content:      content,
		Generated:    generated,
		Editable:     !generated,
		Size:         len(content),
		LineCount:    countLines(content),
		LastModified: time.Now().UTC(),
	}
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

// NewSyncEvent constructs an ephemeral sync event.
func NewSyncEvent(t SyncEventType, userID string, data any, modes ...Mode) SyncEvent {
	return SyncEvent{
		ID:            newID(),
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		Type:          t,
		Data:          data,
		AffectedModes: modes,
	}
}

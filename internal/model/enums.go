package model

import (
	"encoding/json"
	"fmt"
)

// ComponentType classifies a UIComponent. The set is closed: unmarshaling an
// unknown value is a deserialization error, not a silent acceptance.
type ComponentType string

const (
	ComponentContainer ComponentType = "container"
	ComponentText      ComponentType = "text"
	ComponentButton    ComponentType = "button"
	ComponentInput     ComponentType = "input"
	ComponentImage     ComponentType = "image"
	ComponentVideo     ComponentType = "video"
	ComponentList      ComponentType = "list"
	ComponentGrid      ComponentType = "grid"
	ComponentCard      ComponentType = "card"
	ComponentModal     ComponentType = "modal"
	ComponentDropdown  ComponentType = "dropdown"
	ComponentTabs      ComponentType = "tabs"
	ComponentForm      ComponentType = "form"
	ComponentTable     ComponentType = "table"
	ComponentChart     ComponentType = "chart"
	ComponentCustom    ComponentType = "custom"
)

var componentTypes = map[ComponentType]bool{
	ComponentContainer: true, ComponentText: true, ComponentButton: true,
	ComponentInput: true, ComponentImage: true, ComponentVideo: true,
	ComponentList: true, ComponentGrid: true, ComponentCard: true,
	ComponentModal: true, ComponentDropdown: true, ComponentTabs: true,
	ComponentForm: true, ComponentTable: true, ComponentChart: true,
	ComponentCustom: true,
}

// Valid reports whether t is a known component type.
func (t ComponentType) Valid() bool { return componentTypes[t] }

func (t *ComponentType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "component type", t, componentTypes)
}

// LogicNodeType classifies a LogicNode.
type LogicNodeType string

const (
	NodeEvent         LogicNodeType = "event"
	NodeCondition     LogicNodeType = "condition"
	NodeAction        LogicNodeType = "action"
	NodeVariable      LogicNodeType = "variable"
	NodeFunction      LogicNodeType = "function"
	NodeAPICall       LogicNodeType = "apiCall"
	NodeNavigation    LogicNodeType = "navigation"
	NodeStateChange   LogicNodeType = "stateChange"
	NodeTimer         LogicNodeType = "timer"
	NodeMathOperation LogicNodeType = "mathOperation"
	NodeLoop          LogicNodeType = "loop"
	NodeDataTransform LogicNodeType = "dataTransform"
)

var logicNodeTypes = map[LogicNodeType]bool{
	NodeEvent: true, NodeCondition: true, NodeAction: true,
	NodeVariable: true, NodeFunction: true, NodeAPICall: true,
	NodeNavigation: true, NodeStateChange: true, NodeTimer: true,
	NodeMathOperation: true, NodeLoop: true, NodeDataTransform: true,
}

// Valid reports whether t is a known logic node type.
func (t LogicNodeType) Valid() bool { return logicNodeTypes[t] }

func (t *LogicNodeType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "logic node type", t, logicNodeTypes)
}

// EventType is a UI event a component may respond to.
type EventType string

const (
	EventClick  EventType = "click"
	EventChange EventType = "change"
	EventSubmit EventType = "submit"
	EventHover  EventType = "hover"
	EventFocus  EventType = "focus"
	EventBlur   EventType = "blur"
	EventLoad   EventType = "load"
	EventCustom EventType = "custom"
)

var eventTypes = map[EventType]bool{
	EventClick: true, EventChange: true, EventSubmit: true, EventHover: true,
	EventFocus: true, EventBlur: true, EventLoad: true, EventCustom: true,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool { return eventTypes[t] }

func (t *EventType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "event type", t, eventTypes)
}

// ConnectionType classifies a LogicConnection edge.
type ConnectionType string

const (
	ConnectionData      ConnectionType = "data"
	ConnectionExecution ConnectionType = "execution"
	ConnectionEvent     ConnectionType = "event"
)

var connectionTypes = map[ConnectionType]bool{
	ConnectionData: true, ConnectionExecution: true, ConnectionEvent: true,
}

// Valid reports whether t is a known connection type.
func (t ConnectionType) Valid() bool { return connectionTypes[t] }

func (t *ConnectionType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "connection type", t, connectionTypes)
}

// ScreenType classifies a Screen.
type ScreenType string

const (
	ScreenPage    ScreenType = "page"
	ScreenModal   ScreenType = "modal"
	ScreenOverlay ScreenType = "overlay"
)

var screenTypes = map[ScreenType]bool{
	ScreenPage: true, ScreenModal: true, ScreenOverlay: true,
}

// Valid reports whether t is a known screen type.
func (t ScreenType) Valid() bool { return screenTypes[t] }

func (t *ScreenType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "screen type", t, screenTypes)
}

// Framework is a code generation target.
type Framework string

const (
	FrameworkReact   Framework = "react"
	FrameworkVue     Framework = "vue"
	FrameworkAngular Framework = "angular"
)

var frameworks = map[Framework]bool{
	FrameworkReact: true, FrameworkVue: true, FrameworkAngular: true,
}

// Valid reports whether f is a known framework.
func (f Framework) Valid() bool { return frameworks[f] }

func (f *Framework) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "framework", f, frameworks)
}

// Language is a code generation output language.
type Language string

const (
	LanguageTypeScript Language = "typescript"
	LanguageJavaScript Language = "javascript"
)

var languages = map[Language]bool{
	LanguageTypeScript: true, LanguageJavaScript: true,
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool { return languages[l] }

func (l *Language) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "language", l, languages)
}

// StylingSystem selects how generated components express their styling.
type StylingSystem string

const (
	StylingTailwind StylingSystem = "tailwind"
	StylingCSS      StylingSystem = "css"
	StylingInline   StylingSystem = "inline"
)

var stylingSystems = map[StylingSystem]bool{
	StylingTailwind: true, StylingCSS: true, StylingInline: true,
}

// Valid reports whether s is a known styling system.
func (s StylingSystem) Valid() bool { return stylingSystems[s] }

func (s *StylingSystem) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "styling system", s, stylingSystems)
}

// SyncEventType identifies one kind of model change.
type SyncEventType string

const (
	EventComponentCreate       SyncEventType = "component.create"
	EventComponentUpdate       SyncEventType = "component.update"
	EventComponentDelete       SyncEventType = "component.delete"
	EventLogicNodeCreate       SyncEventType = "logic.node.create"
	EventLogicNodeUpdate       SyncEventType = "logic.node.update"
	EventLogicNodeDelete       SyncEventType = "logic.node.delete"
	EventLogicConnectionCreate SyncEventType = "logic.connection.create"
	EventLogicConnectionDelete SyncEventType = "logic.connection.delete"
	EventCodeFileCreate        SyncEventType = "code.file.create"
	EventCodeFileUpdate        SyncEventType = "code.file.update"
	EventCodeFileDelete        SyncEventType = "code.file.delete"
	EventScreenCreate          SyncEventType = "screen.create"
	EventScreenUpdate          SyncEventType = "screen.update"
	EventScreenDelete          SyncEventType = "screen.delete"
	EventSettingsUpdate        SyncEventType = "project.settings.update"
)

var syncEventTypes = map[SyncEventType]bool{
	EventComponentCreate: true, EventComponentUpdate: true, EventComponentDelete: true,
	EventLogicNodeCreate: true, EventLogicNodeUpdate: true, EventLogicNodeDelete: true,
	EventLogicConnectionCreate: true, EventLogicConnectionDelete: true,
	EventCodeFileCreate: true, EventCodeFileUpdate: true, EventCodeFileDelete: true,
	EventScreenCreate: true, EventScreenUpdate: true, EventScreenDelete: true,
	EventSettingsUpdate: true,
}

// Valid reports whether t is a known sync event type.
func (t SyncEventType) Valid() bool { return syncEventTypes[t] }

func (t *SyncEventType) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "sync event type", t, syncEventTypes)
}

// Mode is one of the three editable projections.
type Mode string

const (
	ModeDesign Mode = "design"
	ModeLogic  Mode = "logic"
	ModeCode   Mode = "code"
)

var modes = map[Mode]bool{ModeDesign: true, ModeLogic: true, ModeCode: true}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return modes[m] }

func (m *Mode) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "mode", m, modes)
}

// unmarshalEnum decodes a JSON string into an enum type, rejecting values
// outside the known set.
func unmarshalEnum[T ~string](b []byte, kind string, dst *T, known map[T]bool) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding %s: %w", kind, err)
	}
	v := T(s)
	if !known[v] {
		return fmt.Errorf("unknown %s %q", kind, s)
	}
	*dst = v
	return nil
}

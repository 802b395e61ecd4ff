package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnums_RejectUnknownValues(t *testing.T) {
	var ct ComponentType
	err := json.Unmarshal([]byte(`"hologram"`), &ct)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hologram")

	var f Framework
	require.Error(t, json.Unmarshal([]byte(`"svelte"`), &f))

	var et EventType
	require.NoError(t, json.Unmarshal([]byte(`"click"`), &et))
	assert.Equal(t, EventClick, et)

	var st SyncEventType
	require.NoError(t, json.Unmarshal([]byte(`"component.create"`), &st))
	assert.Equal(t, EventComponentCreate, st)
	require.Error(t, json.Unmarshal([]byte(`"component.explode"`), &st))
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, ComponentButton.Valid())
	assert.False(t, ComponentType("hologram").Valid())
	assert.True(t, NodeAPICall.Valid())
	assert.False(t, LogicNodeType("teleport").Valid())
	assert.True(t, ModeDesign.Valid())
	assert.False(t, Mode("debug").Valid())
}

func TestValue_JSONRoundTrip(t *testing.T) {
	m := ValueMap{
		"label":    String("Save"),
		"count":    Number(3),
		"enabled":  Bool(true),
		"tags":     ListOf(String("a"), String("b")),
		"nested":   MapOf(ValueMap{"x": Number(1)}),
		"optional": Null(),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got ValueMap
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, m["label"].Equal(got["label"]))
	assert.True(t, m["count"].Equal(got["count"]))
	assert.True(t, m["enabled"].Equal(got["enabled"]))
	assert.True(t, m["tags"].Equal(got["tags"]))
	assert.True(t, m["nested"].Equal(got["nested"]))
	assert.True(t, m["optional"].Equal(got["optional"]))
}

func TestValue_NaturalJSONForm(t *testing.T) {
	data, err := json.Marshal(ValueMap{"label": String("Save"), "count": Number(3)})
	require.NoError(t, err)
	// Values serialize as plain JSON, not as tagged wrappers.
	assert.JSONEq(t, `{"label":"Save","count":3}`, string(data))
}

func TestValueMap_SortedKeys(t *testing.T) {
	m := ValueMap{"zeta": Null(), "alpha": Null(), "mid": Null()}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, m.SortedKeys())
}

func TestDefaults_CoverEveryComponentType(t *testing.T) {
	for _, ct := range []ComponentType{
		ComponentContainer, ComponentText, ComponentButton, ComponentInput,
		ComponentImage, ComponentVideo, ComponentList, ComponentGrid,
		ComponentCard, ComponentModal, ComponentDropdown, ComponentTabs,
		ComponentForm, ComponentTable, ComponentChart, ComponentCustom,
	} {
		d, err := DefaultsFor(ct)
		require.NoError(t, err, "defaults for %s", ct)
		assert.NotZero(t, d.Size.Width, "width for %s", ct)
		assert.NotZero(t, d.Size.Height, "height for %s", ct)
	}

	_, err := DefaultsFor(ComponentType("hologram"))
	require.Error(t, err)
}

func TestDefaults_ButtonShape(t *testing.T) {
	d, err := DefaultsFor(ComponentButton)
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 120, Height: 40}, d.Size)
	label, ok := d.Props.GetString("label")
	require.True(t, ok)
	assert.Equal(t, "Button", label)
}

func TestDefaults_PropsAreCopies(t *testing.T) {
	a, err := DefaultsFor(ComponentButton)
	require.NoError(t, err)
	a.Props["label"] = String("Mutated")

	b, err := DefaultsFor(ComponentButton)
	require.NoError(t, err)
	label, _ := b.Props.GetString("label")
	assert.Equal(t, "Button", label)
}

func TestNewComponent(t *testing.T) {
	c, err := NewComponent(ComponentButton, Point{X: 5, Y: 6})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Button", c.Name)
	assert.Equal(t, Point{X: 5, Y: 6}, c.Position)
	assert.True(t, c.Visible)
	assert.False(t, c.Created.IsZero())

	_, err = NewComponent(ComponentType("hologram"), Point{})
	require.Error(t, err)
}

func TestNewLogicNode_PortsByType(t *testing.T) {
	n, err := NewLogicNode(NodeCondition, Point{})
	require.NoError(t, err)
	require.Len(t, n.Outputs, 2)
	assert.Equal(t, "true-out", n.Outputs[0].ID)
	assert.Equal(t, "false-out", n.Outputs[1].ID)

	_, err = NewLogicNode(LogicNodeType("teleport"), Point{})
	require.Error(t, err)
}

func TestNewEventNode(t *testing.T) {
	c, err := NewComponent(ComponentButton, Point{})
	require.NoError(t, err)
	c.Name = "Save Button"

	n, err := NewEventNode(&c, EventClick, Point{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, NodeEvent, n.Type)
	assert.Equal(t, "Save Button.click", n.Name)
	assert.Equal(t, c.ID, n.ComponentID())

	et, ok := n.Data.GetString("eventType")
	require.True(t, ok)
	assert.Equal(t, "click", et)
}

func TestNewCodeFile_DerivedFields(t *testing.T) {
	f := NewCodeFile("src/a.ts", "line1\nline2\n", true)
	assert.Equal(t, 12, f.Size)
	assert.Equal(t, 3, f.LineCount)
	assert.True(t, f.Generated)
	assert.False(t, f.Editable)

	empty := NewCodeFile("src/b.ts", "", false)
	assert.Equal(t, 0, empty.LineCount)
	assert.True(t, empty.Editable)
}

func TestProject_LookupsAndClone(t *testing.T) {
	p := NewProject("Demo")
	c, err := NewComponent(ComponentButton, Point{})
	require.NoError(t, err)
	p.Components = append(p.Components, c)

	found := p.FindComponent(c.ID)
	require.NotNil(t, found)
	// Lookups return pointers into the project, so edits stick.
	found.Name = "Edited"
	assert.Equal(t, "Edited", p.FindComponent(c.ID).Name)

	clone, err := p.Clone()
	require.NoError(t, err)
	clone.FindComponent(c.ID).Name = "CloneEdit"
	assert.Equal(t, "Edited", p.FindComponent(c.ID).Name)

	assert.Nil(t, p.FindComponent("missing"))
	assert.Nil(t, p.FindScreen("missing"))
	assert.Nil(t, p.FindNode("missing"))
	assert.Nil(t, p.FindFileByPath("missing"))
}

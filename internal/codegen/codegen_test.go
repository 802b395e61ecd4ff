package codegen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlstudio/modelsync/internal/model"
)

func settings(f model.Framework, l model.Language, s model.StylingSystem) model.ProjectSettings {
	return model.ProjectSettings{Framework: f, Language: l, Styling: s}
}

func buttonComponent(t *testing.T) model.UIComponent {
	t.Helper()
	c, err := model.NewComponent(model.ComponentButton, model.Point{X: 10, Y: 20})
	require.NoError(t, err)
	c.Name = "Save Button"
	return c
}

func render(t *testing.T, g Generator, c *model.UIComponent, ctx Context) model.CodeFile {
	t.Helper()
	f, err := g.Component(c, ctx)
	require.NoError(t, err)
	return f
}

func TestForFramework(t *testing.T) {
	for _, f := range []model.Framework{model.FrameworkReact, model.FrameworkVue, model.FrameworkAngular} {
		g, err := ForFramework(f)
		require.NoError(t, err)
		assert.Equal(t, f, g.Framework())
	}
	_, err := ForFramework("svelte")
	require.Error(t, err)
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "SaveButton", toPascal("Save Button"))
	assert.Equal(t, "SaveButton", toPascal("save-button"))
	assert.Equal(t, "saveButton", toCamel("Save Button"))
	assert.Equal(t, "save-button-click", toSlug("Save Button.click"))
	assert.Equal(t, "handleClick", HandlerName(model.EventClick))
	assert.Equal(t, "src/components/SaveButton.tsx", ComponentFilePath("Save Button", "tsx"))
}

func TestReact_ButtonTypeScript(t *testing.T) {
	c := buttonComponent(t)
	c.Events = []model.ComponentEvent{{Type: model.EventClick, LogicNodeID: "node-1"}}
	ctx := Context{Settings: settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingTailwind)}

	f := render(t, &ReactGenerator{}, &c, ctx)
	assert.Equal(t, "src/components/SaveButton.tsx", f.Path)
	assert.True(t, f.Generated)
	assert.Contains(t, f.Content, "import React from 'react';")
	assert.Contains(t, f.Content, "import { dispatchLogicEvent } from '../logic/dispatch';")
	assert.Contains(t, f.Content, "export interface SaveButtonProps {")
	assert.Contains(t, f.Content, "label?: string;")
	assert.Contains(t, f.Content, "disabled?: boolean;")
	assert.Contains(t, f.Content, "const handleClick = () => dispatchLogicEvent('node-1');")
	assert.Contains(t, f.Content, "onClick={handleClick}")
	assert.Contains(t, f.Content, "{props.label}")
	assert.Contains(t, f.Content, "export default SaveButton;")
}

func TestReact_JavaScriptHasNoTypes(t *testing.T) {
	c := buttonComponent(t)
	ctx := Context{Settings: settings(model.FrameworkReact, model.LanguageJavaScript, model.StylingTailwind)}

	f := render(t, &ReactGenerator{}, &c, ctx)
	assert.Equal(t, "src/components/SaveButton.jsx", f.Path)
	assert.NotContains(t, f.Content, "interface")
	assert.Contains(t, f.Content, "export function SaveButton(props) {")
}

func TestReact_Deterministic(t *testing.T) {
	c := buttonComponent(t)
	c.Props["zeta"] = model.String("z")
	c.Props["alpha"] = model.Number(1)
	ctx := Context{Settings: settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingTailwind)}

	first := render(t, &ReactGenerator{}, &c, ctx)
	for i := 0; i < 10; i++ {
		again := render(t, &ReactGenerator{}, &c, ctx)
		require.Equal(t, first.Content, again.Content)
	}
	// Props appear in sorted order regardless of map iteration.
	assert.Less(t,
		strings.Index(first.Content, "alpha?:"),
		strings.Index(first.Content, "zeta?:"))
}

func TestReact_NoTimestampsInContent(t *testing.T) {
	c := buttonComponent(t)
	ctx := Context{Settings: settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingTailwind)}
	f := render(t, &ReactGenerator{}, &c, ctx)
	assert.NotContains(t, f.Content, "Generated at")
	assert.NotContains(t, f.Content, time.Now().UTC().Format("2006"))
	assert.False(t, f.LastModified.IsZero())
}

func TestReact_ContainerRendersChildren(t *testing.T) {
	p := model.NewProject("Demo")
	parent, err := model.NewComponent(model.ComponentContainer, model.Point{})
	require.NoError(t, err)
	parent.Name = "Panel"
	child := buttonComponent(t)
	child.ParentID = parent.ID
	parent.Children = []string{child.ID, "dangling-id"}
	p.Components = append(p.Components, parent, child)

	ctx := Context{
		Settings: settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingTailwind),
		Project:  p,
	}
	f := render(t, &ReactGenerator{}, &p.Components[0], ctx)
	assert.Contains(t, f.Content, "import { SaveButton } from './SaveButton';")
	assert.Contains(t, f.Content, "<SaveButton />")
	assert.Contains(t, f.Content, "{props.children}")
	// Dangling child ids are skipped, not rendered.
	assert.NotContains(t, f.Content, "dangling")
}

func TestTailwindClasses(t *testing.T) {
	st := model.Styling{
		Background:   "#3b82f6",
		Padding:      "8px 16px",
		BorderRadius: "6px",
	}
	assert.Equal(t, "bg-blue-500 px-4 py-2 rounded-md", TailwindClasses(st))

	// Unknown values fall back to arbitrary-value utilities.
	odd := model.Styling{Background: "#123456", Padding: "13px", BorderRadius: "3"}
	assert.Equal(t, "bg-[#123456] p-[13px] rounded-[3px]", TailwindClasses(odd))

	assert.Equal(t, "", TailwindClasses(model.Styling{}))
}

func TestInlineStyles(t *testing.T) {
	st := model.Styling{Background: "#fff", Padding: "8", FontWeight: "bold"}
	entries := styleEntries(st)
	assert.Equal(t, "{ background: '#fff', padding: '8px', fontWeight: 'bold' }",
		styleObjectLiteral(entries))
	assert.Equal(t, "background: #fff; padding: 8px; font-weight: bold",
		styleCSSString(entries))
}

func TestReact_InlineStylingMode(t *testing.T) {
	c := buttonComponent(t)
	ctx := Context{Settings: settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingInline)}
	f := render(t, &ReactGenerator{}, &c, ctx)
	assert.Contains(t, f.Content, "style={{")
	assert.NotContains(t, f.Content, "className=")
}

func TestVue_ButtonSFC(t *testing.T) {
	c := buttonComponent(t)
	c.Events = []model.ComponentEvent{{Type: model.EventClick, LogicNodeID: "node-1"}}
	ctx := Context{Settings: settings(model.FrameworkVue, model.LanguageTypeScript, model.StylingTailwind)}

	f := render(t, &VueGenerator{}, &c, ctx)
	assert.Equal(t, "src/components/SaveButton.vue", f.Path)
	assert.Contains(t, f.Content, "<script setup lang=\"ts\">")
	assert.Contains(t, f.Content, "const props = defineProps<Props>();")
	assert.Contains(t, f.Content, "@click=\"handleClick\"")
	assert.Contains(t, f.Content, "{{ props.label }}")
	assert.Contains(t, f.Content, "<template>")
}

func TestVue_JavaScriptDefineProps(t *testing.T) {
	c := buttonComponent(t)
	ctx := Context{Settings: settings(model.FrameworkVue, model.LanguageJavaScript, model.StylingTailwind)}
	f := render(t, &VueGenerator{}, &c, ctx)
	assert.Contains(t, f.Content, "<script setup>")
	assert.Contains(t, f.Content, "const props = defineProps(['disabled', 'label']);")
}

func TestAngular_ButtonComponent(t *testing.T) {
	c := buttonComponent(t)
	c.Events = []model.ComponentEvent{{Type: model.EventClick, LogicNodeID: "node-1"}}
	ctx := Context{Settings: settings(model.FrameworkAngular, model.LanguageTypeScript, model.StylingCSS)}

	f := render(t, &AngularGenerator{}, &c, ctx)
	assert.Equal(t, "src/components/SaveButton.ts", f.Path)
	assert.Contains(t, f.Content, "selector: 'app-save-button',")
	assert.Contains(t, f.Content, "standalone: true,")
	assert.Contains(t, f.Content, "@Input() label?: string;")
	assert.Contains(t, f.Content, "(click)=\"handleClick()\"")
	assert.Contains(t, f.Content, "export class SaveButtonComponent {")
}

func TestAngular_AlwaysTypeScript(t *testing.T) {
	g := &AngularGenerator{}
	assert.Equal(t, "ts",
		g.Extension(settings(model.FrameworkAngular, model.LanguageJavaScript, model.StylingCSS)))
}

func TestLogicStub(t *testing.T) {
	p := model.NewProject("Demo")
	c := buttonComponent(t)
	n, err := model.NewEventNode(&c, model.EventClick, model.Point{})
	require.NoError(t, err)
	action, err := model.NewLogicNode(model.NodeAction, model.Point{})
	require.NoError(t, err)
	action.Name = "Show Toast"
	p.Components = append(p.Components, c)
	p.LogicGraph.Nodes = append(p.LogicGraph.Nodes, n, action)
	p.LogicGraph.Connections = append(p.LogicGraph.Connections, model.LogicConnection{
		ID: "conn-1", FromNodeID: n.ID, ToNodeID: action.ID, Type: model.ConnectionExecution,
	})

	ctx := Context{
		Settings: settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingTailwind),
		Project:  p,
	}
	f, err := (&ReactGenerator{}).LogicNode(&p.LogicGraph.Nodes[0], ctx)
	require.NoError(t, err)
	assert.Equal(t, "src/logic/save-button-click.ts", f.Path)
	assert.Contains(t, f.Content, "export function saveButtonClick(): void {")
	assert.Contains(t, f.Content, "// execution -> Show Toast")
	assert.Contains(t, f.Content, "mirrors event \"click\" on component "+c.ID)
}

func TestRuntimeFiles(t *testing.T) {
	ts := RuntimeFiles(settings(model.FrameworkReact, model.LanguageTypeScript, model.StylingTailwind))
	require.Len(t, ts, 1)
	assert.Equal(t, "src/logic/dispatch.ts", ts[0].Path)
	assert.Contains(t, ts[0].Content, "export function dispatchLogicEvent(nodeId: string): void {")

	js := RuntimeFiles(settings(model.FrameworkReact, model.LanguageJavaScript, model.StylingTailwind))
	assert.Equal(t, "src/logic/dispatch.js", js[0].Path)
	assert.Contains(t, js[0].Content, "export function dispatchLogicEvent(nodeId) {")
}

func TestInferPropType(t *testing.T) {
	assert.Equal(t, "string", InferPropType(model.String("x")))
	assert.Equal(t, "number", InferPropType(model.Number(1)))
	assert.Equal(t, "boolean", InferPropType(model.Bool(true)))
	assert.Equal(t, "any", InferPropType(model.Null()))
}

package codeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrlstudio/modelsync/internal/codegen"
	"github.com/ctrlstudio/modelsync/internal/model"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("src/components/SaveButton.tsx"))
	assert.True(t, Supported("src/components/SaveButton.jsx"))
	assert.True(t, Supported("src/components/SaveButton.vue"))
	assert.False(t, Supported("src/components/SaveButton.ts"))
	assert.False(t, Supported("src/logic/dispatch.js"))
	assert.False(t, Supported("README.md"))
}

func TestParse_ReactComponent(t *testing.T) {
	f := model.NewCodeFile("src/components/SaveButton.tsx", `import React from 'react';

export interface SaveButtonProps {
  label?: string;
  count?: number;
  disabled?: boolean;
  payload?: CustomThing;
}

export function SaveButton(props: SaveButtonProps) {
  const handleClick = () => dispatchLogicEvent('node-1');
  const handleHover = () => console.log('hover');
  return (
    <button onClick={handleClick}>{props.label}</button>
  );
}

export default SaveButton;
`, false)

	ext, ok := Parse(&f)
	require.True(t, ok)
	assert.Equal(t, "SaveButton", ext.ComponentName)
	assert.Equal(t, map[string]string{
		"label":    "string",
		"count":    "number",
		"disabled": "boolean",
		"payload":  "any",
	}, ext.Props)
	assert.Equal(t, []string{"handleClick", "handleHover"}, ext.Handlers)
}

func TestParse_FunctionHandlersAndDedup(t *testing.T) {
	f := model.NewCodeFile("src/components/Panel.jsx", `export function Panel(props) {
  const handleClick = () => doThing();
  return <div onClick={handleClick} />;
}

function handleClick() {}
function handleSubmit() {}
`, false)

	ext, ok := Parse(&f)
	require.True(t, ok)
	assert.Equal(t, "Panel", ext.ComponentName)
	// Const and function declarations of the same name count once.
	assert.Equal(t, []string{"handleClick", "handleSubmit"}, ext.Handlers)
}

func TestParse_VueScriptSetup(t *testing.T) {
	f := model.NewCodeFile("src/components/SaveButton.vue", `<script setup lang="ts">
interface Props {
  label?: string;
}
const props = defineProps<Props>();

function handleClick() {
  dispatchLogicEvent('node-1');
}
</script>

<template>
  <button @click="handleClick">{{ props.label }}</button>
</template>
`, false)

	ext, ok := Parse(&f)
	require.True(t, ok)
	// Script-setup files have no exported function; facts still extract.
	assert.Empty(t, ext.ComponentName)
	assert.Equal(t, map[string]string{"label": "string"}, ext.Props)
	assert.Equal(t, []string{"handleClick"}, ext.Handlers)
}

func TestParse_UnsupportedOrEmpty(t *testing.T) {
	ts := model.NewCodeFile("src/logic/save-button-click.ts", "export function saveButtonClick(): void {}\n", true)
	ext, ok := Parse(&ts)
	assert.False(t, ok)
	assert.Nil(t, ext)

	blank := model.NewCodeFile("src/components/Empty.tsx", "// nothing here\n", false)
	ext, ok = Parse(&blank)
	assert.False(t, ok)
	assert.Nil(t, ext)
}

func TestParse_GeneratedOutputRoundTrips(t *testing.T) {
	c, err := model.NewComponent(model.ComponentButton, model.Point{})
	require.NoError(t, err)
	c.Name = "Save Button"
	c.Events = []model.ComponentEvent{{Type: model.EventClick, LogicNodeID: "node-1"}}

	gen := &codegen.ReactGenerator{}
	f, err := gen.Component(&c, codegen.Context{Settings: model.ProjectSettings{
		Framework: model.FrameworkReact,
		Language:  model.LanguageTypeScript,
		Styling:   model.StylingTailwind,
	}})
	require.NoError(t, err)

	ext, ok := Parse(&f)
	require.True(t, ok)
	assert.Equal(t, "SaveButton", ext.ComponentName)
	assert.Equal(t, map[string]string{"label": "string", "disabled": "boolean"}, ext.Props)
	assert.Equal(t, []string{"handleClick"}, ext.Handlers)
}

func TestParse_GeneratedContainerRoundTrips(t *testing.T) {
	c, err := model.NewComponent(model.ComponentContainer, model.Point{})
	require.NoError(t, err)
	c.Name = "Panel"

	gen := &codegen.ReactGenerator{}
	f, err := gen.Component(&c, codegen.Context{Settings: model.ProjectSettings{
		Framework: model.FrameworkReact,
		Language:  model.LanguageTypeScript,
		Styling:   model.StylingTailwind,
	}})
	require.NoError(t, err)
	require.Contains(t, f.Content, "children?: any;")
	require.Contains(t, f.Content, "{props.children}")

	// The children slot in the template is render plumbing, not a prop;
	// extracting it would make every re-parse of a container mutate the
	// model.
	ext, ok := Parse(&f)
	require.True(t, ok)
	assert.Equal(t, "Panel", ext.ComponentName)
	assert.Empty(t, ext.Props)
}

func TestEventTypeForHandler(t *testing.T) {
	et, ok := EventTypeForHandler("handleClick")
	require.True(t, ok)
	assert.Equal(t, model.EventClick, et)

	et, ok = EventTypeForHandler("handleSubmit")
	require.True(t, ok)
	assert.Equal(t, model.EventSubmit, et)

	_, ok = EventTypeForHandler("handleTeleport")
	assert.False(t, ok)
	_, ok = EventTypeForHandler("notAHandler")
	assert.False(t, ok)
	_, ok = EventTypeForHandler("handle")
	assert.False(t, ok)
}

func TestZeroValueFor(t *testing.T) {
	assert.True(t, model.String("").Equal(ZeroValueFor("string")))
	assert.True(t, model.Number(0).Equal(ZeroValueFor("number")))
	assert.True(t, model.Bool(false).Equal(ZeroValueFor("boolean")))
	assert.True(t, model.Null().Equal(ZeroValueFor("any")))
}

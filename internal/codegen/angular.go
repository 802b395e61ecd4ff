package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// AngularGenerator renders standalone components with inline templates.
// Angular output is TypeScript regardless of the language setting — the
// framework has no JavaScript authoring story worth generating.
type AngularGenerator struct{}

func (g *AngularGenerator) Framework() model.Framework { return model.FrameworkAngular }

func (g *AngularGenerator) Extension(model.ProjectSettings) string { return "ts" }

var angularEventAttrs = map[model.EventType]string{
	model.EventClick:  "(click)",
	model.EventChange: "(change)",
	model.EventSubmit: "(submit)",
	model.EventHover:  "(mouseenter)",
	model.EventFocus:  "(focus)",
	model.EventBlur:   "(blur)",
	model.EventLoad:   "(load)",
	model.EventCustom: "(custom)",
}

var angularComponentTmpl = loadTemplate("angular_component.tmpl", template.FuncMap{})

type angularComponentData struct {
	Name          string
	Selector      string
	Props         []propField
	Handlers      []handlerDef
	Markup        string
	ChildImports  []string
	ChildClasses  string // comma-joined class names for the imports array
	NeedsDispatch bool
}

func (g *AngularGenerator) Component(c *model.UIComponent, ctx Context) (model.CodeFile, error) {
	name := toPascal(c.Name)
	children := childComponents(c, ctx)

	data := angularComponentData{
		Name:          name,
		Selector:      "app-" + toSlug(c.Name),
		Props:         propFields(c),
		Handlers:      handlerDefs(c),
		Markup:        g.markup(c, children, ctx),
		NeedsDispatch: hasLogicDispatch(c),
	}
	classNames := make([]string, 0, len(children))
	for _, child := range children {
		childName := toPascal(child.Name)
		classNames = append(classNames, childName+"Component")
		data.ChildImports = append(data.ChildImports,
			fmt.Sprintf("import { %sComponent } from './%s';", childName, childName))
	}
	data.ChildClasses = strings.Join(classNames, ", ")

	var b strings.Builder
	if err := angularComponentTmpl.Execute(&b, data); err != nil {
		return model.CodeFile{}, fmt.Errorf("rendering angular component %s: %w", name, err)
	}
	return model.NewCodeFile(ComponentFilePath(c.Name, "ts"), b.String(), true), nil
}

func (g *AngularGenerator) LogicNode(n *model.LogicNode, ctx Context) (model.CodeFile, error) {
	return logicStubFile(n, ctx), nil
}

func (g *AngularGenerator) markup(c *model.UIComponent, children []*model.UIComponent, ctx Context) string {
	attrs := g.rootAttrs(c, ctx)

	switch c.Type {
	case model.ComponentButton:
		return fmt.Sprintf("    <button%s>{{ label }}</button>", attrs)
	case model.ComponentText:
		return fmt.Sprintf("    <span%s>{{ content }}</span>", attrs)
	case model.ComponentInput:
		return fmt.Sprintf("    <input%s [placeholder]=\"placeholder\" />", attrs)
	case model.ComponentContainer:
		var b strings.Builder
		fmt.Fprintf(&b, "    <div%s>\n", attrs)
		for _, child := range children {
			fmt.Fprintf(&b, "      <app-%s />\n", toSlug(child.Name))
		}
		b.WriteString("      <ng-content />\n")
		b.WriteString("    </div>")
		return b.String()
	default:
		return fmt.Sprintf("    <div%s data-component=\"%s\"><ng-content /></div>", attrs, c.Type)
	}
}

func (g *AngularGenerator) rootAttrs(c *model.UIComponent, ctx Context) string {
	var b strings.Builder
	if ctx.Settings.Styling == model.StylingTailwind {
		if classes := TailwindClasses(c.Styling); classes != "" {
			fmt.Fprintf(&b, " class=\"%s\"", classes)
		}
	} else if css := styleCSSString(styleEntries(c.Styling)); css != "" {
		fmt.Fprintf(&b, " style=\"%s\"", css)
	}
	for _, evt := range c.Events {
		attr, ok := angularEventAttrs[evt.Type]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, " %s=\"%s()\"", attr, HandlerName(evt.Type))
	}
	return b.String()
}

package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// ReactGenerator renders function components with a typed props interface.
type ReactGenerator struct{}

func (g *ReactGenerator) Framework() model.Framework { return model.FrameworkReact }

func (g *ReactGenerator) Extension(s model.ProjectSettings) string {
	if s.Language == model.LanguageJavaScript {
		return "jsx"
	}
	return "tsx"
}

// reactEventAttrs maps component event types to JSX attributes.
var reactEventAttrs = map[model.EventType]string{
	model.EventClick:  "onClick",
	model.EventChange: "onChange",
	model.EventSubmit: "onSubmit",
	model.EventHover:  "onMouseEnter",
	model.EventFocus:  "onFocus",
	model.EventBlur:   "onBlur",
	model.EventLoad:   "onLoad",
	model.EventCustom: "onCustom",
}

var reactComponentTmpl = loadTemplate("react_component.tmpl", template.FuncMap{})

type reactComponentData struct {
	Name          string
	TypeScript    bool
	Props         []propField
	Handlers      []handlerDef
	Markup        string
	ChildImports  []string
	NeedsDispatch bool
}

func (g *ReactGenerator) Component(c *model.UIComponent, ctx Context) (model.CodeFile, error) {
	name := toPascal(c.Name)
	children := childComponents(c, ctx)
	ext := g.Extension(ctx.Settings)

	data := reactComponentData{
		Name:          name,
		TypeScript:    ctx.Settings.Language == model.LanguageTypeScript,
		Props:         propFields(c),
		Handlers:      handlerDefs(c),
		Markup:        g.markup(c, children, ctx),
		NeedsDispatch: hasLogicDispatch(c),
	}
	if usesChildrenSlot(c.Type) {
		data.Props = append(data.Props, propField{Name: "children", Type: "any"})
	}
	for _, child := range children {
		childName := toPascal(child.Name)
		data.ChildImports = append(data.ChildImports,
			fmt.Sprintf("import { %s } from './%s';", childName, childName))
	}

	var b strings.Builder
	if err := reactComponentTmpl.Execute(&b, data); err != nil {
		return model.CodeFile{}, fmt.Errorf("rendering react component %s: %w", name, err)
	}
	return model.NewCodeFile(ComponentFilePath(c.Name, ext), b.String(), true), nil
}

func (g *ReactGenerator) LogicNode(n *model.LogicNode, ctx Context) (model.CodeFile, error) {
	return logicStubFile(n, ctx), nil
}

// usesChildrenSlot reports whether the markup for a component type forwards
// a children slot.
func usesChildrenSlot(t model.ComponentType) bool {
	switch t {
	case model.ComponentButton, model.ComponentText, model.ComponentInput,
		model.ComponentImage, model.ComponentVideo:
		return false
	default:
		return true
	}
}

// markup renders the JSX block for the component's type via the fixed
// dispatch table: button, text, input, container, and a generic default.
func (g *ReactGenerator) markup(c *model.UIComponent, children []*model.UIComponent, ctx Context) string {
	attrs := g.rootAttrs(c, ctx)

	switch c.Type {
	case model.ComponentButton:
		return fmt.Sprintf("    <button%s>{props.label}</button>", attrs)
	case model.ComponentText:
		return fmt.Sprintf("    <span%s>{props.content}</span>", attrs)
	case model.ComponentInput:
		return fmt.Sprintf("    <input%s placeholder={props.placeholder} />", attrs)
	case model.ComponentContainer:
		var b strings.Builder
		fmt.Fprintf(&b, "    <div%s>\n", attrs)
		for _, child := range children {
			fmt.Fprintf(&b, "      <%s />\n", toPascal(child.Name))
		}
		b.WriteString("      {props.children}\n")
		b.WriteString("    </div>")
		return b.String()
	default:
		return fmt.Sprintf("    <div%s data-component=\"%s\">{props.children}</div>", attrs, c.Type)
	}
}

// rootAttrs builds the root element's attribute string: styling first
// (class or inline style), then one handler per event.
func (g *ReactGenerator) rootAttrs(c *model.UIComponent, ctx Context) string {
	var b strings.Builder
	if ctx.Settings.Styling == model.StylingTailwind {
		if classes := TailwindClasses(c.Styling); classes != "" {
			fmt.Fprintf(&b, " className=\"%s\"", classes)
		}
	} else if obj := styleObjectLiteral(styleEntries(c.Styling)); obj != "" {
		fmt.Fprintf(&b, " style={%s}", obj)
	}
	for _, evt := range c.Events {
		attr, ok := reactEventAttrs[evt.Type]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, " %s={%s}", attr, HandlerName(evt.Type))
	}
	return b.String()
}

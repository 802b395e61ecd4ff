package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// VueGenerator renders single-file components with <script setup>.
type VueGenerator struct{}

func (g *VueGenerator) Framework() model.Framework { return model.FrameworkVue }

func (g *VueGenerator) Extension(model.ProjectSettings) string { return "vue" }

var vueEventAttrs = map[model.EventType]string{
	model.EventClick:  "@click",
	model.EventChange: "@change",
	model.EventSubmit: "@submit",
	model.EventHover:  "@mouseenter",
	model.EventFocus:  "@focus",
	model.EventBlur:   "@blur",
	model.EventLoad:   "@load",
	model.EventCustom: "@custom",
}

var vueComponentTmpl = loadTemplate("vue_component.tmpl", template.FuncMap{})

type vueComponentData struct {
	Name          string
	TypeScript    bool
	Props         []propField
	PropNames     string // comma-joined quoted names for the JS defineProps form
	Handlers      []handlerDef
	Markup        string
	ChildImports  []string
	NeedsDispatch bool
}

func (g *VueGenerator) Component(c *model.UIComponent, ctx Context) (model.CodeFile, error) {
	name := toPascal(c.Name)
	children := childComponents(c, ctx)

	data := vueComponentData{
		Name:          name,
		TypeScript:    ctx.Settings.Language == model.LanguageTypeScript,
		Props:         propFields(c),
		Handlers:      handlerDefs(c),
		Markup:        g.markup(c, children, ctx),
		NeedsDispatch: hasLogicDispatch(c),
	}
	names := make([]string, 0, len(data.Props))
	for _, p := range data.Props {
		names = append(names, "'"+p.Name+"'")
	}
	data.PropNames = strings.Join(names, ", ")
	for _, child := range children {
		childName := toPascal(child.Name)
		data.ChildImports = append(data.ChildImports,
			fmt.Sprintf("import %s from './%s.vue';", childName, childName))
	}

	var b strings.Builder
	if err := vueComponentTmpl.Execute(&b, data); err != nil {
		return model.CodeFile{}, fmt.Errorf("rendering vue component %s: %w", name, err)
	}
	return model.NewCodeFile(ComponentFilePath(c.Name, "vue"), b.String(), true), nil
}

func (g *VueGenerator) LogicNode(n *model.LogicNode, ctx Context) (model.CodeFile, error) {
	return logicStubFile(n, ctx), nil
}

func (g *VueGenerator) markup(c *model.UIComponent, children []*model.UIComponent, ctx Context) string {
	attrs := g.rootAttrs(c, ctx)

	switch c.Type {
	case model.ComponentButton:
		return fmt.Sprintf("  <button%s>{{ props.label }}</button>", attrs)
	case model.ComponentText:
		return fmt.Sprintf("  <span%s>{{ props.content }}</span>", attrs)
	case model.ComponentInput:
		return fmt.Sprintf("  <input%s :placeholder=\"props.placeholder\" />", attrs)
	case model.ComponentContainer:
		var b strings.Builder
		fmt.Fprintf(&b, "  <div%s>\n", attrs)
		for _, child := range children {
			fmt.Fprintf(&b, "    <%s />\n", toPascal(child.Name))
		}
		b.WriteString("    <slot />\n")
		b.WriteString("  </div>")
		return b.String()
	default:
		return fmt.Sprintf("  <div%s data-component=\"%s\"><slot /></div>", attrs, c.Type)
	}
}

func (g *VueGenerator) rootAttrs(c *model.UIComponent, ctx Context) string {
	var b strings.Builder
	if ctx.Settings.Styling == model.StylingTailwind {
		if classes := TailwindClasses(c.Styling); classes != "" {
			fmt.Fprintf(&b, " class=\"%s\"", classes)
		}
	} else if css := styleCSSString(styleEntries(c.Styling)); css != "" {
		fmt.Fprintf(&b, " style=\"%s\"", css)
	}
	for _, evt := range c.Events {
		attr, ok := vueEventAttrs[evt.Type]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, " %s=\"%s\"", attr, HandlerName(evt.Type))
	}
	return b.String()
}

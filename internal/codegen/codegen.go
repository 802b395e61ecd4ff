// Package codegen turns UI components and logic nodes into source files for
// a target framework. Generation is deterministic: the same input and
// settings produce byte-identical output. Timestamps never leak into file
// content — they live only in CodeFile metadata, which the engine owns.
package codegen

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/ctrlstudio/modelsync/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Context carries the surrounding project state a generator may need:
// child component lookup for containers and connection lookup for stubs.
type Context struct {
	Settings model.ProjectSettings
	Project  *model.CTRLProject
}

// Generator produces code files for one target framework. Implementations
// must be deterministic and must not embed wall-clock time in content.
type Generator interface {
	Framework() model.Framework

	// Extension returns the component file extension for the settings,
	// without the leading dot.
	Extension(s model.ProjectSettings) string

	// Component renders one component into its source file.
	Component(c *model.UIComponent, ctx Context) (model.CodeFile, error)

	// LogicNode renders the logic-derived stub for one node.
	LogicNode(n *model.LogicNode, ctx Context) (model.CodeFile, error)
}

// ForFramework returns the generator for the given framework.
func ForFramework(f model.Framework) (Generator, error) {
	switch f {
	case model.FrameworkReact:
		return &ReactGenerator{}, nil
	case model.FrameworkVue:
		return &VueGenerator{}, nil
	case model.FrameworkAngular:
		return &AngularGenerator{}, nil
	default:
		return nil, fmt.Errorf("no generator for framework %q", f)
	}
}

func loadTemplate(name string, funcs template.FuncMap) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/"+name))
}

// ── Naming ───────────────────────────────────────────────────────────────────

func toPascal(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

func toCamel(s string) string {
	p := toPascal(s)
	if len(p) == 0 {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

func toSlug(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// PascalName converts an arbitrary display name into the PascalCase form
// used for component identifiers and file names.
func PascalName(s string) string { return toPascal(s) }

// HandlerName returns the generated handler function name for an event,
// following the handle<EventType> convention.
func HandlerName(t model.EventType) string {
	return "handle" + toPascal(string(t))
}

// ComponentFilePath returns the stable path for a component's file.
// Regeneration locates the existing file by this path and overwrites it
// in place.
func ComponentFilePath(name, ext string) string {
	return "src/components/" + toPascal(name) + "." + ext
}

// NodeFilePath returns the stable path for a logic node's stub file.
func NodeFilePath(n *model.LogicNode, ext string) string {
	slug := toSlug(n.Name)
	if slug == "" {
		slug = "node-" + n.ID
	}
	return "src/logic/" + slug + "." + ext
}

// ScriptExt is the extension for plain (non-component) source files.
func ScriptExt(s model.ProjectSettings) string {
	if s.Language == model.LanguageJavaScript {
		return "js"
	}
	return "ts"
}

// ── Prop type inference ──────────────────────────────────────────────────────

// InferPropType maps a tagged prop value to a primitive type name for the
// generated props interface.
func InferPropType(v model.Value) string {
	switch v.Kind {
	case model.KindString:
		return "string"
	case model.KindNumber:
		return "number"
	case model.KindBool:
		return "boolean"
	default:
		return "any"
	}
}

type propField struct {
	Name string
	Type string
}

// propFields returns the component's props as sorted name/type pairs.
func propFields(c *model.UIComponent) []propField {
	fields := make([]propField, 0, len(c.Props))
	for _, k := range c.Props.SortedKeys() {
		fields = append(fields, propField{Name: toCamel(k), Type: InferPropType(c.Props[k])})
	}
	return fields
}

// ── Styling ──────────────────────────────────────────────────────────────────

// tailwindBackground maps known background colors to utility classes.
// Unknown colors fall back to an arbitrary-value class, which keeps the
// output a pure function of the styling attributes.
var tailwindBackground = map[string]string{
	"#ffffff": "bg-white",
	"#000000": "bg-black",
	"#3b82f6": "bg-blue-500",
	"#2563eb": "bg-blue-600",
	"#ef4444": "bg-red-500",
	"#22c55e": "bg-green-500",
	"#f3f4f6": "bg-gray-100",
	"#e5e7eb": "bg-gray-200",
	"#111827": "bg-gray-900",
}

// tailwindPadding maps pixel paddings to spacing utilities (4px scale).
var tailwindPadding = map[string]string{
	"4px":      "p-1",
	"8px":      "p-2",
	"12px":     "p-3",
	"16px":     "p-4",
	"24px":     "p-6",
	"32px":     "p-8",
	"8px 16px": "px-4 py-2",
	"8px 12px": "px-3 py-2",
}

// tailwindRadius maps border radii to rounding utilities.
var tailwindRadius = map[string]string{
	"2px":    "rounded-sm",
	"4px":    "rounded",
	"6px":    "rounded-md",
	"8px":    "rounded-lg",
	"12px":   "rounded-xl",
	"9999px": "rounded-full",
}

// TailwindClasses expresses a styling block as a class-name string using
// the fixed mapping tables. Attributes without a mapping are emitted as
// arbitrary-value utilities so no styling is silently dropped.
func TailwindClasses(st model.Styling) string {
	var classes []string
	if st.Background != "" {
		if c, ok := tailwindBackground[strings.ToLower(st.Background)]; ok {
			classes = append(classes, c)
		} else {
			classes = append(classes, "bg-["+strings.ToLower(st.Background)+"]")
		}
	}
	if st.Padding != "" {
		if c, ok := tailwindPadding[st.Padding]; ok {
			classes = append(classes, c)
		} else {
			classes = append(classes, "p-["+withUnit(st.Padding)+"]")
		}
	}
	if st.BorderRadius != "" {
		if c, ok := tailwindRadius[st.BorderRadius]; ok {
			classes = append(classes, c)
		} else {
			classes = append(classes, "rounded-["+withUnit(st.BorderRadius)+"]")
		}
	}
	return strings.Join(classes, " ")
}

// withUnit appends "px" to bare numeric lengths.
func withUnit(v string) string {
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v + "px"
	}
	return v
}

type styleEntry struct {
	Key   string // camelCase property name
	CSS   string // kebab-case property name
	Value string
}

// styleEntries returns the inline-style form of a styling block, in a fixed
// attribute order, with unit-aware value concatenation.
func styleEntries(st model.Styling) []styleEntry {
	var out []styleEntry
	add := func(key, css, val string, unit bool) {
		if val == "" {
			return
		}
		if unit {
			val = withUnit(val)
		}
		out = append(out, styleEntry{Key: key, CSS: css, Value: val})
	}
	add("background", "background", st.Background, false)
	add("color", "color", st.Color, false)
	add("border", "border", st.Border, false)
	add("borderRadius", "border-radius", st.BorderRadius, true)
	add("padding", "padding", st.Padding, true)
	add("margin", "margin", st.Margin, true)
	add("fontSize", "font-size", st.FontSize, true)
	add("fontWeight", "font-weight", st.FontWeight, false)

	if len(st.Extra) > 0 {
		keys := make([]string, 0, len(st.Extra))
		for k := range st.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(toCamel(k), toSlug(k), st.Extra[k], false)
		}
	}
	return out
}

// styleObjectLiteral renders entries as a JS object literal, e.g.
// { background: '#fff', padding: '8px' }.
func styleObjectLiteral(entries []styleEntry) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s: '%s'", e.Key, e.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// styleCSSString renders entries as a CSS declaration string, e.g.
// "background: #fff; padding: 8px".
func styleCSSString(entries []styleEntry) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.CSS+": "+e.Value)
	}
	return strings.Join(parts, "; ")
}

// ── Handlers ─────────────────────────────────────────────────────────────────

type handlerDef struct {
	Name string
	Body string
}

// handlerDefs builds the event-handler block: one handler per component
// event. A logic-bound event dispatches by node id; a raw handler string is
// emitted verbatim.
func handlerDefs(c *model.UIComponent) []handlerDef {
	out := make([]handlerDef, 0, len(c.Events))
	for _, evt := range c.Events {
		h := handlerDef{Name: HandlerName(evt.Type)}
		switch {
		case evt.LogicNodeID != "":
			h.Body = fmt.Sprintf("dispatchLogicEvent('%s')", evt.LogicNodeID)
		case evt.Handler != "":
			h.Body = evt.Handler
		default:
			h.Body = "/* not wired */"
		}
		out = append(out, h)
	}
	return out
}

// hasLogicDispatch reports whether any handler routes through the logic
// dispatcher, which decides the dispatch import.
func hasLogicDispatch(c *model.UIComponent) bool {
	for _, evt := range c.Events {
		if evt.LogicNodeID != "" {
			return true
		}
	}
	return false
}

// childComponents resolves the component's children ids against the
// project, preserving child order and skipping dangling ids.
func childComponents(c *model.UIComponent, ctx Context) []*model.UIComponent {
	if ctx.Project == nil {
		return nil
	}
	out := make([]*model.UIComponent, 0, len(c.Children))
	for _, id := range c.Children {
		if child := ctx.Project.FindComponent(id); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// outgoingConnections lists connections leaving the node, ordered by
// connection id for determinism.
func outgoingConnections(n *model.LogicNode, ctx Context) []model.LogicConnection {
	if ctx.Project == nil {
		return nil
	}
	var out []model.LogicConnection
	for _, conn := range ctx.Project.LogicGraph.Connections {
		if conn.FromNodeID == n.ID {
			out = append(out, conn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// connectionTarget names the node a connection points at, falling back to
// the raw id when the node is gone.
func connectionTarget(conn model.LogicConnection, ctx Context) string {
	if ctx.Project != nil {
		if n := ctx.Project.FindNode(conn.ToNodeID); n != nil {
			return n.Name
		}
	}
	return conn.ToNodeID
}

// ── Runtime files ────────────────────────────────────────────────────────────

// RuntimeFiles returns the framework-independent support files generated
// components import, currently just the logic dispatcher.
func RuntimeFiles(s model.ProjectSettings) []model.CodeFile {
	ext := ScriptExt(s)
	var b strings.Builder
	b.WriteString("// Logic event dispatcher. Generated components call this with the id\n")
	b.WriteString("// of the logic node bound to one of their events.\n")
	if s.Language == model.LanguageTypeScript {
		b.WriteString("export function dispatchLogicEvent(nodeId: string): void {\n")
	} else {
		b.WriteString("export function dispatchLogicEvent(nodeId) {\n")
	}
	b.WriteString("  console.debug('logic event', nodeId);\n")
	b.WriteString("}\n")
	return []model.CodeFile{model.NewCodeFile("src/logic/dispatch."+ext, b.String(), true)}
}

// Package codeparse is the best-effort reverse channel from edited code
// back to the shared model. It extracts structural facts — props interface
// fields and handler names — with regular expressions, not a language
// parser. For unsupported extensions or unparseable content it reports
// nothing rather than guessing; the caller must treat that as a no-op so a
// failed parse can never corrupt the model.
package codeparse

import (
	"path"
	"regexp"
	"strings"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// Extraction holds the structural facts pulled from one source file.
type Extraction struct {
	// ComponentName is the exported component name, if one was found.
	ComponentName string
	// Props maps prop names to their declared primitive type
	// (string/number/boolean/any). The children render slot is excluded.
	Props map[string]string
	// Handlers lists handle<EventType> function names found in the file.
	Handlers []string
}

var supportedExts = map[string]bool{
	".tsx": true,
	".jsx": true,
	".vue": true,
}

var (
	componentNameRe = regexp.MustCompile(`export\s+(?:default\s+)?function\s+([A-Z]\w*)`)
	propsBlockRe    = regexp.MustCompile(`interface\s+\w*Props\s*\{([^}]*)\}`)
	propFieldRe     = regexp.MustCompile(`(?m)^\s*(\w+)\??:\s*([\w\[\]]+);`)
	handlerConstRe  = regexp.MustCompile(`const\s+(handle[A-Z]\w*)\s*=`)
	handlerFuncRe   = regexp.MustCompile(`function\s+(handle[A-Z]\w*)\s*\(`)
)

// Supported reports whether the file's extension is in the parseable set.
func Supported(filePath string) bool {
	return supportedExts[path.Ext(filePath)]
}

// Parse extracts structural facts from a code file. The second return is
// false when the file is unsupported or nothing could be extracted.
func Parse(f *model.CodeFile) (*Extraction, bool) {
	if !Supported(f.Path) {
		return nil, false
	}

	ext := &Extraction{Props: map[string]string{}}

	if m := componentNameRe.FindStringSubmatch(f.Content); m != nil {
		ext.ComponentName = m[1]
	}

	if m := propsBlockRe.FindStringSubmatch(f.Content); m != nil {
		for _, field := range propFieldRe.FindAllStringSubmatch(m[1], -1) {
			// Container templates declare a children slot for nested markup.
			// That is render plumbing, not a data prop.
			if field[1] == "children" {
				continue
			}
			ext.Props[field[1]] = normalizeType(field[2])
		}
	}

	seen := map[string]bool{}
	for _, re := range []*regexp.Regexp{handlerConstRe, handlerFuncRe} {
		for _, m := range re.FindAllStringSubmatch(f.Content, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				ext.Handlers = append(ext.Handlers, m[1])
			}
		}
	}

	if ext.ComponentName == "" && len(ext.Props) == 0 && len(ext.Handlers) == 0 {
		return nil, false
	}
	return ext, true
}

func normalizeType(t string) string {
	switch t {
	case "string", "number", "boolean":
		return t
	default:
		return "any"
	}
}

// EventTypeForHandler maps a handle<EventType> name back to its event type.
// The second return is false for names outside the convention or events
// outside the closed set.
func EventTypeForHandler(name string) (model.EventType, bool) {
	rest := strings.TrimPrefix(name, "handle")
	if rest == name || rest == "" {
		return "", false
	}
	// Undo the handler-name capitalization. Hover maps from the DOM-ish
	// MouseEnter alias the generators never use, so a plain lowering is
	// enough here.
	t := model.EventType(strings.ToLower(rest[:1]) + rest[1:])
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// ZeroValueFor returns the tagged zero value for an extracted prop type.
func ZeroValueFor(t string) model.Value {
	switch t {
	case "string":
		return model.String("")
	case "number":
		return model.Number(0)
	case "boolean":
		return model.Bool(false)
	default:
		return model.Null()
	}
}

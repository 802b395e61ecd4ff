package codegen

import (
	"fmt"
	"strings"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// logicStubFile renders the logic-derived stub for a node. Stubs are plain
// script files shared by all frameworks: a named function, the node's
// outgoing connections as routing comments, and a debug body. Connection
// changes regenerate the stubs of both endpoints so the routing comments
// stay current.
func logicStubFile(n *model.LogicNode, ctx Context) model.CodeFile {
	ext := ScriptExt(ctx.Settings)
	ts := ctx.Settings.Language == model.LanguageTypeScript

	funcName := toCamel(n.Name)
	if funcName == "" {
		funcName = "node" + toPascal(n.ID[:8])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s (%s node)\n", n.Name, n.Type)
	if cid := n.ComponentID(); cid != "" {
		fmt.Fprintf(&b, "// mirrors event %q on component %s\n", dataString(n, "eventType"), cid)
	}
	if ts {
		fmt.Fprintf(&b, "export function %s(): void {\n", funcName)
	} else {
		fmt.Fprintf(&b, "export function %s() {\n", funcName)
	}
	for _, conn := range outgoingConnections(n, ctx) {
		fmt.Fprintf(&b, "  // %s -> %s\n", conn.Type, connectionTarget(conn, ctx))
	}
	fmt.Fprintf(&b, "  console.debug('%s: %s');\n", n.Type, funcName)
	b.WriteString("}\n")

	return model.NewCodeFile(NodeFilePath(n, ext), b.String(), true)
}

func dataString(n *model.LogicNode, key string) string {
	s, _ := n.Data.GetString(key)
	return s
}

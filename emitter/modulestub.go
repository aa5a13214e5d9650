package emitter

import (
	"strings"

	"github.com/dtsforge/dtsforge/internal/symbol"
)

// renderModuleStub prints index.<target-module-stub> (index.mjs): a
// thin runtime re-export of the binding host's actual implementation.
// The ambient declaration file carries all type information; this file
// only has to exist so the namespace is importable as a real module.
func renderModuleStub(ns symbol.Namespace) string {
	var b strings.Builder
	b.WriteString("// ")
	b.WriteString(nsLabel(ns))
	b.WriteString("\n")
	b.WriteString("export * from \"./internal/bindings.js\";\n")
	return b.String()
}

func nsLabel(ns symbol.Namespace) string {
	if ns.IsRoot() {
		return "global namespace"
	}
	return ns.Name
}

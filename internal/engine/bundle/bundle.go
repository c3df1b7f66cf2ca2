// # internal/engine/bundle/bundle.go
package bundle

import (
	"strings"

	"minibun/internal/engine/graph"
	"minibun/internal/engine/modmap"
)

const (
	prefix        = "var __modules__ = {};"
	wrapperHead   = "(function (modules, moduleName) {\n  var module = { exports: {} };\n  var exports = module.exports;\n  (function (require, module, exports) {\n"
	wrapperTail   = "\n  })(function (id) { return modules[id]; }, module, exports);\n  modules[moduleName] = module.exports;\n})(__modules__, '"
	wrapperClose  = "');"
	markerPrefix  = "/* Module: "
	markerSuffix  = " */"
	moduleJoiner  = "\n\n"
	entryAssignLo = "var __entry__ = __modules__['"
	entryAssignHi = "'];"
)

// Result is a finished bundle plus its diagnostics.
type Result struct {
	Output string
	// Cycles lists cycle-participant module ids discovered during ordering.
	// A cycle is reported, never fatal; the bundle still emits.
	Cycles []string
}

// Bundle flattens the module map into a single source string. Modules are
// ordered dependencies-first from the entry, each body is embedded verbatim
// in the wrapper template, and imports pointing outside the map are skipped
// without a stub.
func Bundle(modules *modmap.Map, entryID string, tokenize graph.Tokenizer) Result {
	g := graph.Build(modules, tokenize)
	order := g.TopoOrder(entryID)
	cycles := g.DetectCycles(entryID)

	parts := make([]string, 0, len(order))
	for _, id := range order {
		source, ok := modules.Get(id)
		if !ok {
			continue
		}
		parts = append(parts, wrap(id, source))
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("\n")
	b.WriteString(strings.Join(parts, moduleJoiner))
	b.WriteString("\n")
	b.WriteString(entryAssignLo)
	b.WriteString(entryID)
	b.WriteString(entryAssignHi)

	return Result{Output: b.String(), Cycles: cycles}
}

// wrap embeds one module body in the fixed wrapper template. The body text is
// inserted verbatim; import/export statements are not rewritten here.
func wrap(id, body string) string {
	var b strings.Builder
	b.WriteString(markerPrefix)
	b.WriteString(id)
	b.WriteString(markerSuffix)
	b.WriteString("\n")
	b.WriteString(wrapperHead)
	b.WriteString(body)
	b.WriteString(wrapperTail)
	b.WriteString(id)
	b.WriteString(wrapperClose)
	return b.String()
}

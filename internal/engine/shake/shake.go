// # internal/engine/shake/shake.go
package shake

import (
	"minibun/internal/engine/graph"
	"minibun/internal/engine/modmap"
)

// SideEffectSentinel pins a module even when none of its exports is used.
const SideEffectSentinel = "__side_effects__"

// Shake performs reachability from the entry and blanks every module that is
// neither referenced nor side-effecting. Kept modules pass through verbatim;
// the output map preserves the input's insertion order. The usage marking is
// conservative: importing a module marks all of its exports used, so tests
// must not assume unused named exports are dropped.
func Shake(modules *modmap.Map, entryID string, tokenize graph.Tokenizer) *modmap.Map {
	g := graph.Build(modules, tokenize)
	usage := computeUsage(g, entryID)

	out := modmap.New()
	for _, id := range modules.IDs() {
		source, _ := modules.Get(id)
		if id == entryID {
			out.Set(id, source)
			continue
		}

		node, _ := g.Node(id)
		if len(usage[id]) == 0 && (node == nil || !node.SideEffect) {
			out.Set(id, "")
			continue
		}
		out.Set(id, source)
	}
	return out
}

// computeUsage is the worklist reachability pass. For every import edge the
// dependency's complete export set is merged into its usage entry; re-export
// sources get the same treatment and are enqueued as well. Visited side-effecting modules get the
// sentinel so elimination keeps their bodies.
func computeUsage(g *graph.Graph, entryID string) map[string]map[string]bool {
	usage := make(map[string]map[string]bool, g.Len())
	visited := make(map[string]bool, g.Len())

	mark := func(id, name string) {
		if usage[id] == nil {
			usage[id] = make(map[string]bool)
		}
		usage[id][name] = true
	}

	queue := []string{entryID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		node, ok := g.Node(id)
		if !ok {
			// Missing module: treated as having no exports.
			continue
		}
		if node.SideEffect {
			mark(id, SideEffectSentinel)
		}

		for _, dep := range node.Imports {
			depNode, ok := g.Node(dep)
			if ok {
				for _, name := range depNode.Exports {
					mark(dep, name)
				}
			}
			if !visited[dep] {
				queue = append(queue, dep)
			}
		}
		for _, src := range node.ReExports {
			srcNode, ok := g.Node(src)
			if ok {
				for _, name := range srcNode.Exports {
					mark(src, name)
				}
			}
			if !visited[src] {
				queue = append(queue, src)
			}
		}
	}

	return usage
}

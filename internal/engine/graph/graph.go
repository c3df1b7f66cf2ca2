// # internal/engine/graph/graph.go
package graph

import (
	"minibun/internal/engine/lexer"
	"minibun/internal/engine/modmap"
	"minibun/internal/engine/parser"
)

// Node is one module's dependency surface.
type Node struct {
	ID string

	// Imports are the specifier strings exactly as written in the source.
	Imports []string
	// Exports are the exported names; "default" and "*" are reserved names.
	Exports []string
	// ReExports are the sources of `export ... from` statements.
	ReExports []string
	// SideEffect marks modules that must be kept even when unreferenced.
	SideEffect bool
}

// Graph is the dependency graph over a module map. Nodes carry only ids, so
// no ownership cycles arise; adjacency is re-derivable from the node table.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// Tokenizer lets callers share a token cache across passes; Tokenize from the
// lexer package is the zero-setup implementation.
type Tokenizer func(source string) []lexer.Token

// Build derives the dependency graph for every module in the map. An edge
// m -> dep exists iff m's source contains a static import whose specifier
// equals dep.
func Build(modules *modmap.Map, tokenize Tokenizer) *Graph {
	if tokenize == nil {
		tokenize = lexer.Tokenize
	}

	g := &Graph{nodes: make(map[string]*Node, modules.Len())}
	for _, id := range modules.IDs() {
		source, _ := modules.Get(id)
		g.add(BuildNode(id, source, tokenize))
	}
	return g
}

// BuildNode analyzes a single module's source.
func BuildNode(id, source string, tokenize Tokenizer) *Node {
	if tokenize == nil {
		tokenize = lexer.Tokenize
	}
	tokens := tokenize(source)
	syntax := parser.FindModuleSyntax(tokens)

	node := &Node{ID: id, SideEffect: hasSideEffects(tokens)}

	seenImports := make(map[string]bool)
	for _, imp := range syntax.Imports {
		if seenImports[imp.Source] {
			continue
		}
		seenImports[imp.Source] = true
		node.Imports = append(node.Imports, imp.Source)
	}

	seenExports := make(map[string]bool)
	seenReExports := make(map[string]bool)
	addExport := func(name string) {
		if !seenExports[name] {
			seenExports[name] = true
			node.Exports = append(node.Exports, name)
		}
	}
	for _, exp := range syntax.Exports {
		switch exp.Kind {
		case parser.ExportDefault:
			addExport("default")
		case parser.ExportAll:
			addExport("*")
		case parser.ExportNamed:
			for _, name := range exp.Names {
				addExport(name)
			}
		}
		if exp.Source != "" && !seenReExports[exp.Source] {
			seenReExports[exp.Source] = true
			node.ReExports = append(node.ReExports, exp.Source)
		}
	}

	return node
}

// hasSideEffects is deliberately coarse: any token spelled new flags the
// module. False positives keep dead code; false negatives would erase an
// observable effect, so the heuristic only ever extends in the keep direction.
func hasSideEffects(tokens []lexer.Token) bool {
	for _, tok := range tokens {
		if tok.Value != "new" {
			continue
		}
		if tok.Kind == lexer.KindIdentifier || tok.Kind == lexer.KindKeyword {
			return true
		}
	}
	return false
}

func (g *Graph) add(node *Node) {
	if _, ok := g.nodes[node.ID]; !ok {
		g.order = append(g.order, node.ID)
	}
	g.nodes[node.ID] = node
}

// Node returns the graph entry for id.
func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// IDs returns every module id in module-map insertion order.
func (g *Graph) IDs() []string {
	return append([]string(nil), g.order...)
}

func (g *Graph) Len() int {
	return len(g.order)
}

// Dependencies returns the ids a module depends on: its static imports
// followed by its re-export sources, deduplicated, in source order.
func (g *Graph) Dependencies(id string) []string {
	node, ok := g.nodes[id]
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(node.Imports)+len(node.ReExports))
	deps := make([]string, 0, len(node.Imports)+len(node.ReExports))
	for _, dep := range node.Imports {
		if !seen[dep] {
			seen[dep] = true
			deps = append(deps, dep)
		}
	}
	for _, dep := range node.ReExports {
		if !seen[dep] {
			seen[dep] = true
			deps = append(deps, dep)
		}
	}
	return deps
}

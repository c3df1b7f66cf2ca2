// # internal/engine/parser/types.go
package parser

// ImportKind distinguishes the two recognized import statement shapes.
type ImportKind int

const (
	// ImportSideEffect is `import "X";` with no binding clause.
	ImportSideEffect ImportKind = iota
	// ImportNamedOrDefault is any `import ... from "X";` form. The binding
	// clause (default, namespace, named list) is not decomposed here.
	ImportNamedOrDefault
)

// ExportKind distinguishes the recognized export statement shapes.
type ExportKind int

const (
	ExportDefault ExportKind = iota
	ExportNamed
	ExportAll
)

// ImportRecord is one static import. Source is the specifier without quotes.
type ImportRecord struct {
	Kind   ImportKind
	Source string
}

// ExportRecord is one export statement. Source is set for re-exports
// (`export * from "X"`, `export { a } from "X"`), empty otherwise.
type ExportRecord struct {
	Kind   ExportKind
	Names  []string
	Source string
}

// ModuleSyntax is the import/export surface of one module.
type ModuleSyntax struct {
	Imports []ImportRecord
	Exports []ExportRecord
}

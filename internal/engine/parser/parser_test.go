// # internal/engine/parser/parser_test.go
package parser

import (
	"testing"

	"minibun/internal/engine/lexer"
)

func syntaxOf(source string) ModuleSyntax {
	return FindModuleSyntax(lexer.Tokenize(source))
}

func TestFindModuleSyntax_Imports(t *testing.T) {
	syntax := syntaxOf(`
import './side.js';
import def from './def.js';
import * as ns from "./ns.js";
import { a, b } from './named.js';
const x = 1;
`)

	if len(syntax.Imports) != 4 {
		t.Fatalf("imports = %d, want 4", len(syntax.Imports))
	}

	want := []ImportRecord{
		{Kind: ImportSideEffect, Source: "./side.js"},
		{Kind: ImportNamedOrDefault, Source: "./def.js"},
		{Kind: ImportNamedOrDefault, Source: "./ns.js"},
		{Kind: ImportNamedOrDefault, Source: "./named.js"},
	}
	for i, w := range want {
		got := syntax.Imports[i]
		if got.Kind != w.Kind || got.Source != w.Source {
			t.Errorf("import %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestFindModuleSyntax_Exports(t *testing.T) {
	syntax := syntaxOf(`
export * from './re.js';
export *;
export default function main() { return 1; }
export { a, b as c };
export const value = 1;
export function helper() {}
export class Thing {}
`)

	if len(syntax.Exports) != 7 {
		t.Fatalf("exports = %d, want 7", len(syntax.Exports))
	}

	if syntax.Exports[0].Kind != ExportAll || syntax.Exports[0].Source != "./re.js" {
		t.Errorf("export 0 = %+v", syntax.Exports[0])
	}
	if syntax.Exports[1].Kind != ExportAll || syntax.Exports[1].Source != "" {
		t.Errorf("export 1 = %+v", syntax.Exports[1])
	}
	if syntax.Exports[2].Kind != ExportDefault {
		t.Errorf("export 2 = %+v", syntax.Exports[2])
	}

	named := syntax.Exports[3]
	if named.Kind != ExportNamed || len(named.Names) != 2 {
		t.Fatalf("export 3 = %+v", named)
	}
	if named.Names[0] != "a" || named.Names[1] != "b" {
		t.Errorf("export 3 names = %v, want [a b]", named.Names)
	}

	for i, wantName := range []string{"value", "helper", "Thing"} {
		record := syntax.Exports[4+i]
		if record.Kind != ExportNamed || len(record.Names) != 1 || record.Names[0] != wantName {
			t.Errorf("export %d = %+v, want named %q", 4+i, record, wantName)
		}
	}
}

func TestFindModuleSyntax_ContextualFrom(t *testing.T) {
	// from is not in the keyword set, so the lexer emits it as an identifier;
	// the extractor must accept either kind.
	syntax := syntaxOf(`import { x } from './a.js';`)
	if len(syntax.Imports) != 1 || syntax.Imports[0].Source != "./a.js" {
		t.Fatalf("imports = %+v", syntax.Imports)
	}
}

func TestFindModuleSyntax_NamedReExport(t *testing.T) {
	syntax := syntaxOf(`export { a } from './origin.js';`)
	if len(syntax.Exports) != 1 {
		t.Fatalf("exports = %+v", syntax.Exports)
	}
	record := syntax.Exports[0]
	if record.Kind != ExportNamed || record.Source != "./origin.js" {
		t.Errorf("record = %+v", record)
	}
	if len(record.Names) != 1 || record.Names[0] != "a" {
		t.Errorf("names = %v", record.Names)
	}
}

func TestFindModuleSyntax_CommentsBetweenTokens(t *testing.T) {
	syntax := syntaxOf("import /* clause */ { a } /* where */ from /* source */ './a.js';")
	if len(syntax.Imports) != 1 || syntax.Imports[0].Source != "./a.js" {
		t.Fatalf("imports = %+v", syntax.Imports)
	}
}

func TestFindModuleSyntax_IgnoresNonModuleCode(t *testing.T) {
	syntax := syntaxOf(`const s = "import './fake.js';"; // import './also-fake.js';`)
	if len(syntax.Imports) != 0 {
		t.Fatalf("imports = %+v, want none", syntax.Imports)
	}
}

func TestFindModuleSyntax_SemicolonlessDeclarations(t *testing.T) {
	// Function and class declarations normally carry no trailing semicolon;
	// the statement skip must not run through the next export.
	syntax := syntaxOf(`
export function first() { return 1; }
export class Second {}
export function third(cb) { return cb({ nested: true }); }
export const fourth = 4;
`)

	if len(syntax.Exports) != 4 {
		t.Fatalf("exports = %+v, want 4", syntax.Exports)
	}
	for i, wantName := range []string{"first", "Second", "third", "fourth"} {
		record := syntax.Exports[i]
		if record.Kind != ExportNamed || len(record.Names) != 1 || record.Names[0] != wantName {
			t.Errorf("export %d = %+v, want named %q", i, record, wantName)
		}
	}
}

func TestFindModuleSyntax_SemicolonlessImports(t *testing.T) {
	syntax := syntaxOf("import a from './a.js'\nimport './b.js'\nimport { c } from './c.js'")

	if len(syntax.Imports) != 3 {
		t.Fatalf("imports = %+v, want 3", syntax.Imports)
	}
	want := []ImportRecord{
		{Kind: ImportNamedOrDefault, Source: "./a.js"},
		{Kind: ImportSideEffect, Source: "./b.js"},
		{Kind: ImportNamedOrDefault, Source: "./c.js"},
	}
	for i, w := range want {
		got := syntax.Imports[i]
		if got.Kind != w.Kind || got.Source != w.Source {
			t.Errorf("import %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestFindModuleSyntax_UnterminatedStatement(t *testing.T) {
	syntax := syntaxOf(`import { a } from './tail.js'`)
	if len(syntax.Imports) != 1 || syntax.Imports[0].Source != "./tail.js" {
		t.Fatalf("imports = %+v", syntax.Imports)
	}
}

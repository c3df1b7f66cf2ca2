// # internal/engine/bundle/bundle_test.go
package bundle

import (
	"strings"
	"testing"

	"minibun/internal/engine/modmap"
)

func TestBundle_DependencyBeforeImporter(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "import { foo } from './util.js'; console.log(foo());")
	modules.Set("./util.js", "export function foo(){ return 1; }")

	result := Bundle(modules, "./index.js", nil)

	utilAt := strings.Index(result.Output, "/* Module: ./util.js */")
	indexAt := strings.Index(result.Output, "/* Module: ./index.js */")
	if utilAt < 0 || indexAt < 0 {
		t.Fatalf("missing module markers in output:\n%s", result.Output)
	}
	if utilAt >= indexAt {
		t.Errorf("dependency marker at %d not before importer at %d", utilAt, indexAt)
	}
	if len(result.Cycles) != 0 {
		t.Errorf("unexpected cycles %v", result.Cycles)
	}
}

func TestBundle_EveryModuleExactlyOnce(t *testing.T) {
	modules := modmap.New()
	modules.Set("./a.js", "import { b } from './b.js';")
	modules.Set("./b.js", "export const b = 1;")
	modules.Set("./loose.js", "export const loose = 1;")

	result := Bundle(modules, "./a.js", nil)
	for _, id := range modules.IDs() {
		marker := "/* Module: " + id + " */"
		if got := strings.Count(result.Output, marker); got != 1 {
			t.Errorf("marker %q appears %d times, want 1", marker, got)
		}
	}
}

func TestBundle_WrapperShape(t *testing.T) {
	modules := modmap.New()
	modules.Set("./only.js", "exports.value = 42;")

	result := Bundle(modules, "./only.js", nil)

	if !strings.HasPrefix(result.Output, "var __modules__ = {};\n") {
		t.Errorf("missing prefix line:\n%s", result.Output)
	}
	if !strings.HasSuffix(result.Output, "var __entry__ = __modules__['./only.js'];") {
		t.Errorf("missing entry trailer:\n%s", result.Output)
	}

	wantWrapped := "/* Module: ./only.js */\n" +
		"(function (modules, moduleName) {\n" +
		"  var module = { exports: {} };\n" +
		"  var exports = module.exports;\n" +
		"  (function (require, module, exports) {\n" +
		"exports.value = 42;\n" +
		"  })(function (id) { return modules[id]; }, module, exports);\n" +
		"  modules[moduleName] = module.exports;\n" +
		"})(__modules__, './only.js');"
	if !strings.Contains(result.Output, wantWrapped) {
		t.Errorf("wrapper template mismatch:\n%s", result.Output)
	}
}

func TestBundle_SurvivesCycle(t *testing.T) {
	modules := modmap.New()
	modules.Set("./a.js", "import { b } from './b.js'; export const a = () => b + 1;")
	modules.Set("./b.js", "import { a } from './a.js'; export const b = a();")

	result := Bundle(modules, "./a.js", nil)

	if !strings.Contains(result.Output, "/* Module: ./a.js */") ||
		!strings.Contains(result.Output, "/* Module: ./b.js */") {
		t.Fatalf("cycle members missing from output:\n%s", result.Output)
	}
	if len(result.Cycles) == 0 {
		t.Fatal("expected a cycle diagnostic")
	}
	if result.Cycles[0] != "./a.js" && result.Cycles[0] != "./b.js" {
		t.Errorf("unexpected cycle participant %q", result.Cycles[0])
	}
}

func TestBundle_MissingModuleSkipped(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "import { x } from './not-there.js';")

	result := Bundle(modules, "./index.js", nil)
	if strings.Contains(result.Output, "/* Module: ./not-there.js */") {
		t.Errorf("missing module should not be stubbed:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "/* Module: ./index.js */") {
		t.Errorf("entry missing from output:\n%s", result.Output)
	}
}

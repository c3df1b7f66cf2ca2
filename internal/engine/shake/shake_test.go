// # internal/engine/shake/shake_test.go
package shake

import (
	"strings"
	"testing"

	"minibun/internal/engine/modmap"
)

func TestShake_DropsUnreachablePureModule(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "import { used } from './used.js'; console.log(used);")
	modules.Set("./used.js", "export const used = 1;")
	modules.Set("./dead.js", "export const dead = 2;")

	out := Shake(modules, "./index.js", nil)

	if out.Len() != 3 {
		t.Fatalf("out len = %d, want 3", out.Len())
	}
	if src, _ := out.Get("./used.js"); src == "" {
		t.Error("./used.js was blanked")
	}
	if src, _ := out.Get("./dead.js"); src != "" {
		t.Errorf("./dead.js kept: %q", src)
	}
}

func TestShake_KeepsSideEffectingModule(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "export const x = 1;")
	modules.Set("./boot.js", "const app = new App();")

	out := Shake(modules, "./index.js", nil)
	if src, _ := out.Get("./boot.js"); src == "" {
		t.Error("side-effecting module was blanked")
	}
}

func TestShake_EntryAlwaysVerbatim(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "   ")

	out := Shake(modules, "./index.js", nil)
	if src, _ := out.Get("./index.js"); src != "   " {
		t.Errorf("entry source changed: %q", src)
	}
}

func TestShake_FollowsReExports(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "import { a } from './barrel.js';")
	modules.Set("./barrel.js", "export * from './impl.js';")
	modules.Set("./impl.js", "export const a = 1;")

	out := Shake(modules, "./index.js", nil)
	if src, _ := out.Get("./impl.js"); src == "" {
		t.Error("re-exported module was blanked")
	}
}

func TestShake_PreservesOrder(t *testing.T) {
	modules := modmap.New()
	modules.Set("./z.js", "export const z = 1;")
	modules.Set("./index.js", "import { z } from './z.js';")
	modules.Set("./a.js", "export const a = 1;")

	out := Shake(modules, "./index.js", nil)
	ids := out.IDs()
	want := []string{"./z.js", "./index.js", "./a.js"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestShake_MissingDependency(t *testing.T) {
	modules := modmap.New()
	modules.Set("./index.js", "import { gone } from './missing.js';")

	out := Shake(modules, "./index.js", nil)
	if out.Len() != 1 {
		t.Fatalf("out len = %d, want 1", out.Len())
	}
}

func TestShake_ConservativeUsage(t *testing.T) {
	// Importing any name marks every export of the dependency used; the
	// unused export must survive.
	modules := modmap.New()
	modules.Set("./index.js", "import { one } from './lib.js';")
	modules.Set("./lib.js", "export const one = 1;\nexport const two = 2;")

	out := Shake(modules, "./index.js", nil)
	src, _ := out.Get("./lib.js")
	if src == "" {
		t.Fatal("./lib.js was blanked")
	}
	if !strings.Contains(src, "export const two = 2;") {
		t.Errorf("unused export dropped from %q", src)
	}
}

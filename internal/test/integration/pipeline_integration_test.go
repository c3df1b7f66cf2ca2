package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"minibun/internal/core/app"
	"minibun/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProject(t *testing.T, dir string) {
	files := map[string]string{
		"index.js": `import { greet } from './lib/greet.js';
import './lib/boot.js';
console.log(greet('world'));`,
		"lib/greet.js": `export function greet(name) { return 'hello ' + name; }
export const unusedButKept = true;`,
		"lib/boot.js": `const app = new AppShell();`,
		"lib/dead.js": `export const nobodyWantsMe = 1;`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestFullPipelineIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	createTestProject(t, tmpDir)

	cfg := config.DefaultConfig()
	cfg.SourceDirs = []string{tmpDir}
	cfg.Entry = "./index.js"
	cfg.Steps = []string{"treeShake", "bundle"}
	cfg.Output.Path = filepath.Join(t.TempDir(), "bundle.js")
	cfg.DB.Enabled = true
	cfg.DB.Path = filepath.Join(t.TempDir(), "builds.db")

	appInstance, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer appInstance.Close(context.Background())

	report, err := appInstance.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.ModuleCount)
	assert.Equal(t, 3, report.KeptModules, "dead module should be blanked, side-effecting boot kept")
	assert.Empty(t, report.Cycles)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	out := string(data)

	// Dependencies come before the entry.
	greetAt := strings.Index(out, "/* Module: ./lib/greet.js */")
	indexAt := strings.Index(out, "/* Module: ./index.js */")
	require.GreaterOrEqual(t, greetAt, 0)
	require.GreaterOrEqual(t, indexAt, 0)
	assert.Less(t, greetAt, indexAt)

	// The conservative shaker keeps unused exports of imported modules.
	assert.Contains(t, out, "unusedButKept")
	// The dead module is present but blanked.
	assert.Contains(t, out, "/* Module: ./lib/dead.js */")
	assert.NotContains(t, out, "nobodyWantsMe")

	// A snapshot was recorded.
	snapshots, err := appInstance.History(time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, report.BuildID, snapshots[0].BuildID)
	assert.Equal(t, 4, snapshots[0].ModuleCount)
}

func TestMinifyObfuscateIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "index.js"),
		[]byte(`const secret = "Hi"; if (true) { console.log(secret); }`), 0o644))

	cfg := config.DefaultConfig()
	cfg.SourceDirs = []string{tmpDir}
	cfg.Entry = "./index.js"
	cfg.Steps = []string{"bundle", "minify", "obfuscate"}
	cfg.Output.Path = filepath.Join(t.TempDir(), "bundle.js")

	appInstance, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer appInstance.Close(context.Background())

	_, err = appInstance.Build(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `"\x48\x69"`, "string should be hex encoded")
	assert.NotContains(t, out, `"Hi"`)
	assert.Contains(t, out, "!0", "true should shrink")
	assert.NotContains(t, out, "/* Module:", "minify drops marker comments")
}

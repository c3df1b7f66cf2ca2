package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Version       int           `toml:"version"`
	Entry         string        `toml:"entry"`
	Steps         []string      `toml:"steps"`
	SourceDirs    []string      `toml:"source_dirs"`
	Extensions    []string      `toml:"extensions"`
	Exclude       Exclude       `toml:"exclude"`
	Watch         Watch         `toml:"watch"`
	Minify        Minify        `toml:"minify"`
	Obfuscate     Obfuscate     `toml:"obfuscate"`
	Output        Output        `toml:"output"`
	Observability Observability `toml:"observability"`
	DB            Database      `toml:"db"`
	Cache         Cache         `toml:"cache"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Enabled     bool          `toml:"enabled"`
	Debounce    time.Duration `toml:"debounce"`
	MaxRebuilds float64       `toml:"max_rebuilds_per_second"`
}

type Minify struct {
	KeepComments bool `toml:"keep_comments"`
}

type Obfuscate struct {
	EncodeStrings     *bool `toml:"encode_strings"`
	RenameIdentifiers bool  `toml:"rename_identifiers"`
	FlattenIfs        bool  `toml:"flatten_ifs"`
}

type Output struct {
	Path string `toml:"path"`
}

type Observability struct {
	MetricsEnabled bool   `toml:"metrics_enabled"`
	MetricsAddr    string `toml:"metrics_addr"`
	TraceEndpoint  string `toml:"trace_endpoint"`
}

type Database struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type Cache struct {
	TokenEntries int `toml:"token_entries"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateEntry(&cfg); err != nil {
		return nil, err
	}
	if err := validateSteps(&cfg); err != nil {
		return nil, err
	}
	if err := validateWatch(&cfg); err != nil {
		return nil, err
	}
	if err := validateObservability(&cfg); err != nil {
		return nil, err
	}
	if err := validateDatabase(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Entry) == "" {
		cfg.Entry = "./index.js"
	}
	if len(cfg.Steps) == 0 {
		cfg.Steps = []string{"treeShake", "bundle", "minify"}
	}
	if len(cfg.SourceDirs) == 0 {
		cfg.SourceDirs = []string{"."}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".js", ".mjs"}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"node_modules", ".git"}
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MaxRebuilds <= 0 {
		cfg.Watch.MaxRebuilds = 2
	}

	if strings.TrimSpace(cfg.Output.Path) == "" {
		cfg.Output.Path = "dist/bundle.js"
	}

	if strings.TrimSpace(cfg.Observability.MetricsAddr) == "" {
		cfg.Observability.MetricsAddr = "127.0.0.1:9477"
	}

	if strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = "minibun.db"
	}

	if cfg.Cache.TokenEntries <= 0 {
		cfg.Cache.TokenEntries = 256
	}
}

// EncodeStringsEnabled reports the obfuscator default when unset.
func (o Obfuscate) EncodeStringsEnabled() bool {
	if o.EncodeStrings == nil {
		return true
	}
	return *o.EncodeStrings
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateEntry(cfg *Config) error {
	if strings.TrimSpace(cfg.Entry) == "" {
		return fmt.Errorf("entry must not be empty")
	}
	return nil
}

func validateSteps(cfg *Config) error {
	known := map[string]bool{
		"treeShake": true,
		"bundle":    true,
		"minify":    true,
		"obfuscate": true,
	}

	seen := make(map[string]bool, len(cfg.Steps))
	for i, step := range cfg.Steps {
		name := strings.TrimSpace(step)
		if name == "" {
			return fmt.Errorf("steps[%d] must not be empty", i)
		}
		if !known[name] {
			return fmt.Errorf("steps[%d] references unknown step %q; known steps: treeShake, bundle, minify, obfuscate", i, name)
		}
		if seen[name] {
			return fmt.Errorf("step %q appears more than once", name)
		}
		seen[name] = true
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.MaxRebuilds <= 0 {
		return fmt.Errorf("watch.max_rebuilds_per_second must be positive")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.MetricsEnabled && strings.TrimSpace(cfg.Observability.MetricsAddr) == "" {
		return fmt.Errorf("observability.metrics_addr must not be empty when metrics are enabled")
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	if cfg.DB.Enabled && strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty when db is enabled")
	}
	return nil
}

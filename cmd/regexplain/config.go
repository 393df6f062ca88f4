package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/regexplainer/regexplain"
)

// fileConfig is the YAML configuration read with --config.
//
//	strictness: strict
//	fail_at: error
//	ignore: [brace-*]
//	overrides:
//	  identity-escape: warning
//	format: markdown
//	caveats: true
//	ecma: true
type fileConfig struct {
	Strictness regexplain.StrictnessLevel    `yaml:"strictness"`
	FailAt     regexplain.Severity           `yaml:"fail_at"`
	Ignore     []string                      `yaml:"ignore"`
	Overrides  map[string]regexplain.Severity `yaml:"overrides"`

	Format   string `yaml:"format"`
	Caveats  bool   `yaml:"caveats"`
	Header   bool   `yaml:"header"`
	ECMA     bool   `yaml:"ecma"`
	MaxDepth int    `yaml:"max_depth"`
}

func defaultFileConfig() fileConfig {
	def := regexplain.DefaultConfig()
	return fileConfig{
		Strictness: def.Level,
		FailAt:     def.FailAt,
		Format:     "text",
	}
}

// loadFileConfig reads a YAML config. Missing keys keep their defaults.
func loadFileConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if !validFormat(cfg.Format) {
		return cfg, fmt.Errorf("config %s: unknown format %q", path, cfg.Format)
	}
	return cfg, nil
}

func (f fileConfig) diagnosticConfig() regexplain.DiagnosticConfig {
	return regexplain.DiagnosticConfig{
		Level:     f.Strictness,
		FailAt:    f.FailAt,
		Ignore:    f.Ignore,
		Overrides: f.Overrides,
	}
}

func validFormat(format string) bool {
	switch format {
	case "text", "markdown", "json", "yaml", "railroad":
		return true
	}
	return false
}

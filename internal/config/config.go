// Package config loads specgest settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/specgest/internal/specdoc"
)

type Config struct {
	// Batch extraction
	SourceRoot string   `yaml:"source_root"`
	TargetRoot string   `yaml:"target_root"`
	Versions   []string `yaml:"versions"`
	Workers    int      `yaml:"workers"`
	WriteTree  bool     `yaml:"write_tree"`

	// URL templates; $VERSION and $VERSION_MINOR are substituted.
	MarkdownURL string `yaml:"markdown_url"`
	SchemaURL   string `yaml:"schema_url"`

	// HTTP server
	Port           string `yaml:"port"`
	APIKey         string `yaml:"api_key"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SourceRoot:     "../specifications",
		TargetRoot:     "./specifications-data",
		Versions:       []string{"2.0", "3.0.3", "3.1.0"},
		Workers:        4,
		MarkdownURL:    specdoc.DefaultMarkdownURL,
		SchemaURL:      specdoc.DefaultSchemaURL,
		Port:           "8090",
		MaxUploadBytes: 10485760, // 10MB
	}
}

// envVarPattern matches ${VAR_NAME} references in the config file.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load builds the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.SourceRoot = envOr("SPECGEST_SOURCE_ROOT", cfg.SourceRoot)
	cfg.TargetRoot = envOr("SPECGEST_TARGET_ROOT", cfg.TargetRoot)
	cfg.Versions = envList("SPECGEST_VERSIONS", cfg.Versions)
	cfg.Workers = envInt("SPECGEST_WORKERS", cfg.Workers)
	cfg.WriteTree = envBool("SPECGEST_WRITE_TREE", cfg.WriteTree)
	cfg.MarkdownURL = envOr("SPECGEST_MARKDOWN_URL", cfg.MarkdownURL)
	cfg.SchemaURL = envOr("SPECGEST_SCHEMA_URL", cfg.SchemaURL)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("SPECGEST_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("SPECGEST_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)

	def := Default()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.Port == "" {
		cfg.Port = def.Port
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.SourceRoot == "" {
		return fmt.Errorf("source root is required")
	}
	if c.TargetRoot == "" {
		return fmt.Errorf("target root is required")
	}
	if len(c.Versions) == 0 {
		return fmt.Errorf("at least one version is required")
	}
	for _, v := range c.Versions {
		if strings.ContainsAny(v, `/\`) || v == "" || v == "." || v == ".." {
			return fmt.Errorf("invalid version %q", v)
		}
	}
	if !strings.Contains(c.MarkdownURL, "$VERSION") {
		return fmt.Errorf("markdown url template must contain $VERSION")
	}
	if !strings.Contains(c.SchemaURL, "$VERSION") {
		return fmt.Errorf("schema url template must contain $VERSION or $VERSION_MINOR")
	}
	return nil
}

// expandEnvVars replaces ${VAR_NAME} with the variable's value, or "" when unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}"))
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envList reads a comma-separated list.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

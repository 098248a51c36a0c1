// Package config provides hierarchical configuration management for
// changelog-md using koanf. Values are loaded with priority:
// environment variables > project config (.changelog-md.yml) > user
// config (~/.config/changelog-md/config.yml) > defaults. Project
// config may also be JSON (.changelog-md.json).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/changelog-md/internal/changelog"
)

// envPrefix namespaces the environment variables read by the tool,
// e.g. CHANGELOG_MD_FORMAT=toml.
const envPrefix = "CHANGELOG_MD_"

// Config represents the changelog-md tool configuration.
type Config struct {
	// Source is the CHANGELOG source file path. Empty means autodetect
	// CHANGELOG.{yml,yaml,toml,json} in the working directory.
	Source string `koanf:"source"`

	// Format is the default syntax for init and convert: "yaml",
	// "toml", or "json".
	Format string `koanf:"format"`

	// Repository overrides the detected repository URL when seeding a
	// new changelog.
	Repository string `koanf:"repository"`

	// Pretty enables indented output when encoding.
	Pretty bool `koanf:"pretty"`
}

// LoadOptions allows customizing configuration loading.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config file location.
	ProjectConfigPath string
}

// Load loads configuration using default options.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if path := userConfigPath(); fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading user config %s: %w", path, err)
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Format != "" {
		if _, err := changelog.ParseFormat(cfg.Format); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	return &cfg, nil
}

// defaults returns the built-in configuration values.
func defaults() map[string]any {
	return map[string]any{
		"source":     "",
		"format":     "yaml",
		"repository": "",
		"pretty":     true,
	}
}

// loadProjectConfig loads the project-level config file. YAML is
// preferred; JSON is supported for projects that keep all their
// dotfiles in JSON.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	if customPath != "" {
		if err := k.Load(file.Provider(customPath), parserForPath(customPath)); err != nil {
			return fmt.Errorf("loading project config %s: %w", customPath, err)
		}
		return nil
	}

	for _, candidate := range []string{".changelog-md.yml", ".changelog-md.yaml", ".changelog-md.json"} {
		if !fileExists(candidate) {
			continue
		}
		if err := k.Load(file.Provider(candidate), parserForPath(candidate)); err != nil {
			return fmt.Errorf("loading project config %s: %w", candidate, err)
		}
		return nil
	}
	return nil
}

func parserForPath(path string) koanf.Parser {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

// userConfigPath returns the user-level config location, following the
// XDG base directory convention via os.UserConfigDir.
func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "changelog-md", "config.yml")
}

// envTransform maps CHANGELOG_MD_SOME_KEY to the config key "some_key".
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

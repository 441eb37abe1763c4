// Package config provides the configuration loader for polish.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration version this loader understands.
const SchemaVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd. An empty path searches for polish.yaml from cwd upwards;
// when none exists the defaults apply, rooted at cwd.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path == "" {
		found, ok := findConfiguration(cwd)
		if !ok {
			cfg := domain.DefaultConfig()
			cfg.Root = filepath.Clean(cwd)
			cfg.Cache.Dir = filepath.Join(cfg.Root, domain.DefaultCachePath())
			return cfg, nil
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	var file Polishfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if file.Version != "" && file.Version != SchemaVersion {
		l.Logger.Warn("unknown configuration version", "version", file.Version, "path", path)
	}

	return build(path, &file)
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func build(configPath string, file *Polishfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	configDir := filepath.Dir(configPath)

	cfg.Root = resolvePath(configDir, file.Root)
	if len(file.Include) > 0 {
		cfg.Include = file.Include
	}
	if file.Exclude != nil {
		cfg.Exclude = file.Exclude
	}
	if file.Parallel != nil {
		cfg.Parallel = *file.Parallel
	}
	if file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	cfg.Verbose = file.Verbose

	cfg.Cache.Dir = filepath.Join(cfg.Root, domain.DefaultCachePath())
	if c := file.Cache; c != nil {
		if c.Enabled != nil {
			cfg.Cache.Enabled = *c.Enabled
		}
		if c.Capacity > 0 {
			cfg.Cache.Capacity = c.Capacity
		}
		if c.Dir != "" {
			cfg.Cache.Dir = resolvePath(cfg.Root, c.Dir)
		}
	}

	for _, p := range file.Plugins {
		if p.Path == "" {
			return nil, zerr.With(domain.ErrPluginLoadFailed, "reason", "plugin path is empty")
		}
		cfg.Plugins = append(cfg.Plugins, domain.PluginRef{Path: resolvePath(configDir, p.Path)})
	}

	for name, dto := range file.Languages {
		lang := domain.Language(name)
		if !lang.IsSupported() {
			return nil, zerr.With(zerr.With(domain.ErrUnsupportedLanguage, "language", name), "path", configPath)
		}
		cfg.Languages[lang] = buildLanguage(dto)
	}

	return cfg, nil
}

func buildLanguage(dto LanguageDTO) domain.LanguageConfig {
	lc := domain.LanguageConfig{
		Enabled: true,
		Rules:   make(map[string]domain.RuleSetting, len(dto.Rules)),
		Format:  domain.DefaultFormatOptions(),
	}
	if dto.Enabled != nil {
		lc.Enabled = *dto.Enabled
	}
	for id, rs := range dto.Rules {
		lc.Rules[id] = domain.RuleSetting{Level: rs.Level, Options: rs.Options}
	}
	if f := dto.Format; f != nil {
		if f.IndentSize > 0 {
			lc.Format.IndentSize = f.IndentSize
		}
		lc.Format.UseTabs = f.UseTabs
		if f.FinalNewline != nil {
			lc.Format.FinalNewline = *f.FinalNewline
		}
	}
	return lc
}

func resolvePath(base, configured string) string {
	if configured == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(base, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user or found by discovery
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

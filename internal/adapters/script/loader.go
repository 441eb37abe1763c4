// Package script loads plugins whose rules and formatters are Risor scripts.
package script

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.PluginLoader for plugin.yaml manifests.
type Loader struct{}

var _ ports.PluginLoader = (*Loader)(nil)

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest at ref.Path and the scripts it references.
// The returned plugin still has to pass registry validation.
func (l *Loader) Load(_ context.Context, ref domain.PluginRef) (*domain.Plugin, error) {
	path := ref.Path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, domain.PluginManifestName)
	}

	// #nosec G304 -- plugin paths come from the user's configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPluginLoadFailed.Error()), "path", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPluginLoadFailed.Error()), "path", path)
	}

	dir := filepath.Dir(path)
	plugin := &domain.Plugin{
		Name:    m.Name,
		Version: m.Version,
	}
	for _, lang := range m.Languages {
		plugin.Languages = append(plugin.Languages, domain.Language(lang))
	}

	if len(m.Rules) > 0 {
		plugin.Rules = make(map[string]domain.Rule, len(m.Rules))
	}
	for id, dto := range m.Rules {
		if len(dto.Kinds) == 0 {
			return nil, zerr.With(zerr.With(domain.ErrInvalidPlugin, "rule", id), "reason", "no node kinds")
		}
		src, err := readScript(dir, dto.Script)
		if err != nil {
			return nil, zerr.With(err, "rule", id)
		}
		plugin.Rules[id] = newRule(m.Name+"/"+id, dto, src)
	}

	if len(m.Formatters) > 0 {
		plugin.Formatters = make(map[domain.Language]domain.Formatter, len(m.Formatters))
	}
	for lang, scriptPath := range m.Formatters {
		src, err := readScript(dir, scriptPath)
		if err != nil {
			return nil, zerr.With(err, "formatter", lang)
		}
		plugin.Formatters[domain.Language(lang)] = &Formatter{name: m.Name, source: src}
	}

	return plugin, nil
}

func readScript(dir, path string) (string, error) {
	if path == "" {
		return "", zerr.With(domain.ErrInvalidPlugin, "reason", "missing script")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	// #nosec G304 -- script paths come from the plugin manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrPluginLoadFailed.Error()), "script", path)
	}
	return string(data), nil
}

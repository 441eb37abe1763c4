package config

import (
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Polishfile represents the structure of the polish.yaml configuration file.
type Polishfile struct {
	Version   string                 `yaml:"version"`
	Root      string                 `yaml:"root"`
	Include   []string               `yaml:"include"`
	Exclude   []string               `yaml:"exclude"`
	Parallel  *bool                  `yaml:"parallel"`
	Workers   int                    `yaml:"workers"`
	Verbose   bool                   `yaml:"verbose"`
	Cache     *CacheDTO              `yaml:"cache"`
	Plugins   []PluginDTO            `yaml:"plugins"`
	Languages map[string]LanguageDTO `yaml:"languages"`
}

// CacheDTO represents the cache section.
type CacheDTO struct {
	Enabled  *bool  `yaml:"enabled"`
	Capacity int    `yaml:"capacity"`
	Dir      string `yaml:"dir"`
}

// PluginDTO points at a plugin manifest, relative to the configuration file.
type PluginDTO struct {
	Path string `yaml:"path"`
}

// LanguageDTO represents the settings of one language.
type LanguageDTO struct {
	Enabled *bool                     `yaml:"enabled"`
	Rules   map[string]RuleSettingDTO `yaml:"rules"`
	Format  *FormatDTO                `yaml:"format"`
}

// FormatDTO represents the format options of one language.
type FormatDTO struct {
	IndentSize   int   `yaml:"indentSize"`
	UseTabs      bool  `yaml:"useTabs"`
	FinalNewline *bool `yaml:"finalNewline"`
}

// RuleSettingDTO is either a bare level ("warn") or a [level, {options}] pair.
type RuleSettingDTO struct {
	Level   string
	Options map[string]any
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RuleSettingDTO) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&r.Level)
	case yaml.SequenceNode:
		if len(value.Content) == 0 || len(value.Content) > 2 || value.Content[0].Kind != yaml.ScalarNode {
			return zerr.With(domain.ErrInvalidRuleSetting, "line", value.Line)
		}
		if err := value.Content[0].Decode(&r.Level); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrInvalidRuleSetting.Error()), "line", value.Line)
		}
		if len(value.Content) == 2 {
			if value.Content[1].Kind != yaml.MappingNode {
				return zerr.With(domain.ErrInvalidRuleSetting, "line", value.Line)
			}
			if err := value.Content[1].Decode(&r.Options); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrInvalidRuleSetting.Error()), "line", value.Line)
			}
		}
		return nil
	default:
		return zerr.With(domain.ErrInvalidRuleSetting, "line", value.Line)
	}
}

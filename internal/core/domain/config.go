package domain

// DefaultWorkers is the chunk size used when the configuration leaves workers unset.
const DefaultWorkers = 4

// Config is the resolved polish configuration.
type Config struct {
	Root      string
	Include   []string
	Exclude   []string
	Parallel  bool
	Workers   int
	Verbose   bool
	Cache     CacheConfig
	Plugins   []PluginRef
	Languages map[Language]LanguageConfig
}

// CacheConfig controls the two cache tiers.
type CacheConfig struct {
	Enabled  bool
	Capacity int
	Dir      string
}

// PluginRef points at a script plugin manifest.
type PluginRef struct {
	Path string
}

// LanguageConfig is the per-language section of the configuration.
type LanguageConfig struct {
	Enabled bool
	Rules   map[string]RuleSetting
	Format  FormatOptions
}

// RuleSetting is the configured level of a rule plus its options.
// Level is kept as written; resolution to a Severity happens at lookup time.
type RuleSetting struct {
	Level   string         `json:"level"`
	Options map[string]any `json:"options,omitempty"`
}

// DefaultFormatOptions returns the formatting defaults: two-space indentation and a final newline.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{IndentSize: 2, FinalNewline: true}
}

// DefaultConfig returns the configuration used when no polish.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Root:     ".",
		Include:  []string{"**/*"},
		Exclude:  []string{"node_modules/**", ".git/**", PolishDirName + "/**"},
		Parallel: true,
		Workers:  DefaultWorkers,
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: DefaultCacheCapacity,
			Dir:      DefaultCachePath(),
		},
		Languages: map[Language]LanguageConfig{},
	}
}

// Language returns the configuration for lang, falling back to an enabled default.
func (c *Config) Language(lang Language) LanguageConfig {
	if c != nil {
		if lc, ok := c.Languages[lang]; ok {
			if lc.Format.IndentSize <= 0 {
				lc.Format.IndentSize = DefaultFormatOptions().IndentSize
			}
			return lc
		}
	}
	return LanguageConfig{Enabled: true, Format: DefaultFormatOptions()}
}

// LanguageEnabled reports whether files of lang should be processed.
func (c *Config) LanguageEnabled(lang Language) bool {
	return lang.IsSupported() && c.Language(lang).Enabled
}

// WorkerCount returns the configured chunk size, defaulting non-positive values.
func (c *Config) WorkerCount() int {
	if c == nil || c.Workers <= 0 {
		return DefaultWorkers
	}
	return c.Workers
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Include = append([]string(nil), c.Include...)
	out.Exclude = append([]string(nil), c.Exclude...)
	out.Plugins = append([]PluginRef(nil), c.Plugins...)
	out.Languages = make(map[Language]LanguageConfig, len(c.Languages))
	for lang, lc := range c.Languages {
		rules := make(map[string]RuleSetting, len(lc.Rules))
		for id, rs := range lc.Rules {
			rules[id] = rs
		}
		lc.Rules = rules
		out.Languages[lang] = lc
	}
	return &out
}

package script

// Manifest represents the structure of a plugin.yaml file.
type Manifest struct {
	Name       string             `yaml:"name"`
	Version    string             `yaml:"version"`
	Languages  []string           `yaml:"languages"`
	Rules      map[string]RuleDTO `yaml:"rules"`
	Formatters map[string]string  `yaml:"formatters"`
}

// RuleDTO declares a script rule.
type RuleDTO struct {
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
	Recommended bool     `yaml:"recommended"`
	Options     []string `yaml:"options"`
	// Kinds lists the node kinds the script is run for.
	Kinds []string `yaml:"kinds"`
	// Script is the path of the Risor script, relative to the manifest.
	Script string `yaml:"script"`
	// Deprecated holds the deprecation message, if any.
	Deprecated string `yaml:"deprecated"`
}

// Package config holds the symbol line settings and their reload machinery.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSentinel as the default text means "show the current file name".
const FileSentinel = "%f"

// Config represents the symbol line configuration
type Config struct {
	// ShowIcons prepends a kind label to each breadcrumb entry.
	ShowIcons bool `yaml:"icons"`
	// KindLabels maps lowercase kind names to display labels. The
	// "default" entry is the fallback label; "file" labels the empty
	// breadcrumb placeholder.
	KindLabels map[string]string `yaml:"kindLabels"`
	// DefaultText is shown when no symbol encloses the cursor.
	// FileSentinel substitutes the file name; empty renders nothing.
	DefaultText string `yaml:"default"`
	// Separator is placed between breadcrumb entries.
	Separator string `yaml:"separator"`
	// ShowKinds restricts the breadcrumb to these kinds when non-empty.
	ShowKinds []string `yaml:"showKinds"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ShowIcons: true,
		KindLabels: map[string]string{
			"file":           "F",
			"module":         "M",
			"namespace":      "N",
			"package":        "P",
			"class":          "C",
			"method":         "m",
			"property":       "p",
			"field":          "f",
			"constructor":    "c",
			"enum":           "E",
			"interface":      "I",
			"function":       "f",
			"variable":       "v",
			"constant":       "k",
			"struct":         "S",
			"enum_member":    "e",
			"type_parameter": "t",
			"default":        "?",
		},
		DefaultText: FileSentinel,
		Separator:   " > ",
		ShowKinds:   nil,
	}
}

// Load reads configuration from a YAML file, applying the file's values
// over the defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// A file that overrides kindLabels only partially still falls back
	// to the default label set for the keys it omits.
	defaults := Default()
	if cfg.KindLabels == nil {
		cfg.KindLabels = defaults.KindLabels
	} else {
		for kind, label := range defaults.KindLabels {
			if _, ok := cfg.KindLabels[kind]; !ok {
				cfg.KindLabels[kind] = label
			}
		}
	}

	return cfg, nil
}

// Label returns the display label for a lowercase kind name, falling
// back to the "default" entry.
func (c *Config) Label(kind string) string {
	if label, ok := c.KindLabels[kind]; ok {
		return label
	}
	return c.KindLabels["default"]
}

// KindAllowed reports whether the kind passes the ShowKinds allow-list.
// An empty list allows every kind.
func (c *Config) KindAllowed(kind string) bool {
	if len(c.ShowKinds) == 0 {
		return true
	}
	for _, k := range c.ShowKinds {
		if k == kind {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	PopulationPath string `mapstructure:"population_path" yaml:"population_path"`
	GeometryPath   string `mapstructure:"geometry_path" yaml:"geometry_path"`
	// AreaPath may be empty: areas are then derived from the geometry.
	AreaPath string `mapstructure:"area_path" yaml:"area_path"`
	// Display-name property of the geometry features, used as the join key.
	NameProperty string `mapstructure:"name_property" yaml:"name_property"`
	// Delimiter for the tabular sources: "," | ";" | "tab". Empty picks by extension.
	Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
	DefaultMetric string `mapstructure:"default_metric" yaml:"default_metric"`

	// Diagnostics
	SuggestMaxDistance int `mapstructure:"suggest_max_distance" yaml:"suggest_max_distance"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// configDir returns ~/.popmap.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".popmap"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.popmap/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("POPMAP")
	v.AutomaticEnv()

	// Defaults match the layout of the reference datasets.
	v.SetDefault("population_path", filepath.Join("data", "population.csv"))
	v.SetDefault("area_path", filepath.Join("data", "area.csv"))
	v.SetDefault("geometry_path", filepath.Join("maps", "110m_cultural", "ne_110m_admin_0_countries.geojson"))
	v.SetDefault("name_property", "NAME")
	v.SetDefault("delimiter", "")
	v.SetDefault("default_metric", "population")
	v.SetDefault("suggest_max_distance", 3)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; an unreadable or broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports every invalid setting at once.
func (c *Global) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.PopulationPath) == "" {
		result = multierror.Append(result, errors.New("population_path is empty"))
	}
	if strings.TrimSpace(c.GeometryPath) == "" {
		result = multierror.Append(result, errors.New("geometry_path is empty"))
	}
	if c.NameProperty == "" {
		result = multierror.Append(result, errors.New("name_property is empty"))
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		result = multierror.Append(result, err)
	}
	switch c.DefaultMetric {
	case "population", "population_density":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid default_metric: %q (use population or population_density)", c.DefaultMetric))
	}
	if c.SuggestMaxDistance < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid suggest_max_distance: %d", c.SuggestMaxDistance))
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log_level: %q (use debug, info, warn or error)", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log_format: %q (use text or json)", c.LogFormat))
	}
	return result.ErrorOrNil()
}

// ParseDelimiter maps the configured delimiter name to a rune. Zero means auto.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab')", s)
	}
}

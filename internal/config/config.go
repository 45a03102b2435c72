// Package config loads mtran settings from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/glebzikunov/MTRAN/internal/logging"
)

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds all configuration for mtran.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Check   CheckConfig   `toml:"check" yaml:"check"`
	Tree    TreeConfig    `toml:"tree" yaml:"tree"`
}

type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	Color     bool   `toml:"color" yaml:"color"`
}

type CheckConfig struct {
	// MaxErrors caps the reported semantic diagnostics; 0 means no limit.
	MaxErrors int  `toml:"max_errors" yaml:"max_errors"`
	ShowTree  bool `toml:"show_tree" yaml:"show_tree"`
}

type TreeConfig struct {
	Indent string `toml:"indent" yaml:"indent"`
}

// FileNames are the names Discover looks for, in order.
var FileNames = []string{"mtran.toml", ".mtran.toml", "mtran.yaml", "mtran.yml"}

func Default() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:  "warn",
			LogFormat: "text",
			Color:     true,
		},
		Check: CheckConfig{MaxErrors: 0},
		Tree:  TreeConfig{Indent: "| "},
	}
}

// Load reads the file at path. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromString(string(data), detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func LoadFromString(content string, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover returns the first config file from FileNames found in dir.
func Discover(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

func (c *Config) Validate() error {
	if !logging.ValidLevel(c.General.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.General.LogLevel)
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (want text or json)", c.General.LogFormat)
	}
	if c.Check.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.Check.MaxErrors)
	}
	if c.Tree.Indent == "" {
		return errors.New("tree indent must not be empty")
	}
	return nil
}

// Logger returns the logger configuration described by c.
func (c *Config) Logger(name string) logging.LoggerConfig {
	lc := logging.DefaultLoggerConfig(name)
	lc.Level = c.General.LogLevel
	lc.Format = c.General.LogFormat
	return lc
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/mcncl/jsonkit/internal/converter"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/generator"
	"github.com/mcncl/jsonkit/internal/schema"
	"gopkg.in/yaml.v3"
)

// Log formats accepted by dev.log_format
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the complete configuration for jsonkit
type Config struct {
	Format  FormatConfig  `yaml:"format"`
	Convert ConvertConfig `yaml:"convert"`
	Schema  SchemaConfig  `yaml:"schema"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Dev     DevConfig     `yaml:"dev"`
}

// FormatConfig controls the format command
type FormatConfig struct {
	Indent   int  `yaml:"indent"`
	SortKeys bool `yaml:"sort_keys"`
}

// ConvertConfig controls the converters
type ConvertConfig struct {
	XMLRoot       string `yaml:"xml_root"`
	InterfaceName string `yaml:"interface_name"`
	CSVDelimiter  string `yaml:"csv_delimiter"`
}

// SchemaConfig controls schema inference
type SchemaConfig struct {
	Dialect    string `yaml:"dialect"`
	DetectUUID bool   `yaml:"detect_uuid"`
}

// RuntimeConfig bounds how long a single command may run. Zero means no limit.
type RuntimeConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug     bool   `yaml:"debug"`
	LogFormat string `yaml:"log_format"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Indent:   2,
			SortKeys: false,
		},
		Convert: ConvertConfig{
			XMLRoot:       converter.DefaultXMLRoot,
			InterfaceName: generator.DefaultInterfaceName,
			CSVDelimiter:  ",",
		},
		Schema: SchemaConfig{
			Dialect: schema.Draft07,
		},
		Runtime: RuntimeConfig{
			Timeout: 0,
		},
		Dev: DevConfig{
			Debug:     false,
			LogFormat: LogFormatText,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonkit.yml", ".jsonkit.yaml", "jsonkit.yml", "jsonkit.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks every setting that has a restricted range
func (c *Config) Validate() error {
	switch c.Format.Indent {
	case 2, 4, 8:
	default:
		return errors.NewConfigError(fmt.Sprintf("format.indent is %d", c.Format.Indent), errors.ErrInvalidIndent)
	}

	if !converter.ValidElementName(c.Convert.XMLRoot) {
		return errors.NewConfigError(fmt.Sprintf("convert.xml_root %q is not a valid XML element name", c.Convert.XMLRoot), nil)
	}

	if utf8.RuneCountInString(c.Convert.CSVDelimiter) != 1 || !converter.ValidDelimiter(c.Delimiter()) {
		return errors.NewConfigError(fmt.Sprintf("convert.csv_delimiter %q must be a single character other than a quote or line break", c.Convert.CSVDelimiter), nil)
	}

	if c.Runtime.Timeout < 0 {
		return errors.NewConfigError(fmt.Sprintf("runtime.timeout %s is negative", c.Runtime.Timeout), nil)
	}

	switch c.Dev.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return errors.NewConfigError(fmt.Sprintf("dev.log_format %q must be %q or %q", c.Dev.LogFormat, LogFormatText, LogFormatJSON), nil)
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune, or zero if none is set
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.Convert.CSVDelimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// Overrides holds values given on the command line. Zero values mean the
// flag was not given.
type Overrides struct {
	Indent        int
	SortKeys      bool
	XMLRoot       string
	InterfaceName string
	CSVDelimiter  string
	Dialect       string
	DetectUUID    bool
	Timeout       time.Duration
	Debug         bool
	LogFormat     string
}

// MergeConfigs applies CLI overrides to a copy of base.
// Non-zero values from overrides take precedence over base values
func MergeConfigs(base *Config, overrides Overrides) *Config {
	merged := *base // Start with a copy of base

	if overrides.Indent != 0 {
		merged.Format.Indent = overrides.Indent
	}
	if overrides.XMLRoot != "" {
		merged.Convert.XMLRoot = overrides.XMLRoot
	}
	if overrides.InterfaceName != "" {
		merged.Convert.InterfaceName = overrides.InterfaceName
	}
	if overrides.CSVDelimiter != "" {
		merged.Convert.CSVDelimiter = overrides.CSVDelimiter
	}
	if overrides.Dialect != "" {
		merged.Schema.Dialect = overrides.Dialect
	}
	if overrides.Timeout != 0 {
		merged.Runtime.Timeout = overrides.Timeout
	}
	if overrides.LogFormat != "" {
		merged.Dev.LogFormat = overrides.LogFormat
	}

	// Boolean flags can only switch a setting on
	merged.Format.SortKeys = merged.Format.SortKeys || overrides.SortKeys
	merged.Schema.DetectUUID = merged.Schema.DetectUUID || overrides.DetectUUID
	merged.Dev.Debug = merged.Dev.Debug || overrides.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI flags, then the config file, then defaults
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

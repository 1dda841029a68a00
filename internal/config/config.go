package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"fraudprep/internal/errors"
)

// Config holds the complete run configuration. Values come from an
// optional YAML file first, then environment variables, then the
// declared defaults for anything still unset.
type Config struct {
	// BaseDir anchors relative input/output paths. CI runners set
	// GITHUB_WORKSPACE; locally it stays empty and paths resolve
	// against the working directory.
	BaseDir string `yaml:"base_dir" envconfig:"GITHUB_WORKSPACE"`

	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputDir  string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE"`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
	LogOutput string `yaml:"log_output" envconfig:"LOG_OUTPUT"`
	LogFile   string `yaml:"log_file" envconfig:"LOG_FILE"`
}

// defaults returns the built-in configuration. Default tags are not
// used on the struct because envconfig applies them whenever the
// variable is unset, which would clobber values from the config file.
func defaults() Config {
	return Config{
		InputFile:  "creditcardfraud_raw.csv",
		OutputDir:  "preprocessing",
		OutputFile: "creditcard_clean.csv",
		LogLevel:   "info",
		LogFormat:  "text",
		LogOutput:  "stdout",
		LogFile:    filepath.Join("logs", "fraudprep.log"),
	}
}

// LoggingConfig is the slice of Config the logger setup needs.
type LoggingConfig struct {
	Level    string
	Format   string
	Output   string
	FilePath string
}

// ConfigFileEnv names the environment variable pointing at an optional
// YAML config file.
const ConfigFileEnv = "FRAUDPREP_CONFIG"

// Load assembles the configuration. Environment variables win over the
// YAML file; defaults apply only to values neither source set.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, errors.Wrap(errors.CodeConfig, "config",
				fmt.Sprintf("loading config file %s", path), err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "config", "reading environment", err)
	}

	cfg.resolvePaths()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths anchors relative paths at BaseDir when one is set.
func (c *Config) resolvePaths() {
	if c.BaseDir == "" {
		return
	}
	if !filepath.IsAbs(c.InputFile) {
		c.InputFile = filepath.Join(c.BaseDir, c.InputFile)
	}
	if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(c.BaseDir, c.LogFile)
	}
}

func (c *Config) validate() error {
	if c.InputFile == "" {
		return errors.New(errors.CodeConfig, "config", "input file path is empty")
	}
	if c.OutputDir == "" {
		return errors.New(errors.CodeConfig, "config", "output directory is empty")
	}
	if c.OutputFile == "" {
		return errors.New(errors.CodeConfig, "config", "output filename is empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Newf(errors.CodeConfig, "config", "unknown log format %q", c.LogFormat)
	}
	switch c.LogOutput {
	case "file", "both":
		if c.LogFile == "" {
			return errors.New(errors.CodeConfig, "config", "log output requires a log file path")
		}
	}
	return nil
}

// OutputPath returns the full path of the output file.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

// Logging returns the logger configuration slice.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:    c.LogLevel,
		Format:   c.LogFormat,
		Output:   c.LogOutput,
		FilePath: c.LogFile,
	}
}

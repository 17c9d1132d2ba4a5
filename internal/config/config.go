// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/scanbrief/internal/metadata"
	"github.com/xkilldash9x/scanbrief/internal/reporting"
)

// Config holds the entire application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Input     InputConfig     `mapstructure:"input" yaml:"input"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Narrative NarrativeConfig `mapstructure:"narrative" yaml:"narrative"`
	Metadata  MetadataConfig  `mapstructure:"metadata" yaml:"metadata"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// InputConfig locates the scan result document of each category.
type InputConfig struct {
	Filesystem     string `mapstructure:"filesystem" yaml:"filesystem"`
	Infrastructure string `mapstructure:"infrastructure" yaml:"infrastructure"`
}

// OutputConfig controls the report artifact.
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CapsConfig is the per-severity truncation cap of one category.
type CapsConfig struct {
	High   int `mapstructure:"high" yaml:"high"`
	Medium int `mapstructure:"medium" yaml:"medium"`
	Low    int `mapstructure:"low" yaml:"low"`
}

// NarrativeConfig holds the truncation caps used when listing findings.
type NarrativeConfig struct {
	Filesystem     CapsConfig `mapstructure:"filesystem" yaml:"filesystem"`
	Infrastructure CapsConfig `mapstructure:"infrastructure" yaml:"infrastructure"`
}

// MetadataConfig names the environment variables that carry revision metadata.
// GitFallback fills unresolved fields from the git checkout at RepoPath.
type MetadataConfig struct {
	BranchEnv     string `mapstructure:"branch_env" yaml:"branch_env"`
	CommitEnv     string `mapstructure:"commit_env" yaml:"commit_env"`
	RepositoryEnv string `mapstructure:"repository_env" yaml:"repository_env"`
	GitFallback   bool   `mapstructure:"git_fallback" yaml:"git_fallback"`
	RepoPath      string `mapstructure:"repo_path" yaml:"repo_path"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration parameter.
func SetDefaults(v *viper.Viper) {
	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "scanbrief")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// Inputs and output
	v.SetDefault("input.filesystem", "trivy-results.sarif")
	v.SetDefault("input.infrastructure", "trivy-iac-results.sarif")
	v.SetDefault("output.path", "trivy-security-report.md")
	v.SetDefault("output.format", "markdown")

	// Narrative caps
	v.SetDefault("narrative.filesystem.high", 5)
	v.SetDefault("narrative.filesystem.medium", 5)
	v.SetDefault("narrative.filesystem.low", 3)
	v.SetDefault("narrative.infrastructure.high", 8)
	v.SetDefault("narrative.infrastructure.medium", 5)
	v.SetDefault("narrative.infrastructure.low", 5)

	// Metadata
	v.SetDefault("metadata.branch_env", metadata.DefaultEnvNames.Branch)
	v.SetDefault("metadata.commit_env", metadata.DefaultEnvNames.Commit)
	v.SetDefault("metadata.repository_env", metadata.DefaultEnvNames.Repository)
	v.SetDefault("metadata.git_fallback", false)
	v.SetDefault("metadata.repo_path", ".")
}

// NewConfigFromViper creates a validated configuration from a viper instance.
// Paths are expanded so "~" refers to the user's home directory.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ExpandPaths resolves a leading "~" in every configured path.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{
		&c.Input.Filesystem,
		&c.Input.Infrastructure,
		&c.Output.Path,
		&c.Logger.LogFile,
		&c.Metadata.RepoPath,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Filesystem) == "" {
		return fmt.Errorf("input.filesystem is a required configuration field")
	}
	if strings.TrimSpace(c.Input.Infrastructure) == "" {
		return fmt.Errorf("input.infrastructure is a required configuration field")
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path is a required configuration field")
	}
	if !reporting.IsSupported(c.Output.Format) {
		return fmt.Errorf("output.format %q is not supported", c.Output.Format)
	}
	if err := c.Narrative.Filesystem.Validate(); err != nil {
		return fmt.Errorf("narrative.filesystem: %w", err)
	}
	if err := c.Narrative.Infrastructure.Validate(); err != nil {
		return fmt.Errorf("narrative.infrastructure: %w", err)
	}
	return nil
}

// Validate rejects negative caps. Zero is allowed and collapses a tier into its count.
func (c CapsConfig) Validate() error {
	if c.High < 0 || c.Medium < 0 || c.Low < 0 {
		return fmt.Errorf("caps must not be negative")
	}
	return nil
}

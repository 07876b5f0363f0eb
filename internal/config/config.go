// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Database() DatabaseConfig
	Templates() TemplatesConfig
	Batch() BatchConfig
	Trend() TrendConfig
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	DatabaseCfg  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	TemplatesCfg TemplatesConfig `mapstructure:"templates" yaml:"templates"`
	BatchCfg     BatchConfig     `mapstructure:"batch" yaml:"batch"`
	TrendCfg     TrendConfig     `mapstructure:"trend" yaml:"trend"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig       { return c.LoggerCfg }
func (c *Config) Database() DatabaseConfig   { return c.DatabaseCfg }
func (c *Config) Templates() TemplatesConfig { return c.TemplatesCfg }
func (c *Config) Batch() BatchConfig         { return c.BatchCfg }
func (c *Config) Trend() TrendConfig         { return c.TrendCfg }

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

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DatabaseConfig holds the connection details of the answer history.
// An empty URL disables recording.
type DatabaseConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// TemplatesConfig says where question templates live and which to load, in
// dispatch order.
type TemplatesConfig struct {
	Dir   string   `mapstructure:"dir" yaml:"dir"`
	Names []string `mapstructure:"names" yaml:"names"`
}

// BatchConfig tunes the batch command.
type BatchConfig struct {
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// TrendConfig tunes the trend analyzer.
type TrendConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Samples int  `mapstructure:"samples" yaml:"samples"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "scientist-cli")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Templates --
	v.SetDefault("templates.dir", "./questions")
	v.SetDefault("templates.names", []string{"vector_value"})

	// -- Batch --
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.timeout", "1m")

	// -- Trend --
	v.SetDefault("trend.enabled", true)
	v.SetDefault("trend.samples", 10)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Bind environment variables for sensitive data
	_ = v.BindEnv("database.url", "SCIENTIST_DATABASE_URL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	dir, err := homedir.Expand(cfg.TemplatesCfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("could not resolve templates dir '%s': %w", cfg.TemplatesCfg.Dir, err)
	}
	cfg.TemplatesCfg.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.TemplatesCfg.Validate(); err != nil {
		return fmt.Errorf("templates configuration invalid: %w", err)
	}
	if err := c.BatchCfg.Validate(); err != nil {
		return fmt.Errorf("batch configuration invalid: %w", err)
	}
	if err := c.TrendCfg.Validate(); err != nil {
		return fmt.Errorf("trend configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the templates configuration.
func (t *TemplatesConfig) Validate() error {
	if t.Dir == "" {
		return fmt.Errorf("templates.dir is required")
	}
	if len(t.Names) == 0 {
		return fmt.Errorf("templates.names must list at least one template")
	}
	seen := make(map[string]struct{}, len(t.Names))
	for _, n := range t.Names {
		if n == "" {
			return fmt.Errorf("templates.names must not contain empty names")
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("templates.names lists %q twice", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Validate checks the batch configuration.
func (b *BatchConfig) Validate() error {
	if b.Concurrency <= 0 {
		return fmt.Errorf("batch.concurrency must be a positive integer")
	}
	if b.Timeout < 0 {
		return fmt.Errorf("batch.timeout must not be negative")
	}
	return nil
}

// Validate checks the trend configuration.
func (t *TrendConfig) Validate() error {
	if !t.Enabled {
		return nil
	}
	if t.Samples < 2 {
		return fmt.Errorf("trend.samples must be at least 2")
	}
	return nil
}

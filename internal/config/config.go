package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ConfigPathEnv names the environment variable holding an explicit config file path.
const ConfigPathEnv = "BCBP_TRMNL_CONFIG_PATH"

// Config holds all configuration for the daemon
type Config struct {
	ScannerAddr   string
	DBPath        string
	BatchSize     int
	BatchTimeout  int // seconds
	RetentionDays int // 0 keeps scans forever
	PruneInterval int // minutes
	MetricsAddr   string
	Log           LogConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string
	Format     string
	File       string // empty logs to stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scanner_addr", "localhost:7010")
	v.SetDefault("db_path", "boarding_passes.db")
	v.SetDefault("batch_size", 100)
	v.SetDefault("batch_timeout", 5)
	v.SetDefault("retention_days", 30)
	v.SetDefault("prune_interval", 60)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", false)
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith loads configuration into v, which may already carry flag bindings.
func LoadWith(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/bcbp_trmnl")
	v.AddConfigPath(".")

	if configPath := os.Getenv(ConfigPathEnv); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// A missing config file is fine; defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BCBP_TRMNL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		ScannerAddr:   v.GetString("scanner_addr"),
		DBPath:        v.GetString("db_path"),
		BatchSize:     v.GetInt("batch_size"),
		BatchTimeout:  v.GetInt("batch_timeout"),
		RetentionDays: v.GetInt("retention_days"),
		PruneInterval: v.GetInt("prune_interval"),
		MetricsAddr:   v.GetString("metrics_addr"),
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.ScannerAddr == "" {
		return fmt.Errorf("scanner_addr is required")
	}

	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0")
	}

	if cfg.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be greater than 0")
	}

	if cfg.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative")
	}

	if cfg.RetentionDays > 0 && cfg.PruneInterval <= 0 {
		return fmt.Errorf("prune_interval must be greater than 0 when retention is enabled")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/bp-atlas/pkg/services/plausibility"
	"github.com/spf13/viper"
)

const envPrefix = "BPATLAS"

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Config struct {
	DBPath         string              `mapstructure:"db_path"`
	LogLevel       string              `mapstructure:"log_level"`
	ParseTimeout   time.Duration       `mapstructure:"parse_timeout"`
	Workers        int                 `mapstructure:"workers"`
	DialectsPath   string              `mapstructure:"dialects_path"`
	DefaultDialect string              `mapstructure:"default_dialect"`
	Server         ServerConfig        `mapstructure:"server"`
	Plausibility   plausibility.Limits `mapstructure:"plausibility"`
}

func setDefaults(v *viper.Viper) {
	limits := plausibility.DefaultLimits()

	v.SetDefault("db_path", "bpatlas.duckdb")
	v.SetDefault("log_level", "info")
	v.SetDefault("parse_timeout", 30*time.Second)
	v.SetDefault("workers", 4)
	v.SetDefault("dialects_path", "")
	v.SetDefault("default_dialect", DefaultDialectName)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("plausibility.systolic_min", limits.SystolicMin)
	v.SetDefault("plausibility.systolic_max", limits.SystolicMax)
	v.SetDefault("plausibility.diastolic_min", limits.DiastolicMin)
	v.SetDefault("plausibility.diastolic_max", limits.DiastolicMax)
	v.SetDefault("plausibility.heart_rate_min", limits.HeartRateMin)
	v.SetDefault("plausibility.heart_rate_max", limits.HeartRateMax)
}

// LoadConfig reads the application settings. An empty path uses defaults and
// BPATLAS_* environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}

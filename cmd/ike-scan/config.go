package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the YAML configuration for a scan. Flags override whatever
// the file sets.
type Config struct {
	Aggressive bool          `mapstructure:"aggressive"`
	SourcePort int           `mapstructure:"source_port"`
	DestPort   int           `mapstructure:"dest_port"`
	Retries    int           `mapstructure:"retries"`
	Interval   time.Duration `mapstructure:"interval"`
	Backoff    float64       `mapstructure:"backoff"`

	Transforms []TransformConfig `mapstructure:"transforms"`
	VendorIDs  []string          `mapstructure:"vendor_ids"` // hex encoded
	Identity   string            `mapstructure:"identity"`
	IDType     int               `mapstructure:"id_type"`

	PatternFile string `mapstructure:"pattern_file"`

	Log LogConfig `mapstructure:"log"`
}

// TransformConfig is one proposal transform in the config file.
type TransformConfig struct {
	Cipher   uint16 `mapstructure:"cipher"`
	KeyLen   uint16 `mapstructure:"key_length"`
	Hash     uint16 `mapstructure:"hash"`
	Auth     uint16 `mapstructure:"auth"`
	Group    uint16 `mapstructure:"group"`
	Lifetime uint32 `mapstructure:"lifetime"`
	LifeSize uint32 `mapstructure:"lifesize"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoadConfig reads the YAML config file at path, or returns defaults when
// path is empty.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("source_port", 500)
	v.SetDefault("dest_port", 500)
	v.SetDefault("retries", 3)
	v.SetDefault("interval", "500ms")
	v.SetDefault("backoff", 1.5)
	v.SetDefault("id_type", 3) // user FQDN
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

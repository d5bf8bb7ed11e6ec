// Package config loads catalog settings from an optional YAML file and
// CATALOG_* environment variables, with usable defaults for local runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/storage"
)

// Config holds everything the daemon needs to start.
type Config struct {
	Server   ServerConfig `mapstructure:"server"`
	Database storage.Config
	Cache    cache.Config
	// WriteInvalidation opts into deleting cached reads on writes.
	WriteInvalidation bool `mapstructure:"write_invalidation"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration from path (optional, YAML) and the environment.
// A missing config file is not an error; missing keys fall back to
// defaults.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", storage.DriverSQLite)
	v.SetDefault("database.dsn", "file:catalog.db?cache=shared")
	v.SetDefault("cache.capacity", 10000)
	v.SetDefault("cache.num_shards", 256)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.eviction_percentage", 10)
	v.SetDefault("cache.eviction_interval", time.Duration(0))
	v.SetDefault("write_invalidation", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: storage.Config{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Cache: cache.Config{
			Capacity:           v.GetInt("cache.capacity"),
			NumShards:          v.GetInt("cache.num_shards"),
			TTL:                v.GetDuration("cache.ttl"),
			EvictionPercentage: v.GetInt("cache.eviction_percentage"),
			EvictionInterval:   v.GetDuration("cache.eviction_interval"),
		},
		WriteInvalidation: v.GetBool("write_invalidation"),
		LogLevel:          v.GetString("log_level"),
	}

	if err := cfg.Cache.Validate(); err != nil {
		return Config{}, fmt.Errorf("cache config: %w", err)
	}
	return cfg, nil
}

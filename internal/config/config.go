// Package config loads runtime settings from .env, the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port             string        `mapstructure:"port"`
	MongoURI         string        `mapstructure:"mongo_uri"`
	MongoDB          string        `mapstructure:"mongo_db"`
	JWTSecret        string        `mapstructure:"jwt_secret"`
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
	Timezone         string        `mapstructure:"timezone"`
	CleanupSchedule  string        `mapstructure:"cleanup_schedule"`
	LoginMaxAttempts int           `mapstructure:"login_max_attempts"`
	LoginWindow      time.Duration `mapstructure:"login_window"`
	TrustProxy       bool          `mapstructure:"trust_proxy"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db", "denovidb")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 12*time.Hour)
	v.SetDefault("timezone", "Europe/Skopje")
	v.SetDefault("cleanup_schedule", "@hourly")
	v.SetDefault("login_max_attempts", 5)
	v.SetDefault("login_window", time.Minute)
	v.SetDefault("trust_proxy", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads .env (if present) into the environment, then builds the
// Config from defaults, the optional file and environment variables such as
// MONGO_URI or CLEANUP_SCHEDULE.
func Load(file string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Str("section", "config").Msg("No .env file loaded")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("Unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

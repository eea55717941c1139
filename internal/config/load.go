package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config
// file. Environment variables take precedence over values from config
// files. Returns a populated Config struct or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("READQUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A config file is optional; environment variables alone are enough.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv does not bind nested keys unless they are referenced,
	// so bind each known key explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.read_timeout_sec",
		"server.write_timeout_sec",
		"server.cors_origins",
		"database.url",
		"database.max_open_conns",
		"auth.jwt_secret",
		"auth.token_lifetime_hours",
		"scheduler.max_reviews_per_day",
		"scheduler.max_new_cards_per_day",
		"speech.api_key",
		"speech.voice_id",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout_sec", 10)
	v.SetDefault("server.write_timeout_sec", 30)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("auth.token_lifetime_hours", 72)
	v.SetDefault("scheduler.max_reviews_per_day", 20)
	v.SetDefault("scheduler.max_new_cards_per_day", 10)
}

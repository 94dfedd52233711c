package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config
// file. Environment variables take precedence over values from the file.
// Returns a populated Config struct or an error if loading or validation
// fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file: ./config.yaml or one of the usual locations.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.missive")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: MISSIVE_DATABASE_URL, MISSIVE_LLM_GEMINI_API_KEY, ...
	v.SetEnvPrefix("MISSIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults need an explicit binding for AutomaticEnv to
	// surface them through Unmarshal.
	for _, key := range []string{"database.url", "llm.gemini_api_key"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sensible one.
// Credentials and the database URL deliberately have none.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	v.SetDefault("llm.model_name", "gemini-2.0-flash")

	v.SetDefault("pipeline.concurrency", 3)
	v.SetDefault("pipeline.inter_batch_delay_seconds", 2)
	v.SetDefault("pipeline.rate_limit_cooldown_seconds", 30)
	v.SetDefault("pipeline.max_prompt_chars", 8000)
	v.SetDefault("pipeline.max_tags_per_item", 5)
}

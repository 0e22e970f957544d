package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// muse.yaml file in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults. Every key needs a default registered so that viper
	// picks it up from the environment during Unmarshal.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("store.history_path", "muse_history.json")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.recipe_model", "gemini-2.5-flash")
	v.SetDefault("llm.image_model", "gemini-2.5-flash-image-preview")
	v.SetDefault("llm.speech_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("llm.voice_name", "Kore")
	v.SetDefault("llm.thinking_budget", 2048)
	v.SetDefault("llm.enrich_images", false)
	v.SetDefault("task.queue_size", 16)
	v.SetDefault("task.worker_count", 1)

	// Optional config file, ignored when absent.
	v.SetConfigName("muse")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: MUSE_SERVER_PORT, MUSE_LLM_GEMINI_API_KEY, ...
	v.SetEnvPrefix("MUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

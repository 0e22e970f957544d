package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the optional PostgreSQL settings.
// When URL is empty the server falls back to the file-backed history store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,uri"`
}

// StoreConfig contains settings for the file-backed history store.
type StoreConfig struct {
	// HistoryPath is the JSON file the cookbook history is persisted to
	// when no database URL is configured.
	HistoryPath string `mapstructure:"history_path" validate:"required"`
}

// LLMConfig contains all Gemini integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// RecipeModel is the model used for structured recipe generation.
	RecipeModel string `mapstructure:"recipe_model" validate:"required"`

	// ImageModel is the model used for dish image synthesis.
	ImageModel string `mapstructure:"image_model" validate:"required"`

	// SpeechModel is the model used for narration synthesis.
	SpeechModel string `mapstructure:"speech_model" validate:"required"`

	// VoiceName selects the prebuilt voice used for narration.
	VoiceName string `mapstructure:"voice_name" validate:"required"`

	// ThinkingBudget is the token budget granted to the model for
	// reasoning during recipe generation.
	ThinkingBudget int32 `mapstructure:"thinking_budget" validate:"gte=0"`

	// EnrichImages enables background dish image enrichment after a
	// successful generation.
	EnrichImages bool `mapstructure:"enrich_images"`
}

// TaskConfig contains settings for the background enrichment runner.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"gte=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"gte=0"`
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
}

// ServerConfig contains settings for the read-side labels API and logging.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json pretty"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LLMConfig contains classification-service settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
}

// PipelineConfig tunes the batch tagging pipeline. Concurrency bounds the
// number of simultaneous classification calls; InterBatchDelaySeconds
// paces request initiation between windows; RateLimitCooldownSeconds is
// how long a throttled call waits before its single retry.
type PipelineConfig struct {
	Concurrency              int `mapstructure:"concurrency"                 validate:"required,gte=1,lte=32"`
	InterBatchDelaySeconds   int `mapstructure:"inter_batch_delay_seconds"   validate:"gte=0"`
	RateLimitCooldownSeconds int `mapstructure:"rate_limit_cooldown_seconds" validate:"gte=0"`
	MaxPromptChars           int `mapstructure:"max_prompt_chars"            validate:"required,gte=500"`
	MaxTagsPerItem           int `mapstructure:"max_tags_per_item"           validate:"required,gte=1,lte=20"`
}

package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Speech    SpeechConfig    `mapstructure:"speech"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeoutSec  int      `mapstructure:"read_timeout_sec" validate:"gte=0"`
	WriteTimeoutSec int      `mapstructure:"write_timeout_sec" validate:"gte=0"`
	CORSOrigins     []string `mapstructure:"cors_origins" validate:"required,min=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret          string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeHours int    `mapstructure:"token_lifetime_hours" validate:"required,gt=0"`
}

// SchedulerConfig contains the review scheduling knobs. The memory model
// weights are compiled in; only the session-shaping limits are tunable.
type SchedulerConfig struct {
	MaxReviewsPerDay  int `mapstructure:"max_reviews_per_day" validate:"required,gt=0"`
	MaxNewCardsPerDay int `mapstructure:"max_new_cards_per_day" validate:"required,gt=0"`
}

// SpeechConfig contains the text-to-speech integration settings. Optional:
// the server runs without it, only the audiogen tool requires an API key.
type SpeechConfig struct {
	APIKey  string `mapstructure:"api_key"`
	VoiceID string `mapstructure:"voice_id"`
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidQuizConfig           = errors.New("invalid quiz configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string `mapstructure:"env"`                 // current application environment (local, dev, production etc)
	LogLevel          string `mapstructure:"log_level"`           // minimum log level (debug, info, warn, error)
	TelegramAPIToken  string `mapstructure:"-"`                   // Telegram API token loaded from environment
	QuestionsJSONPath string `mapstructure:"questions_json_path"` // path to JSON file with the question bank
	Quiz              Quiz   `mapstructure:"quiz"`                // quiz behaviour section
	DB                DB     `mapstructure:"database"`            // database configuration section
}

// Quiz contains parameters of quiz sessions and answer checking.
type Quiz struct {
	QuestionsPerSession int           `mapstructure:"questions_per_session"` // number of questions asked in one session
	HintThreshold       float64       `mapstructure:"hint_threshold"`        // minimal similarity to suggest the closest accepted answer
	StrictMatching      bool          `mapstructure:"strict_matching"`       // strict normalization mode
	SessionTTL          time.Duration `mapstructure:"session_ttl"`           // unfinished sessions older than this are abandoned
	CleanupSchedule     string        `mapstructure:"cleanup_schedule"`      // cron expression of the stale session sweep
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Validate checks quiz parameters for sane values.
func (q Quiz) Validate() error {
	if q.QuestionsPerSession < 1 {
		return fmt.Errorf("%w: questions_per_session must be positive, got %d", ErrInvalidQuizConfig, q.QuestionsPerSession)
	}
	if q.HintThreshold < 0 || q.HintThreshold > 1 {
		return fmt.Errorf("%w: hint_threshold must be within [0, 1], got %v", ErrInvalidQuizConfig, q.HintThreshold)
	}
	if q.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl must be positive, got %s", ErrInvalidQuizConfig, q.SessionTTL)
	}
	if _, err := cron.ParseStandard(q.CleanupSchedule); err != nil {
		return fmt.Errorf("%w: cleanup_schedule %q: %v", ErrInvalidQuizConfig, q.CleanupSchedule, err)
	}
	return nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Populate the environment from .env if present; real variables win.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("questions_json_path", "assets/data/questions.json")
	v.SetDefault("quiz.questions_per_session", 5)
	v.SetDefault("quiz.hint_threshold", 0.6)
	v.SetDefault("quiz.strict_matching", false)
	v.SetDefault("quiz.session_ttl", "24h")
	v.SetDefault("quiz.cleanup_schedule", "@hourly")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Quiz.Validate(); err != nil {
		return nil, err
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	return &cfg, nil
}

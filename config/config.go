package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all process-level configuration values. Business-facing
// settings (hours, ignore list, bot switch) live in the settings repository
// instead, so the admin panel can change them at runtime.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	Env          string `mapstructure:"ENV"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB  int    `mapstructure:"REDIS_CONTEXT_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`

	// Admin API auth.
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Gemini API key for the reply generator; empty means fallback replies.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Webhook of the chat transport process; reminders are POSTed there.
	// Empty means reminders are only logged.
	TransportWebhookURL string `mapstructure:"TRANSPORT_WEBHOOK_URL"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

// Load reads config.yaml plus the environment and returns the assembled
// configuration. Every key has a default so a bare environment still boots.
func Load() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "agendabot")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("REDIS_REMINDER_DB", 1)
	viper.SetDefault("JWT_SECRET", "agendabot-dev-secret")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("TRANSPORT_WEBHOOK_URL", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// IsProduction reports whether the process runs with a production profile.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string `env:"PORT" envDefault:"3001"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production

	// PostgreSQL. POSTGRES_URL wins over the discrete fields when set.
	PostgresURL   string `env:"POSTGRES_URL"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBName        string `env:"DB_NAME" envDefault:"travelguide"`
	DBUser        string `env:"DB_USER" envDefault:"travelguide"`
	DBPassword    string `env:"DB_PASSWORD" envDefault:"travelguide_secret"`
	DBSSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxIdle     int    `env:"DB_MAX_IDLE" envDefault:"10"`
	DBMaxOpen     int    `env:"DB_MAX_OPEN" envDefault:"50"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// JWT
	JWTSecret      string `env:"JWT_SECRET"`
	JWTExpireHours int    `env:"JWT_EXPIRE_HOURS" envDefault:"168"`

	// LLM
	LLMProvider           string        `env:"LLM_PROVIDER" envDefault:"openai"` // openai (any OpenAI-compatible endpoint), gemini
	LLMAPIKey             string        `env:"LLM_API_KEY"`
	GroqAPIKey            string        `env:"GROQ_API_KEY"`
	LLMBaseURL            string        `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel              string        `env:"LLM_MODEL" envDefault:"llama-3.3-70b-versatile"`
	LLMTemperature        float32       `env:"LLM_TEMPERATURE" envDefault:"0.3"`
	LLMItineraryMaxTokens int           `env:"LLM_ITINERARY_MAX_TOKENS" envDefault:"6000"`
	LLMParseMaxTokens     int           `env:"LLM_PARSE_MAX_TOKENS" envDefault:"1000"`
	LLMTimeout            time.Duration `env:"LLM_TIMEOUT" envDefault:"90s"`

	// Itinerary generation
	GenerationWorkers   int           `env:"GENERATION_WORKERS" envDefault:"2"`
	GenerationQueueSize int           `env:"GENERATION_QUEUE_SIZE" envDefault:"64"`
	GenerationStatusTTL time.Duration `env:"GENERATION_STATUS_TTL" envDefault:"1h"`
	ItineraryCacheTTL   time.Duration `env:"ITINERARY_CACHE_TTL" envDefault:"30s"`

	// Logging
	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
}

// Load reads .env (if present) and the process environment once.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = cfg.GroqAPIKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch strings.ToLower(c.LLMProvider) {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q, use 'openai' or 'gemini'", c.LLMProvider)
	}

	if c.GenerationWorkers < 1 {
		return errors.New("GENERATION_WORKERS must be at least 1")
	}
	if c.GenerationQueueSize < 1 {
		return errors.New("GENERATION_QUEUE_SIZE must be at least 1")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	if c.PostgresURL != "" {
		return c.PostgresURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpireHours) * time.Hour
}

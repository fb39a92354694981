package confs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/youssefibrahim146/Volt/energy"
)

// Config holds every runtime setting the server reads from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string // empty means allow all (development default)
	JWTSecret      string
	RatePerKWh     float64
	Database       DatabaseConfig
	Upload         UploadConfig
	AI             AIConfig
}

// DatabaseConfig carries either a full connection URL or the individual
// parameters the DSN is assembled from.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// UploadConfig bounds device-image uploads.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// AIConfig configures the generative-AI collaborator. An empty APIKey
// disables the enrichment path; every endpoint still serves the
// deterministic fallback.
type AIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
	Timeout     time.Duration
}

// Load reads .env if present and assembles the typed config. JWT_SECRET is
// the only hard requirement; everything else has a workable default.
func Load() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{
		Port:           getenvDefault("PORT", "8080"),
		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RatePerKWh:     getenvFloatDefault("RATE_PER_KWH", energy.DefaultRate),
		Database: DatabaseConfig{
			URL:      os.Getenv("DB_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Upload: UploadConfig{
			Dir:      getenvDefault("UPLOAD_DIR", "./uploads"),
			MaxBytes: getenvInt64Default("UPLOAD_MAX_BYTES", 5<<20),
		},
		AI: AIConfig{
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       getenvDefault("GEMINI_MODEL", "gemini-1.5-flash"),
			MaxTokens:   int32(getenvIntDefault("GEMINI_MAX_TOKENS", 1024)),
			Temperature: float32(getenvFloatDefault("GEMINI_TEMPERATURE", 0.7)),
			Timeout:     getenvDurationDefault("GEMINI_TIMEOUT", 15*time.Second),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RatePerKWh <= 0 {
		return nil, fmt.Errorf("RATE_PER_KWH must be positive")
	}
	return cfg, nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt64Default(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDurationDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey         string
	HTTPPort       string
	WeatherBaseURL string
	CountriesURL   string
	PublicIPURL    string
	GeoIPDB        string
	CitiesFile     string
	StaticDir      string

	FetchConcurrency int
	FetchTimeout     time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int

	LogLevel string
	Env      string
}

// ErrMissingAPIKey is returned by Validate when no weather API key is configured
var ErrMissingAPIKey = errors.New("API_KEY is not set")

// LoadEnvFile loads variables from a dotenv file without overriding the environment
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

func Load() *Config {
	timeout := getEnvInt("FETCH_TIMEOUT_SECONDS", 10)

	return &Config{
		APIKey:           getEnv("API_KEY", ""),
		HTTPPort:         getEnv("PORT", "8080"),
		WeatherBaseURL:   getEnv("WEATHER_BASE_URL", ""),
		CountriesURL:     getEnv("COUNTRIES_URL", ""),
		PublicIPURL:      getEnv("PUBLIC_IP_URL", ""),
		GeoIPDB:          getEnv("GEOIP_DB", "GeoLite2-City.mmdb"),
		CitiesFile:       getEnv("CITIES_FILE", ""),
		StaticDir:        getEnv("STATIC_DIR", ""),
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 4),
		FetchTimeout:     time.Duration(timeout) * time.Second,
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 5),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Env:              getEnv("ENV", "development"),
	}
}

// Validate reports settings the service cannot start without
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// RateLimited reports whether outbound weather calls should be paced
func (c *Config) RateLimited() bool {
	return c.RateLimitRPS > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

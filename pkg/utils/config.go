package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	UI       UIConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type HTTPConfig struct {
	ShutdownTimeout  time.Duration
	AllowedOrigins   []string
	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	MaxConns   int32
	SQLitePath string
}

// UIConfig drives the terminal frontend.
type UIConfig struct {
	APIBaseURL string
	Debounce   time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig reads .env (when present) and the process environment.
// Environment variables take precedence over the file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "showscape")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "showscape")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SQLITE_PATH", "showscape.db")
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("UI_DEBOUNCE", "500ms")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		HTTP: HTTPConfig{
			ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitEnabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			Name:       v.GetString("DB_NAME"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASS"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxConns:   v.GetInt32("DB_MAX_CONNS"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		UI: UIConfig{
			APIBaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Debounce:   v.GetDuration("UI_DEBOUNCE"),
		},
	}

	switch config.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, errors.New("unsupported DB_DRIVER: " + config.Database.Driver)
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Static    StaticConfig
	Auth      AuthConfig
	Admin     AdminConfig
	Microsoft MicrosoftConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Debug        bool
	AllowedHosts []string
}

type StorageConfig struct {
	// DataDir is created with mode 0755 on startup.
	DataDir string
	// DatabasePath is created empty with mode 0664 when absent.
	DatabasePath string
}

type StaticConfig struct {
	// Sources are copied into Root by the collectstatic step.
	Sources []string
	Root    string
}

type AuthConfig struct {
	// SecretKey signs session tokens. The default is insecure and must be
	// rotated in any real deployment.
	SecretKey string
	TokenTTL  time.Duration
}

type AdminConfig struct {
	// Default seeded administrator. Documented insecure defaults.
	Username string
	Email    string
	Password string
}

type MicrosoftConfig struct {
	LoginBaseURL string
	GraphBaseURL string
	Timeout      time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("DEBUG", false)
	v.SetDefault("ALLOWED_HOSTS", "*")
	v.SetDefault("DATA_DIR", "/app/data")
	v.SetDefault("DATABASE_PATH", "")
	v.SetDefault("STATIC_SOURCES", "static")
	v.SetDefault("STATIC_ROOT", "")
	v.SetDefault("SECRET_KEY", "insecure-dev-secret-key")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "admin")
	v.SetDefault("MS_LOGIN_BASE_URL", "https://login.microsoftonline.com")
	v.SetDefault("MS_GRAPH_BASE_URL", "https://graph.microsoft.com")
	v.SetDefault("MS_TIMEOUT", "20s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	dataDir := v.GetString("DATA_DIR")

	dbPath := v.GetString("DATABASE_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "db.sqlite3")
	}

	staticRoot := v.GetString("STATIC_ROOT")
	if staticRoot == "" {
		staticRoot = filepath.Join(dataDir, "staticfiles")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Debug:        v.GetBool("DEBUG"),
			AllowedHosts: splitList(v.GetString("ALLOWED_HOSTS")),
		},
		Storage: StorageConfig{
			DataDir:      dataDir,
			DatabasePath: dbPath,
		},
		Static: StaticConfig{
			Sources: splitList(v.GetString("STATIC_SOURCES")),
			Root:    staticRoot,
		},
		Auth: AuthConfig{
			SecretKey: v.GetString("SECRET_KEY"),
			TokenTTL:  parseDuration(v.GetString("TOKEN_TTL"), 24*time.Hour),
		},
		Admin: AdminConfig{
			Username: v.GetString("ADMIN_USERNAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Microsoft: MicrosoftConfig{
			LoginBaseURL: v.GetString("MS_LOGIN_BASE_URL"),
			GraphBaseURL: v.GetString("MS_GRAPH_BASE_URL"),
			Timeout:      parseDuration(v.GetString("MS_TIMEOUT"), 20*time.Second),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the immutable startup configuration. It is loaded once in main
// and handed to the services that need it; nothing reads viper afterwards.
type Config struct {
	Port           string
	DBPath         string
	LogLevel       string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
}

const (
	defaultPort       = "8080"
	defaultDBPath     = "books.db"
	defaultLogLevel   = "info"
	defaultTTLMinutes = 30
)

// Load reads configs/config.yml and applies BOOKS_* environment overrides
// (e.g. BOOKS_JWT_SECRET, BOOKS_DB_PATH). A missing config file is fine as
// long as the required values arrive via environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")

	v.SetEnvPrefix("books")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("jwt.ttl_minutes", defaultTTLMinutes)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		DBPath:         v.GetString("db.path"),
		LogLevel:       v.GetString("log.level"),
		JWTSecret:      v.GetString("jwt.secret"),
		TokenTTL:       time.Duration(v.GetInt("jwt.ttl_minutes")) * time.Minute,
		AllowedOrigins: v.GetStringSlice("cors.origins"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt.secret is not set (config file or BOOKS_JWT_SECRET)")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTTLMinutes * time.Minute
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver        string
		Path          string
		MongoURI      string
		MongoDatabase string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
	}
	CORS struct {
		AllowedOrigins []string
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// a missing .env is fine; real environment variables take precedence
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LEARNIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "data/learnit.db")
	v.SetDefault("database.mongouri", "mongodb://localhost:27017")
	v.SetDefault("database.mongodatabase", "learnit")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 24*60)
	v.SetDefault("cors.allowedorigins", []string{"*"})
	v.SetDefault("log.level", "info")

	// the secret keeps its historical name as a fallback
	if err := v.BindEnv("auth.jwtsecret", "LEARNIT_AUTH_JWTSECRET", "ACCESS_TOKEN_SECRET"); err != nil {
		return Config{}, fmt.Errorf("bind jwt secret env: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports configuration that must stop the server from starting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("auth token ttl must not be negative, got %d", c.Auth.TokenTTLMinutes)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database path is required for sqlite")
		}
	case DriverMongo:
		if strings.TrimSpace(c.Database.MongoURI) == "" {
			return errors.New("database mongo uri is required for mongo")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

// TokenTTL is the configured token lifetime; zero disables expiry.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup. The signing key is
// carried here and handed to the auth service constructor; nothing reads it
// from a package-level variable.
type Config struct {
	Port       string
	DBPath     string
	LogLevel   string
	CORSOrigin string
	SigningKey string
	TokenTTL   time.Duration
}

const (
	defaultPort       = "8080"
	defaultDBPath     = "app.db"
	defaultLogLevel   = "info"
	defaultCORSOrigin = "http://localhost:3000"
	defaultTTLMinutes = 60

	signingKeyEnv = "EXPENSE_SIGNING_KEY"
)

// Load reads configs/config.yml, with a best-effort .env pre-load so the
// signing key can come from the environment in deployments.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath("configs")
	v.SetConfigName("config")

	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("cors.origin", defaultCORSOrigin)
	v.SetDefault("token.ttl_minutes", defaultTTLMinutes)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// No config file: run on defaults + environment.
	}

	if err := v.BindEnv("signing_key", signingKeyEnv); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:       v.GetString("port"),
		DBPath:     v.GetString("db.path"),
		LogLevel:   v.GetString("log.level"),
		CORSOrigin: v.GetString("cors.origin"),
		SigningKey: v.GetString("signing_key"),
		TokenTTL:   time.Duration(v.GetInt("token.ttl_minutes")) * time.Minute,
	}
	if cfg.SigningKey == "" {
		return nil, errors.New("signing key is not set (config signing_key or env " + signingKeyEnv + ")")
	}
	return cfg, nil
}

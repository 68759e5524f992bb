package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadolammi/pivot/internal/provider"
	"github.com/muhammadolammi/pivot/internal/storage"
)

type Config struct {
	Port         string
	GoogleApiKey string
	Model        string
	ProviderMode string
	Policy       provider.Policy
	DBUrl        string
	DBMigrate    bool
	R2           storage.R2Config
	RABBITMQUrl  string
	Debug        bool
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:         envOr("PORT", "3000"),
		GoogleApiKey: os.Getenv("GOOGLE_API_KEY"),
		Model:        envOr("GEMINI_MODEL", provider.DefaultModel),
		ProviderMode: strings.ToLower(envOr("PROVIDER_MODE", "model")),
		DBUrl:        os.Getenv("DB_URL"),
		R2: storage.R2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			Endpoint:  os.Getenv("R2_ENDPOINT"),
		},
		RABBITMQUrl: os.Getenv("RABBITMQ_URL"),
		Debug:       os.Getenv("GIN_MODE") == "debug",
	}
	if cfg.GoogleApiKey == "" {
		cfg.GoogleApiKey = os.Getenv("GEMINI_API_KEY")
	}

	switch cfg.ProviderMode {
	case "model", "agent":
	default:
		return Config{}, fmt.Errorf("PROVIDER_MODE must be model or agent, got %q", cfg.ProviderMode)
	}

	attempts, err := strconv.Atoi(envOr("PROVIDER_ATTEMPTS", "1"))
	if err != nil || attempts < 1 {
		return Config{}, fmt.Errorf("PROVIDER_ATTEMPTS must be a positive integer, got %q", os.Getenv("PROVIDER_ATTEMPTS"))
	}
	cfg.Policy.Attempts = attempts

	timeout, err := time.ParseDuration(envOr("PROVIDER_TIMEOUT", "0s"))
	if err != nil || timeout < 0 {
		return Config{}, fmt.Errorf("PROVIDER_TIMEOUT must be a duration such as 45s, got %q", os.Getenv("PROVIDER_TIMEOUT"))
	}
	cfg.Policy.Timeout = timeout

	if v := os.Getenv("DB_MIGRATE"); v != "" {
		cfg.DBMigrate, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("DB_MIGRATE must be true or false, got %q", v)
		}
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

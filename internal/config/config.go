// Package config resolves process configuration from the environment and
// the ~/.modguard directory. Configuration is read once at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultConfigDir = ".modguard"
	DefaultAuditFile = "audit.jsonl"
	DefaultPacksDir  = "packs"
	DefaultPort      = 8000

	// Sentiment backends.
	BackendLexicon = "lexicon"
	BackendVader   = "vader"
)

type Config struct {
	Port             int
	ConfigDir        string
	PacksDir         string
	AuditLogPath     string
	SentimentBackend string
	SentimentTimeout time.Duration
	IntentEnabled    bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present. Explicit arguments override the
// environment; pass "" to use defaults.
func Load(packsDir, auditPath string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             envInt("MODGUARD_PORT", DefaultPort),
		ConfigDir:        configDir,
		PacksDir:         packsDir,
		AuditLogPath:     auditPath,
		SentimentBackend: envString("MODGUARD_SENTIMENT", BackendVader),
		SentimentTimeout: envDuration("MODGUARD_SENTIMENT_TIMEOUT", 2*time.Second),
		IntentEnabled:    envBool("MODGUARD_INTENT", true),
	}

	if cfg.PacksDir == "" {
		cfg.PacksDir = envString("MODGUARD_PACKS", filepath.Join(configDir, DefaultPacksDir))
	}
	if cfg.AuditLogPath == "" {
		cfg.AuditLogPath = envString("MODGUARD_AUDIT_LOG", filepath.Join(configDir, DefaultAuditFile))
	}

	switch cfg.SentimentBackend {
	case BackendLexicon, BackendVader:
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", cfg.SentimentBackend)
	}

	return cfg, nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

package cli

import (
	"fmt"

	"go.uber.org/zap"

	"modguard/internal/config"
	"modguard/internal/intent"
	"modguard/internal/moderation"
	"modguard/internal/sentiment"
	"modguard/internal/taxonomy"
)

// buildService assembles the analysis core from configuration: default
// taxonomy plus packs, the configured sentiment chain, and the intent
// analyzer when enabled. Any taxonomy error is fatal here, before a single
// request is served.
func buildService(cfg *config.Config, log *zap.Logger) (*moderation.Service, []taxonomy.PackInfo, error) {
	tax, packs, err := taxonomy.LoadPacks(cfg.PacksDir, taxonomy.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("loading taxonomy packs: %w", err)
	}

	var primary sentiment.Provider
	if cfg.SentimentBackend == config.BackendVader {
		primary = sentiment.NewVader()
	}
	provider := sentiment.NewFallback(primary, cfg.SentimentTimeout, log)

	var intentAnalyzer *intent.Analyzer
	if cfg.IntentEnabled {
		intentAnalyzer = intent.New()
	}

	return moderation.New(tax, provider, intentAnalyzer, log), packs, nil
}

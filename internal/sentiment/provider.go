// Package sentiment classifies the polarity of a text.
//
// Architecture:
//
//	Provider (interface)
//	  ├── Lexicon   — word-list counting, ships built-in, zero dependencies
//	  └── Vader     — VADER compound score fused with the lexicon polarity
//
//	Fallback        — wraps any Provider with a bounded timeout and silent
//	                  degradation to the Lexicon when the provider fails.
package sentiment

import (
	"context"
)

// Label is the discrete polarity classification.
type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

// Result is one provider's classification of a text. Confidence is always
// present, including for NEUTRAL (minimum 0.5).
type Result struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Provider is the capability callers depend on. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Name returns the provider identifier (e.g., "lexicon", "vader").
	Name() string

	// Analyze classifies the text. Implementations may block and must
	// honor ctx cancellation.
	Analyze(ctx context.Context, text string) (Result, error)
}

// EmptyText is the result for empty or whitespace-only input; no provider
// is invoked for it.
func EmptyText() Result {
	return Result{Label: Neutral, Confidence: 0.5, Source: "empty_text"}
}

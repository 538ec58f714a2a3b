package sentiment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 2 * time.Second

// Fallback wraps a primary provider with a bounded timeout and degrades to
// the lexicon when the primary fails. The failure is logged, never returned:
// a sentiment request can be weaker than asked for, but it cannot error.
type Fallback struct {
	primary Provider
	lexicon Lexicon
	timeout time.Duration
	log     *zap.Logger
}

// NewFallback builds the degradation chain. primary may be nil, in which
// case only the lexicon runs.
func NewFallback(primary Provider, timeout time.Duration, log *zap.Logger) *Fallback {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fallback{primary: primary, timeout: timeout, log: log}
}

func (f *Fallback) Name() string {
	if f.primary != nil {
		return f.primary.Name()
	}
	return f.lexicon.Name()
}

// Analyze short-circuits empty input, then tries the primary provider once
// (no retries) before falling back to the lexicon.
func (f *Fallback) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return EmptyText(), nil
	}

	if f.primary != nil {
		cctx, cancel := context.WithTimeout(ctx, f.timeout)
		res, err := f.primary.Analyze(cctx, text)
		cancel()
		if err == nil {
			return res, nil
		}
		f.log.Warn("sentiment provider failed, falling back to lexicon",
			zap.String("provider", f.primary.Name()),
			zap.Error(err))
	}

	return f.lexicon.Analyze(ctx, text)
}

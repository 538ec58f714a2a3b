// Package moderation is the analysis core's entry point: it runs the
// pattern, sentiment, and intent signals over a text and fuses them into a
// single moderation result. Each call is independent; the only shared state
// is the immutable taxonomy and term lists.
package moderation

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"modguard/internal/intent"
	"modguard/internal/pattern"
	"modguard/internal/risk"
	"modguard/internal/sentiment"
	"modguard/internal/taxonomy"
)

// ErrInvalidInput is returned when a caller submits empty or
// whitespace-only text to a single-item operation.
var ErrInvalidInput = errors.New("text cannot be empty")

// Result is the externally observable unit of work for one text. It is
// produced fresh per request and has no lifecycle beyond the call.
type Result struct {
	Text           string              `json:"text"`
	SuggestedTags  map[string][]string `json:"suggested_tags"`
	RiskAssessment risk.Assessment     `json:"risk_assessment"`
	RequiresReview bool                `json:"requires_review"`
	Sentiment      *sentiment.Result   `json:"sentiment,omitempty"`
	Intent         *intent.Result      `json:"intent,omitempty"`
}

// Service wires the three signals together. Safe for concurrent use.
type Service struct {
	matcher    *pattern.Matcher
	provider   sentiment.Provider
	intent     *intent.Analyzer // nil when the capability is not configured
	aggregator risk.Aggregator
	log        *zap.Logger
}

// New builds a service over the given taxonomy. provider may be nil (the
// lexicon is used) and intentAnalyzer may be nil (intent analysis reports
// unavailable).
func New(tax *taxonomy.Taxonomy, provider sentiment.Provider, intentAnalyzer *intent.Analyzer, log *zap.Logger) *Service {
	if provider == nil {
		provider = sentiment.Lexicon{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		matcher:  pattern.NewMatcher(tax),
		provider: provider,
		intent:   intentAnalyzer,
		log:      log,
	}
}

// IntentAvailable reports whether the intent capability is configured. It
// is resolved once at construction, never re-probed per request.
func (s *Service) IntentAvailable() bool { return s.intent != nil }

// SentimentSource returns the identifier of the configured provider.
func (s *Service) SentimentSource() string { return s.provider.Name() }

// AnalyzeSentiment classifies the polarity of a single text.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) (sentiment.Result, error) {
	if strings.TrimSpace(text) == "" {
		return sentiment.Result{}, ErrInvalidInput
	}
	return s.analyzeSentiment(ctx, text), nil
}

// Moderate analyzes a single text and returns the fused moderation result.
func (s *Service) Moderate(ctx context.Context, text string, includeSentiment bool) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrInvalidInput
	}
	return s.moderate(ctx, text, includeSentiment), nil
}

// BatchModerate analyzes each text independently and returns one result per
// input, in input order. Empty elements produce a minimal-risk result, not
// an error. Cancellation stops scheduling further items; completed results
// remain valid and are returned alongside the context error.
func (s *Service) BatchModerate(ctx context.Context, texts []string, includeSentiment bool) ([]Result, error) {
	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		results = append(results, s.moderate(ctx, text, includeSentiment))
	}
	return results, nil
}

func (s *Service) moderate(ctx context.Context, text string, includeSentiment bool) Result {
	if strings.TrimSpace(text) == "" {
		res := Result{
			Text:          text,
			SuggestedTags: map[string][]string{},
			RiskAssessment: risk.Assessment{
				Score: 0,
				Level: risk.LevelMinimal,
			},
			RequiresReview: false,
		}
		if includeSentiment {
			empty := sentiment.EmptyText()
			res.Sentiment = &empty
		}
		return res
	}

	matches := s.matcher.Match(text)
	sent := s.analyzeSentiment(ctx, text)

	intentRes := intent.Unavailable()
	if s.intent != nil {
		intentRes = s.intent.Analyze(text)
	}

	assessment, review := s.aggregator.Aggregate(matches, &sent, intentRes)

	s.log.Debug("moderated text",
		zap.Float64("score", assessment.Score),
		zap.String("level", string(assessment.Level)),
		zap.Bool("requires_review", review))

	res := Result{
		Text:           text,
		SuggestedTags:  matches.ToMap(),
		RiskAssessment: assessment,
		RequiresReview: review,
	}
	if includeSentiment {
		res.Sentiment = &sent
	}
	if intentRes.Available {
		res.Intent = &intentRes
	}
	return res
}

// analyzeSentiment never fails: a provider error degrades to the lexicon.
// Providers built with sentiment.NewFallback already behave this way; this
// is the backstop for a bare provider.
func (s *Service) analyzeSentiment(ctx context.Context, text string) sentiment.Result {
	res, err := s.provider.Analyze(ctx, text)
	if err != nil {
		s.log.Warn("sentiment analysis failed, using lexicon",
			zap.String("provider", s.provider.Name()),
			zap.Error(err))
		res, _ = sentiment.Lexicon{}.Analyze(ctx, text)
	}
	return res
}

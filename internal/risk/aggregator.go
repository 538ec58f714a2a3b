// Package risk fuses the pattern, sentiment, and intent signals into a
// single bounded score, a discrete level, and a review decision.
package risk

import (
	"math"

	"modguard/internal/intent"
	"modguard/internal/pattern"
	"modguard/internal/sentiment"
	"modguard/internal/taxonomy"
)

// Level is the discretized risk score.
type Level string

const (
	LevelHigh    Level = "HIGH"
	LevelMedium  Level = "MEDIUM"
	LevelLow     Level = "LOW"
	LevelMinimal Level = "MINIMAL"
)

// Assessment is the fused risk output for one text. IntentScore is nil when
// intent analysis was unavailable.
type Assessment struct {
	Score        float64  `json:"score"`
	Level        Level    `json:"level"`
	PatternScore float64  `json:"pattern_score"`
	IntentScore  *float64 `json:"intent_score,omitempty"`
}

// categoryWeights scale the pattern contribution per matched tag.
var categoryWeights = map[string]float64{
	taxonomy.CategoryContentWarning: 0.2,
	taxonomy.CategoryViolation:      0.8,
	taxonomy.CategoryQuality:        0.4,
	taxonomy.CategorySafety:         1.0,
}

// Level thresholds on the final score.
const (
	highThreshold   = 0.7
	mediumThreshold = 0.4
	lowThreshold    = 0.2

	reviewThreshold = 0.5

	// intentOverrideThreshold: above it the intent score replaces a lower
	// pattern score and forces review. intentClearCap bounds the score when
	// intent analysis affirmatively found nothing concerning, limiting false
	// positives from pure lexical matching.
	intentOverrideThreshold = 0.3
	intentClearCap          = 0.3
)

// Aggregator computes the risk policy. Stateless.
type Aggregator struct{}

// Aggregate fuses the three signals and returns the assessment plus the
// review decision. sent may be nil when no sentiment signal was computed.
func (Aggregator) Aggregate(patterns pattern.Result, sent *sentiment.Result, intentRes intent.Result) (Assessment, bool) {
	score := 0.0

	for _, m := range patterns {
		score += float64(len(m.Tags)) * categoryWeights[m.Category] * 0.1
	}

	if sent != nil {
		switch sent.Label {
		case sentiment.Negative:
			score += sent.Confidence * 0.4
		case sentiment.Positive:
			// Positive sentiment is weak evidence of safety.
			score -= sent.Confidence * 0.1
		}
	}

	patternScore := clamp01(score)

	if !intentRes.Available {
		final := patternScore
		review := final >= reviewThreshold ||
			patterns.Has(taxonomy.CategoryViolation) ||
			patterns.Has(taxonomy.CategorySafety)
		return Assessment{
			Score:        final,
			Level:        levelFor(final),
			PatternScore: patternScore,
		}, review
	}

	intentScore := intentRes.Confidence
	final := patternScore
	forced := false

	switch {
	case intentScore > intentOverrideThreshold:
		final = math.Max(patternScore, intentScore)
		forced = true
	case intentScore == 0 && len(intentRes.DetectedCategories) == 0:
		final = math.Min(patternScore, intentClearCap)
	}

	review := forced || final >= reviewThreshold

	return Assessment{
		Score:        final,
		Level:        levelFor(final),
		PatternScore: patternScore,
		IntentScore:  &intentScore,
	}, review
}

func levelFor(score float64) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	case score >= lowThreshold:
		return LevelLow
	default:
		return LevelMinimal
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

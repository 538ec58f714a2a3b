package sentiment

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// Vader scores text with the VADER model and fuses its compound score with
// the independent lexicon polarity signal. Both signals live in [-1, 1].
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Name() string { return "vader" }

// Analyze computes the VADER compound score and classifies the fused
// signal. The model runs in-process but can be slow on pathological input,
// so the scoring is bounded by ctx.
func (v *Vader) Analyze(ctx context.Context, text string) (Result, error) {
	scored := make(chan float64, 1)
	go func() {
		scored <- v.analyzer.PolarityScores(text).Compound
	}()

	var primary float64
	select {
	case primary = <-scored:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	return fuse(primary, polarity(text)), nil
}

// fuse combines the primary and secondary polarity signals with fixed
// weights and classifies the result.
func fuse(primary, secondary float64) Result {
	combined := 0.7*primary + 0.3*secondary
	abs := math.Abs(combined)

	switch {
	case combined >= 0.1:
		return Result{Label: Positive, Confidence: minF(abs+0.5, 0.95), Source: "vader"}
	case combined <= -0.1:
		return Result{Label: Negative, Confidence: minF(abs+0.5, 0.95), Source: "vader"}
	default:
		return Result{Label: Neutral, Confidence: 0.5 + 0.3*(1-abs), Source: "vader"}
	}
}

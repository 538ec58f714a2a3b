package sentiment

import (
	"context"
	"strings"
)

var positiveWords = []string{
	"love", "great", "excellent", "amazing", "wonderful", "fantastic",
	"awesome", "happy", "beautiful", "best", "good", "nice", "enjoy",
	"thanks", "thank you", "appreciate", "glad", "perfect",
}

var negativeWords = []string{
	"hate", "terrible", "awful", "horrible", "worst", "bad", "disgusting",
	"stupid", "idiot", "ugly", "angry", "annoying", "sucks", "useless",
	"pathetic", "miserable", "garbage",
}

// Lexicon counts fixed positive and negative word lists in the text. It is
// always available and never fails.
type Lexicon struct{}

func (Lexicon) Name() string { return "lexicon" }

// Analyze classifies by which list has more hits. Confidence grows with the
// margin between the counts and is capped at 0.9; ties are NEUTRAL at 0.5.
func (Lexicon) Analyze(_ context.Context, text string) (Result, error) {
	pos, neg := countWords(text)

	switch {
	case pos > neg:
		return Result{
			Label:      Positive,
			Confidence: minF(0.6+0.1*float64(pos-neg), 0.9),
			Source:     "lexicon",
		}, nil
	case neg > pos:
		return Result{
			Label:      Negative,
			Confidence: minF(0.6+0.1*float64(neg-pos), 0.9),
			Source:     "lexicon",
		}, nil
	default:
		return Result{Label: Neutral, Confidence: 0.5, Source: "lexicon"}, nil
	}
}

// countWords returns how many words from each list appear in the text.
// Containment is substring-based and case-insensitive; each list word
// counts once regardless of repetition.
func countWords(text string) (pos, neg int) {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	return pos, neg
}

// polarity maps the lexicon counts onto [-1, 1]. It is the secondary signal
// fused with the VADER compound score.
func polarity(text string) float64 {
	pos, neg := countWords(text)
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

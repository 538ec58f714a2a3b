// Package intent detects concerning intent with sentence-level context.
// Unlike raw lexical matching, it scopes negation to the sentence: "I don't
// hate you" must not raise a hate flag. It is the only signal in the system
// that reasons about context rather than term presence.
package intent

import (
	"math"
	"regexp"
	"strings"

	"modguard/internal/textnorm"
)

// Risk is the discretized overall intent risk.
type Risk string

const (
	RiskHigh   Risk = "HIGH"
	RiskMedium Risk = "MEDIUM"
	RiskLow    Risk = "LOW"
)

const (
	// AssertionAsserted marks a context sentence that raised a flag.
	AssertionAsserted = "asserted"
	// AssertionNegated marks a context sentence whose negation suppressed it.
	AssertionNegated = "negated"
)

// CategoryFlag records the evidence for one monitored category.
type CategoryFlag struct {
	Detected   bool    `json:"detected"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`   // last matched sentence
	Assertion  string  `json:"assertion,omitempty"` // "asserted" or "negated"
}

// Result is the outcome of one intent analysis. When the capability is not
// configured, Available is false and every other field is zero.
type Result struct {
	Available          bool                    `json:"available"`
	OverallRisk        Risk                    `json:"overall_risk,omitempty"`
	Confidence         float64                 `json:"confidence"`
	DetectedCategories []string                `json:"detected_categories,omitempty"`
	Flags              map[string]CategoryFlag `json:"flags,omitempty"`
}

// Unavailable is the result when no analyzer is configured.
func Unavailable() Result {
	return Result{Available: false}
}

// Negation cues are matched on word boundaries: "no" as a bare substring
// would fire on "now" and "know".
var negationCues = regexp.MustCompile(`\b(not|never|don'?t|won'?t|wouldn'?t|can'?t|cannot|no)\b`)

var sentenceSplit = regexp.MustCompile(`[.!?\n]+`)

// monitoredCategories lists the intent categories and their trigger terms,
// in reporting order. Terms are matched by substring on the lower-cased
// sentence.
var monitoredCategories = []struct {
	name  string
	terms []string
}{
	{"violence", []string{"violence", "kill", "murder", "attack", "hurt", "beat up", "shoot", "stab"}},
	{"harassment", []string{"harass", "bully", "intimidate", "stalk", "humiliate"}},
	{"hate", []string{"hate", "despise", "can't stand", "disgusted by"}},
	{"threat", []string{"threat", "you'll regret", "watch your back", "make you pay", "come after you"}},
}

// Confidence adjustments are asymmetric: an assertion outweighs a negation
// so that a negated mention elsewhere cannot fully cancel a true positive.
const (
	assertBoost     = 0.7
	negatePenalty   = 0.3
	highThreshold   = 0.6
	mediumThreshold = 0.3
)

// Analyzer segments text into sentences and accumulates per-category
// confidence with negation scoping. Stateless and safe for concurrent use.
type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the negation-scoped category matching over every sentence.
func (a *Analyzer) Analyze(text string) Result {
	flags := make(map[string]CategoryFlag, len(monitoredCategories))

	for _, sentence := range splitSentences(textnorm.Clean(text)) {
		lower := strings.ToLower(sentence)
		negated := negationCues.MatchString(lower)

		for _, cat := range monitoredCategories {
			if !containsAny(lower, cat.terms) {
				continue
			}
			flag := flags[cat.name]
			if negated {
				flag.Confidence = math.Max(0, flag.Confidence-negatePenalty)
				flag.Assertion = AssertionNegated
			} else {
				flag.Confidence = math.Min(1, flag.Confidence+assertBoost)
				flag.Detected = true
				flag.Assertion = AssertionAsserted
			}
			flag.Context = sentence
			flags[cat.name] = flag
		}
	}

	var overall float64
	var detected []string
	for _, cat := range monitoredCategories {
		flag, ok := flags[cat.name]
		if !ok {
			continue
		}
		overall = math.Max(overall, flag.Confidence)
		if flag.Detected {
			detected = append(detected, cat.name)
		}
	}

	return Result{
		Available:          true,
		OverallRisk:        riskForConfidence(overall),
		Confidence:         overall,
		DetectedCategories: detected,
		Flags:              flags,
	}
}

func riskForConfidence(c float64) Risk {
	switch {
	case c > highThreshold:
		return RiskHigh
	case c > mediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// Package pattern scans text against the moderation taxonomy and reports
// the tags it confirms, grouped by category.
package pattern

import (
	"strings"

	"modguard/internal/taxonomy"
	"modguard/internal/textnorm"
)

// CategoryMatch is the set of tags confirmed under one category, in the
// tag declaration order of the taxonomy.
type CategoryMatch struct {
	Category string
	Tags     []string
}

// Result lists matched categories in taxonomy declaration order. Categories
// with no confirmed tags are omitted.
type Result []CategoryMatch

// Has reports whether any tag under the named category matched.
func (r Result) Has(category string) bool {
	for _, m := range r {
		if m.Category == category {
			return true
		}
	}
	return false
}

// TagCount returns the number of tags confirmed under the named category.
func (r Result) TagCount(category string) int {
	for _, m := range r {
		if m.Category == category {
			return len(m.Tags)
		}
	}
	return 0
}

// ToMap converts the result to the category → tags shape used on the wire.
func (r Result) ToMap() map[string][]string {
	out := make(map[string][]string, len(r))
	for _, m := range r {
		out[m.Category] = m.Tags
	}
	return out
}

// Matcher scans text against an immutable taxonomy. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	tax *taxonomy.Taxonomy
}

func NewMatcher(tax *taxonomy.Taxonomy) *Matcher {
	return &Matcher{tax: tax}
}

// Match returns the tags confirmed for the text. The text is lower-cased
// once; each tag is confirmed by the first of its rules that matches and is
// recorded at most once per category. Pure function of (taxonomy, text).
func (m *Matcher) Match(text string) Result {
	lower := strings.ToLower(textnorm.Clean(text))

	var result Result
	for _, cat := range m.tax.Categories {
		var tags []string
		for _, tag := range cat.Tags {
			for _, rule := range tag.Rules {
				if rule.Matches(lower) {
					tags = append(tags, tag.Name)
					break
				}
			}
		}
		if len(tags) > 0 {
			result = append(result, CategoryMatch{Category: cat.Name, Tags: tags})
		}
	}
	return result
}

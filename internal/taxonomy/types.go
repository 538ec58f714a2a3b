// Package taxonomy defines the moderation rule taxonomy: an ordered set of
// categories, each owning tags, each tag owning the detection rules that
// confirm it. The taxonomy is built once at startup and never mutated, so
// it is safe to share across concurrent analyses without locking.
package taxonomy

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rule is a single detection pattern evaluated against lower-cased text.
type Rule interface {
	Matches(text string) bool
}

// regexRule wraps a precompiled case-insensitive regular expression.
type regexRule struct {
	re *regexp.Regexp
}

func (r regexRule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// repeatRule fires on a run of identical characters of at least minRun.
// RE2 has no backreferences, so the classic (.)\1{10,} spam pattern cannot
// be expressed as a regexp.
type repeatRule struct {
	minRun int
}

func (r repeatRule) Matches(text string) bool {
	var prev rune
	run := 0
	first := true
	for i := 0; i < len(text); {
		c, width := utf8.DecodeRuneInString(text[i:])
		if !first && c == prev {
			run++
		} else {
			run = 1
			prev = c
			first = false
		}
		if run >= r.minRun {
			return true
		}
		i += width
	}
	return false
}

// Tag is a specific label within a category, confirmed by the first of its
// rules that matches.
type Tag struct {
	Name  string
	Rules []Rule
}

// Category is a top-level moderation grouping. Tag order is the declaration
// order and is externally observable, so tags are a slice, never a map.
type Category struct {
	Name string
	Tags []Tag
}

// Taxonomy is the full category → tag → rules mapping. Immutable after
// construction.
type Taxonomy struct {
	Categories []Category
}

// Category names referenced by the risk policy.
const (
	CategoryContentWarning = "ContentWarning"
	CategoryViolation      = "Violation"
	CategoryQuality        = "Quality"
	CategorySafety         = "Safety"
)

// CompileRule compiles a user-supplied pattern into a case-insensitive rule.
func CompileRule(expr string) (Rule, error) {
	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return nil, fmt.Errorf("compiling rule %q: %w", expr, err)
	}
	return regexRule{re: re}, nil
}

// mustRule compiles a built-in pattern; built-in patterns are constants and
// a failure to compile is a programmer error.
func mustRule(expr string) Rule {
	return regexRule{re: regexp.MustCompile(`(?i)` + expr)}
}

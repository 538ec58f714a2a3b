package auditlog

import (
	"regexp"
)

// The audit log records decisions, not content: any PII that the doxxing
// rules would flag is stripped before a line is written.
var piiPatterns = []*regexp.Regexp{
	// US-style phone numbers
	regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),

	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),

	// Street addresses
	regexp.MustCompile(`(?i)\b\d{1,5}\s+\w+\s+(street|st|avenue|ave|road|rd|drive|dr|lane|ln|boulevard|blvd)\b`),

	// Social security numbers
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),

	// Payment card numbers (13-16 digits, optionally grouped)
	regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`),
}

const redactedPlaceholder = "[REDACTED]"

// Redact replaces PII in the input with a placeholder.
func Redact(input string) string {
	result := input
	for _, pattern := range piiPatterns {
		result = pattern.ReplaceAllString(result, redactedPlaceholder)
	}
	return result
}

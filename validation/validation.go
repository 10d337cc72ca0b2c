package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Violations maps a field name to the error codes recorded against it.
// Codes are stable identifiers ("required", "too_short", ...) translated
// at render time, never user-facing text.
type Violations map[string][]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) Has(field string) bool { return len(v[field]) > 0 }

func (v Violations) Add(field, code string) { v[field] = append(v[field], code) }

// First returns the first code recorded for a field, or "".
func (v Violations) First(field string) string {
	if len(v[field]) == 0 {
		return ""
	}
	return v[field][0]
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

// MinLength and MaxLength count runes, not bytes, so accented names are
// measured the way users see them.
func MinLength(field, value string, minLen int, v Violations) {
	if utf8.RuneCountInString(value) < minLen {
		v.Add(field, "too_short")
	}
}

func MaxLength(field, value string, maxLen int, v Violations) {
	if utf8.RuneCountInString(value) > maxLen {
		v.Add(field, "too_long")
	}
}

func Email(field, value string, v Violations) {
	if !emailRe.MatchString(value) {
		v.Add(field, "invalid_email")
	}
}

func IntInRange(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v.Add(field, "out_of_range")
	}
}

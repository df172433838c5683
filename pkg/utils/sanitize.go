package utils

import (
	"html"
	"strings"
	"unicode"
)

// SanitizeString trims and escapes HTML.
func SanitizeString(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// SanitizePhone keeps digits, '+', and common separators.
func SanitizePhone(phone string) string {
	var result strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		if unicode.IsDigit(r) || r == '+' || r == ' ' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// DigitsOnly drops everything but ASCII digits. Postcodes such as "28-001" or "08/020"
// become "28001" and "08020".
func DigitsOnly(input string) string {
	var result strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

// SingleLine collapses newlines and tabs so the value can travel inside a pipe-delimited field.
func SingleLine(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', '|':
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

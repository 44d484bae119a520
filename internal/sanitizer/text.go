// Package sanitizer turns untrusted form input into bounded, safe values.
//
// None of the helpers return an error. Invalid input always falls back to a
// documented default (an empty string, "now", the first enum member, ...).
package sanitizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)\s*>`)
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// Text bounds input to maxLength characters and strips markup and script
// injection patterns. It is pattern based, not an HTML parser, so output must
// still be escaped when rendered.
//
// Non-string and empty input yields "".
func Text(input any, maxLength int) string {
	s, ok := input.(string)
	if !ok || s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\x00", "")
	s = truncate(strings.TrimSpace(s), maxLength)
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")

	// Removing one match can join its neighbours into another.
	for {
		next := eventHandlerRe.ReplaceAllString(jsSchemeRe.ReplaceAllString(s, ""), "")
		if next == s {
			break
		}
		s = next
	}

	return strings.TrimSpace(s)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

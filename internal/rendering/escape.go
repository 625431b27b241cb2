// Package rendering turns fetched JSON documents into themed SVG cards. Each
// card type has its own renderer built on a shared Card base that handles the
// document frame, gradients, filters, and footer.
package rendering

import (
	"strings"
	"unicode/utf8"
)

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML escapes the five XML special characters for safe embedding in
// SVG text content and attributes.
func EscapeXML(text string) string {
	if text == "" {
		return ""
	}
	return xmlReplacer.Replace(text)
}

// SafeValue formats a value with a suffix, or returns an em-dash placeholder
// when the value is nil.
func SafeValue(value any, suffix string) string {
	if value == nil {
		return "—"
	}
	return formatAny(value) + suffix
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// WrapText breaks text into lines at word boundaries so that no line exceeds
// maxChars. A single word longer than maxChars occupies its own line intact.
func WrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	var lines []string
	current := ""

	for _, word := range words {
		test := strings.TrimSpace(current + " " + word)
		if utf8.RuneCountInString(test) <= maxChars {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const unknownPlatform = "Unknown"

// NormalizePlatform turns an extractor id such as "youtube:tab" or
// "bili_bili" into a display name.
func NormalizePlatform(extractor string) string {
	name := strings.TrimSuffix(extractor, ":tab")
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	if name == "" {
		return unknownPlatform
	}
	return titleWords(name)
}

// titleWords treats every run of letters as a word, so "twitch:stream"
// becomes "Twitch:Stream" and "bbc.co.uk" becomes "Bbc.Co.Uk".
func titleWords(s string) string {
	// Casers keep state, so one per call.
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

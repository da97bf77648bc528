// Package fields derives structured matches from extracted text.
package fields

import (
	"regexp"
	"strings"
)

// Pattern definitions are deliberately loose: false positives are an accepted
// limitation, absence of matches is never an error.
var (
	// local@domain.tld, RFC-5322-lite.
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Optional leading +, then digits with spaces, parentheses and hyphens.
	// Candidates are filtered by total digit count below.
	rePhone = regexp.MustCompile(`\+?[(\d][\d() \-]*\d`)
)

const minPhoneDigits = 8

// Derive scans text for contact-like tokens. The result always contains the
// "emails" and "phones" keys; each value keeps first-seen order without
// duplicates.
func Derive(text string) map[string][]string {
	return map[string][]string{
		"emails": dedupe(reEmail.FindAllString(text, -1)),
		"phones": dedupe(phones(text)),
	}
}

func phones(text string) []string {
	var out []string
	for _, cand := range rePhone.FindAllString(text, -1) {
		cand = strings.TrimSpace(cand)
		if digitCount(cand) >= minPhoneDigits {
			out = append(out, cand)
		}
	}
	return out
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func dedupe(in []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

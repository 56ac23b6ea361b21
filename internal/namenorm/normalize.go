// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package namenorm canonicalizes person names so that names printed on
// manifest PDFs can be compared with names typed into the schedule
// workbook. Normalization is total and idempotent: it never fails, and
// normalizing an already-normalized string is a no-op.
package namenorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parenRe  = regexp.MustCompile(`\s*\([^)]*\)`)
	spacesRe = regexp.MustCompile(`\s+`)
	digitsRe = regexp.MustCompile(`\d+`)

	// NFKD decomposition followed by removal of combining marks strips
	// accents; NFC recomposes whatever survives.
	deaccent = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize strips accents, removes parenthetical suffixes, collapses
// whitespace, and uppercases.
func Normalize(s string) string {
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		// transform.String only fails on a misbehaving transformer;
		// fall back to the raw input so the function stays total.
		out = s
	}
	out = parenRe.ReplaceAllString(out, "")
	out = spacesRe.ReplaceAllString(out, " ")
	return strings.ToUpper(strings.TrimSpace(out))
}

// StripDigits removes digit runs. Match keys are digit-free so that
// numbered PDF copies ("SILVA 2.pdf") still hit the driver.
func StripDigits(s string) string {
	return strings.TrimSpace(digitsRe.ReplaceAllString(s, ""))
}

// StripParens removes parenthetical suffixes without touching case or
// accents. Used where the original spelling must survive.
func StripParens(s string) string {
	return strings.TrimSpace(parenRe.ReplaceAllString(s, ""))
}

// MatchKey builds the lookup key for a manifest file base name:
// parentheticals and digits stripped, then normalized.
func MatchKey(s string) string {
	return Normalize(StripDigits(StripParens(s)))
}

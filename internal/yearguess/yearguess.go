// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package yearguess resolves the operative calendar year of a roster
// document from noisy evidence. The source URL is consulted first, then the
// page text, then the system clock. Resolution never fails; ambiguity
// surfaces as a warning string on the result.
package yearguess

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/farmaguardia/segovia/internal/spanish"
)

// Source identifies which signal produced the resolved year.
type Source string

const (
	SourceURL      Source = "url"
	SourceText     Source = "text"
	SourceFallback Source = "fallback"
)

// Candidate years are confined to this window; municipal rosters older or
// newer than that are not in circulation.
const (
	minYear = 2020
	maxYear = 2039
)

// A candidate must additionally be within this distance of the current year.
const maxYearDrift = 2

// decemberHeadWindow is how far into the page text a December date token is
// taken as evidence that the printed year labels the end of a season that
// starts the prior December.
const decemberHeadWindow = 500

var (
	yearToken = regexp.MustCompile(`20[23][0-9]`)
	// Corrupted encodings render "2025" as "2.025" or "2 0 2 5"; separators
	// between the digits are arbitrary non-digit characters.
	tolerantYearToken = regexp.MustCompile(`2[^0-9]?0[^0-9]?[23][^0-9]?[0-9]`)
	decemberToken     = regexp.MustCompile(`\b[0-3]?[0-9]\s*-\s*dic`)
)

// Resolution carries the resolved year, the signal that produced it, whether
// that signal was an actual document signal (vs. the clock fallback), and an
// optional human-readable warning.
type Resolution struct {
	Year    int
	Source  Source
	Valid   bool
	Warning string
}

// Resolver resolves years against an injectable clock.
type Resolver struct {
	now func() time.Time
}

// NewResolver returns a resolver using the system clock.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// NewResolverAt returns a resolver with a fixed clock, for tests.
func NewResolverAt(now func() time.Time) *Resolver {
	return &Resolver{now: now}
}

// Resolve picks the best-guess year for a page given its text and the
// document's source URL. Signals are consulted in priority order (URL, text,
// clock); the December-rollover adjustment is applied after selection
// regardless of which signal won.
func (r *Resolver) Resolve(pageText, sourceURL string) Resolution {
	current := r.now().Year()

	res := Resolution{Year: current, Source: SourceFallback, Valid: false}
	if year, ok := yearFromURL(sourceURL, current); ok {
		res = Resolution{Year: year, Source: SourceURL, Valid: true}
	} else if year, ok := yearFromText(pageText, current); ok {
		res = Resolution{Year: year, Source: SourceText, Valid: true}
	} else {
		res.Warning = "no usable year signal, defaulting to current year"
	}

	if hasDecemberHead(pageText) {
		res.Year--
		res.Warning = joinWarnings(res.Warning, "year adjusted due to December date at document start")
	}
	return res
}

// yearFromURL scans the URL for 4-digit year tokens and prefers the
// right-most in-range match, so a year in the filename outranks one in the
// path ("/2026/01/RURALES-2025.pdf" resolves to 2025).
func yearFromURL(url string, current int) (int, bool) {
	matches := yearToken.FindAllString(url, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if year, ok := acceptYear(matches[i], current); ok {
			return year, true
		}
	}
	return 0, false
}

// yearFromText matches a year in the page text, taking the first year of a
// span notation ("2024-2025"). A tolerant second pass handles corrupted
// encodings where the digits are separated by arbitrary junk.
func yearFromText(text string, current int) (int, bool) {
	for _, m := range yearToken.FindAllString(text, -1) {
		if year, ok := acceptYear(m, current); ok {
			return year, true
		}
	}
	for _, m := range tolerantYearToken.FindAllString(text, -1) {
		if year, ok := acceptYear(stripNonDigits(m), current); ok {
			return year, true
		}
	}
	return 0, false
}

func acceptYear(token string, current int) (int, bool) {
	year, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	if year < minYear || year > maxYear {
		return 0, false
	}
	if year < current-maxYearDrift || year > current+maxYearDrift {
		return 0, false
	}
	return year, true
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// hasDecemberHead reports whether a dd-dic token appears near the start of
// the page text.
func hasDecemberHead(text string) bool {
	head := spanish.NormalizeWhitespace(strings.ToLower(spanish.Fold(text)))
	if runes := []rune(head); len(runes) > decemberHeadWindow {
		head = string(runes[:decemberHeadWindow])
	}
	return decemberToken.MatchString(head)
}

func joinWarnings(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}

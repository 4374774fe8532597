// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package spanish is the single source of truth for the Spanish calendar
// vocabulary and the shared date regexes used by every parsing strategy
// and by the year resolver.
package spanish

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Three-letter month abbreviations as printed in the duty rosters (dd-mmm tokens).
var monthAbbrevToNumber = map[string]int{
	"ene": 1, "feb": 2, "mar": 3, "abr": 4, "may": 5, "jun": 6,
	"jul": 7, "ago": 8, "sep": 9, "oct": 10, "nov": 11, "dic": 12,
}

var monthNumberToAbbrev = [13]string{
	"", "ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var monthNumberToName = [13]string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// MonthAbbrevAlternation is the alternation used inside the shared date regexes.
const MonthAbbrevAlternation = "ene|feb|mar|abr|may|jun|jul|ago|sep|oct|nov|dic"

// DayMonthPattern matches a dd-mmm token ("01-ene", "7-sep"). Input is expected
// to be whitespace-normalized and accent-folded first.
var DayMonthPattern = regexp.MustCompile(`(?i)\b([0-3]?\d)\s*-\s*(` + MonthAbbrevAlternation + `)\b`)

// LongDatePattern matches the verbose form used by legacy Cuéllar pages and
// by the Segovia capital date column ("DOMINGO 31 DE AGOSTO",
// "lunes, 1 de septiembre de 2025"). Month group is a full month name.
var LongDatePattern = regexp.MustCompile(`(?i)\b(lunes|martes|miercoles|jueves|viernes|sabado|domingo)\b[,.]?\s+(\d{1,2})\s+de\s+([a-z]+)(?:\s+de\s+(\d{4}))?`)

// MonthNumber resolves a three-letter abbreviation to 1..12.
func MonthNumber(abbrev string) (int, bool) {
	n, ok := monthAbbrevToNumber[strings.ToLower(Fold(abbrev))]
	return n, ok
}

// MonthAbbrev returns the three-letter abbreviation for month 1..12.
func MonthAbbrev(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNumberToAbbrev[month]
}

// MonthName returns the full lowercase month name for month 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNumberToName[month]
}

// MonthNumberFromName resolves a full month name (any casing, accents
// optional) to 1..12.
func MonthNumberFromName(name string) (int, bool) {
	folded := strings.ToLower(Fold(strings.TrimSpace(name)))
	for i := 1; i <= 12; i++ {
		if Fold(monthNumberToName[i]) == folded {
			return i, true
		}
	}
	return 0, false
}

// WeekdayName returns the Spanish name for a Go weekday.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// NormalizeWhitespace maps every Unicode space variant (NBSP, thin space,
// figure space) to a plain space and collapses runs. The municipal PDFs mix
// these freely, which breaks naive regex matching.
func NormalizeWhitespace(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// Fold removes diacritics so that "sábado"/"SÁBADO"/"sabado" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

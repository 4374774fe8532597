// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/farmaguardia/segovia/internal/logger"
	"github.com/farmaguardia/segovia/internal/model"
	"github.com/farmaguardia/segovia/internal/pdfdoc"
	"github.com/farmaguardia/segovia/internal/spanish"
	"github.com/farmaguardia/segovia/internal/yearguess"
)

// rangeConnector is the text allowed between two dd-mmm tokens for the pair
// to be read as an inclusive date range ("01-ene al 07-ene").
var rangeConnector = regexp.MustCompile(`(?i)^\s*(al|a|hasta)\s*$`)

// rangeExpansionCap bounds range expansion; roster ranges never exceed a few
// weeks, so anything longer is a parse artifact.
const rangeExpansionCap = 62

// rowParser drives the line-oriented strategies (Cuéllar, El Espinar).
// It is pure configuration; all per-document state lives in rosterState.
type rowParser struct {
	location      model.DutyLocation
	matchPharmacy func(line string) (model.Pharmacy, bool)
	// reshape rewrites legacy line formats into the common dd-mmm shape
	// before classification. May be nil.
	reshape func(line string) string
}

// rosterState is the accumulator threaded through the fold over lines:
// the running year, the month of the last parsed token (for New Year
// rollover), and the pending dates/pharmacy of the line state machine
// (awaiting-pharmacy / awaiting-dates / ready-to-flush).
type rosterState struct {
	year      int
	prevMonth int
	dates     []model.DutyDate
	pharmacy  *model.Pharmacy
}

// parseDateTokens extracts the dd-mmm tokens of a line as fully resolved
// dates, expanding a two-token range inclusively. The running year advances
// when a 01-ene token follows a December date, carrying documents that span
// a New Year boundary.
func parseDateTokens(line string, st rosterState) ([]model.DutyDate, rosterState) {
	normalized := spanish.NormalizeWhitespace(spanish.Fold(line))
	matches := spanish.DayMonthPattern.FindAllStringSubmatchIndex(normalized, -1)
	if len(matches) == 0 {
		return nil, st
	}

	type token struct{ day, month int }
	var tokens []token
	for _, m := range matches {
		day := atoi(normalized[m[2]:m[3]])
		month, ok := spanish.MonthNumber(normalized[m[4]:m[5]])
		if !ok || day < 1 || day > 31 {
			continue
		}
		tokens = append(tokens, token{day: day, month: month})
	}
	if len(tokens) == 0 {
		return nil, st
	}

	var dates []model.DutyDate
	add := func(day, month int) {
		if day == 1 && month == 1 && st.prevMonth == 12 {
			st.year++
		}
		if day > spanish.DaysInMonth(month, st.year) {
			logger.Debugf("skipping impossible date %d-%s", day, spanish.MonthAbbrev(month))
			return
		}
		dates = append(dates, model.NewDutyDate(day, month, st.year))
		st.prevMonth = month
	}

	isRange := false
	if len(tokens) == 2 {
		between := normalized[matches[0][1]:matches[1][0]]
		isRange = rangeConnector.MatchString(between)
	}

	if isRange {
		day, month := tokens[0].day, tokens[0].month
		for i := 0; i < rangeExpansionCap; i++ {
			add(day, month)
			if day == tokens[1].day && month == tokens[1].month {
				break
			}
			day++
			if day > spanish.DaysInMonth(month, st.year) {
				day = 1
				month++
				if month > 12 {
					month = 1
				}
			}
		}
	} else {
		for _, t := range tokens {
			add(t.day, t.month)
		}
	}
	return dates, st
}

// parsePage folds the line state machine over one page. Date lines and
// pharmacy lines may arrive in either order; a line carrying both flushes
// itself. Lines matching neither classification are skipped with a
// diagnostic, never aborting the page.
func (p rowParser) parsePage(lines []string, st rosterState) ([]rawEntry, rosterState) {
	var entries []rawEntry

	for _, raw := range lines {
		line := raw
		if p.reshape != nil {
			line = p.reshape(line)
		}

		var dates []model.DutyDate
		dates, st = parseDateTokens(line, st)
		pharmacy, hasPharmacy := p.matchPharmacy(line)

		switch {
		case len(dates) > 0 && hasPharmacy:
			// Composite line: closes itself, discarding any half-filled state.
			if len(st.dates) > 0 {
				logger.Debugf("%s: dropping %d pending dates without pharmacy", p.location, len(st.dates))
			}
			entries = append(entries, p.emit(dates, pharmacy)...)
			st.dates = nil
			st.pharmacy = nil

		case len(dates) > 0:
			if st.pharmacy != nil {
				entries = append(entries, p.emit(dates, *st.pharmacy)...)
				st.pharmacy = nil
			} else {
				st.dates = append(st.dates, dates...)
			}

		case hasPharmacy:
			if len(st.dates) > 0 {
				entries = append(entries, p.emit(st.dates, pharmacy)...)
				st.dates = nil
			} else {
				if st.pharmacy != nil {
					logger.Debugf("%s: pharmacy %q superseded before any date", p.location, st.pharmacy.Name)
				}
				st.pharmacy = &pharmacy
			}

		default:
			logger.Debugf("%s: skipping unclassified line %q", p.location, raw)
		}
	}
	return entries, st
}

// emit produces one full-day entry per pending date; the line-oriented
// municipalities do not distinguish day and night shifts.
func (p rowParser) emit(dates []model.DutyDate, ph model.Pharmacy) []rawEntry {
	out := make([]rawEntry, 0, len(dates))
	for _, d := range dates {
		out = append(out, rawEntry{
			Location:   p.location,
			Date:       d,
			Span:       model.SpanFullDay,
			Pharmacies: []model.Pharmacy{ph},
		})
	}
	return out
}

// parseDocument runs the full per-document pipeline: open once, resolve the
// starting year, fold every page through the state machine, assemble.
func (p rowParser) parseDocument(pdfBytes []byte, sourceURL string) (model.ScheduleMap, error) {
	doc, err := pdfdoc.Open(pdfBytes)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	firstText, err := doc.PageText(0)
	if err != nil {
		logger.Warnf("%s: no text on first page: %v", p.location, err)
	}
	res := yearguess.NewResolver().Resolve(firstText, sourceURL)
	if res.Warning != "" {
		logger.Warnf("%s: %s", p.location, res.Warning)
	}

	st := rosterState{year: res.Year}
	var entries []rawEntry
	for n := 0; n < doc.NumPages(); n++ {
		lines, err := doc.PageLines(n)
		if err != nil {
			logger.Warnf("%s: skipping page %d: %v", p.location, n, err)
			continue
		}
		var pageEntries []rawEntry
		pageEntries, st = p.parsePage(lines, st)
		entries = append(entries, pageEntries...)
	}
	return assemble(entries, res.Year), nil
}

// substringLookup builds a pharmacy matcher over a key → record table. Keys
// are matched as substrings of the folded, uppercased line, in sorted key
// order so matching is deterministic.
func substringLookup(table map[string]model.Pharmacy) func(string) (model.Pharmacy, bool) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return func(line string) (model.Pharmacy, bool) {
		hay := strings.ToUpper(spanish.NormalizeWhitespace(spanish.Fold(line)))
		for _, k := range keys {
			if strings.Contains(hay, k) {
				return table[k], true
			}
		}
		return model.Pharmacy{}, false
	}
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"regexp"
	"strings"

	"github.com/farmaguardia/segovia/internal/logger"
	"github.com/farmaguardia/segovia/internal/model"
	"github.com/farmaguardia/segovia/internal/pdfdoc"
	"github.com/farmaguardia/segovia/internal/scanner"
	"github.com/farmaguardia/segovia/internal/spanish"
	"github.com/farmaguardia/segovia/internal/yearguess"
)

// Segovia capital geometry. The roster is a genuine three-column table
// (date | day-shift block | night-shift block); the date column takes this
// share of the content width and each pharmacy block spans three physical
// text lines.
const (
	capitalDateColumnRatio = 0.26
	capitalRowHeight       = 44.0
	capitalScanStep        = 4.0
)

var (
	// A merged day+night cell renders both pharmacy names on one physical
	// line: "FARMACIA X ... FARMACIA Y ...".
	capitalCompositeName = regexp.MustCompile(`(?i)^(FARMACIA\b.*?)\s+(FARMACIA\b.*)$`)
	capitalPhone         = regexp.MustCompile(`\b9\d{2}(?:[\s.]?\d{2,3}){2,3}\b`)
	capitalAddressAnchor = regexp.MustCompile(`(?i)C/|C\.|CALLE\b|AVDA\.?|AVENIDA\b|AV\.|PLAZA\b|PZA\.?|PASEO\b|CTRA\.?|TRAVESIA\b|CAMINO\b`)
)

// pharmacyTriple accumulates the three physical lines of one pharmacy block.
type pharmacyTriple struct {
	name    string
	address string
	phone   string
	extra   string
}

func (t pharmacyTriple) complete() bool {
	return t.name != "" && t.address != "" && t.phone != ""
}

func (t pharmacyTriple) pharmacy() model.Pharmacy {
	phone := t.phone
	if phone == "" {
		phone = model.PhoneNotAvailable
	}
	return model.Pharmacy{
		Name:           strings.TrimSpace(t.name),
		Address:        strings.TrimSpace(t.address),
		Phone:          strings.TrimSpace(phone),
		AdditionalInfo: strings.TrimSpace(t.extra),
	}
}

// capitalPending is the accumulator carried across lines: a record is only
// flushed once the date and both shift triples are complete; partially
// filled state persists across lines that do not complete it.
type capitalPending struct {
	date  *model.DutyDate
	day   pharmacyTriple
	night pharmacyTriple
}

func (p *capitalPending) readyToFlush() bool {
	return p.date != nil && p.day.complete() && p.night.complete()
}

// SegoviaCapital parses the capital roster: per date one day-shift pharmacy
// (10:15–22:00) and one night-shift pharmacy (22:00–10:15). Extraction is
// geometric when positioned text is available, with a pure-text single-pass
// fallback for documents whose table collapses into merged lines.
type SegoviaCapital struct{}

// NewSegoviaCapital builds the Segovia capital strategy.
func NewSegoviaCapital() *SegoviaCapital {
	return &SegoviaCapital{}
}

// ParseSchedules implements ParsingStrategy. The year is resolved per page;
// capital rosters carry in-line year markers and a single document can span
// a season boundary.
func (s *SegoviaCapital) ParseSchedules(pdfBytes []byte, sourceURL string) (model.ScheduleMap, error) {
	doc, err := pdfdoc.Open(pdfBytes)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	resolver := yearguess.NewResolver()
	fallbackYear := 0
	var entries []rawEntry

	for n := 0; n < doc.NumPages(); n++ {
		text, err := doc.PageText(n)
		if err != nil {
			logger.Warnf("segovia-capital: skipping page %d: %v", n, err)
			continue
		}
		res := resolver.Resolve(text, sourceURL)
		if res.Warning != "" {
			logger.Warnf("segovia-capital page %d: %s", n, res.Warning)
		}
		if fallbackYear == 0 {
			fallbackYear = res.Year
		}

		pageEntries := parseCapitalPage(doc.PageFragments(n), res.Year)
		if len(pageEntries) == 0 {
			pageEntries = parseCapitalLines(splitLines(text), res.Year)
		}
		entries = append(entries, pageEntries...)
	}

	return assemble(entries, fallbackYear), nil
}

// parseCapitalPage recovers the three-column table geometrically: column
// x-ranges are computed from the page margins and the date-column width
// ratio, the first coherent row skips the title block (whose height varies
// between documents), then rows are swept at the block height.
func parseCapitalPage(frags []pdfdoc.Fragment, year int) []rawEntry {
	if len(frags) == 0 {
		return nil
	}

	minX, maxX := frags[0].X, frags[0].X
	minY, maxY := frags[0].Y, frags[0].Y
	for _, f := range frags {
		minX = min(minX, f.X)
		maxX = max(maxX, f.X+f.W)
		minY = min(minY, f.Y)
		maxY = max(maxY, f.Y)
	}

	contentW := maxX - minX
	dateW := contentW * capitalDateColumnRatio
	blockW := (contentW - dateW) / 2

	cells := []scanner.Rect{
		{X: minX, Y: minY, Width: dateW, Height: capitalRowHeight},
		{X: minX + dateW, Y: minY, Width: blockW, Height: capitalRowHeight},
		{X: minX + dateW + blockW, Y: minY, Width: blockW, Height: capitalRowHeight},
	}

	firstY, ok := scanner.FindFirstCoherentRow(frags, cells, maxY-minY, capitalScanStep, capitalRowOK)
	if !ok {
		logger.Debugf("segovia-capital: no coherent table row found")
		return nil
	}

	var entries []rawEntry
	for y := firstY; y <= maxY; y += capitalRowHeight {
		row := make([]string, 3)
		for i, cell := range cells {
			cell.Y = y
			row[i] = scanner.TextInRect(frags, cell)
		}
		if !capitalRowOK(row) {
			logger.Debugf("segovia-capital: skipping incoherent row at y=%.1f", y)
			continue
		}

		date, ok := capitalDate(row[0], year)
		if !ok {
			continue
		}
		if date.Year != nil {
			year = *date.Year
		}
		day := tripleFromBlock(row[1])
		night := tripleFromBlock(row[2])
		if !day.complete() || !night.complete() {
			logger.Debugf("segovia-capital: incomplete pharmacy block at y=%.1f", y)
			continue
		}
		entries = append(entries, capitalEntries(date, day, night)...)
	}
	return entries
}

// capitalRowOK is the coherence check for one table row: the date cell is a
// single line carrying a Spanish date, and each pharmacy cell is exactly
// three lines whose first names a pharmacy.
func capitalRowOK(cells []string) bool {
	if len(cells) != 3 {
		return false
	}
	dateLines := splitLines(cells[0])
	if len(dateLines) != 1 {
		return false
	}
	folded := spanish.Fold(spanish.NormalizeWhitespace(dateLines[0]))
	if !spanish.LongDatePattern.MatchString(folded) && !spanish.DayMonthPattern.MatchString(folded) {
		return false
	}
	for _, cell := range cells[1:] {
		lines := splitLines(cell)
		if len(lines) != 3 {
			return false
		}
		if !strings.Contains(strings.ToUpper(spanish.Fold(lines[0])), "FARMACIA") {
			return false
		}
	}
	return true
}

// capitalDate parses the date cell, preferring the verbose weekday form and
// falling back to a dd-mmm token. An in-line year overrides the running one.
func capitalDate(cell string, year int) (model.DutyDate, bool) {
	folded := spanish.Fold(spanish.NormalizeWhitespace(cell))

	if m := spanish.LongDatePattern.FindStringSubmatch(folded); m != nil {
		day := atoi(m[2])
		month, ok := spanish.MonthNumberFromName(m[3])
		if ok && day >= 1 {
			if m[4] != "" {
				year = atoi(m[4])
			}
			if day <= spanish.DaysInMonth(month, year) {
				return model.NewDutyDate(day, month, year), true
			}
		}
	}

	if m := spanish.DayMonthPattern.FindStringSubmatch(folded); m != nil {
		day := atoi(m[1])
		month, ok := spanish.MonthNumber(m[2])
		if ok && day >= 1 && day <= spanish.DaysInMonth(month, year) {
			return model.NewDutyDate(day, month, year), true
		}
	}
	return model.DutyDate{}, false
}

// tripleFromBlock reads a three-line pharmacy block: name, address,
// phone plus free-text extra info.
func tripleFromBlock(block string) pharmacyTriple {
	lines := splitLines(block)
	if len(lines) != 3 {
		return pharmacyTriple{}
	}
	t := pharmacyTriple{name: lines[0], address: lines[1]}
	t.phone, t.extra = splitPhoneLine(lines[2])
	return t
}

// parseCapitalLines is the pure-text path: a single pass over the page lines
// with a pending-field accumulator. Merged table cells concatenate the day
// and night blocks onto shared physical lines, so names, addresses and
// phones all arrive in composite form.
func parseCapitalLines(lines []string, year int) []rawEntry {
	var entries []rawEntry
	var pending capitalPending

	for _, line := range lines {
		folded := spanish.Fold(spanish.NormalizeWhitespace(line))

		if m := spanish.LongDatePattern.FindStringSubmatch(folded); m != nil {
			if pending.date != nil && !pending.readyToFlush() {
				logger.Debugf("segovia-capital: discarding incomplete record for %d-%s", pending.date.Day, pending.date.Month)
			}
			if m[4] != "" {
				year = atoi(m[4])
			}
			if month, ok := spanish.MonthNumberFromName(m[3]); ok {
				d := model.NewDutyDate(atoi(m[2]), month, year)
				pending = capitalPending{date: &d}
			}
			continue
		}

		upper := strings.ToUpper(folded)
		switch {
		case capitalCompositeName.MatchString(line):
			m := capitalCompositeName.FindStringSubmatch(line)
			pending.day.name = m[1]
			pending.night.name = m[2]

		case strings.Contains(upper, "FARMACIA"):
			if pending.day.name == "" {
				pending.day.name = strings.TrimSpace(line)
			} else {
				pending.night.name = strings.TrimSpace(line)
			}

		case capitalAddressAnchor.MatchString(line):
			first, second := splitCompositeAddress(line)
			if pending.day.address == "" {
				pending.day.address = first
				if second != "" {
					pending.night.address = second
				}
			} else {
				pending.night.address = first
			}

		case capitalPhone.MatchString(line):
			phones := capitalPhone.FindAllString(line, -1)
			leftover := strings.TrimSpace(capitalPhone.ReplaceAllString(line, ""))
			for _, ph := range phones {
				if pending.day.phone == "" {
					pending.day.phone = ph
					pending.day.extra = leftover
				} else if pending.night.phone == "" {
					pending.night.phone = ph
					pending.night.extra = leftover
				}
			}

		default:
			logger.Debugf("segovia-capital: skipping unclassified line %q", line)
		}

		if pending.readyToFlush() {
			entries = append(entries, capitalEntries(*pending.date, pending.day, pending.night)...)
			pending = capitalPending{}
		}
	}
	return entries
}

// splitCompositeAddress splits a line carrying two concatenated addresses at
// the second address anchor. Returns the line unsplit when only one anchor
// is present.
func splitCompositeAddress(line string) (string, string) {
	locs := capitalAddressAnchor.FindAllStringIndex(line, -1)
	if len(locs) < 2 {
		return strings.TrimSpace(line), ""
	}
	cut := locs[1][0]
	return strings.TrimSpace(line[:cut]), strings.TrimSpace(line[cut:])
}

// splitPhoneLine separates the phone number from trailing free-text info.
func splitPhoneLine(line string) (string, string) {
	phone := capitalPhone.FindString(line)
	extra := strings.TrimSpace(capitalPhone.ReplaceAllString(line, ""))
	return phone, extra
}

func capitalEntries(date model.DutyDate, day, night pharmacyTriple) []rawEntry {
	return []rawEntry{
		{
			Location:   model.LocationSegoviaCapital,
			Date:       date,
			Span:       model.SpanDayCapital,
			Pharmacies: []model.Pharmacy{day.pharmacy()},
		},
		{
			Location:   model.LocationSegoviaCapital,
			Date:       date,
			Span:       model.SpanNightCapital,
			Pharmacies: []model.Pharmacy{night.pharmacy()},
		},
	}
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package scanner recovers text confined to rectangular page regions. The
// municipal rosters encode their tables purely through absolute positioning,
// so every column/row strategy is built on these primitives. All functions
// are pure over a fragment slice; malformed geometry yields empty output,
// never an error.
package scanner

import (
	"sort"
	"strings"

	"github.com/farmaguardia/segovia/internal/pdfdoc"
)

// rowTolerance is the Y distance (points) within which fragments are
// considered part of the same physical text line.
const rowTolerance = 2.0

// Rect is a page region in top-down document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) valid() bool {
	return r.Width > 0 && r.Height > 0 && r.X+r.Width > 0 && r.Y+r.Height > 0
}

// contains reports whether a fragment overlaps the region horizontally and
// sits inside it vertically.
func (r Rect) contains(f pdfdoc.Fragment) bool {
	if f.Y < r.Y || f.Y > r.Y+r.Height {
		return false
	}
	right := f.X + f.W
	return f.X < r.X+r.Width && right > r.X
}

// Row is one recovered text row and the document Y it was found at.
type Row struct {
	Y    float64
	Text string
}

// ScanColumn sweeps a window of rowHeight down the region in steps of
// scanIncrement and extracts the text intersecting each window. Results are
// ordered top-to-bottom. Overlapping windows may repeat text; callers
// deduplicate by position or content.
func ScanColumn(frags []pdfdoc.Fragment, region Rect, rowHeight, scanIncrement float64) []Row {
	if !region.valid() || rowHeight <= 0 || scanIncrement <= 0 {
		return nil
	}

	var rows []Row
	for y := region.Y; y < region.Y+region.Height; y += scanIncrement {
		window := Rect{X: region.X, Y: y, Width: region.Width, Height: rowHeight}
		if text := TextInRect(frags, window); text != "" {
			rows = append(rows, Row{Y: y, Text: text})
		}
	}
	return rows
}

// ExtractFullColumn extracts an entire column in a single pass, with physical
// lines separated by newlines. Used where sweeping is unnecessary because row
// boundaries are recoverable by splitting afterwards.
func ExtractFullColumn(frags []pdfdoc.Fragment, region Rect) string {
	if !region.valid() {
		return ""
	}
	return TextInRect(frags, region)
}

// FindFirstCoherentRow scans downward from the Y of the given cell regions,
// in steps of scanIncrement up to searchRange, until validator accepts the
// simultaneously extracted cell texts. Returns the matching Y offset origin
// and true, or 0 and false when no coherent row exists within range; callers
// treat not-found as "no data on this page".
func FindFirstCoherentRow(frags []pdfdoc.Fragment, cells []Rect, searchRange, scanIncrement float64, validator func(cells []string) bool) (float64, bool) {
	if len(cells) == 0 || searchRange <= 0 || scanIncrement <= 0 || validator == nil {
		return 0, false
	}

	for offset := 0.0; offset <= searchRange; offset += scanIncrement {
		texts := make([]string, len(cells))
		for i, cell := range cells {
			shifted := cell
			shifted.Y += offset
			texts[i] = TextInRect(frags, shifted)
		}
		if validator(texts) {
			return cells[0].Y + offset, true
		}
	}
	return 0, false
}

// TextInRect collects the fragments intersecting the region, groups them
// into physical lines by Y proximity and joins them in reading order.
func TextInRect(frags []pdfdoc.Fragment, region Rect) string {
	if !region.valid() {
		return ""
	}

	type line struct {
		y     float64
		parts []pdfdoc.Fragment
	}
	var lines []line

	for _, f := range frags {
		if !region.contains(f) {
			continue
		}
		placed := false
		for i := range lines {
			if abs(lines[i].y-f.Y) < rowTolerance {
				lines[i].parts = append(lines[i].parts, f)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: f.Y, parts: []pdfdoc.Fragment{f}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y < lines[j].y })

	var out []string
	for _, l := range lines {
		sort.SliceStable(l.parts, func(i, j int) bool { return l.parts[i].X < l.parts[j].X })
		var words []string
		for _, p := range l.parts {
			if s := strings.TrimSpace(p.Text); s != "" {
				words = append(words, s)
			}
		}
		if len(words) > 0 {
			out = append(out, strings.Join(words, " "))
		}
	}
	return strings.Join(out, "\n")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaguardia/segovia/internal/pdfdoc"
)

// tablePage builds a small synthetic page: a title row followed by a
// two-column body.
func tablePage() []pdfdoc.Fragment {
	return []pdfdoc.Fragment{
		{X: 50, Y: 30, W: 200, Text: "FARMACIAS DE GUARDIA"},
		{X: 20, Y: 100, W: 60, Text: "01-ene"},
		{X: 150, Y: 100, W: 120, Text: "FARMACIA UNO"},
		{X: 20, Y: 120, W: 60, Text: "02-ene"},
		{X: 150, Y: 120, W: 120, Text: "FARMACIA DOS"},
		{X: 20, Y: 140, W: 60, Text: "03-ene"},
		{X: 150, Y: 140, W: 120, Text: "FARMACIA TRES"},
	}
}

func TestScanColumnOrdersTopToBottom(t *testing.T) {
	rows := ScanColumn(tablePage(), Rect{X: 10, Y: 90, Width: 80, Height: 70}, 15, 20)
	require.Len(t, rows, 3)
	assert.Equal(t, "01-ene", rows[0].Text)
	assert.Equal(t, "02-ene", rows[1].Text)
	assert.Equal(t, "03-ene", rows[2].Text)
	assert.Less(t, rows[0].Y, rows[1].Y)
	assert.Less(t, rows[1].Y, rows[2].Y)
}

func TestScanColumnOverlappingWindowsRepeat(t *testing.T) {
	// A step smaller than the window height re-reads rows; callers dedupe.
	rows := ScanColumn(tablePage(), Rect{X: 10, Y: 90, Width: 80, Height: 60}, 25, 10)
	repeats := 0
	for _, r := range rows {
		if strings.Contains(r.Text, "02-ene") {
			repeats++
		}
	}
	assert.GreaterOrEqual(t, repeats, 2)
}

func TestScanColumnMalformedGeometry(t *testing.T) {
	frags := tablePage()
	assert.Nil(t, ScanColumn(frags, Rect{X: 10, Y: 0, Width: 0, Height: 100}, 10, 10))
	assert.Nil(t, ScanColumn(frags, Rect{X: 10, Y: 0, Width: 100, Height: -5}, 10, 10))
	assert.Nil(t, ScanColumn(frags, Rect{X: 10, Y: 0, Width: 100, Height: 100}, 0, 10))
	assert.Nil(t, ScanColumn(nil, Rect{X: 10, Y: 0, Width: 100, Height: 100}, 10, 10))
}

func TestExtractFullColumn(t *testing.T) {
	got := ExtractFullColumn(tablePage(), Rect{X: 140, Y: 90, Width: 150, Height: 60})
	assert.Equal(t, "FARMACIA UNO\nFARMACIA DOS\nFARMACIA TRES", got)

	assert.Empty(t, ExtractFullColumn(tablePage(), Rect{X: 500, Y: 0, Width: 50, Height: 200}))
	assert.Empty(t, ExtractFullColumn(tablePage(), Rect{X: 140, Y: 90, Width: 0, Height: 60}))
}

func TestTextInRectJoinsReadingOrder(t *testing.T) {
	frags := []pdfdoc.Fragment{
		{X: 120, Y: 50, W: 40, Text: "mundo"},
		{X: 60, Y: 50.5, W: 40, Text: "hola"},
		{X: 60, Y: 70, W: 40, Text: "segunda"},
	}
	got := TextInRect(frags, Rect{X: 0, Y: 0, Width: 300, Height: 100})
	assert.Equal(t, "hola mundo\nsegunda", got)
}

func TestFindFirstCoherentRowSkipsTitle(t *testing.T) {
	cells := []Rect{
		{X: 10, Y: 20, Width: 80, Height: 15},
		{X: 140, Y: 20, Width: 150, Height: 15},
	}
	y, ok := FindFirstCoherentRow(tablePage(), cells, 200, 5, func(texts []string) bool {
		return texts[0] == "01-ene" && texts[1] == "FARMACIA UNO"
	})
	require.True(t, ok)
	assert.InDelta(t, 100, y, 15, "first coherent row should be near the first body line, past the title")
	assert.Greater(t, y, 30.0)
}

func TestFindFirstCoherentRowNotFound(t *testing.T) {
	cells := []Rect{{X: 10, Y: 20, Width: 80, Height: 15}}
	_, ok := FindFirstCoherentRow(tablePage(), cells, 200, 5, func(texts []string) bool { return false })
	assert.False(t, ok)

	_, ok = FindFirstCoherentRow(tablePage(), nil, 200, 5, func(texts []string) bool { return true })
	assert.False(t, ok)
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package yearguess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedResolver() *Resolver {
	return NewResolverAt(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	})
}

func TestURLYearRightMostWins(t *testing.T) {
	res := fixedResolver().Resolve("", "https://cofsegovia.com/2026/01/RURALES-2025.pdf")
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, SourceURL, res.Source)
	assert.True(t, res.Valid)
}

func TestURLOutranksText(t *testing.T) {
	res := fixedResolver().Resolve("CALENDARIO DE GUARDIAS 2024", "https://cofsegovia.com/guardias-2025.pdf")
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, SourceURL, res.Source)
}

func TestTextYear(t *testing.T) {
	res := fixedResolver().Resolve("FARMACIAS DE GUARDIA 2025", "")
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, SourceText, res.Source)
	assert.True(t, res.Valid)
}

func TestTextYearSpanTakesFirst(t *testing.T) {
	res := fixedResolver().Resolve("TEMPORADA 2024-2025", "")
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, SourceText, res.Source)
}

func TestTolerantYearPattern(t *testing.T) {
	for _, corrupted := range []string{"GUARDIAS 2.025", "GUARDIAS 2 0 2 5"} {
		res := fixedResolver().Resolve(corrupted, "")
		assert.Equal(t, 2025, res.Year, "input %q", corrupted)
		assert.Equal(t, SourceText, res.Source)
	}
}

func TestOutOfDriftCandidateFallsThrough(t *testing.T) {
	// 2030 is a valid token but too far from the current year (2025); with
	// no other signal the resolver falls back to the clock.
	res := fixedResolver().Resolve("GUARDIAS 2030", "")
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, SourceFallback, res.Source)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Warning)
}

func TestOutOfDriftURLFallsThroughToText(t *testing.T) {
	res := fixedResolver().Resolve("GUARDIAS 2024", "https://cofsegovia.com/2035/guardias.pdf")
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, SourceText, res.Source)
}

func TestFallbackToCurrentYear(t *testing.T) {
	res := fixedResolver().Resolve("sin pista alguna", "")
	assert.Equal(t, 2025, res.Year)
	assert.Equal(t, SourceFallback, res.Source)
	assert.False(t, res.Valid)
}

func TestDecemberRollover(t *testing.T) {
	text := "GUARDIAS 2025\n01-dic FARMACIA UNO\n02-dic FARMACIA DOS"
	res := fixedResolver().Resolve(text, "")
	assert.Equal(t, 2024, res.Year, "printed year labels the end of a season starting in December")
	assert.Contains(t, res.Warning, "December")
}

func TestDecemberRolloverAppliesToURLSignal(t *testing.T) {
	res := fixedResolver().Resolve("01-dic FARMACIA UNO", "https://cofsegovia.com/guardias-2025.pdf")
	assert.Equal(t, 2024, res.Year)
	assert.Equal(t, SourceURL, res.Source)
}

func TestDecemberTokenBeyondHeadWindowIgnored(t *testing.T) {
	padding := make([]byte, decemberHeadWindow)
	for i := range padding {
		padding[i] = 'x'
	}
	text := "GUARDIAS 2025 " + string(padding) + " 01-dic"
	res := fixedResolver().Resolve(text, "")
	assert.Equal(t, 2025, res.Year)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := fixedResolver()
	text := "TEMPORADA 2024-2025\n01-dic"
	url := "https://cofsegovia.com/2026/01/RURALES-2025.pdf"
	first := r.Resolve(text, url)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Resolve(text, url))
	}
}

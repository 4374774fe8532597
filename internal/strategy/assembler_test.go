// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaguardia/segovia/internal/model"
)

func fullDayEntry(loc model.DutyLocation, day, month, year int, name string) rawEntry {
	return rawEntry{
		Location:   loc,
		Date:       model.NewDutyDate(day, month, year),
		Span:       model.SpanFullDay,
		Pharmacies: []model.Pharmacy{{Name: name}},
	}
}

func TestAssembleSortsChronologically(t *testing.T) {
	entries := []rawEntry{
		fullDayEntry(model.LocationCuellar, 3, 2, 2025, "B"),
		fullDayEntry(model.LocationCuellar, 28, 12, 2024, "A"),
		fullDayEntry(model.LocationCuellar, 1, 1, 2025, "C"),
	}
	out := assemble(entries, 2025)

	schedules := out[model.LocationCuellar]
	require.Len(t, schedules, 3)
	assert.Equal(t, 28, schedules[0].Date.Day)
	assert.Equal(t, 1, schedules[1].Date.Day)
	assert.Equal(t, 3, schedules[2].Date.Day)
	for i := 1; i < len(schedules); i++ {
		assert.Less(t, schedules[i-1].Date.SortKey(2025), schedules[i].Date.SortKey(2025))
	}
}

func TestAssembleDeduplicatesFirstWins(t *testing.T) {
	entries := []rawEntry{
		fullDayEntry(model.LocationCuellar, 5, 5, 2025, "Primera"),
		fullDayEntry(model.LocationCuellar, 5, 5, 2025, "Segunda"),
	}
	out := assemble(entries, 2025)

	schedules := out[model.LocationCuellar]
	require.Len(t, schedules, 1)
	assert.Equal(t, "Primera", schedules[0].Shifts[model.SpanFullDay.ID][0].Name)
}

func TestAssembleMergesShiftsOfSameDate(t *testing.T) {
	date := model.NewDutyDate(13, 1, 2025)
	entries := []rawEntry{
		{Location: model.LocationSegoviaCapital, Date: date, Span: model.SpanDayCapital, Pharmacies: []model.Pharmacy{{Name: "Día"}}},
		{Location: model.LocationSegoviaCapital, Date: date, Span: model.SpanNightCapital, Pharmacies: []model.Pharmacy{{Name: "Noche"}}},
	}
	out := assemble(entries, 2025)

	schedules := out[model.LocationSegoviaCapital]
	require.Len(t, schedules, 1)
	assert.Len(t, schedules[0].Shifts, 2)
	assert.Equal(t, "Día", schedules[0].OnDuty(model.SpanDayCapital.ID)[0].Name)
	assert.Equal(t, "Noche", schedules[0].OnDuty(model.SpanNightCapital.ID)[0].Name)
}

func TestAssembleGroupsByLocation(t *testing.T) {
	entries := []rawEntry{
		fullDayEntry(model.LocationCantalejo, 1, 7, 2025, "A"),
		fullDayEntry(model.LocationRiaza, 1, 7, 2025, "B"),
	}
	out := assemble(entries, 2025)
	assert.Len(t, out, 2)
	assert.Len(t, out[model.LocationCantalejo], 1)
	assert.Len(t, out[model.LocationRiaza], 1)
}

func TestAssembleNilYearSortsUnderFallback(t *testing.T) {
	partial := rawEntry{
		Location:   model.LocationCuellar,
		Date:       model.NewPartialDutyDate(15, 6),
		Span:       model.SpanFullDay,
		Pharmacies: []model.Pharmacy{{Name: "Sin año"}},
	}
	entries := []rawEntry{
		fullDayEntry(model.LocationCuellar, 20, 6, 2025, "Con año"),
		partial,
	}
	out := assemble(entries, 2025)

	schedules := out[model.LocationCuellar]
	require.Len(t, schedules, 2)
	assert.Equal(t, 15, schedules[0].Date.Day, "nil-year entry sorts under the fallback year")
}

func TestAssembleSkipsEmptyEntries(t *testing.T) {
	entries := []rawEntry{
		{Location: model.LocationCuellar, Date: model.NewDutyDate(1, 8, 2025), Span: model.SpanFullDay},
		{Location: model.LocationCuellar, Span: model.SpanFullDay, Pharmacies: []model.Pharmacy{{Name: "X"}}},
	}
	out := assemble(entries, 2025)
	assert.Empty(t, out[model.LocationCuellar])
}

func TestAssembleMultiplePharmaciesPerSpan(t *testing.T) {
	// Cantalejo publishes both candidate pharmacies for every date.
	entries := []rawEntry{
		{
			Location:   model.LocationCantalejo,
			Date:       model.NewDutyDate(10, 8, 2025),
			Span:       model.SpanFullDay,
			Pharmacies: ZonePharmacies(model.LocationCantalejo),
		},
	}
	out := assemble(entries, 2025)

	schedules := out[model.LocationCantalejo]
	require.Len(t, schedules, 1)
	assert.Len(t, schedules[0].OnDuty(model.SpanFullDay.ID), 2)
}

func TestAssembleDeterministic(t *testing.T) {
	entries := []rawEntry{
		fullDayEntry(model.LocationCuellar, 3, 2, 2025, "B"),
		fullDayEntry(model.LocationCuellar, 1, 1, 2025, "C"),
		fullDayEntry(model.LocationElEspinar, 4, 2, 2025, "D"),
	}
	first := assemble(entries, 2025)
	second := assemble(entries, 2025)
	assert.Equal(t, first, second)
}

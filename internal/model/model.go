// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch

// Package model holds the parse-time entities produced by the extraction
// pipeline. The JSON shape of these types is a persisted-format contract
// with the caching collaborator: any change requires bumping CacheVersion.
package model

import (
	"time"

	"github.com/farmaguardia/segovia/internal/spanish"
)

// CacheVersion identifies the serialized schedule schema. Downstream caches
// keyed on an older version must be discarded.
const CacheVersion = 3

// PhoneNotAvailable is the placeholder used when a pharmacy has no
// published phone number.
const PhoneNotAvailable = "No disponible"

// DutyLocation identifies a geographic area with its own duty roster.
type DutyLocation string

const (
	LocationCuellar        DutyLocation = "cuellar"
	LocationElEspinar      DutyLocation = "el-espinar"
	LocationSegoviaCapital DutyLocation = "segovia-capital"
	LocationSegoviaRural   DutyLocation = "segovia-rural"

	// Segovia Rural health zones, each with an independent roster column.
	LocationCarbonero   DutyLocation = "carbonero"
	LocationCantalejo   DutyLocation = "cantalejo"
	LocationRiaza       DutyLocation = "riaza"
	LocationSepulveda   DutyLocation = "sepulveda"
	LocationVillacastin DutyLocation = "villacastin"
	LocationNavas       DutyLocation = "navas"
)

// DutyDate is a calendar date as printed on a roster. Year is nil only
// transiently, while a page is still being parsed; once the year is known
// the weekday is derived from the proleptic Gregorian calendar and the
// value is never mutated again.
type DutyDate struct {
	DayOfWeek string `json:"dayOfWeek"`
	Day       int    `json:"day"`
	Month     string `json:"month"`
	Year      *int   `json:"year"`
}

// NewDutyDate builds a fully resolved date for the given day, month number
// and year, deriving the Spanish weekday name.
func NewDutyDate(day, month, year int) DutyDate {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	y := year
	return DutyDate{
		DayOfWeek: spanish.WeekdayName(t.Weekday()),
		Day:       day,
		Month:     spanish.MonthName(month),
		Year:      &y,
	}
}

// NewPartialDutyDate builds a date whose year is still unknown. The weekday
// is left empty; it cannot be derived without a year.
func NewPartialDutyDate(day, month int) DutyDate {
	return DutyDate{
		Day:   day,
		Month: spanish.MonthName(month),
	}
}

// MonthNumber returns 1..12, or 0 if the month name is unknown.
func (d DutyDate) MonthNumber() int {
	n, ok := spanish.MonthNumberFromName(d.Month)
	if !ok {
		return 0
	}
	return n
}

// SortKey produces a totally ordered integer key (year, month, day).
// Dates with a nil year use fallbackYear.
func (d DutyDate) SortKey(fallbackYear int) int {
	year := fallbackYear
	if d.Year != nil {
		year = *d.Year
	}
	return year*10000 + d.MonthNumber()*100 + d.Day
}

// SameDay reports whether two dates name the same calendar day. Nil years
// compare equal to each other only.
func (d DutyDate) SameDay(o DutyDate) bool {
	if d.Day != o.Day || d.Month != o.Month {
		return false
	}
	if (d.Year == nil) != (o.Year == nil) {
		return false
	}
	return d.Year == nil || *d.Year == *o.Year
}

// Pharmacy is an immutable identity record. Equality is structural.
type Pharmacy struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// FallbackPharmacy builds the synthetic record used when a PDF key is not
// present in the static per-region table.
func FallbackPharmacy(rawKey string) Pharmacy {
	return Pharmacy{
		Name:    rawKey,
		Address: "Dirección no disponible",
		Phone:   PhoneNotAvailable,
	}
}

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DutyTimeSpan is a named shift window. SpansMidnight marks windows that
// run into the next calendar day.
type DutyTimeSpan struct {
	ID            string    `json:"id"`
	Start         ClockTime `json:"start"`
	End           ClockTime `json:"end"`
	SpansMidnight bool      `json:"spansMidnight"`
}

// The fixed shift enumeration. Rosters outside the capital publish a single
// round-the-clock shift; the capital splits day and night.
var (
	SpanFullDay = DutyTimeSpan{
		ID:    "full-day",
		Start: ClockTime{0, 0},
		End:   ClockTime{23, 59},
	}
	SpanDayCapital = DutyTimeSpan{
		ID:    "day-capital",
		Start: ClockTime{10, 15},
		End:   ClockTime{22, 0},
	}
	SpanNightCapital = DutyTimeSpan{
		ID:            "night-capital",
		Start:         ClockTime{22, 0},
		End:           ClockTime{10, 15},
		SpansMidnight: true,
	}
)

// PharmacySchedule is one resolved roster entry: a date plus the pharmacies
// on duty per shift span. Each span ID appears at most once; the pharmacy
// list is ordered and may hold more than one entry (zones with an unresolved
// rotation publish every candidate).
type PharmacySchedule struct {
	Date   DutyDate              `json:"date"`
	Shifts map[string][]Pharmacy `json:"shifts"`
}

// OnDuty returns the pharmacies covering the given span ID. A schedule that
// only carries the full-day span answers day and night queries alike.
func (s PharmacySchedule) OnDuty(spanID string) []Pharmacy {
	if ph, ok := s.Shifts[spanID]; ok {
		return ph
	}
	if ph, ok := s.Shifts[SpanFullDay.ID]; ok {
		return ph
	}
	return nil
}

// ScheduleMap is the pipeline's canonical output: per duty location, the
// chronologically ordered roster.
type ScheduleMap map[DutyLocation][]PharmacySchedule

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"sort"

	"github.com/farmaguardia/segovia/internal/logger"
	"github.com/farmaguardia/segovia/internal/model"
)

// ParsingStrategy turns one municipality's roster PDF into dated
// pharmacy-shift assignments. The error is non-nil only for document-fatal
// faults (unopenable or empty PDF); per-line and per-page faults are
// absorbed into producing less output. Strategy values hold no mutable
// state and are safe for concurrent use across documents.
type ParsingStrategy interface {
	// ParseSchedules parses raw PDF bytes. sourceURL is optional and feeds
	// only the year resolver's URL signal; pass "" when unknown.
	ParseSchedules(pdfBytes []byte, sourceURL string) (model.ScheduleMap, error)
}

// registry maps a duty location to the strategy that understands its layout.
var registry = map[model.DutyLocation]ParsingStrategy{
	model.LocationCuellar:        NewCuellar(),
	model.LocationElEspinar:      NewElEspinar(),
	model.LocationSegoviaCapital: NewSegoviaCapital(),
	model.LocationSegoviaRural:   NewSegoviaRural(),
}

// ForLocation returns the strategy registered for a location.
func ForLocation(loc model.DutyLocation) (ParsingStrategy, bool) {
	s, ok := registry[loc]
	return s, ok
}

// Locations lists the registered duty locations in stable order.
func Locations() []model.DutyLocation {
	locs := make([]model.DutyLocation, 0, len(registry))
	for loc := range registry {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}

// ParseRegion routes a PDF to the strategy for the given location and
// absorbs document-fatal faults into an empty result, so callers always
// receive a usable (possibly empty) schedule map.
func ParseRegion(loc model.DutyLocation, pdfBytes []byte, sourceURL string) model.ScheduleMap {
	strat, ok := registry[loc]
	if !ok {
		logger.Warnf("no parsing strategy registered for location %q", loc)
		return model.ScheduleMap{}
	}

	schedules, err := strat.ParseSchedules(pdfBytes, sourceURL)
	if err != nil {
		logger.Warnf("parse failed for %q, treating as no data: %v", loc, err)
		return model.ScheduleMap{}
	}

	total := 0
	for _, list := range schedules {
		total += len(list)
	}
	logger.Printf("parsed %d schedules across %d locations for %q", total, len(schedules), loc)
	return schedules
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"sort"

	"github.com/farmaguardia/segovia/internal/logger"
	"github.com/farmaguardia/segovia/internal/model"
)

// rawEntry is the intermediate (date, shift, pharmacies) tuple a strategy
// emits per recognized roster row, before assembly.
type rawEntry struct {
	Location   model.DutyLocation
	Date       model.DutyDate
	Span       model.DutyTimeSpan
	Pharmacies []model.Pharmacy
}

// assemble turns raw entries into the final per-location, date-ordered
// schedule map. Identical (date, shift) entries from re-scanned overlapping
// rows are deduplicated first-wins; entries whose year is still unresolved
// sort under fallbackYear. Output order is total and deterministic for a
// fixed input.
func assemble(entries []rawEntry, fallbackYear int) model.ScheduleMap {
	type locKey struct {
		loc model.DutyLocation
		day int
	}
	byDate := make(map[locKey]*model.PharmacySchedule)
	order := make(map[model.DutyLocation][]*model.PharmacySchedule)

	for _, e := range entries {
		if len(e.Pharmacies) == 0 || e.Date.Day == 0 {
			continue
		}
		key := locKey{loc: e.Location, day: e.Date.SortKey(fallbackYear)}

		sched, ok := byDate[key]
		if !ok {
			sched = &model.PharmacySchedule{
				Date:   e.Date,
				Shifts: make(map[string][]model.Pharmacy),
			}
			byDate[key] = sched
			order[e.Location] = append(order[e.Location], sched)
		}

		if _, dup := sched.Shifts[e.Span.ID]; dup {
			logger.Debugf("dropping duplicate %s entry for %s %d-%s", e.Span.ID, e.Location, e.Date.Day, e.Date.Month)
			continue
		}
		sched.Shifts[e.Span.ID] = e.Pharmacies
	}

	out := make(model.ScheduleMap, len(order))
	for loc, list := range order {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date.SortKey(fallbackYear) < list[j].Date.SortKey(fallbackYear)
		})
		schedules := make([]model.PharmacySchedule, len(list))
		for i, s := range list {
			schedules[i] = *s
		}
		out[loc] = schedules
	}
	return out
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"strings"

	"github.com/farmaguardia/segovia/internal/logger"
	"github.com/farmaguardia/segovia/internal/model"
	"github.com/farmaguardia/segovia/internal/pdfdoc"
	"github.com/farmaguardia/segovia/internal/scanner"
	"github.com/farmaguardia/segovia/internal/spanish"
	"github.com/farmaguardia/segovia/internal/yearguess"
)

// ruralDateColumnRatio is the share of the content width taken by the shared
// date column; the remainder splits evenly across the six zone columns.
const (
	ruralDateColumnRatio = 0.16
	ruralRowHeight       = 14.0
	ruralScanStep        = 4.0
)

// ruralZones lists the health zones in left-to-right column order, with the
// header text each column carries on the roster.
var ruralZones = []struct {
	Location model.DutyLocation
	Header   string
}{
	{model.LocationCarbonero, "CARBONERO"},
	{model.LocationCantalejo, "CANTALEJO"},
	{model.LocationRiaza, "RIAZA"},
	{model.LocationSepulveda, "SEPULVEDA"},
	{model.LocationVillacastin, "VILLACASTIN"},
	{model.LocationNavas, "NAVAS"},
}

// ruralZonePharmacies maps each zone to its roster pharmacies. Cantalejo
// deliberately lists both candidates: the real rotation between them is not
// published, so every Cantalejo date carries both (a documented product
// decision, surfaced as a disclaimer upstream).
var ruralZonePharmacies = map[model.DutyLocation][]model.Pharmacy{
	model.LocationCarbonero: {
		{Name: "Farmacia Carbonero el Mayor", Address: "Plaza Mayor, 8, Carbonero el Mayor", Phone: "921 56 02 27"},
	},
	model.LocationCantalejo: {
		{Name: "Farmacia Teresa Barrio", Address: "C/ Frontón, 2, Cantalejo", Phone: "921 52 00 27"},
		{Name: "Farmacia Carmen de Frutos", Address: "Plaza de España, 12, Cantalejo", Phone: "921 52 04 51"},
	},
	model.LocationRiaza: {
		{Name: "Farmacia Riaza", Address: "Plaza Mayor, 14, Riaza", Phone: "921 55 00 14"},
	},
	model.LocationSepulveda: {
		{Name: "Farmacia Sepúlveda", Address: "Plaza del Trigo, 5, Sepúlveda", Phone: "921 54 00 18"},
	},
	model.LocationVillacastin: {
		{Name: "Farmacia Villacastín", Address: "C/ Iglesia, 1, Villacastín", Phone: model.PhoneNotAvailable},
	},
	model.LocationNavas: {
		{Name: "Farmacia Navas de Oro", Address: "C/ Real, 20, Navas de Oro", Phone: "921 59 17 25"},
	},
}

// ZonePharmacies returns the roster pharmacies of a rural health zone.
// Cantalejo returns both candidates; see ruralZonePharmacies.
func ZonePharmacies(loc model.DutyLocation) []model.Pharmacy {
	return ruralZonePharmacies[loc]
}

// SegoviaRural recognizes the rural roster's column layout: one shared date
// column plus one column per health zone, recovered geometrically.
//
// TODO: row-to-schedule assembly. Column recognition and the tabulated dump
// below work, but mapping each recovered zone cell to a concrete pharmacy
// rotation needs the college to confirm how multi-town cells rotate; until
// then this strategy returns no schedules.
type SegoviaRural struct{}

// NewSegoviaRural builds the Segovia rural strategy.
func NewSegoviaRural() *SegoviaRural {
	return &SegoviaRural{}
}

// ParseSchedules implements ParsingStrategy.
func (s *SegoviaRural) ParseSchedules(pdfBytes []byte, sourceURL string) (model.ScheduleMap, error) {
	doc, err := pdfdoc.Open(pdfBytes)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	firstText, err := doc.PageText(0)
	if err != nil {
		logger.Warnf("segovia-rural: no text on first page: %v", err)
	}
	res := yearguess.NewResolver().Resolve(firstText, sourceURL)
	if res.Warning != "" {
		logger.Warnf("segovia-rural: %s", res.Warning)
	}
	logger.Debugf("segovia-rural: operating year %d (source %s)", res.Year, res.Source)

	for n := 0; n < doc.NumPages(); n++ {
		tabulateRuralPage(doc.PageFragments(n), n)
	}

	return model.ScheduleMap{}, nil
}

// tabulateRuralPage recovers every column of one page and logs the result,
// which is what operators currently use to eyeball the rural roster.
func tabulateRuralPage(frags []pdfdoc.Fragment, page int) {
	if len(frags) == 0 {
		logger.Debugf("segovia-rural: page %d has no positioned text", page)
		return
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
	dateW := contentW * ruralDateColumnRatio
	zoneW := (contentW - dateW) / float64(len(ruralZones))
	height := maxY - minY

	dateCell := scanner.Rect{X: minX, Y: minY, Width: dateW, Height: ruralRowHeight}
	firstY, ok := scanner.FindFirstCoherentRow(frags, []scanner.Rect{dateCell}, height, ruralScanStep, func(cells []string) bool {
		folded := spanish.Fold(spanish.NormalizeWhitespace(cells[0]))
		return spanish.DayMonthPattern.MatchString(folded)
	})
	if !ok {
		logger.Debugf("segovia-rural: page %d has no coherent date row", page)
		return
	}

	dateColumn := scanner.Rect{X: minX, Y: firstY, Width: dateW, Height: maxY - firstY + ruralRowHeight}
	logger.Debugf("segovia-rural: page %d dates:\n%s", page, scanner.ExtractFullColumn(frags, dateColumn))

	for i, zone := range ruralZones {
		region := scanner.Rect{
			X:      minX + dateW + float64(i)*zoneW,
			Y:      firstY,
			Width:  zoneW,
			Height: maxY - firstY + ruralRowHeight,
		}
		column := scanner.ExtractFullColumn(frags, region)
		known := len(ZonePharmacies(zone.Location))
		header := strings.ToUpper(spanish.Fold(scanner.TextInRect(frags, scanner.Rect{X: region.X, Y: minY, Width: zoneW, Height: firstY - minY})))
		if !strings.Contains(header, zone.Header) {
			logger.Debugf("segovia-rural: page %d column %d header %q does not mention %s", page, i, header, zone.Header)
		}
		logger.Debugf("segovia-rural: page %d zone %s (%d roster pharmacies):\n%s", page, zone.Location, known, column)
	}
}

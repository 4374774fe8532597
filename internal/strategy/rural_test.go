// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaguardia/segovia/internal/model"
	"github.com/farmaguardia/segovia/internal/pdfdoc"
)

func TestZonePharmaciesCantalejoListsBothCandidates(t *testing.T) {
	// The rotation between Cantalejo's two pharmacies is not published, so
	// both are deliberately carried for every date.
	pharmacies := ZonePharmacies(model.LocationCantalejo)
	require.Len(t, pharmacies, 2)
	assert.NotEqual(t, pharmacies[0].Name, pharmacies[1].Name)
}

func TestZonePharmaciesSingleCandidateZones(t *testing.T) {
	for _, loc := range []model.DutyLocation{
		model.LocationCarbonero,
		model.LocationRiaza,
		model.LocationSepulveda,
		model.LocationVillacastin,
		model.LocationNavas,
	} {
		assert.Len(t, ZonePharmacies(loc), 1, "zone %s", loc)
	}
	assert.Nil(t, ZonePharmacies(model.DutyLocation("desconocida")))
}

func TestTabulateRuralPageDoesNotPanic(t *testing.T) {
	tabulateRuralPage(nil, 0)

	frags := []pdfdoc.Fragment{
		{X: 20, Y: 40, W: 60, Text: "ZONAS"},
		{X: 20, Y: 100, W: 40, Text: "01-ene"},
		{X: 120, Y: 100, W: 60, Text: "NAVALMANZANO"},
	}
	tabulateRuralPage(frags, 0)
}

func TestRuralZoneOrdering(t *testing.T) {
	require.Len(t, ruralZones, 6)
	assert.Equal(t, model.LocationCarbonero, ruralZones[0].Location)
	assert.Equal(t, model.LocationNavas, ruralZones[5].Location)
}

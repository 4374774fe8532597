// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmaguardia/segovia/internal/model"
)

func TestForLocationKnownRegions(t *testing.T) {
	for _, loc := range []model.DutyLocation{
		model.LocationCuellar,
		model.LocationElEspinar,
		model.LocationSegoviaCapital,
		model.LocationSegoviaRural,
	} {
		s, ok := ForLocation(loc)
		require.True(t, ok, "missing strategy for %s", loc)
		assert.NotNil(t, s)
	}

	_, ok := ForLocation(model.DutyLocation("atlantis"))
	assert.False(t, ok)
}

func TestLocationsSortedAndComplete(t *testing.T) {
	locs := Locations()
	require.Len(t, locs, 4)
	for i := 1; i < len(locs); i++ {
		assert.Less(t, locs[i-1], locs[i])
	}
}

func TestParseRegionAbsorbsDocumentFatalFaults(t *testing.T) {
	// A zero-length PDF is document-fatal; the dispatcher surfaces it as
	// "no data", never as an error or panic.
	out := ParseRegion(model.LocationCuellar, nil, "")
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = ParseRegion(model.DutyLocation("atlantis"), []byte("%PDF-1.4"), "")
	assert.Empty(t, out)
}

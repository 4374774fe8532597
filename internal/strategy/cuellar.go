// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"fmt"
	"strings"

	"github.com/farmaguardia/segovia/internal/model"
	"github.com/farmaguardia/segovia/internal/spanish"
)

// cuellarPharmacies maps the street fragment printed on the roster to the
// pharmacy identity. The PDFs never print full pharmacy names for Cuéllar,
// only the duty address.
var cuellarPharmacies = map[string]model.Pharmacy{
	"C.J. CELA": {
		Name:    "Farmacia Fernando Redondo",
		Address: "Av. Camilo José Cela, 10, Cuéllar",
		Phone:   "921 14 01 27",
	},
	"SANTA MARINA": {
		Name:    "Farmacia César Cabrerizo",
		Address: "C/ Santa Marina, 5, Cuéllar",
		Phone:   "921 14 05 17",
	},
	"RESINA": {
		Name:    "Farmacia Alberto Redondo",
		Address: "C/ Resina, 14, Cuéllar",
		Phone:   "921 14 21 72",
	},
	"SAN FRANCISCO": {
		Name:    "Farmacia Sandra Espeja",
		Address: "C/ San Francisco, 30, Cuéllar",
		Phone:   "921 14 00 22",
	},
	"LAS PARRAS": {
		Name:    "Farmacia María Teresa Palomo",
		Address: "C/ Las Parras, 2, Cuéllar",
		Phone:   model.PhoneNotAvailable,
	},
}

// Cuellar parses the Cuéllar roster: row-oriented linear text where lines
// carry dd-mmm dates, a duty address fragment, or both. Cuéllar publishes a
// single round-the-clock shift.
type Cuellar struct {
	rows rowParser
}

// NewCuellar builds the Cuéllar strategy.
func NewCuellar() *Cuellar {
	return &Cuellar{rows: rowParser{
		location:      model.LocationCuellar,
		matchPharmacy: substringLookup(cuellarPharmacies),
		reshape:       reshapeCuellarLegacy,
	}}
}

// ParseSchedules implements ParsingStrategy.
func (c *Cuellar) ParseSchedules(pdfBytes []byte, sourceURL string) (model.ScheduleMap, error) {
	return c.rows.parseDocument(pdfBytes, sourceURL)
}

// reshapeCuellarLegacy rewrites the verbose transition format some seasons
// use around the August→September boundary ("DOMINGO 31 DE AGOSTO Y LUNES 1
// DE SEPTIEMBRE ...") into the common dd-mmm shape, so the ordinary pipeline
// can continue. Lines without a long-form date pass through unchanged.
func reshapeCuellarLegacy(line string) string {
	folded := spanish.Fold(spanish.NormalizeWhitespace(line))
	matches := spanish.LongDatePattern.FindAllStringSubmatchIndex(folded, -1)
	if len(matches) == 0 {
		return line
	}

	var b strings.Builder
	for i, m := range matches {
		day := atoi(folded[m[4]:m[5]])
		month, ok := spanish.MonthNumberFromName(folded[m[6]:m[7]])
		if !ok || day == 0 {
			return line
		}
		if i > 0 {
			b.WriteString(" y ")
		}
		fmt.Fprintf(&b, "%02d-%s", day, spanish.MonthAbbrev(month))
	}

	// Anything after the last date (typically the duty address) is kept.
	if tail := strings.TrimSpace(folded[matches[len(matches)-1][1]:]); tail != "" {
		b.WriteString(" ")
		b.WriteString(tail)
	}
	return b.String()
}

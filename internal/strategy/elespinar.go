// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package strategy

import (
	"github.com/farmaguardia/segovia/internal/model"
)

// elEspinarPharmacies keys on whatever fragment the roster happens to print:
// depending on the document version the same pharmacy appears under its
// street name or under its town. San Rafael is identified by the town
// suffix alone.
var elEspinarPharmacies = map[string]model.Pharmacy{
	"HONTANILLA": {
		Name:    "Farmacia Ana Gómez del Valle",
		Address: "C/ Hontanilla, 6, El Espinar",
		Phone:   "921 18 11 13",
	},
	"MARQUES PERALES": {
		Name:    "Farmacia Mirada Rodríguez",
		Address: "C/ Marqués de Perales, 2, El Espinar",
		Phone:   "921 18 10 11",
	},
	"SAN RAFAEL": {
		Name:    "Farmacia San Rafael",
		Address: "Travesía Alto del León, 3, San Rafael",
		Phone:   "921 17 10 36",
	},
}

// ElEspinar parses the El Espinar roster. The layout is row-oriented like
// Cuéllar's, but pharmacy identity has to be inferred from address fragments
// or the town suffix. Single round-the-clock shift.
type ElEspinar struct {
	rows rowParser
}

// NewElEspinar builds the El Espinar strategy.
func NewElEspinar() *ElEspinar {
	return &ElEspinar{rows: rowParser{
		location:      model.LocationElEspinar,
		matchPharmacy: substringLookup(elEspinarPharmacies),
	}}
}

// ParseSchedules implements ParsingStrategy.
func (e *ElEspinar) ParseSchedules(pdfBytes []byte, sourceURL string) (model.ScheduleMap, error) {
	return e.rows.parseDocument(pdfBytes, sourceURL)
}

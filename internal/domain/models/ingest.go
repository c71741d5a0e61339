package models

import "time"

// RecordWeightRequest is the payload for recording a new weight measurement.
// Timestamp defaults to the server clock when omitted.
type RecordWeightRequest struct {
	WeightKg  float64           `json:"weight_kg" binding:"required,gt=0"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RecordWeightResult is returned after a measurement is stored. Flags carries
// the pre-commit health check outcome so data entry can warn immediately.
type RecordWeightResult struct {
	Record WeightRecord `json:"record"`
	Flags  []HealthFlag `json:"flags"`
}

// SheetImportResult summarizes a spreadsheet import run.
type SheetImportResult struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

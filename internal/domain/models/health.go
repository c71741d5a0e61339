package models

import "time"

// HealthFlagKind identifies the condition a flag reports.
type HealthFlagKind string

const (
	FlagWeightLoss      HealthFlagKind = "weight_loss"
	FlagConsecutiveLoss HealthFlagKind = "consecutive_loss"
)

// Severity grades a health flag, in increasing order of risk.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// HealthFlag reports a detected weight anomaly for an animal. Weight change
// fields are signed; a loss carries negative values.
type HealthFlag struct {
	Kind                HealthFlagKind `json:"kind"`
	Severity            Severity       `json:"severity"`
	AnimalID            string         `json:"animal_id"`
	PreviousWeightKg    float64        `json:"previous_weight_kg"`
	CurrentWeightKg     float64        `json:"current_weight_kg"`
	WeightChangeKg      float64        `json:"weight_change_kg"`
	WeightChangePercent float64        `json:"weight_change_percent"`
	DaysBetween         int            `json:"days_between"`
	Timestamp           time.Time      `json:"timestamp"`
	Message             string         `json:"message"`
}

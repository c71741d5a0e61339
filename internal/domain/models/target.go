package models

import "time"

// TargetProgress reports how close a current weight is to a configured sale
// target. ProgressPercent is clamped to [0, 100] and RemainingKg is never
// negative. When no target is set all fields are neutral and IsReady is false.
type TargetProgress struct {
	CurrentWeightKg float64 `json:"current_weight_kg"`
	TargetWeightKg  float64 `json:"target_weight_kg"`
	ProgressPercent float64 `json:"progress_percent"`
	RemainingKg     float64 `json:"remaining_kg"`
	IsReady         bool    `json:"is_ready"`
}

// RankedAnimal is one entry of a ready-to-sell listing, ordered by progress.
type RankedAnimal struct {
	AnimalID   string         `json:"animal_id"`
	TagNumber  string         `json:"tag_number,omitempty"`
	Species    string         `json:"species,omitempty"`
	GroupID    string         `json:"group_id,omitempty"`
	Progress   TargetProgress `json:"progress"`
	LastWeighed time.Time     `json:"last_weighed"`
}

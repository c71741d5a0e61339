package models

import "time"

// WeeklyGain captures one rolling-week window of a growth report. Closed
// windows always span seven days; the trailing partial window spans the actual
// elapsed days.
type WeeklyGain struct {
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
	WeightStartKg float64   `json:"weight_start_kg"`
	WeightEndKg   float64   `json:"weight_end_kg"`
	GainKg        float64   `json:"gain_kg"`
	ADGKgPerDay   float64   `json:"adg_kg_per_day"`
}

// GrowthReport summarizes an animal's weight history.
type GrowthReport struct {
	AnimalID          string       `json:"animal_id"`
	TotalGainKg       float64      `json:"total_gain_kg"`
	TotalDays         int          `json:"total_days"`
	AvgDailyGainKg    float64      `json:"avg_daily_gain_kg_per_day"`
	FirstWeightKg     float64      `json:"first_weight_kg"`
	FirstDate         time.Time    `json:"first_date"`
	LatestWeightKg    float64      `json:"latest_weight_kg"`
	LatestDate        time.Time    `json:"latest_date"`
	WeeklyGains       []WeeklyGain `json:"weekly_gains"`
	TotalMeasurements int          `json:"total_measurements"`
}

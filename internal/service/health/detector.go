package health

import (
	"fmt"
	"sort"
	"time"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// Severity thresholds as a percentage of the previous weight.
const (
	severeLossPercent   = 5.0
	moderateLossPercent = 2.0
)

// consecutiveLossStreak is the number of strict decreases that triggers the
// consecutive-loss flag (two decreases span three measurements).
const consecutiveLossStreak = 2

// DetectWeightLoss compares a measurement against the preceding one and
// returns a flag when weight was lost. Gains and exact holds return nil.
// The caller stamps AnimalID and Timestamp on the returned flag.
func DetectWeightLoss(currentKg, previousKg float64, daysBetween int) *models.HealthFlag {
	if currentKg >= previousKg {
		return nil
	}

	lossPercent := (previousKg - currentKg) / previousKg * 100

	severity := models.SeverityMinor
	switch {
	case lossPercent > severeLossPercent:
		severity = models.SeveritySevere
	case lossPercent > moderateLossPercent:
		severity = models.SeverityModerate
	}

	return &models.HealthFlag{
		Kind:                models.FlagWeightLoss,
		Severity:            severity,
		PreviousWeightKg:    previousKg,
		CurrentWeightKg:     currentKg,
		WeightChangeKg:      currentKg - previousKg,
		WeightChangePercent: -lossPercent,
		DaysBetween:         daysBetween,
		Message:             fmt.Sprintf("weight dropped from %.1fkg to %.1fkg (%.1f%% loss)", previousKg, currentKg, lossPercent),
	}
}

// DetectConsecutiveLosses reports whether the history contains three
// measurements in a row, each strictly lower than the last. Any non-decrease
// resets the streak. Fewer than three records can never qualify.
func DetectConsecutiveLosses(records []models.WeightRecord) bool {
	if len(records) < 3 {
		return false
	}
	sorted := sortedByTimestamp(records)

	streak := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].WeightKg < sorted[i-1].WeightKg {
			streak++
			if streak >= consecutiveLossStreak {
				return true
			}
		} else {
			streak = 0
		}
	}
	return false
}

// DetectHealthIssues scans a full weight history for risk flags. Every
// consecutive pair showing a loss yields one flag, in chronological order,
// stamped with the later measurement's timestamp. If the history also shows
// consecutive losses, one severe consecutive-loss flag built from the last
// two measurements is appended after the per-pair flags.
func DetectHealthIssues(records []models.WeightRecord) []models.HealthFlag {
	if len(records) < 2 {
		return nil
	}
	sorted := sortedByTimestamp(records)

	var flags []models.HealthFlag
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		days := wholeDays(prev.Timestamp, cur.Timestamp)
		if flag := DetectWeightLoss(cur.WeightKg, prev.WeightKg, days); flag != nil {
			flag.AnimalID = cur.AnimalID
			flag.Timestamp = cur.Timestamp
			flags = append(flags, *flag)
		}
	}

	if DetectConsecutiveLosses(sorted) {
		prev, last := sorted[len(sorted)-2], sorted[len(sorted)-1]
		change := last.WeightKg - prev.WeightKg
		flags = append(flags, models.HealthFlag{
			Kind:                models.FlagConsecutiveLoss,
			Severity:            models.SeveritySevere,
			AnimalID:            last.AnimalID,
			PreviousWeightKg:    prev.WeightKg,
			CurrentWeightKg:     last.WeightKg,
			WeightChangeKg:      change,
			WeightChangePercent: change / prev.WeightKg * 100,
			DaysBetween:         wholeDays(prev.Timestamp, last.Timestamp),
			Timestamp:           last.Timestamp,
			Message:             "multiple consecutive weight losses recorded; animal needs attention",
		})
	}

	return flags
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func sortedByTimestamp(records []models.WeightRecord) []models.WeightRecord {
	sorted := make([]models.WeightRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

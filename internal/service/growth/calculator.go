package growth

import (
	"errors"
	"sort"
	"time"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// ErrNoWeightData is returned when a growth report is requested for an empty
// weight history. A zero-filled report would imply measurements that were
// never taken, so this case surfaces as an error instead of degrading.
var ErrNoWeightData = errors.New("no weight records to report on")

const day = 24 * time.Hour

// WholeDays returns the number of whole days elapsed between from and to,
// truncating any partial day. The week-window logic depends on this exact
// truncation.
func WholeDays(from, to time.Time) int {
	return int(to.Sub(from) / day)
}

// ADG computes average daily gain in kg/day. Returns 0 when days <= 0 so that
// same-day or reversed timestamps never divide by zero.
func ADG(weightStartKg, weightEndKg float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return (weightEndKg - weightStartKg) / float64(days)
}

// TotalGain returns the signed weight difference between the chronologically
// first and last record, or 0 with fewer than two records.
func TotalGain(records []models.WeightRecord) float64 {
	if len(records) < 2 {
		return 0
	}
	sorted := sortedByTimestamp(records)
	return sorted[len(sorted)-1].WeightKg - sorted[0].WeightKg
}

// WeeklyGains splits a weight history into rolling week windows. A window
// starts at a measurement and closes when a later measurement falls 7 or more
// whole days after the window start; the window's end weight is the last
// measurement still inside it, and the triggering measurement opens the next
// window. Closed windows use a fixed 7-day ADG denominator. A trailing window
// spanning at least one whole day is emitted with its actual day span.
// Input order does not matter; fewer than two records yield an empty slice.
func WeeklyGains(records []models.WeightRecord) []models.WeeklyGain {
	if len(records) < 2 {
		return nil
	}
	sorted := sortedByTimestamp(records)

	var gains []models.WeeklyGain
	windowStart := 0
	for i := 1; i < len(sorted); i++ {
		if WholeDays(sorted[windowStart].Timestamp, sorted[i].Timestamp) < 7 {
			continue
		}
		startRec := sorted[windowStart]
		endRec := sorted[i-1]
		gains = append(gains, models.WeeklyGain{
			WeekStart:     startRec.Timestamp,
			WeekEnd:       startRec.Timestamp.Add(6 * day),
			WeightStartKg: startRec.WeightKg,
			WeightEndKg:   endRec.WeightKg,
			GainKg:        endRec.WeightKg - startRec.WeightKg,
			ADGKgPerDay:   ADG(startRec.WeightKg, endRec.WeightKg, 7),
		})
		windowStart = i
	}

	// Trailing partial window, measured over actual elapsed days.
	last := sorted[len(sorted)-1]
	if windowStart < len(sorted)-1 {
		startRec := sorted[windowStart]
		if days := WholeDays(startRec.Timestamp, last.Timestamp); days >= 1 {
			gains = append(gains, models.WeeklyGain{
				WeekStart:     startRec.Timestamp,
				WeekEnd:       startRec.Timestamp.Add(time.Duration(days) * day),
				WeightStartKg: startRec.WeightKg,
				WeightEndKg:   last.WeightKg,
				GainKg:        last.WeightKg - startRec.WeightKg,
				ADGKgPerDay:   ADG(startRec.WeightKg, last.WeightKg, days),
			})
		}
	}

	return gains
}

// Report builds the full growth summary for one animal's weight history.
// Returns ErrNoWeightData for an empty history.
func Report(records []models.WeightRecord) (models.GrowthReport, error) {
	if len(records) == 0 {
		return models.GrowthReport{}, ErrNoWeightData
	}
	sorted := sortedByTimestamp(records)

	first := sorted[0]
	last := sorted[len(sorted)-1]
	totalDays := WholeDays(first.Timestamp, last.Timestamp)

	return models.GrowthReport{
		AnimalID:          first.AnimalID,
		TotalGainKg:       last.WeightKg - first.WeightKg,
		TotalDays:         totalDays,
		AvgDailyGainKg:    ADG(first.WeightKg, last.WeightKg, totalDays),
		FirstWeightKg:     first.WeightKg,
		FirstDate:         first.Timestamp,
		LatestWeightKg:    last.WeightKg,
		LatestDate:        last.Timestamp,
		WeeklyGains:       WeeklyGains(sorted),
		TotalMeasurements: len(sorted),
	}, nil
}

func sortedByTimestamp(records []models.WeightRecord) []models.WeightRecord {
	sorted := make([]models.WeightRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

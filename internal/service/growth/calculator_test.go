package growth

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

var baseDate = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func recordOnDay(day int, weightKg float64) models.WeightRecord {
	return models.WeightRecord{
		AnimalID:  "cow-1",
		Timestamp: baseDate.AddDate(0, 0, day),
		WeightKg:  weightKg,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestADG(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		end      float64
		days     int
		expected float64
	}{
		{"steady gain", 300, 330, 30, 1.0},
		{"loss is negative", 110, 100, 10, -1.0},
		{"zero days guards division", 100, 200, 0, 0},
		{"negative days guards division", 100, 200, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ADG(tt.start, tt.end, tt.days); !almostEqual(got, tt.expected) {
				t.Errorf("ADG(%v, %v, %d) = %v, want %v", tt.start, tt.end, tt.days, got, tt.expected)
			}
		})
	}
}

func TestTotalGain(t *testing.T) {
	increasing := []models.WeightRecord{
		recordOnDay(0, 100),
		recordOnDay(10, 110),
		recordOnDay(20, 125),
	}
	if got := TotalGain(increasing); !almostEqual(got, 25) {
		t.Errorf("expected total gain 25, got %v", got)
	}

	// Input order must not matter.
	shuffled := []models.WeightRecord{increasing[2], increasing[0], increasing[1]}
	if got := TotalGain(shuffled); !almostEqual(got, 25) {
		t.Errorf("expected total gain 25 for unsorted input, got %v", got)
	}

	declining := []models.WeightRecord{recordOnDay(0, 120), recordOnDay(5, 110)}
	if got := TotalGain(declining); !almostEqual(got, -10) {
		t.Errorf("expected negative total gain, got %v", got)
	}

	if got := TotalGain([]models.WeightRecord{recordOnDay(0, 100)}); got != 0 {
		t.Errorf("expected 0 for single record, got %v", got)
	}
	if got := TotalGain(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
}

func TestWeeklyGains_WindowBoundary(t *testing.T) {
	// Day 8 crosses the 7-day threshold, so the window closes with the day-6
	// weight as its end and the day-8 record opens the next window.
	records := []models.WeightRecord{
		recordOnDay(0, 100),
		recordOnDay(6, 110),
		recordOnDay(8, 115),
	}

	gains := WeeklyGains(records)
	if len(gains) != 1 {
		t.Fatalf("expected 1 weekly gain, got %d", len(gains))
	}

	window := gains[0]
	if !almostEqual(window.WeightEndKg, 110) {
		t.Errorf("expected window end weight 110, got %v", window.WeightEndKg)
	}
	if !almostEqual(window.GainKg, 10) {
		t.Errorf("expected window gain 10, got %v", window.GainKg)
	}
	if !almostEqual(window.ADGKgPerDay, ADG(100, 110, 7)) {
		t.Errorf("expected window ADG %v, got %v", ADG(100, 110, 7), window.ADGKgPerDay)
	}
	if !window.WeekStart.Equal(baseDate) {
		t.Errorf("expected window start %v, got %v", baseDate, window.WeekStart)
	}
	if !window.WeekEnd.Equal(baseDate.AddDate(0, 0, 6)) {
		t.Errorf("expected window end %v, got %v", baseDate.AddDate(0, 0, 6), window.WeekEnd)
	}
}

func TestWeeklyGains_TrailingPartialWeek(t *testing.T) {
	records := []models.WeightRecord{
		recordOnDay(0, 100),
		recordOnDay(3, 104),
		recordOnDay(7, 108),
		recordOnDay(10, 112),
	}

	gains := WeeklyGains(records)
	if len(gains) != 2 {
		t.Fatalf("expected a closed window plus a trailing partial, got %d", len(gains))
	}

	closed := gains[0]
	if !almostEqual(closed.WeightEndKg, 104) || !almostEqual(closed.ADGKgPerDay, ADG(100, 104, 7)) {
		t.Errorf("unexpected closed window: %+v", closed)
	}

	// The trailing window spans day 7 to day 10: 3 actual days as denominator.
	trailing := gains[1]
	if !almostEqual(trailing.WeightStartKg, 108) || !almostEqual(trailing.WeightEndKg, 112) {
		t.Errorf("unexpected trailing window weights: %+v", trailing)
	}
	if !almostEqual(trailing.ADGKgPerDay, ADG(108, 112, 3)) {
		t.Errorf("expected trailing ADG over 3 days, got %v", trailing.ADGKgPerDay)
	}
}

func TestWeeklyGains_FewRecords(t *testing.T) {
	if gains := WeeklyGains(nil); len(gains) != 0 {
		t.Errorf("expected no gains for empty input, got %d", len(gains))
	}
	if gains := WeeklyGains([]models.WeightRecord{recordOnDay(0, 100)}); len(gains) != 0 {
		t.Errorf("expected no gains for single record, got %d", len(gains))
	}
}

func TestWeeklyGains_SameDayRecordsNoTrailing(t *testing.T) {
	records := []models.WeightRecord{
		recordOnDay(0, 100),
		{AnimalID: "cow-1", Timestamp: baseDate.Add(4 * time.Hour), WeightKg: 101},
	}
	if gains := WeeklyGains(records); len(gains) != 0 {
		t.Errorf("expected no trailing window under one whole day, got %d", len(gains))
	}
}

func TestReport(t *testing.T) {
	records := []models.WeightRecord{
		recordOnDay(0, 300),
		recordOnDay(30, 330),
	}

	report, err := Report(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(report.TotalGainKg, 30) {
		t.Errorf("expected total gain 30, got %v", report.TotalGainKg)
	}
	if report.TotalDays != 30 {
		t.Errorf("expected 30 total days, got %d", report.TotalDays)
	}
	if !almostEqual(report.AvgDailyGainKg, 1.0) {
		t.Errorf("expected ADG 1.0, got %v", report.AvgDailyGainKg)
	}
	if !almostEqual(report.FirstWeightKg, 300) || !almostEqual(report.LatestWeightKg, 330) {
		t.Errorf("unexpected first/latest weights: %+v", report)
	}
	if report.TotalMeasurements != 2 {
		t.Errorf("expected 2 measurements, got %d", report.TotalMeasurements)
	}
}

func TestReport_Empty(t *testing.T) {
	_, err := Report(nil)
	if !errors.Is(err, ErrNoWeightData) {
		t.Fatalf("expected ErrNoWeightData, got %v", err)
	}
}

func TestReport_SingleRecord(t *testing.T) {
	report, err := Report([]models.WeightRecord{recordOnDay(0, 250)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalDays != 0 || report.TotalGainKg != 0 || report.AvgDailyGainKg != 0 {
		t.Errorf("expected neutral metrics for single record, got %+v", report)
	}
}

func TestWholeDays_Truncates(t *testing.T) {
	from := baseDate
	to := baseDate.Add(6*24*time.Hour + 23*time.Hour)
	if got := WholeDays(from, to); got != 6 {
		t.Errorf("expected 6 whole days, got %d", got)
	}
}

package target

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestIsReadyToSell(t *testing.T) {
	if IsReadyToSell(nil, 500) {
		t.Error("no target must never be ready")
	}
	if !IsReadyToSell(ptr(400), 400) {
		t.Error("reaching the target exactly is ready")
	}
	if !IsReadyToSell(ptr(400), 450) {
		t.Error("exceeding the target is ready")
	}
	if IsReadyToSell(ptr(400), 399.9) {
		t.Error("below the target is not ready")
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		target   *float64
		current  float64
		expected float64
	}{
		{"no target", nil, 350, 0},
		{"non-positive target", ptr(0), 350, 0},
		{"halfway", ptr(400), 200, 50},
		{"at target", ptr(400), 400, 100},
		{"clamped above 100", ptr(400), 900, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercent(tt.target, tt.current); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestProgress_NoTargetIsNeutral(t *testing.T) {
	progress := Progress(nil, 320)
	if progress.TargetWeightKg != 0 || progress.ProgressPercent != 0 || progress.RemainingKg != 0 || progress.IsReady {
		t.Errorf("expected neutral progress record, got %+v", progress)
	}
	if progress.CurrentWeightKg != 320 {
		t.Errorf("current weight must survive, got %v", progress.CurrentWeightKg)
	}
}

func TestProgress_OverTargetClamps(t *testing.T) {
	progress := Progress(ptr(400), 520)
	if progress.ProgressPercent != 100 {
		t.Errorf("expected progress clamped to 100, got %v", progress.ProgressPercent)
	}
	if progress.RemainingKg != 0 {
		t.Errorf("remaining must never be negative, got %v", progress.RemainingKg)
	}
	if !progress.IsReady {
		t.Error("expected ready")
	}
}

func TestProgress_PartWay(t *testing.T) {
	progress := Progress(ptr(400), 300)
	if math.Abs(progress.ProgressPercent-75) > 1e-9 {
		t.Errorf("expected 75%%, got %v", progress.ProgressPercent)
	}
	if math.Abs(progress.RemainingKg-100) > 1e-9 {
		t.Errorf("expected 100kg remaining, got %v", progress.RemainingKg)
	}
	if progress.IsReady {
		t.Error("expected not ready")
	}
}

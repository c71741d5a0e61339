package target

import "github.com/mamadbah2/herdtrack/internal/domain/models"

// IsReadyToSell reports whether the current weight has reached the configured
// target. Animals without a target are never ready.
func IsReadyToSell(targetWeightKg *float64, currentWeightKg float64) bool {
	if targetWeightKg == nil {
		return false
	}
	return currentWeightKg >= *targetWeightKg
}

// ProgressPercent returns how far the current weight is toward the target,
// clamped to [0, 100]. No target, or a non-positive one, yields 0.
func ProgressPercent(targetWeightKg *float64, currentWeightKg float64) float64 {
	if targetWeightKg == nil || *targetWeightKg <= 0 {
		return 0
	}
	percent := currentWeightKg / *targetWeightKg * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Progress builds the full target-progress record. A missing or non-positive
// target degrades to a neutral result instead of erroring; "no target" is a
// valid steady state.
func Progress(targetWeightKg *float64, currentWeightKg float64) models.TargetProgress {
	if targetWeightKg == nil || *targetWeightKg <= 0 {
		return models.TargetProgress{CurrentWeightKg: currentWeightKg}
	}

	remaining := *targetWeightKg - currentWeightKg
	if remaining < 0 {
		remaining = 0
	}

	return models.TargetProgress{
		CurrentWeightKg: currentWeightKg,
		TargetWeightKg:  *targetWeightKg,
		ProgressPercent: ProgressPercent(targetWeightKg, currentWeightKg),
		RemainingKg:     remaining,
		IsReady:         IsReadyToSell(targetWeightKg, currentWeightKg),
	}
}

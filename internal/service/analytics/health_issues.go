package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/growth"
	"github.com/mamadbah2/herdtrack/internal/service/health"
)

// HealthIssues scans the animal's weight history for risk flags. When a
// proposed weight is supplied (a measurement not yet committed), only the
// newest recorded measurement is compared against it, so data entry can warn
// before saving. Histories with fewer than two records never flag.
func (s *Service) HealthIssues(ctx context.Context, animalID string, proposedWeightKg *float64) ([]models.HealthFlag, error) {
	records, err := s.transactions.FindByAnimal(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("load weight history for animal %s: %w", animalID, err)
	}
	if len(records) < 2 {
		return []models.HealthFlag{}, nil
	}

	if proposedWeightKg != nil {
		return s.checkProposedWeight(animalID, records, *proposedWeightKg), nil
	}

	flags := health.DetectHealthIssues(records)
	if flags == nil {
		flags = []models.HealthFlag{}
	}

	s.logger.Debug("health issues scanned",
		zap.String("animal_id", animalID),
		zap.Int("flags", len(flags)))

	return flags, nil
}

// checkProposedWeight compares the newest recorded measurement against the
// proposed one, using the service clock for the elapsed days.
func (s *Service) checkProposedWeight(animalID string, records []models.WeightRecord, proposedWeightKg float64) []models.HealthFlag {
	newest := records[0]
	for _, r := range records[1:] {
		if r.Timestamp.After(newest.Timestamp) {
			newest = r
		}
	}

	now := s.now()
	flag := health.DetectWeightLoss(proposedWeightKg, newest.WeightKg, growth.WholeDays(newest.Timestamp, now))
	if flag == nil {
		return []models.HealthFlag{}
	}

	flag.AnimalID = animalID
	flag.Timestamp = now
	return []models.HealthFlag{*flag}
}

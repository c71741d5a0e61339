package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/growth"
)

// GrowthReport fetches the animal's full weight history and derives its
// growth summary. An animal without transactions yields ErrNoTransactions
// rather than a fabricated zero-valued report.
func (s *Service) GrowthReport(ctx context.Context, animalID string) (models.GrowthReport, error) {
	records, err := s.transactions.FindByAnimal(ctx, animalID)
	if err != nil {
		return models.GrowthReport{}, fmt.Errorf("load weight history for animal %s: %w", animalID, err)
	}
	if len(records) == 0 {
		return models.GrowthReport{}, fmt.Errorf("%w: %s", ErrNoTransactions, animalID)
	}

	report, err := growth.Report(records)
	if err != nil {
		return models.GrowthReport{}, err
	}
	report.AnimalID = animalID

	s.logger.Debug("growth report computed",
		zap.String("animal_id", animalID),
		zap.Int("measurements", report.TotalMeasurements),
		zap.Float64("adg", report.AvgDailyGainKg))

	return report, nil
}

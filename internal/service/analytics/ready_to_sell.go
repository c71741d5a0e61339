package analytics

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/target"
)

// maxLatestWeightFetches bounds the concurrent per-animal store lookups.
const maxLatestWeightFetches = 8

// ReadyToSell ranks the tenant's animals by progress toward their configured
// sale target, closest to ready first. Animals without any weight history are
// excluded rather than zero-filled. The species and group filters are pushed
// down to the entity store; the minimum-progress filter applies after the
// progress is computed. Ties keep the store's encounter order.
func (s *Service) ReadyToSell(ctx context.Context, tenantID string, filters models.AnimalFilters) ([]models.RankedAnimal, error) {
	profiles, err := s.entities.FindWithTargetWeight(ctx, tenantID, filters)
	if err != nil {
		return nil, fmt.Errorf("load animals with target weight for tenant %s: %w", tenantID, err)
	}

	// Latest-weight lookups are independent per animal, so fetch them with
	// bounded concurrency and reassemble in encounter order.
	slots := make([]*models.RankedAnimal, len(profiles))
	sem := make(chan struct{}, maxLatestWeightFetches)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		fetchErr error
	)
	for i, profile := range profiles {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, profile models.AnimalProfile) {
			defer wg.Done()
			defer func() { <-sem }()

			latest, err := s.transactions.FindLatest(ctx, profile.AnimalID, 1)
			if err != nil {
				mu.Lock()
				if fetchErr == nil {
					fetchErr = fmt.Errorf("load latest weight for animal %s: %w", profile.AnimalID, err)
				}
				mu.Unlock()
				return
			}
			if len(latest) == 0 {
				return
			}

			slots[i] = &models.RankedAnimal{
				AnimalID:    profile.AnimalID,
				TagNumber:   profile.TagNumber,
				Species:     profile.Species,
				GroupID:     profile.GroupID,
				Progress:    target.Progress(profile.TargetWeightKg, latest[0].WeightKg),
				LastWeighed: latest[0].Timestamp,
			}
		}(i, profile)
	}
	wg.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}

	ranked := make([]models.RankedAnimal, 0, len(profiles))
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if filters.MinProgressPercent > 0 && slot.Progress.ProgressPercent < filters.MinProgressPercent {
			continue
		}
		ranked = append(ranked, *slot)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Progress.ProgressPercent > ranked[j].Progress.ProgressPercent
	})

	s.logger.Debug("ready-to-sell listing computed",
		zap.String("tenant_id", tenantID),
		zap.Int("candidates", len(profiles)),
		zap.Int("ranked", len(ranked)))

	return ranked, nil
}

package analytics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/growth"
)

// FeedPerformance compares feed types by the growth they produced inside the
// date range. Transactions without a feed type are discarded. Within a feed
// type, each animal must have at least two measurements spanning more than
// zero whole days to contribute; the feed summary averages ADG, total gain
// and days on feed over those animals. Feed types are ranked by average ADG,
// best first.
func (s *Service) FeedPerformance(ctx context.Context, tenantID string, rng models.DateRange) (models.FeedComparisonResult, error) {
	records, err := s.transactions.FindInDateRange(ctx, tenantID, rng)
	if err != nil {
		return models.FeedComparisonResult{}, fmt.Errorf("load transactions in range for tenant %s: %w", tenantID, err)
	}

	byFeedType := map[string][]models.WeightRecord{}
	var feedTypes []string
	for _, record := range records {
		feedType := record.FeedType()
		if feedType == "" {
			continue
		}
		if _, seen := byFeedType[feedType]; !seen {
			feedTypes = append(feedTypes, feedType)
		}
		byFeedType[feedType] = append(byFeedType[feedType], record)
	}

	summaries := make([]models.FeedTypeSummary, 0, len(feedTypes))
	for _, feedType := range feedTypes {
		summaries = append(summaries, summarizeFeedType(feedType, byFeedType[feedType]))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AvgADG > summaries[j].AvgADG
	})
	for i := range summaries {
		summaries[i].PerformanceRank = i + 1
	}

	s.logger.Debug("feed performance computed",
		zap.String("tenant_id", tenantID),
		zap.Int("transactions", len(records)),
		zap.Int("feed_types", len(summaries)))

	return models.FeedComparisonResult{TenantID: tenantID, Summaries: summaries}, nil
}

func summarizeFeedType(feedType string, group []models.WeightRecord) models.FeedTypeSummary {
	byAnimal := map[string][]models.WeightRecord{}
	for _, record := range group {
		byAnimal[record.AnimalID] = append(byAnimal[record.AnimalID], record)
	}

	var (
		qualifying   int
		sumADG       float64
		sumTotalGain float64
		sumDays      float64
	)
	for _, history := range byAnimal {
		if len(history) < 2 {
			continue
		}
		sorted := make([]models.WeightRecord, len(history))
		copy(sorted, history)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		})

		first, last := sorted[0], sorted[len(sorted)-1]
		days := growth.WholeDays(first.Timestamp, last.Timestamp)
		if days <= 0 {
			continue
		}

		qualifying++
		sumADG += growth.ADG(first.WeightKg, last.WeightKg, days)
		sumTotalGain += last.WeightKg - first.WeightKg
		sumDays += float64(days)
	}

	summary := models.FeedTypeSummary{
		FeedType:          feedType,
		FeedBrand:         group[0].FeedBrand(),
		AnimalCount:       qualifying,
		TotalTransactions: len(group),
	}
	if qualifying > 0 {
		summary.AvgADG = sumADG / float64(qualifying)
		summary.AvgTotalGainKg = sumTotalGain / float64(qualifying)
		summary.AvgDaysOnFeed = sumDays / float64(qualifying)
	}
	return summary
}

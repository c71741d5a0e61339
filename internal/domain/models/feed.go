package models

// FeedTypeSummary aggregates growth performance for one feed type over a date
// range. Averages are arithmetic means over qualifying animals (at least two
// measurements spanning more than zero whole days), zero when none qualify.
type FeedTypeSummary struct {
	FeedType          string  `json:"feed_type"`
	FeedBrand         string  `json:"feed_brand,omitempty"`
	AnimalCount       int     `json:"animal_count"`
	TotalTransactions int     `json:"total_transactions"`
	AvgADG            float64 `json:"avg_adg"`
	AvgTotalGainKg    float64 `json:"avg_total_gain_kg"`
	AvgDaysOnFeed     float64 `json:"avg_days_on_feed"`
	PerformanceRank   int     `json:"performance_rank"`
}

// FeedComparisonResult ranks feed types by average daily gain, best first.
type FeedComparisonResult struct {
	TenantID  string            `json:"tenant_id"`
	Summaries []FeedTypeSummary `json:"summaries"`
}

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

var baseDate = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByAnimal(ctx context.Context, animalID string) ([]models.WeightRecord, error) {
	args := m.Called(ctx, animalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeightRecord), args.Error(1)
}

func (m *MockTransactionRepository) FindLatest(ctx context.Context, animalID string, limit int) ([]models.WeightRecord, error) {
	args := m.Called(ctx, animalID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeightRecord), args.Error(1)
}

func (m *MockTransactionRepository) FindInDateRange(ctx context.Context, tenantID string, rng models.DateRange) ([]models.WeightRecord, error) {
	args := m.Called(ctx, tenantID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeightRecord), args.Error(1)
}

func (m *MockTransactionRepository) Insert(ctx context.Context, record models.WeightRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockEntityRepository is a mock implementation of repository.EntityRepository.
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindWithTargetWeight(ctx context.Context, tenantID string, filters models.AnimalFilters) ([]models.AnimalProfile, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnimalProfile), args.Error(1)
}

func newTestService(transactions *MockTransactionRepository, entities *MockEntityRepository) *Service {
	return NewService(transactions, entities, nil)
}

func record(animalID string, day int, weightKg float64) models.WeightRecord {
	return models.WeightRecord{
		AnimalID:  animalID,
		Timestamp: baseDate.AddDate(0, 0, day),
		WeightKg:  weightKg,
	}
}

func ptr(v float64) *float64 { return &v }

func TestGrowthReport_NoTransactions(t *testing.T) {
	transactions := new(MockTransactionRepository)
	transactions.On("FindByAnimal", mock.Anything, "cow-1").Return([]models.WeightRecord{}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	_, err := svc.GrowthReport(context.Background(), "cow-1")
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestGrowthReport_Success(t *testing.T) {
	transactions := new(MockTransactionRepository)
	transactions.On("FindByAnimal", mock.Anything, "cow-1").Return([]models.WeightRecord{
		record("cow-1", 30, 330),
		record("cow-1", 0, 300),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	report, err := svc.GrowthReport(context.Background(), "cow-1")
	require.NoError(t, err)
	assert.Equal(t, "cow-1", report.AnimalID)
	assert.InDelta(t, 30, report.TotalGainKg, 1e-9)
	assert.Equal(t, 30, report.TotalDays)
	assert.InDelta(t, 1.0, report.AvgDailyGainKg, 1e-9)
}

func TestHealthIssues_FewRecordsRegardlessOfProposedWeight(t *testing.T) {
	transactions := new(MockTransactionRepository)
	transactions.On("FindByAnimal", mock.Anything, "cow-1").Return([]models.WeightRecord{
		record("cow-1", 0, 100),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	flags, err := svc.HealthIssues(context.Background(), "cow-1", ptr(80))
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestHealthIssues_ProposedWeightShortCircuit(t *testing.T) {
	transactions := new(MockTransactionRepository)
	transactions.On("FindByAnimal", mock.Anything, "cow-1").Return([]models.WeightRecord{
		record("cow-1", 0, 100),
		record("cow-1", 10, 98),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))
	svc.now = func() time.Time { return baseDate.AddDate(0, 0, 15) }

	flags, err := svc.HealthIssues(context.Background(), "cow-1", ptr(90))
	require.NoError(t, err)
	require.Len(t, flags, 1)

	// Only the newest recorded measurement is compared, not the full history.
	flag := flags[0]
	assert.Equal(t, models.FlagWeightLoss, flag.Kind)
	assert.Equal(t, models.SeveritySevere, flag.Severity)
	assert.InDelta(t, 98, flag.PreviousWeightKg, 1e-9)
	assert.InDelta(t, 90, flag.CurrentWeightKg, 1e-9)
	assert.Equal(t, 5, flag.DaysBetween)
	assert.Equal(t, "cow-1", flag.AnimalID)
}

func TestHealthIssues_ProposedWeightGainIsClean(t *testing.T) {
	transactions := new(MockTransactionRepository)
	transactions.On("FindByAnimal", mock.Anything, "cow-1").Return([]models.WeightRecord{
		record("cow-1", 0, 100),
		record("cow-1", 10, 98),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	flags, err := svc.HealthIssues(context.Background(), "cow-1", ptr(105))
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestHealthIssues_FullScan(t *testing.T) {
	transactions := new(MockTransactionRepository)
	transactions.On("FindByAnimal", mock.Anything, "cow-1").Return([]models.WeightRecord{
		record("cow-1", 0, 100),
		record("cow-1", 7, 97),
		record("cow-1", 14, 90),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	flags, err := svc.HealthIssues(context.Background(), "cow-1", nil)
	require.NoError(t, err)
	require.Len(t, flags, 3)
	assert.Equal(t, models.FlagConsecutiveLoss, flags[2].Kind)
}

func TestReadyToSell_Ranking(t *testing.T) {
	entities := new(MockEntityRepository)
	entities.On("FindWithTargetWeight", mock.Anything, "tenant-1", models.AnimalFilters{}).Return([]models.AnimalProfile{
		{AnimalID: "a", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
		{AnimalID: "b", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
		{AnimalID: "c", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
	}, nil)

	transactions := new(MockTransactionRepository)
	transactions.On("FindLatest", mock.Anything, "a", 1).Return([]models.WeightRecord{record("a", 40, 380)}, nil)
	transactions.On("FindLatest", mock.Anything, "b", 1).Return([]models.WeightRecord{record("b", 40, 400)}, nil)
	transactions.On("FindLatest", mock.Anything, "c", 1).Return([]models.WeightRecord{record("c", 40, 320)}, nil)

	svc := newTestService(transactions, entities)

	ranked, err := svc.ReadyToSell(context.Background(), "tenant-1", models.AnimalFilters{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "b", ranked[0].AnimalID)
	assert.Equal(t, "a", ranked[1].AnimalID)
	assert.Equal(t, "c", ranked[2].AnimalID)
	assert.True(t, ranked[0].Progress.IsReady)
	assert.InDelta(t, 95, ranked[1].Progress.ProgressPercent, 1e-9)
}

func TestReadyToSell_ExcludesAnimalsWithoutHistory(t *testing.T) {
	entities := new(MockEntityRepository)
	entities.On("FindWithTargetWeight", mock.Anything, "tenant-1", models.AnimalFilters{}).Return([]models.AnimalProfile{
		{AnimalID: "a", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
		{AnimalID: "never-weighed", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
	}, nil)

	transactions := new(MockTransactionRepository)
	transactions.On("FindLatest", mock.Anything, "a", 1).Return([]models.WeightRecord{record("a", 40, 380)}, nil)
	transactions.On("FindLatest", mock.Anything, "never-weighed", 1).Return([]models.WeightRecord{}, nil)

	svc := newTestService(transactions, entities)

	ranked, err := svc.ReadyToSell(context.Background(), "tenant-1", models.AnimalFilters{})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].AnimalID)
}

func TestReadyToSell_MinProgressFilter(t *testing.T) {
	filters := models.AnimalFilters{MinProgressPercent: 90}

	entities := new(MockEntityRepository)
	entities.On("FindWithTargetWeight", mock.Anything, "tenant-1", filters).Return([]models.AnimalProfile{
		{AnimalID: "a", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
		{AnimalID: "c", TenantID: "tenant-1", TargetWeightKg: ptr(400)},
	}, nil)

	transactions := new(MockTransactionRepository)
	transactions.On("FindLatest", mock.Anything, "a", 1).Return([]models.WeightRecord{record("a", 40, 380)}, nil)
	transactions.On("FindLatest", mock.Anything, "c", 1).Return([]models.WeightRecord{record("c", 40, 320)}, nil)

	svc := newTestService(transactions, entities)

	ranked, err := svc.ReadyToSell(context.Background(), "tenant-1", filters)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].AnimalID)
}

func withFeed(r models.WeightRecord, feedType, feedBrand string) models.WeightRecord {
	r.Metadata = map[string]string{}
	if feedType != "" {
		r.Metadata[models.MetadataKeyFeedType] = feedType
	}
	if feedBrand != "" {
		r.Metadata[models.MetadataKeyFeedBrand] = feedBrand
	}
	return r
}

func TestFeedPerformance(t *testing.T) {
	rng := models.DateRange{Start: baseDate, End: baseDate.AddDate(0, 0, 60)}

	transactions := new(MockTransactionRepository)
	transactions.On("FindInDateRange", mock.Anything, "tenant-1", rng).Return([]models.WeightRecord{
		// Feed "starter", brand from the first transaction: animal x gains 1 kg/day.
		withFeed(record("x", 0, 100), "starter", "AgriPlus"),
		withFeed(record("x", 10, 110), "starter", ""),
		// Single measurement: excluded from starter's statistics.
		withFeed(record("y", 5, 200), "starter", ""),
		// Feed "finisher": animal z gains 0.5 kg/day.
		withFeed(record("z", 0, 100), "finisher", "MaxFeed"),
		withFeed(record("z", 20, 110), "finisher", ""),
		// No feed type: discarded entirely.
		record("w", 3, 150),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	result, err := svc.FeedPerformance(context.Background(), "tenant-1", rng)
	require.NoError(t, err)
	require.Len(t, result.Summaries, 2)

	starter := result.Summaries[0]
	assert.Equal(t, "starter", starter.FeedType)
	assert.Equal(t, "AgriPlus", starter.FeedBrand)
	assert.Equal(t, 1, starter.PerformanceRank)
	assert.Equal(t, 1, starter.AnimalCount)
	assert.Equal(t, 3, starter.TotalTransactions)
	assert.InDelta(t, 1.0, starter.AvgADG, 1e-9)
	assert.InDelta(t, 10, starter.AvgTotalGainKg, 1e-9)
	assert.InDelta(t, 10, starter.AvgDaysOnFeed, 1e-9)

	finisher := result.Summaries[1]
	assert.Equal(t, "finisher", finisher.FeedType)
	assert.Equal(t, 2, finisher.PerformanceRank)
	assert.InDelta(t, 0.5, finisher.AvgADG, 1e-9)
}

func TestFeedPerformance_SameDayMeasurementsExcluded(t *testing.T) {
	rng := models.DateRange{Start: baseDate, End: baseDate.AddDate(0, 0, 60)}

	transactions := new(MockTransactionRepository)
	transactions.On("FindInDateRange", mock.Anything, "tenant-1", rng).Return([]models.WeightRecord{
		withFeed(record("x", 4, 100), "starter", ""),
		withFeed(record("x", 4, 101), "starter", ""),
	}, nil)

	svc := newTestService(transactions, new(MockEntityRepository))

	result, err := svc.FeedPerformance(context.Background(), "tenant-1", rng)
	require.NoError(t, err)
	require.Len(t, result.Summaries, 1)

	starter := result.Summaries[0]
	assert.Equal(t, 0, starter.AnimalCount)
	assert.Equal(t, 2, starter.TotalTransactions)
	assert.Zero(t, starter.AvgADG)
}

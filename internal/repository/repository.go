package repository

import (
	"context"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// TransactionRepository provides access to weight transactions. No ordering
// guarantee is required from implementations; the analytics services always
// sort what they consume.
type TransactionRepository interface {
	FindByAnimal(ctx context.Context, animalID string) ([]models.WeightRecord, error)
	FindLatest(ctx context.Context, animalID string, limit int) ([]models.WeightRecord, error)
	FindInDateRange(ctx context.Context, tenantID string, rng models.DateRange) ([]models.WeightRecord, error)
	Insert(ctx context.Context, record models.WeightRecord) error
}

// EntityRepository provides access to animal profiles.
type EntityRepository interface {
	FindWithTargetWeight(ctx context.Context, tenantID string, filters models.AnimalFilters) ([]models.AnimalProfile, error)
}

package analytics

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/repository"
)

// ErrNoTransactions indicates a growth report was requested for an animal
// without any recorded weight transactions.
var ErrNoTransactions = errors.New("no transactions recorded for animal")

// Service orchestrates the analytics use cases over the transaction and
// entity stores. All derivation is delegated to the pure calculator packages;
// the service only fetches, delegates, and shapes results.
type Service struct {
	transactions repository.TransactionRepository
	entities     repository.EntityRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewService wires an analytics service instance.
func NewService(transactions repository.TransactionRepository, entities repository.EntityRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transactions: transactions,
		entities:     entities,
		logger:       logger,
		now:          time.Now,
	}
}

package weights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository"
	"github.com/mamadbah2/herdtrack/internal/repository/sheets"
)

// ErrSheetImportDisabled indicates no spreadsheet source has been configured.
var ErrSheetImportDisabled = errors.New("sheet import is not configured")

// HealthChecker runs the pre-commit health check against a proposed weight.
type HealthChecker interface {
	HealthIssues(ctx context.Context, animalID string, proposedWeightKg *float64) ([]models.HealthFlag, error)
}

// Service handles weight ingestion: manual capture and spreadsheet import.
type Service struct {
	transactions repository.TransactionRepository
	sheet        sheets.Repository
	health       HealthChecker
	logger       *zap.Logger
	now          func() time.Time
}

// NewService constructs the ingestion service. The sheet repository may be
// nil when spreadsheet import is disabled.
func NewService(transactions repository.TransactionRepository, sheet sheets.Repository, health HealthChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transactions: transactions,
		sheet:        sheet,
		health:       health,
		logger:       logger,
		now:          time.Now,
	}
}

// RecordWeight checks the proposed measurement against the animal's newest
// recorded weight, persists it, and returns the stored record together with
// any health flags. Flags warn the operator but never block the save.
func (s *Service) RecordWeight(ctx context.Context, tenantID, animalID string, req models.RecordWeightRequest) (models.RecordWeightResult, error) {
	flags, err := s.health.HealthIssues(ctx, animalID, &req.WeightKg)
	if err != nil {
		return models.RecordWeightResult{}, fmt.Errorf("pre-commit health check for animal %s: %w", animalID, err)
	}

	measuredAt := s.now().UTC()
	if req.Timestamp != nil {
		measuredAt = req.Timestamp.UTC()
	}

	record := models.WeightRecord{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		AnimalID:  animalID,
		Timestamp: measuredAt,
		WeightKg:  req.WeightKg,
		Metadata:  req.Metadata,
	}
	if err := s.transactions.Insert(ctx, record); err != nil {
		return models.RecordWeightResult{}, fmt.Errorf("persist weight record for animal %s: %w", animalID, err)
	}

	s.logger.Info("weight recorded",
		zap.String("animal_id", animalID),
		zap.Float64("weight_kg", req.WeightKg),
		zap.Int("flags", len(flags)))

	return models.RecordWeightResult{Record: record, Flags: flags}, nil
}

// ImportFromSheet pulls the configured spreadsheet range and persists each
// parsed row as a weight transaction for the tenant. Rows that fail to insert
// are counted and logged, not fatal.
func (s *Service) ImportFromSheet(ctx context.Context, tenantID string) (models.SheetImportResult, error) {
	if s.sheet == nil {
		return models.SheetImportResult{}, ErrSheetImportDisabled
	}

	rows, err := s.sheet.FetchWeightRows(ctx)
	if err != nil {
		return models.SheetImportResult{}, fmt.Errorf("fetch weight rows: %w", err)
	}

	var result models.SheetImportResult
	for _, row := range rows {
		row.ID = uuid.NewString()
		row.TenantID = tenantID
		if err := s.transactions.Insert(ctx, row); err != nil {
			s.logger.Warn("failed to insert imported row",
				zap.String("animal_id", row.AnimalID),
				zap.Error(err))
			result.Failed++
			continue
		}
		result.Imported++
	}

	s.logger.Info("sheet import finished",
		zap.String("tenant_id", tenantID),
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed))

	return result, nil
}

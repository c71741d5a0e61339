package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Row layout of the weighing sheet: animal id | date | weight kg | feed type | feed brand.
const (
	colAnimalID = iota
	colDate
	colWeightKg
	colFeedType
	colFeedBrand
)

// Repository reads weight rows out of a spreadsheet maintained by the farm.
type Repository interface {
	FetchWeightRows(ctx context.Context) ([]models.WeightRecord, error)
}

// WeightSheetRepository implements Repository using the official Google Sheets API.
type WeightSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewWeightSheetRepository builds a Google Sheets backed import source.
func NewWeightSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &WeightSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		logger:        logger,
	}, nil
}

// FetchWeightRows reads the configured range and parses each row into a
// weight record. Malformed rows are skipped, not fatal; a spreadsheet edited
// by hand always carries a few.
func (r *WeightSheetRepository) FetchWeightRows(ctx context.Context) ([]models.WeightRecord, error) {
	if r.readRange == "" {
		return nil, fmt.Errorf("sheet read range must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", r.readRange, err)
	}

	var records []models.WeightRecord
	for i, row := range resp.Values {
		record, err := parseRow(row)
		if err != nil {
			r.logger.Debug("skip malformed sheet row", zap.Int("row", i), zap.Error(err))
			continue
		}
		records = append(records, record)
	}

	r.logger.Info("weight rows fetched from sheet",
		zap.Int("rows", len(resp.Values)),
		zap.Int("parsed", len(records)))

	return records, nil
}

func parseRow(row []interface{}) (models.WeightRecord, error) {
	if len(row) <= colWeightKg {
		return models.WeightRecord{}, fmt.Errorf("expected at least %d columns, got %d", colWeightKg+1, len(row))
	}

	animalID := fmt.Sprint(row[colAnimalID])
	if animalID == "" {
		return models.WeightRecord{}, fmt.Errorf("empty animal id")
	}

	measuredAt, err := parseDate(row[colDate])
	if err != nil {
		return models.WeightRecord{}, fmt.Errorf("parse date: %w", err)
	}

	weightKg, err := parseFloat(row[colWeightKg])
	if err != nil {
		return models.WeightRecord{}, fmt.Errorf("parse weight: %w", err)
	}
	if weightKg <= 0 {
		return models.WeightRecord{}, fmt.Errorf("weight must be positive, got %.2f", weightKg)
	}

	metadata := map[string]string{}
	if len(row) > colFeedType {
		if feedType := fmt.Sprint(row[colFeedType]); feedType != "" {
			metadata[models.MetadataKeyFeedType] = feedType
		}
	}
	if len(row) > colFeedBrand {
		if feedBrand := fmt.Sprint(row[colFeedBrand]); feedBrand != "" {
			metadata[models.MetadataKeyFeedBrand] = feedBrand
		}
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	return models.WeightRecord{
		AnimalID:  animalID,
		Timestamp: measuredAt,
		WeightKg:  weightKg,
		Metadata:  metadata,
	}, nil
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseFloat(value interface{}) (float64, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository"
	"github.com/mamadbah2/herdtrack/internal/service/health"
	"github.com/mamadbah2/herdtrack/pkg/clients/alert"
)

// Scheduler runs the periodic herd health scan.
type Scheduler struct {
	cron         *cron.Cron
	transactions repository.TransactionRepository
	alertClient  alert.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The alert client may be nil
// when no webhook is configured; scan results are then only logged.
func NewScheduler(cfg config.Config, transactions repository.TransactionRepository, alertClient alert.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Monitor.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Monitor.Timezone), zap.Error(err))
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		transactions: transactions,
		alertClient:  alertClient,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the health scan job and starts the cron loop.
func (s *Scheduler) Start() {
	if s.cfg.Monitor.TenantID == "" {
		s.logger.Warn("no monitor tenant configured, herd health scan disabled")
		return
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Monitor.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Monitor.CronSchedule, s.runHealthScan); err != nil {
		s.logger.Error("failed to schedule herd health scan", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// runHealthScan walks the trailing window of weight transactions, detects
// health issues per animal, and reports severe flags to the alert webhook.
func (s *Scheduler) runHealthScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tenantID := s.cfg.Monitor.TenantID
	now := time.Now().UTC()
	rng := models.DateRange{
		Start: now.AddDate(0, 0, -s.cfg.Monitor.LookbackDays),
		End:   now,
	}

	s.logger.Info("running herd health scan",
		zap.String("tenant_id", tenantID),
		zap.Time("window_start", rng.Start))

	records, err := s.transactions.FindInDateRange(ctx, tenantID, rng)
	if err != nil {
		s.logger.Error("failed to load transactions for health scan", zap.Error(err))
		return
	}

	byAnimal := map[string][]models.WeightRecord{}
	for _, record := range records {
		byAnimal[record.AnimalID] = append(byAnimal[record.AnimalID], record)
	}

	var severe []models.HealthFlag
	animalsFlagged := map[string]struct{}{}
	for animalID, history := range byAnimal {
		for _, flag := range health.DetectHealthIssues(history) {
			if flag.Severity != models.SeveritySevere {
				continue
			}
			severe = append(severe, flag)
			animalsFlagged[animalID] = struct{}{}
		}
	}

	if len(severe) == 0 {
		s.logger.Info("herd health scan clean", zap.Int("animals", len(byAnimal)))
		return
	}

	summary := fmt.Sprintf("%d severe health flags across %d animals in the last %d days",
		len(severe), len(animalsFlagged), s.cfg.Monitor.LookbackDays)

	if s.alertClient == nil {
		s.logger.Warn("severe health flags found, no alert webhook configured", zap.String("summary", summary))
		return
	}

	err = s.alertClient.SendHealthAlert(ctx, alert.HealthAlert{
		TenantID:    tenantID,
		GeneratedAt: now,
		Summary:     summary,
		Flags:       severe,
	})
	if err != nil {
		s.logger.Error("failed to send health alert", zap.Error(err))
		return
	}

	s.logger.Info("health alert sent", zap.String("summary", summary))
}

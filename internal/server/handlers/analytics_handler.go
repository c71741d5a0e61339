package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/analytics"
)

const dateLayout = "2006-01-02"

// AnalyticsHandler exposes the growth and health analytics over HTTP.
type AnalyticsHandler struct {
	svc    *analytics.Service
	logger *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(svc *analytics.Service, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{svc: svc, logger: logger}
}

// Growth returns the growth report for one animal.
func (h *AnalyticsHandler) Growth(c *gin.Context) {
	animalID := c.Param("animalId")

	report, err := h.svc.GrowthReport(c.Request.Context(), animalID)
	if err != nil {
		if errors.Is(err, analytics.ErrNoTransactions) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no weight transactions recorded for this animal"})
			return
		}
		h.logger.Error("failed computing growth report", zap.String("animal_id", animalID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute growth report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Health returns the health flags for one animal. An optional proposed_weight
// query parameter checks a not-yet-committed measurement against the newest
// recorded one.
func (h *AnalyticsHandler) Health(c *gin.Context) {
	animalID := c.Param("animalId")

	var proposed *float64
	if raw := c.Query("proposed_weight"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "proposed_weight must be a positive number"})
			return
		}
		proposed = &value
	}

	flags, err := h.svc.HealthIssues(c.Request.Context(), animalID, proposed)
	if err != nil {
		h.logger.Error("failed scanning health issues", zap.String("animal_id", animalID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to scan health issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"animal_id": animalID, "flags": flags})
}

// ReadyToSell returns the tenant's animals ranked by progress toward their
// sale target.
func (h *AnalyticsHandler) ReadyToSell(c *gin.Context) {
	tenantID := c.Param("tenantId")

	filters := models.AnimalFilters{
		Species: c.Query("species"),
		Group:   c.Query("group"),
	}
	if raw := c.Query("min_progress"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_progress must be a non-negative number"})
			return
		}
		filters.MinProgressPercent = value
	}

	ranked, err := h.svc.ReadyToSell(c.Request.Context(), tenantID, filters)
	if err != nil {
		h.logger.Error("failed computing ready-to-sell listing", zap.String("tenant_id", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute ready-to-sell listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID, "animals": ranked})
}

// FeedPerformance compares feed types over a date range for the tenant.
func (h *AnalyticsHandler) FeedPerformance(c *gin.Context) {
	tenantID := c.Param("tenantId")

	rng, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.FeedPerformance(c.Request.Context(), tenantID, rng)
	if err != nil {
		h.logger.Error("failed computing feed performance", zap.String("tenant_id", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute feed performance"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseDateRange(startRaw, endRaw string) (models.DateRange, error) {
	if startRaw == "" || endRaw == "" {
		return models.DateRange{}, errors.New("start and end query parameters are required (YYYY-MM-DD)")
	}

	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return models.DateRange{}, errors.New("start must be a date formatted YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return models.DateRange{}, errors.New("end must be a date formatted YYYY-MM-DD")
	}
	if end.Before(start) {
		return models.DateRange{}, errors.New("end must not precede start")
	}

	// The range is inclusive, so stretch end through the whole day.
	return models.DateRange{
		Start: start,
		End:   end.Add(24*time.Hour - time.Nanosecond),
	}, nil
}

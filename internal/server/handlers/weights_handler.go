package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/weights"
)

// WeightsHandler exposes weight ingestion over HTTP.
type WeightsHandler struct {
	svc    *weights.Service
	logger *zap.Logger
}

// NewWeightsHandler constructs the HTTP handler adapter.
func NewWeightsHandler(svc *weights.Service, logger *zap.Logger) *WeightsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeightsHandler{svc: svc, logger: logger}
}

// Record stores a new weight measurement and returns it together with the
// pre-commit health check outcome.
func (h *WeightsHandler) Record(c *gin.Context) {
	tenantID := c.Param("tenantId")
	animalID := c.Param("animalId")

	var req models.RecordWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid weight payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.RecordWeight(c.Request.Context(), tenantID, animalID, req)
	if err != nil {
		h.logger.Error("failed recording weight", zap.String("animal_id", animalID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record weight"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ImportSheet pulls the configured spreadsheet and persists its weight rows.
func (h *WeightsHandler) ImportSheet(c *gin.Context) {
	tenantID := c.Param("tenantId")

	result, err := h.svc.ImportFromSheet(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, weights.ErrSheetImportDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheet import is not configured"})
			return
		}
		h.logger.Error("failed importing sheet", zap.String("tenant_id", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import sheet"})
		return
	}

	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandlers serves liveness and readiness probes
type HealthHandlers struct {
	db      *gorm.DB
	version string
	logger  *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *gorm.DB, version string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		version: version,
		logger:  logger,
	}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
	})
}

// ReadinessCheck handles GET /ready; it pings the database
func (h *HealthHandlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Data:    map[string]interface{}{"status": "not ready"},
		})
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]interface{}{"status": "ready"},
	})
}

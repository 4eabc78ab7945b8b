package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/CodingManiac11/ai-interview-assistant/internal/config"
	"github.com/CodingManiac11/ai-interview-assistant/internal/evaluator"
	"github.com/CodingManiac11/ai-interview-assistant/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	provider evaluator.Provider
	db       *gorm.DB
	config   *config.Config
}

func NewHealthHandler(provider evaluator.Provider, db *gorm.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{provider: provider, db: db, config: cfg}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "interview",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "Evaluation provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.db == nil {
		checks["database"] = ReadinessCheck{
			Status:  "failed",
			Message: "Database not connected",
		}
		allChecksPass = false
	} else if sqlDB, err := handler.db.DB(); err != nil || sqlDB.Ping() != nil {
		checks["database"] = ReadinessCheck{
			Status:  "failed",
			Message: "Database unreachable",
		}
		allChecksPass = false
	} else {
		checks["database"] = ReadinessCheck{Status: "ok"}
	}

	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{
			Status:  "failed",
			Message: "Configuration not loaded",
		}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: "interview",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}

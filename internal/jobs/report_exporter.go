// Package jobs runs background maintenance for the interview engine.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
	"github.com/CodingManiac11/ai-interview-assistant/internal/repository"
)

// ExporterConfig configures the scheduled report export.
type ExporterConfig struct {
	Schedule      string // cron schedule, e.g. "0 2 * * *" for 2 AM daily
	ExportDir     string // directory to store exported files
	ExportEnabled bool
}

// ReportExporterJob periodically writes completed interview reports to
// JSONL files and marks them exported, so hiring reviewers can pull them
// without touching the live database.
type ReportExporterJob struct {
	logger *zap.Logger
	repo   *repository.CandidateRepository
	config *ExporterConfig
	cron   *cron.Cron
}

func NewReportExporterJob(logger *zap.Logger, repo *repository.CandidateRepository, config *ExporterConfig) *ReportExporterJob {
	return &ReportExporterJob{
		logger: logger,
		repo:   repo,
		config: config,
		cron:   cron.New(),
	}
}

// Start begins the scheduled export job.
func (j *ReportExporterJob) Start() error {
	if !j.config.ExportEnabled {
		j.logger.Info("report export is disabled, skipping scheduler")
		return nil
	}

	j.logger.Info("starting report exporter", zap.String("schedule", j.config.Schedule))

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if err := j.RunExport(); err != nil {
			j.logger.Error("report export failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	j.cron.Start()
	return nil
}

// Stop stops the scheduled export job.
func (j *ReportExporterJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// report is one exported line. Resume content is omitted to keep the
// export compact; the full record stays in the database.
type report struct {
	CandidateID string          `json:"candidateId"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Score       float64         `json:"score"`
	Summary     string          `json:"summary"`
	Answers     []models.Answer `json:"answers"`
	CompletedAt time.Time       `json:"completedAt"`
}

// RunExport performs a single export run.
func (j *ReportExporterJob) RunExport() error {
	candidates, err := j.repo.FindUnexportedCompleted(0)
	if err != nil {
		return fmt.Errorf("failed to query unexported interviews: %w", err)
	}
	if len(candidates) == 0 {
		j.logger.Debug("no unexported interview reports")
		return nil
	}

	var lines []byte
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		var score float64
		if c.Score != nil {
			score = *c.Score
		}
		line, err := json.Marshal(report{
			CandidateID: c.ID,
			Name:        c.Name,
			Email:       c.Email,
			Score:       score,
			Summary:     c.Summary,
			Answers:     c.Answers,
			CompletedAt: c.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal report for %s: %w", c.ID, err)
		}
		lines = append(lines, line...)
		lines = append(lines, '\n')
		ids = append(ids, c.ID)
	}

	if err := os.MkdirAll(j.config.ExportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(j.config.ExportDir, fmt.Sprintf("interview_reports_%s.jsonl", timestamp))
	if err := os.WriteFile(path, lines, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	if err := j.repo.MarkReportExported(ids); err != nil {
		return fmt.Errorf("failed to mark reports exported: %w", err)
	}

	j.logger.Info("exported interview reports",
		zap.Int("count", len(ids)),
		zap.String("file", path))
	return nil
}

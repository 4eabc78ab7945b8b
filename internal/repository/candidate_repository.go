// Package repository owns the durable candidate records. It is the single
// source of truth for interview results; the session controller writes
// every mutation through it and never caches divergent candidate state.
package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate seeded from the profile, with all
// interview fields defaulted to not-started.
func (r *CandidateRepository) Create(profile models.CandidateProfile) (*models.Candidate, error) {
	candidate := &models.Candidate{
		ID:             uuid.New().String(),
		Name:           profile.Name,
		Email:          profile.Email,
		Phone:          profile.Phone,
		ResumeContent:  profile.ResumeContent,
		ResumeFileName: profile.ResumeFileName,
		Answers:        []models.Answer{},
	}
	if err := r.db.Create(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return candidate, nil
}

// Upsert merges the non-empty profile fields into an existing candidate
// and refreshes its updated timestamp. Repeating the same call is
// idempotent.
func (r *CandidateRepository) Upsert(id string, profile models.CandidateProfile) (*models.Candidate, error) {
	candidate, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if profile.Name != "" {
		candidate.Name = profile.Name
	}
	if profile.Email != "" {
		candidate.Email = profile.Email
	}
	if profile.Phone != "" {
		candidate.Phone = profile.Phone
	}
	if profile.ResumeContent != "" {
		candidate.ResumeContent = profile.ResumeContent
	}
	if profile.ResumeFileName != "" {
		candidate.ResumeFileName = profile.ResumeFileName
	}

	if err := r.db.Save(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return candidate, nil
}

func (r *CandidateRepository) FindByID(id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to fetch candidate: %w", err)
	}
	return &candidate, nil
}

// List returns all candidates, insertion order preserved for display.
func (r *CandidateRepository) List() ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

// FindMostRecentUnfinished returns the most recently active candidate with
// a started but unfinished interview, or ErrCandidateNotFound when none
// exists.
func (r *CandidateRepository) FindMostRecentUnfinished() (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.
		Where("interview_started = ? AND interview_completed = ?", true, false).
		Order("updated_at DESC").
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to query unfinished candidates: %w", err)
	}
	return &candidate, nil
}

// MarkInterviewStarted flags the candidate as mid-interview.
func (r *CandidateRepository) MarkInterviewStarted(id string) (*models.Candidate, error) {
	candidate, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	candidate.InterviewStarted = true
	if err := r.db.Save(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to mark interview started: %w", err)
	}
	return candidate, nil
}

// AppendAnswer appends one evaluated answer and advances the question
// index, keeping len(answers) == currentQuestionIndex.
func (r *CandidateRepository) AppendAnswer(id string, answer models.Answer) (*models.Candidate, error) {
	candidate, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	candidate.Answers = append(candidate.Answers, answer)
	if candidate.CurrentQuestionIndex < models.TotalQuestions {
		candidate.CurrentQuestionIndex++
	}

	if err := r.db.Save(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to append answer: %w", err)
	}
	return candidate, nil
}

// CompleteInterview records the final aggregate on the candidate.
func (r *CandidateRepository) CompleteInterview(id string, score float64, summary string) (*models.Candidate, error) {
	candidate, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	candidate.InterviewCompleted = true
	candidate.Score = &score
	candidate.Summary = summary

	if err := r.db.Save(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}
	return candidate, nil
}

// ResetInterviewFields returns the candidate to a fresh, not-started state.
func (r *CandidateRepository) ResetInterviewFields(id string) (*models.Candidate, error) {
	candidate, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	candidate.InterviewStarted = false
	candidate.InterviewCompleted = false
	candidate.CurrentQuestionIndex = 0
	candidate.Answers = []models.Answer{}
	candidate.Score = nil
	candidate.Summary = ""
	candidate.ReportExported = false
	candidate.ReportExportedAt = nil

	// Save writes all columns, so the cleared zero values land in the row.
	if err := r.db.Save(candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to reset interview fields: %w", err)
	}
	return candidate, nil
}

// FindUnexportedCompleted returns completed interviews whose report has not
// been exported yet, oldest first.
func (r *CandidateRepository) FindUnexportedCompleted(limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	query := r.db.
		Where("interview_completed = ? AND report_exported = ?", true, false).
		Order("updated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to query unexported interviews: %w", err)
	}
	return candidates, nil
}

// MarkReportExported flags the given candidates' reports as exported.
func (r *CandidateRepository) MarkReportExported(ids []string) error {
	now := time.Now()
	err := r.db.Model(&models.Candidate{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"report_exported":    true,
			"report_exported_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark reports exported: %w", err)
	}
	return nil
}

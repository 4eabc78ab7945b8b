package repository

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
)

func newTestRepository(t *testing.T) *CandidateRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Candidate{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewCandidateRepository(db)
}

func seedCandidate(t *testing.T, repo *CandidateRepository, name string) *models.Candidate {
	t.Helper()
	c, err := repo.Create(models.CandidateProfile{Name: name, Email: name + "@example.com"})
	if err != nil {
		t.Fatalf("failed to seed candidate: %v", err)
	}
	return c
}

func TestCreateDefaultsInterviewFields(t *testing.T) {
	repo := newTestRepository(t)
	c := seedCandidate(t, repo, "alice")

	if c.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if c.InterviewStarted || c.InterviewCompleted {
		t.Fatalf("expected interview flags to default false, got %+v", c)
	}
	if c.CurrentQuestionIndex != 0 || len(c.Answers) != 0 {
		t.Fatalf("expected fresh interview state, got %+v", c)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestUpsertMergesAndIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	c := seedCandidate(t, repo, "bob")

	update := models.CandidateProfile{Phone: "(415) 555-0137"}
	first, err := repo.Upsert(c.ID, update)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if first.Phone != "(415) 555-0137" || first.Name != "bob" {
		t.Fatalf("expected merged fields, got %+v", first)
	}

	second, err := repo.Upsert(c.ID, update)
	if err != nil {
		t.Fatalf("repeated Upsert returned error: %v", err)
	}
	if second.Phone != first.Phone || second.Name != first.Name || second.Email != first.Email {
		t.Fatalf("expected idempotent upsert, got %+v vs %+v", second, first)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.FindByID("missing"); err != ErrCandidateNotFound {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestAppendAnswerKeepsIndexInvariant(t *testing.T) {
	repo := newTestRepository(t)
	c := seedCandidate(t, repo, "carol")

	for i := 0; i < models.TotalQuestions; i++ {
		updated, err := repo.AppendAnswer(c.ID, models.Answer{
			QuestionID: fmt.Sprintf("q-%d", i),
			Score:      5,
			Difficulty: models.DifficultyEasy,
		})
		if err != nil {
			t.Fatalf("AppendAnswer returned error: %v", err)
		}
		if len(updated.Answers) != updated.CurrentQuestionIndex {
			t.Fatalf("answers/index invariant broken: %d answers, index %d",
				len(updated.Answers), updated.CurrentQuestionIndex)
		}
	}

	stored, err := repo.FindByID(c.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(stored.Answers) != models.TotalQuestions || stored.CurrentQuestionIndex != models.TotalQuestions {
		t.Fatalf("expected 6 persisted answers at index 6, got %d at %d",
			len(stored.Answers), stored.CurrentQuestionIndex)
	}
}

func TestFindMostRecentUnfinished(t *testing.T) {
	repo := newTestRepository(t)

	if _, err := repo.FindMostRecentUnfinished(); err != ErrCandidateNotFound {
		t.Fatalf("expected ErrCandidateNotFound on empty repo, got %v", err)
	}

	older := seedCandidate(t, repo, "older")
	newer := seedCandidate(t, repo, "newer")
	finished := seedCandidate(t, repo, "finished")
	seedCandidate(t, repo, "never-started")

	for _, id := range []string{older.ID, newer.ID, finished.ID} {
		if _, err := repo.MarkInterviewStarted(id); err != nil {
			t.Fatalf("MarkInterviewStarted returned error: %v", err)
		}
	}
	if _, err := repo.CompleteInterview(finished.ID, 7.5, "done"); err != nil {
		t.Fatalf("CompleteInterview returned error: %v", err)
	}

	// Touch the older candidate last so it becomes the most recent.
	time.Sleep(5 * time.Millisecond)
	if _, err := repo.Upsert(older.ID, models.CandidateProfile{Phone: "(415) 555-0100"}); err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	got, err := repo.FindMostRecentUnfinished()
	if err != nil {
		t.Fatalf("FindMostRecentUnfinished returned error: %v", err)
	}
	if got.ID != older.ID {
		t.Fatalf("expected most recently touched unfinished candidate %s, got %s", older.ID, got.ID)
	}
}

func TestCompleteInterviewStoresAggregate(t *testing.T) {
	repo := newTestRepository(t)
	c := seedCandidate(t, repo, "dave")

	updated, err := repo.CompleteInterview(c.ID, 6.8, "solid showing")
	if err != nil {
		t.Fatalf("CompleteInterview returned error: %v", err)
	}
	if !updated.InterviewCompleted || updated.Score == nil || *updated.Score != 6.8 {
		t.Fatalf("expected completed candidate with score 6.8, got %+v", updated)
	}
	if updated.Summary != "solid showing" {
		t.Fatalf("expected summary stored, got %q", updated.Summary)
	}
}

func TestResetInterviewFields(t *testing.T) {
	repo := newTestRepository(t)
	c := seedCandidate(t, repo, "erin")

	if _, err := repo.MarkInterviewStarted(c.ID); err != nil {
		t.Fatalf("MarkInterviewStarted returned error: %v", err)
	}
	if _, err := repo.AppendAnswer(c.ID, models.Answer{QuestionID: "q-0", Score: 9}); err != nil {
		t.Fatalf("AppendAnswer returned error: %v", err)
	}
	if _, err := repo.CompleteInterview(c.ID, 9, "great"); err != nil {
		t.Fatalf("CompleteInterview returned error: %v", err)
	}

	reset, err := repo.ResetInterviewFields(c.ID)
	if err != nil {
		t.Fatalf("ResetInterviewFields returned error: %v", err)
	}
	if reset.InterviewStarted || reset.InterviewCompleted {
		t.Fatalf("expected interview flags cleared, got %+v", reset)
	}
	if reset.CurrentQuestionIndex != 0 || len(reset.Answers) != 0 {
		t.Fatalf("expected answers cleared, got %+v", reset)
	}
	if reset.Score != nil || reset.Summary != "" {
		t.Fatalf("expected aggregate cleared, got %+v", reset)
	}

	stored, err := repo.FindByID(c.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.InterviewCompleted || stored.Score != nil || len(stored.Answers) != 0 {
		t.Fatalf("reset not persisted: %+v", stored)
	}
}

func TestFindUnexportedCompletedAndMarkExported(t *testing.T) {
	repo := newTestRepository(t)
	done := seedCandidate(t, repo, "done")
	seedCandidate(t, repo, "pending")

	if _, err := repo.CompleteInterview(done.ID, 8, "strong"); err != nil {
		t.Fatalf("CompleteInterview returned error: %v", err)
	}

	unexported, err := repo.FindUnexportedCompleted(0)
	if err != nil {
		t.Fatalf("FindUnexportedCompleted returned error: %v", err)
	}
	if len(unexported) != 1 || unexported[0].ID != done.ID {
		t.Fatalf("expected only the completed candidate, got %+v", unexported)
	}

	if err := repo.MarkReportExported([]string{done.ID}); err != nil {
		t.Fatalf("MarkReportExported returned error: %v", err)
	}

	unexported, err = repo.FindUnexportedCompleted(0)
	if err != nil {
		t.Fatalf("FindUnexportedCompleted returned error: %v", err)
	}
	if len(unexported) != 0 {
		t.Fatalf("expected no unexported reports, got %+v", unexported)
	}

	stored, err := repo.FindByID(done.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if !stored.ReportExported || stored.ReportExportedAt == nil {
		t.Fatalf("expected export flags set, got %+v", stored)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := newTestRepository(t)
	first := seedCandidate(t, repo, "first")
	time.Sleep(2 * time.Millisecond)
	second := seedCandidate(t, repo, "second")

	all, err := repo.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("unexpected order: %+v", all)
	}
}

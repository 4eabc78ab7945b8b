// Package session implements the interview state machine. The controller
// owns the single active session and its timer, funnels every mutation
// through its transition handlers, and writes all durable state through
// the candidate repository.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CodingManiac11/ai-interview-assistant/internal/clock"
	"github.com/CodingManiac11/ai-interview-assistant/internal/evaluator"
	"github.com/CodingManiac11/ai-interview-assistant/internal/metrics"
	"github.com/CodingManiac11/ai-interview-assistant/internal/models"
	"github.com/CodingManiac11/ai-interview-assistant/internal/questions"
	"github.com/CodingManiac11/ai-interview-assistant/internal/repository"
	"github.com/CodingManiac11/ai-interview-assistant/internal/timer"
)

// State of the interview state machine.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingStart  State = "awaiting_start"
	StateQuestionActive State = "question_active"
	StateEvaluating     State = "evaluating"
	StateCompleted      State = "completed"
)

// Sentinel stored as the answer text when time runs out with no draft.
const noAnswerSentinel = "[No answer provided - time expired]"

// Countdown armed when a question's evaluation fails after its own
// countdown already expired, so an unattended question still re-expires.
const evaluationRetryGrace = 10 * time.Second

const welcomeMessage = "Welcome! Your interview is about to begin. " +
	"You will be asked 6 questions: 2 Easy (20s each), 2 Medium (60s each), " +
	"and 2 Hard (120s each). Good luck!"

var (
	ErrSessionActive       = errors.New("an interview session is already active")
	ErrNoCandidate         = errors.New("no candidate loaded")
	ErrInterviewCompleted  = errors.New("interview already completed")
	ErrNoActiveQuestion    = errors.New("no question is currently active")
	ErrNotAwaitingStart    = errors.New("session is not awaiting start")
	ErrNoPendingResumption = errors.New("no unfinished interview to resume")
)

// Notifier receives an event after every observable transition. The hub
// broadcasts these to WebSocket clients.
type Notifier interface {
	Notify(eventType string, payload interface{})
}

// Controller drives one candidate's interview from load to completion.
type Controller struct {
	logger      *zap.Logger
	repo        *repository.CandidateRepository
	generator   *questions.Generator
	provider    evaluator.Provider
	notifier    Notifier
	clk         clock.Clock
	evalTimeout time.Duration

	mu          sync.Mutex
	state       State
	candidateID string
	session     *models.InterviewSession
	timer       *timer.Timer
	draft       string

	// epoch invalidates in-flight evaluations: it is bumped whenever the
	// session context they were dispatched under is torn down or replaced.
	epoch uint64

	// inflight tracks dispatched evaluations so tests can wait for them.
	inflight sync.WaitGroup
}

func NewController(
	logger *zap.Logger,
	repo *repository.CandidateRepository,
	generator *questions.Generator,
	provider evaluator.Provider,
	notifier Notifier,
	clk clock.Clock,
	evalTimeout time.Duration,
) *Controller {
	c := &Controller{
		logger:      logger,
		repo:        repo,
		generator:   generator,
		provider:    provider,
		notifier:    notifier,
		clk:         clk,
		evalTimeout: evalTimeout,
		state:       StateIdle,
	}
	c.timer = timer.New(clk)
	return c
}

// State reports the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadCandidate binds a candidate and moves Idle to AwaitingStart. A
// candidate whose interview already completed must be reset first.
func (c *Controller) LoadCandidate(id string) (*models.Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle && c.state != StateAwaitingStart && c.state != StateCompleted {
		return nil, ErrSessionActive
	}

	candidate, err := c.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if candidate.InterviewCompleted {
		return candidate, ErrInterviewCompleted
	}

	c.candidateID = candidate.ID
	c.session = nil
	c.state = StateAwaitingStart
	c.notify("candidate_loaded", candidate)
	return candidate, nil
}

// StartInterview generates the question set, creates the session, and
// activates question 0 with a running timer.
func (c *Controller) StartInterview() (*models.InterviewSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingStart {
		if c.candidateID == "" {
			return nil, ErrNoCandidate
		}
		return nil, ErrNotAwaitingStart
	}

	candidate, err := c.repo.FindByID(c.candidateID)
	if err != nil {
		return nil, err
	}

	qs := c.generator.Generate(candidate.ResumeContent)
	now := c.clk.Now()
	c.session = &models.InterviewSession{
		CandidateID:          candidate.ID,
		Questions:            qs,
		CurrentQuestionIndex: 0,
		StartTime:            now,
	}
	c.appendMessageLocked(models.MessageSystem, welcomeMessage, nil)

	if _, err := c.repo.MarkInterviewStarted(candidate.ID); err != nil {
		c.session = nil
		return nil, fmt.Errorf("failed to mark interview started: %w", err)
	}

	c.epoch++
	c.draft = ""
	c.activateQuestionLocked(0)
	metrics.InterviewStarted()
	c.notify("interview_started", c.snapshotLocked())
	return c.session, nil
}

// SetDraft records the provisional answer text for the active question so
// an expiry can submit the candidate's partial work.
func (c *Controller) SetDraft(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateQuestionActive {
		return ErrNoActiveQuestion
	}
	c.draft = text
	return nil
}

// SubmitAnswer pauses the timer and dispatches evaluation for the active
// question. Submission always wins a race against a concurrent expiry:
// the timer is paused synchronously before evaluation begins, and a late
// expiry signal is dropped because its stamped (epoch, question index)
// context no longer matches the live session.
func (c *Controller) SubmitAnswer(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuestionActive {
		return ErrNoActiveQuestion
	}

	c.timer.Pause()
	elapsed := c.timer.Elapsed()
	idx := c.session.CurrentQuestionIndex
	question := c.session.Questions[idx]

	c.state = StateEvaluating
	c.session.IsPaused = true
	c.dispatchEvaluationLocked(question, idx, text, text, elapsed)
	c.notify("answer_submitted", map[string]interface{}{"questionIndex": idx})
	return nil
}

// onTimerExpired is the timer's expiry callback, carrying the (epoch,
// question index) stamped into the countdown when it was armed. A signal
// whose stamp no longer matches the live session arrived after the
// question was submitted or the session replaced, and is dropped. The
// draft text becomes the answer; an empty draft is stored as a sentinel
// but evaluated as the empty answer it is, so it scores zero.
func (c *Controller) onTimerExpired(epoch uint64, idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuestionActive || c.session == nil ||
		epoch != c.epoch || idx != c.session.CurrentQuestionIndex {
		// Stale expiry from a countdown the session has moved past.
		return
	}

	metrics.TimerExpired()
	question := c.session.Questions[idx]

	evalText := c.draft
	storedText := c.draft
	if strings.TrimSpace(storedText) == "" {
		storedText = noAnswerSentinel
	}

	c.state = StateEvaluating
	c.session.IsPaused = true
	c.dispatchEvaluationLocked(question, idx, evalText, storedText, question.TimeLimit)
	c.notify("timer_expired", map[string]interface{}{"questionIndex": idx})
}

// dispatchEvaluationLocked hands the answer to the provider on a separate
// goroutine. The captured (candidateID, questionIndex, epoch) triple
// identifies the originating context so a stale result can be dropped.
func (c *Controller) dispatchEvaluationLocked(question models.Question, idx int, evalText, storedText string, timeSpent int) {
	candidateID := c.candidateID
	epoch := c.epoch

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.evalTimeout)
		defer cancel()

		eval, err := c.provider.Evaluate(ctx, question, evalText, timeSpent)
		c.handleEvaluationResult(candidateID, idx, epoch, question, storedText, timeSpent, eval, err)
	}()
}

func (c *Controller) handleEvaluationResult(
	candidateID string,
	idx int,
	epoch uint64,
	question models.Question,
	storedText string,
	timeSpent int,
	eval *evaluator.Evaluation,
	evalErr error,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch || c.state != StateEvaluating || c.session == nil ||
		c.candidateID != candidateID || c.session.CurrentQuestionIndex != idx {
		c.logger.Debug("dropping stale evaluation result",
			zap.String("candidateId", candidateID),
			zap.Int("questionIndex", idx))
		return
	}

	if evalErr != nil {
		metrics.EvaluationFailed(c.provider.Name())
		c.logger.Warn("evaluation failed, returning question to candidate",
			zap.Int("questionIndex", idx),
			zap.Error(evalErr))
		c.state = StateQuestionActive
		c.session.IsPaused = false
		if c.timer.TimeLeft() > 0 {
			c.timer.Resume()
		} else {
			// The countdown is spent and cannot resume. A grace countdown
			// re-expires the question and retries the evaluation.
			c.armTimerLocked(evaluationRetryGrace, idx)
		}
		c.notify("evaluation_failed", map[string]interface{}{
			"questionIndex": idx,
			"message":       "Evaluation failed. Please submit your answer again.",
		})
		return
	}

	answer := models.Answer{
		QuestionID:  question.ID,
		Question:    question.Text,
		Answer:      storedText,
		TimeSpent:   timeSpent,
		Difficulty:  question.Difficulty,
		Score:       eval.Score,
		Feedback:    eval.Feedback,
		SubmittedAt: c.clk.Now(),
	}

	updated, err := c.repo.AppendAnswer(candidateID, answer)
	if err != nil {
		c.abortLocked("failed to record answer", err)
		return
	}

	c.appendMessageLocked(models.MessageAnswer, storedText, &idx)
	feedback := fmt.Sprintf("Score: %.0f/10. %s", eval.Score, eval.Feedback)
	c.appendMessageLocked(models.MessageSystem, feedback, &idx)

	if idx+1 < models.TotalQuestions {
		c.session.CurrentQuestionIndex = idx + 1
		c.draft = ""
		c.activateQuestionLocked(idx + 1)
		c.notify("question_advanced", c.snapshotLocked())
		return
	}

	c.completeLocked(updated)
}

// completeLocked aggregates the full answer set and finalizes the
// candidate record. Fewer than six recorded answers at this point is an
// invariant violation and aborts the session without touching the record.
func (c *Controller) completeLocked(candidate *models.Candidate) {
	if len(candidate.Answers) != models.TotalQuestions {
		c.abortLocked("completion attempted with incomplete answer set",
			fmt.Errorf("have %d answers, want %d", len(candidate.Answers), models.TotalQuestions))
		return
	}

	score, summary := evaluator.Aggregate(candidate.Answers)
	if _, err := c.repo.CompleteInterview(candidate.ID, score, summary); err != nil {
		c.abortLocked("failed to finalize interview", err)
		return
	}

	now := c.clk.Now()
	c.session.EndTime = &now
	c.session.IsPaused = false
	c.timer.Stop()
	c.state = StateCompleted
	c.appendMessageLocked(models.MessageSystem,
		fmt.Sprintf("Interview complete. Final score: %.1f/10.", score), nil)

	metrics.InterviewCompleted()
	metrics.InterviewEnded()
	c.logger.Info("interview completed",
		zap.String("candidateId", candidate.ID),
		zap.Float64("score", score))
	c.notify("interview_completed", map[string]interface{}{
		"candidateId": candidate.ID,
		"score":       score,
	})
}

// activateQuestionLocked asks question idx and starts its full-duration
// timer. The timer reset cancels any countdown left over from the
// previous question.
func (c *Controller) activateQuestionLocked(idx int) {
	q := c.session.Questions[idx]
	content := fmt.Sprintf("Question %d of %d (%s, %d seconds): %s",
		idx+1, models.TotalQuestions, q.Difficulty, q.TimeLimit, q.Text)
	c.appendMessageLocked(models.MessageQuestion, content, &idx)

	c.state = StateQuestionActive
	c.session.IsPaused = false
	c.armTimerLocked(time.Duration(q.TimeLimit)*time.Second, idx)
}

// armTimerLocked starts a countdown whose expiry closure carries the
// current epoch and the question index it was armed for.
func (c *Controller) armTimerLocked(d time.Duration, idx int) {
	epoch := c.epoch
	c.timer.Reset(d, func() { c.onTimerExpired(epoch, idx) })
	c.timer.Start()
}

// PendingResumption reports the most recently active unfinished candidate,
// for the welcome-back prompt. Only meaningful while no session is live.
func (c *Controller) PendingResumption() (*models.Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateQuestionActive || c.state == StateEvaluating {
		return nil, ErrSessionActive
	}
	candidate, err := c.repo.FindMostRecentUnfinished()
	if errors.Is(err, repository.ErrCandidateNotFound) {
		return nil, ErrNoPendingResumption
	}
	return candidate, err
}

// ResumeContinue re-enters QuestionActive at the stored question index.
// Questions are regenerated deterministically from the stored resume
// content, and the question gets a fresh full-duration timer because
// in-flight elapsed time is not durably persisted.
func (c *Controller) ResumeContinue() (*models.InterviewSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateQuestionActive || c.state == StateEvaluating {
		return nil, ErrSessionActive
	}
	candidate, err := c.repo.FindMostRecentUnfinished()
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrNoPendingResumption
		}
		return nil, err
	}

	idx := candidate.CurrentQuestionIndex
	if idx >= models.TotalQuestions {
		return nil, fmt.Errorf("candidate %s has no remaining questions", candidate.ID)
	}

	c.candidateID = candidate.ID
	c.epoch++
	c.draft = ""
	c.session = &models.InterviewSession{
		CandidateID:          candidate.ID,
		Questions:            c.generator.Generate(candidate.ResumeContent),
		CurrentQuestionIndex: idx,
		StartTime:            c.clk.Now(),
	}
	c.appendMessageLocked(models.MessageSystem,
		fmt.Sprintf("Welcome back, %s. Resuming your interview at question %d of %d.",
			candidate.Name, idx+1, models.TotalQuestions), nil)
	c.activateQuestionLocked(idx)

	metrics.InterviewStarted()
	c.notify("interview_resumed", c.snapshotLocked())
	return c.session, nil
}

// ResumeRestart wipes the unfinished candidate's interview fields and
// leaves the candidate loaded, ready for a fresh start.
func (c *Controller) ResumeRestart() (*models.Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateQuestionActive || c.state == StateEvaluating {
		return nil, ErrSessionActive
	}
	candidate, err := c.repo.FindMostRecentUnfinished()
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrNoPendingResumption
		}
		return nil, err
	}

	reset, err := c.repo.ResetInterviewFields(candidate.ID)
	if err != nil {
		return nil, err
	}

	c.candidateID = reset.ID
	c.session = nil
	c.epoch++
	c.state = StateAwaitingStart
	c.notify("interview_restarted", reset)
	return reset, nil
}

// SwitchCandidate clears the active binding and returns to Idle. The
// unfinished candidate keeps its stored progress for a later resume.
func (c *Controller) SwitchCandidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.notify("candidate_switched", nil)
}

// ResetCandidate clears a candidate's interview progress. If that
// candidate is currently bound, the live session is torn down too.
func (c *Controller) ResetCandidate(id string) (*models.Candidate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reset, err := c.repo.ResetInterviewFields(id)
	if err != nil {
		return nil, err
	}
	if c.candidateID == id {
		c.teardownLocked()
	}
	c.notify("candidate_reset", reset)
	return reset, nil
}

// Snapshot returns a copy of the observable session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Snapshot is the read-only view served to UI collaborators.
type Snapshot struct {
	State       State                    `json:"state"`
	CandidateID string                   `json:"candidateId,omitempty"`
	Session     *models.InterviewSession `json:"session,omitempty"`
	TimeLeft    int                      `json:"timeLeft"`
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:       c.state,
		CandidateID: c.candidateID,
		TimeLeft:    c.timer.TimeLeft(),
	}
	if c.session != nil {
		copied := *c.session
		copied.Messages = append([]models.ChatMessage(nil), c.session.Messages...)
		copied.Questions = append([]models.Question(nil), c.session.Questions...)
		snap.Session = &copied
	}
	return snap
}

// WaitForEvaluations blocks until every dispatched evaluation has been
// handled or dropped. Test hook.
func (c *Controller) WaitForEvaluations() {
	c.inflight.Wait()
}

func (c *Controller) abortLocked(reason string, err error) {
	c.logger.Error("aborting session",
		zap.String("reason", reason),
		zap.String("candidateId", c.candidateID),
		zap.Error(err))
	c.teardownLocked()
	c.notify("session_aborted", map[string]interface{}{"reason": reason})
}

// teardownLocked cancels the timer, invalidates in-flight evaluations,
// and returns the machine to Idle. The repository is never touched here.
func (c *Controller) teardownLocked() {
	wasLive := c.state == StateQuestionActive || c.state == StateEvaluating
	c.timer.Stop()
	c.epoch++
	c.session = nil
	c.candidateID = ""
	c.draft = ""
	c.state = StateIdle
	if wasLive {
		metrics.InterviewEnded()
	}
}

func (c *Controller) appendMessageLocked(msgType, content string, questionIndex *int) {
	if c.session == nil {
		return
	}
	var idxCopy *int
	if questionIndex != nil {
		v := *questionIndex
		idxCopy = &v
	}
	c.session.Messages = append(c.session.Messages, models.ChatMessage{
		ID:            uuid.New().String(),
		Type:          msgType,
		Content:       content,
		Timestamp:     c.clk.Now(),
		QuestionIndex: idxCopy,
	})
}

func (c *Controller) notify(eventType string, payload interface{}) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(eventType, payload)
}

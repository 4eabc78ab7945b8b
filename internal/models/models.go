package models

import (
	"time"
)

// Difficulty of an interview question. The session always asks exactly two
// questions per difficulty, in ascending order.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	QuestionsPerDifficulty = 2
	TotalQuestions         = 6
)

// TimeLimitFor returns the per-question time budget in seconds.
func TimeLimitFor(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyMedium:
		return 60
	case DifficultyHard:
		return 120
	default:
		return 0
	}
}

// Difficulties returns the three levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Question is a single interview question assigned to a session.
type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
	TimeLimit  int        `json:"timeLimit"` // seconds
	Category   string     `json:"category"`
}

// Answer records one evaluated response. Answers are created only by the
// evaluation pipeline and are immutable once appended to a candidate.
type Answer struct {
	QuestionID  string     `json:"questionId"`
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	TimeSpent   int        `json:"timeSpent"` // seconds, <= question time limit
	Difficulty  Difficulty `json:"difficulty"`
	Score       float64    `json:"score"`
	Feedback    string     `json:"feedback"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

// Candidate is the durable record of one interviewee. The repository is the
// single source of truth for these; session state is rebuilt from them on
// resume.
type Candidate struct {
	ID                   string     `gorm:"primaryKey" json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	ResumeContent        string     `gorm:"type:text" json:"resumeContent,omitempty"`
	ResumeFileName       string     `json:"resumeFileName,omitempty"`
	InterviewStarted     bool       `gorm:"not null;default:false" json:"interviewStarted"`
	InterviewCompleted   bool       `gorm:"not null;default:false" json:"interviewCompleted"`
	CurrentQuestionIndex int        `gorm:"not null;default:0" json:"currentQuestionIndex"`
	Answers              []Answer   `gorm:"serializer:json" json:"answers"`
	Score                *float64   `json:"score,omitempty"`
	Summary              string     `gorm:"type:text" json:"summary,omitempty"`
	ReportExported       bool       `gorm:"not null;default:false;index" json:"-"`
	ReportExportedAt     *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `gorm:"index" json:"updatedAt"`
}

// CandidateProfile is the input consumed from the resume-parsing
// collaborator when seeding a new candidate.
type CandidateProfile struct {
	Name           string
	Email          string
	Phone          string
	ResumeContent  string
	ResumeFileName string
}

// Chat message types appearing in a session transcript.
const (
	MessageSystem   = "system"
	MessageQuestion = "question"
	MessageAnswer   = "answer"
)

// ChatMessage is one entry of the append-only session transcript.
type ChatMessage struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	Timestamp     time.Time `json:"timestamp"`
	QuestionIndex *int      `json:"questionIndex,omitempty"`
}

// InterviewSession is the in-flight state of one candidate's attempt. It is
// discarded on completion or reset; the candidate record is the durable
// result.
type InterviewSession struct {
	CandidateID          string        `json:"candidateId"`
	Questions            []Question    `json:"questions"`
	CurrentQuestionIndex int           `json:"currentQuestionIndex"`
	StartTime            time.Time     `json:"startTime"`
	EndTime              *time.Time    `json:"endTime,omitempty"`
	IsPaused             bool          `json:"isPaused"`
	Messages             []ChatMessage `json:"messages"`
}

package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// ResumePromptResponse describes the unfinished interview offered to the UI
// at candidate-load time, together with the decisions it may take.
type ResumePromptResponse struct {
	Candidate         *Candidate `json:"candidate"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	TotalQuestions    int        `json:"totalQuestions"`
	Decisions         []string   `json:"decisions"`
}

package dto

import "time"

// LearnerProfileRequest carries the intake form data used for field
// detection and question sourcing.
// @Description Learner background information
type LearnerProfileRequest struct {
	FieldOfStudy   string `json:"field_of_study"`
	CurrentSkills  string `json:"current_skills"`
	Interests      string `json:"interests"`
	Goals          string `json:"goals"`
	EducationLevel string `json:"education_level"`
}

// ComposeAssignmentRequest starts one assessment composition.
// @Description Request body for composing an assessment
type ComposeAssignmentRequest struct {
	Profile        LearnerProfileRequest `json:"profile"`
	TotalQuestions int                   `json:"total_questions"`
}

// QuestionResponse is a single question as shown to the learner. The
// correct answer and explanation are deliberately absent.
type QuestionResponse struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
}

// AssignmentResponse is the composed assessment handed to the UI.
type AssignmentResponse struct {
	AttemptID string             `json:"attempt_id"`
	Field     string             `json:"field"`
	Questions []QuestionResponse `json:"questions"`
	Short     bool               `json:"short,omitempty"`
}

// AnswerSubmission is one answered (or skipped) question. A skipped
// question is submitted with its question id and an empty answer.
type AnswerSubmission struct {
	QuestionID  string `json:"question_id"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

// EvaluateAttemptRequest submits a finished attempt for evaluation.
// Answers must carry one row per composed question, skipped ones included.
// When the assembled set is still cached server-side any omitted question
// is recovered from it and graded as unanswered; once the cache entry has
// expired the submitted rows are the only record of the attempt's set.
// @Description Request body for evaluating an attempt
type EvaluateAttemptRequest struct {
	AttemptID   string                `json:"attempt_id"`
	Profile     LearnerProfileRequest `json:"profile"`
	Status      string                `json:"status"`
	StartedAt   time.Time             `json:"started_at"`
	CompletedAt time.Time             `json:"completed_at"`
	Answers     []AnswerSubmission    `json:"answers"`
}

// EvaluationResponse is one question's grading result.
type EvaluationResponse struct {
	QuestionID       string   `json:"question_id"`
	Category         string   `json:"category"`
	IsCorrect        bool     `json:"is_correct"`
	Accuracy         float64  `json:"accuracy"`
	ExplanationScore float64  `json:"explanation_score"`
	ReasoningScore   float64  `json:"reasoning_score"`
	Total            float64  `json:"total"`
	Feedback         string   `json:"feedback"`
	Suggestions      []string `json:"suggestions"`
	CorrectAnswer    string   `json:"correct_answer"`
	Explanation      string   `json:"explanation"`
}

// CategoryScoreResponse aggregates one category in the report.
type CategoryScoreResponse struct {
	Total      float64 `json:"total"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// AttemptReportResponse is the final report for an evaluated attempt.
type AttemptReportResponse struct {
	AttemptID        string                           `json:"attempt_id"`
	TotalScore       float64                          `json:"total_score"`
	MaxScore         float64                          `json:"max_score"`
	Percentage       float64                          `json:"percentage"`
	Grade            string                           `json:"grade"`
	CategoryScores   map[string]CategoryScoreResponse `json:"category_scores"`
	Strengths        []string                         `json:"strengths"`
	ImprovementAreas []string                         `json:"improvement_areas"`
	OverallFeedback  string                           `json:"overall_feedback"`
	TimeTakenSeconds float64                          `json:"time_taken_seconds"`
	Evaluations      []EvaluationResponse             `json:"evaluations"`
}

// FieldInfoResponse describes one study field's weight tables.
type FieldInfoResponse struct {
	Field             string         `json:"field"`
	CategoryWeights   map[string]int `json:"category_weights"`
	DifficultyWeights map[string]int `json:"difficulty_weights"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

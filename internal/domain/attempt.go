package domain

import "time"

// AttemptStatus models the attempt lifecycle:
// NotStarted -> InProgress -> Submitted|TimedOut -> Evaluated.
type AttemptStatus string

const (
	AttemptNotStarted AttemptStatus = "not_started"
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
	AttemptTimedOut   AttemptStatus = "timed_out"
	AttemptEvaluated  AttemptStatus = "evaluated"
)

// Evaluable reports whether an attempt in this status may enter evaluation.
// Only submitted and timed-out attempts qualify; a timed-out attempt is
// auto-submitted with whatever answers existed at that instant.
func (s AttemptStatus) Evaluable() bool {
	return s == AttemptSubmitted || s == AttemptTimedOut
}

// AttemptAnswer is a learner's response to one question.
type AttemptAnswer struct {
	QuestionID  string
	Answer      string
	Explanation string
}

// Attempt is one learner's pass over an assembled set. Answers are keyed by
// question id; QuestionIDs preserves the assembled order, which fixes the
// evaluation order.
type Attempt struct {
	ID          string
	Profile     LearnerProfile
	QuestionIDs []string
	Answers     map[string]AttemptAnswer
	Status      AttemptStatus
	StartedAt   time.Time
	CompletedAt time.Time
}

// TimeTaken derives the attempt duration. Zero when timestamps are missing.
func (a *Attempt) TimeTaken() time.Duration {
	if a.StartedAt.IsZero() || a.CompletedAt.IsZero() {
		return 0
	}
	return a.CompletedAt.Sub(a.StartedAt)
}

// ResponseEvaluation is the immutable per-question grading result. All
// sub-scores live in [0,10]; Total is the rubric-weighted combination.
type ResponseEvaluation struct {
	QuestionID       string
	Category         string
	IsCorrect        bool
	Accuracy         float64
	ExplanationScore float64
	ReasoningScore   float64
	Total            float64
	Feedback         string
	Suggestions      []string
}

// CategoryScore aggregates evaluation totals for one category.
type CategoryScore struct {
	Total      float64
	Max        float64
	Percentage float64
}

// AttemptReport is the aggregate produced once per evaluated attempt.
type AttemptReport struct {
	AttemptID        string
	TotalScore       float64
	MaxScore         float64
	Percentage       float64
	Grade            string
	CategoryScores   map[string]CategoryScore
	Strengths        []string
	ImprovementAreas []string
	OverallFeedback  string
	TimeTaken        time.Duration
}

package domain

import (
	"time"
)

// Question sources.
const (
	SourceAdmin   = "admin"
	SourceAI      = "ai"
	SourceCurated = "curated"
)

// OptionCount is the number of choices every question must carry.
const OptionCount = 4

// Question represents a multiple-choice question in the domain.
type Question struct {
	ID            string
	Category      string
	Difficulty    string
	Text          string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Enrichment    string // optional supplementary material
	Source        string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the structural invariants of a question. Questions that
// fail validation are rejected at sourcing time and never enter an
// assembled set.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if q.Category == "" {
		return NewValidationError("category is required")
	}
	if q.Difficulty != DifficultyEasy && q.Difficulty != DifficultyMedium && q.Difficulty != DifficultyHard {
		return NewValidationError("difficulty must be easy, medium or hard")
	}
	if len(q.Options) != OptionCount {
		return NewValidationError("question must have exactly 4 options")
	}
	for _, opt := range q.Options {
		if q.CorrectAnswer == opt {
			return nil
		}
	}
	return NewValidationError("correct answer must be one of the options")
}

// FieldMapping relates a question to a study field with a sourcing weight.
// Mappings bias sourcing; category and difficulty remain the hard filters.
type FieldMapping struct {
	QuestionID string
	Field      StudyField
	Weight     int
	Primary    bool
	CreatedAt  time.Time
}

// AssemblyRequest drives one composer invocation.
type AssemblyRequest struct {
	Profile        LearnerProfile
	TotalQuestions int
}

// AssembledSet is the ordered, deduplicated question set handed to the UI.
// Short is true when every source was exhausted before reaching the
// requested total; that is a documented degraded result, not an error.
type AssembledSet struct {
	AttemptID string
	Field     StudyField
	Questions []*Question
	Short     bool
}

package domain

import (
	"context"
	"time"
)

// QuestionRepository is the narrow read/write contract the engine holds
// against the persistence collaborator. Read paths return empty slices on
// "not found", never an error.
type QuestionRepository interface {
	// FieldMapped returns active questions mapped to the given study field,
	// filtered by category and difficulty. Implementations over-fetch
	// (roughly 2x count) in random order; the composer applies its own
	// random selection on top.
	FieldMapped(ctx context.Context, field StudyField, category, difficulty string, count int) ([]*Question, error)

	// General returns active questions filtered by category and difficulty
	// without any field restriction, with the same over-fetch behavior.
	General(ctx context.Context, category, difficulty string, count int) ([]*Question, error)

	// GetByID retrieves a single question. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*Question, error)

	// PersistGenerated upserts machine-generated questions by their
	// deterministic ids and upserts the corresponding field mappings.
	// Mapping conflicts are tolerated silently.
	PersistGenerated(ctx context.Context, questions []*Question, field StudyField) error

	// RecordUsage bumps per-question attempt/correct counters. Best-effort;
	// callers swallow failures.
	RecordUsage(ctx context.Context, questionID string, correct bool) error
}

// QuestionGenerator is the contract to the external generative provider.
// It is assumed slow and rate-limited; the composer invokes it at most once
// per (category, difficulty) cell per assembly.
type QuestionGenerator interface {
	Generate(ctx context.Context, category, difficulty string, count int, excludedTexts []string) ([]*Question, error)
}

// FeedbackGenerator is the contract to the narrative-feedback collaborator.
// Failures trigger the aggregator's deterministic offline template.
type FeedbackGenerator interface {
	Summarize(ctx context.Context, evaluations []*ResponseEvaluation, categoryScores map[string]CategoryScore, percentage float64, profile LearnerProfile) (string, error)
}

// Cache abstracts the key/value cache used for assembled sets and the
// evaluate-once guard.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

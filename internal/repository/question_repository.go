package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"assessly/internal/domain"
	"assessly/internal/repository/models"
	"assessly/internal/util"

	"github.com/jmoiron/sqlx"
)

// overFetchFactor widens every "fetch N" read so the composer's own random
// selection has real candidates to choose from and repeated calls don't
// return a deterministic prefix.
const overFetchFactor = 2

const questionColumns = `
		id "id",
		category "category",
		difficulty "difficulty",
		question_text "question_text",
		options "options",
		correct_answer "correct_answer",
		explanation "explanation",
		enrichment "enrichment",
		source "source",
		active "active",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// FieldMapped implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) FieldMapped(ctx context.Context, field domain.StudyField, category, difficulty string, count int) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + `
	FROM questions q
	WHERE q.id IN (SELECT fm.question_id FROM field_mappings fm WHERE fm.field = :1)
	AND q.category = :2
	AND q.difficulty = :3
	AND q.active = 1
	AND q.deleted_at IS NULL
	ORDER BY DBMS_RANDOM.VALUE
	FETCH FIRST :4 ROWS ONLY`

	return a.queryQuestions(ctx, query, string(field), category, difficulty, count*overFetchFactor)
}

// General implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) General(ctx context.Context, category, difficulty string, count int) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + `
	FROM questions q
	WHERE q.category = :1
	AND q.difficulty = :2
	AND q.active = 1
	AND q.deleted_at IS NULL
	ORDER BY DBMS_RANDOM.VALUE
	FETCH FIRST :3 ROWS ONLY`

	return a.queryQuestions(ctx, query, category, difficulty, count*overFetchFactor)
}

// GetByID implements domain.QuestionRepository. Returns (nil, nil) when the
// question does not exist.
func (a *QuestionDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	var row models.Question
	query := `SELECT ` + questionColumns + `
	FROM questions q
	WHERE q.id = :1
	AND q.deleted_at IS NULL`

	err := a.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// PersistGenerated implements domain.QuestionRepository. Questions are
// upserted by their deterministic ids via MERGE, so repeated generation of
// the same content converges on one row. Field mappings are upserted the
// same way; a mapping that already exists is left untouched.
func (a *QuestionDatabaseAdapter) PersistGenerated(ctx context.Context, questions []*domain.Question, field domain.StudyField) error {
	questionMerge := `MERGE INTO questions q
	USING (SELECT :1 id FROM dual) src ON (q.id = src.id)
	WHEN NOT MATCHED THEN INSERT (
		id, category, difficulty, question_text, options,
		correct_answer, explanation, enrichment, source, active,
		created_at, updated_at
	) VALUES (
		:2, :3, :4, :5, :6, :7, :8, :9, :10, 1, :11, :12
	)`

	mappingMerge := `MERGE INTO field_mappings fm
	USING (SELECT :1 question_id, :2 field FROM dual) src
	ON (fm.question_id = src.question_id AND fm.field = src.field)
	WHEN NOT MATCHED THEN INSERT (question_id, field, weight, is_primary, created_at)
	VALUES (:3, :4, :5, :6, :7)`

	now := time.Now()
	for _, q := range questions {
		row := toModelQuestion(q)
		_, err := a.db.ExecContext(ctx, questionMerge,
			row.ID,
			row.ID,
			row.Category,
			row.Difficulty,
			row.QuestionText,
			row.Options,
			row.CorrectAnswer,
			row.Explanation,
			row.Enrichment,
			row.Source,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert generated question %s: %w", q.ID, err)
		}

		_, err = a.db.ExecContext(ctx, mappingMerge,
			row.ID,
			string(field),
			row.ID,
			string(field),
			100,
			1,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert field mapping for question %s: %w", q.ID, err)
		}
	}
	return nil
}

// RecordUsage implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) RecordUsage(ctx context.Context, questionID string, correct bool) error {
	correctDelta := 0
	if correct {
		correctDelta = 1
	}
	query := `MERGE INTO question_stats qs
	USING (SELECT :1 question_id FROM dual) src ON (qs.question_id = src.question_id)
	WHEN MATCHED THEN UPDATE SET
		attempts = qs.attempts + 1,
		correct_count = qs.correct_count + :2,
		updated_at = :3
	WHEN NOT MATCHED THEN INSERT (question_id, attempts, correct_count, updated_at)
	VALUES (:4, 1, :5, :6)`

	now := time.Now()
	_, err := a.db.ExecContext(ctx, query, questionID, correctDelta, now, questionID, correctDelta, now)
	if err != nil {
		return fmt.Errorf("failed to record usage for question %s: %w", questionID, err)
	}
	return nil
}

func (a *QuestionDatabaseAdapter) queryQuestions(ctx context.Context, query string, args ...interface{}) ([]*domain.Question, error) {
	rows, err := a.db.QueryxContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.Question{}, nil
		}
		return nil, fmt.Errorf("failed to execute question query: %w", err)
	}
	defer rows.Close()

	var out []*domain.Question
	for rows.Next() {
		var row models.Question
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		out = append(out, toDomainQuestion(&row))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during question rows iteration: %w", err)
	}

	if out == nil {
		return []*domain.Question{}, nil
	}
	return out, nil
}

// Helper functions for model conversion

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		Category:      m.Category,
		Difficulty:    m.Difficulty,
		Text:          m.QuestionText,
		Options:       []string(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation,
		Enrichment:    m.Enrichment.String,
		Source:        m.Source,
		Active:        m.Active == 1,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	active := 0
	if q.Active {
		active = 1
	}
	return &models.Question{
		ID:            q.ID,
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		QuestionText:  q.Text,
		Options:       models.StringSlice(q.Options),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Enrichment:    util.StringToNullString(q.Enrichment),
		Source:        q.Source,
		Active:        active,
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"assessly/internal/bank"
	"assessly/internal/config"
	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/engine"
	"assessly/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockQuestionRepo struct {
	mock.Mock
}

func (m *mockQuestionRepo) FieldMapped(ctx context.Context, field domain.StudyField, category, difficulty string, count int) ([]*domain.Question, error) {
	args := m.Called(ctx, field, category, difficulty, count)
	if qs := args.Get(0); qs != nil {
		return qs.([]*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuestionRepo) General(ctx context.Context, category, difficulty string, count int) ([]*domain.Question, error) {
	args := m.Called(ctx, category, difficulty, count)
	if qs := args.Get(0); qs != nil {
		return qs.([]*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuestionRepo) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if q := args.Get(0); q != nil {
		return q.(*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuestionRepo) PersistGenerated(ctx context.Context, questions []*domain.Question, field domain.StudyField) error {
	args := m.Called(ctx, questions, field)
	return args.Error(0)
}

func (m *mockQuestionRepo) RecordUsage(ctx context.Context, questionID string, correct bool) error {
	args := m.Called(ctx, questionID, correct)
	return args.Error(0)
}

// fakeCache is an in-memory domain.Cache for tests.
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

type serviceFixture struct {
	service AssessmentService
	repo    *mockQuestionRepo
	cache   *fakeCache
	bank    *bank.Bank
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("RecordUsage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	questionBank := bank.New()
	logger := zap.NewNop()

	composer := engine.NewComposer(repo, nil, questionBank, config.GenerationConfig{Enabled: false}, engine.NewPacer(0), logger)
	scorer := engine.NewScorer(config.RubricWeights{Accuracy: 0.6, Explanation: 0.25, Reasoning: 0.15})
	aggregator := engine.NewAggregator(nil, engine.NewPacer(0), logger)

	cache := newFakeCache()
	svc := NewAssessmentService(composer, scorer, aggregator, repo, questionBank, cache, engine.NewPacer(0), time.Hour, logger)

	return &serviceFixture{service: svc, repo: repo, cache: cache, bank: questionBank}
}

func composeRequest(total int) *dto.ComposeAssignmentRequest {
	return &dto.ComposeAssignmentRequest{
		Profile: dto.LearnerProfileRequest{
			FieldOfStudy: "Computer Science",
			Goals:        "become a backend engineer",
		},
		TotalQuestions: total,
	}
}

func TestComposeAssignment(t *testing.T) {
	fx := newServiceFixture(t)

	resp, err := fx.service.ComposeAssignment(context.Background(), composeRequest(5))
	require.NoError(t, err)

	assert.Len(t, resp.AttemptID, 26, "attempt id should be a ULID")
	assert.Equal(t, string(domain.FieldSTEM), resp.Field)
	assert.Len(t, resp.Questions, 5)
	assert.False(t, resp.Short)

	for _, q := range resp.Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 4)
	}

	// The full set, answers included, is cached for later evaluation.
	_, err = fx.cache.Get(context.Background(), "assessly:assessment:set:"+resp.AttemptID)
	assert.NoError(t, err)
}

func TestEvaluateAttemptRejectsNonEvaluableStatus(t *testing.T) {
	fx := newServiceFixture(t)

	for _, status := range []string{"not_started", "in_progress", "evaluated", "garbage"} {
		_, err := fx.service.EvaluateAttempt(context.Background(), &dto.EvaluateAttemptRequest{
			AttemptID: util.NewULID(),
			Status:    status,
		})
		require.Error(t, err, "status=%s", status)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeAttemptNotEvaluable, domainErr.Code, "status=%s", status)
	}
}

func TestEvaluateAttemptFullFlow(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	composed, err := fx.service.ComposeAssignment(ctx, composeRequest(5))
	require.NoError(t, err)

	explanation := "Because the documented behaviour matches this option and therefore it is the only consistent choice among the four presented here."

	req := &dto.EvaluateAttemptRequest{
		AttemptID:   composed.AttemptID,
		Status:      string(domain.AttemptSubmitted),
		StartedAt:   time.Now().Add(-15 * time.Minute),
		CompletedAt: time.Now(),
	}
	for _, q := range composed.Questions {
		full, ok := fx.bank.Lookup(q.ID)
		require.True(t, ok, "composed question %s should come from the bank", q.ID)
		req.Answers = append(req.Answers, dto.AnswerSubmission{
			QuestionID:  q.ID,
			Answer:      full.CorrectAnswer,
			Explanation: explanation,
		})
	}

	report, err := fx.service.EvaluateAttempt(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, composed.AttemptID, report.AttemptID)
	assert.Len(t, report.Evaluations, 5)
	assert.Equal(t, "A", report.Grade)
	assert.Greater(t, report.Percentage, 90.0)
	assert.NotEmpty(t, report.OverallFeedback)
	assert.NotEmpty(t, report.Strengths)
	assert.InDelta(t, 15*time.Minute.Seconds(), report.TimeTakenSeconds, 1.0)

	for _, eval := range report.Evaluations {
		assert.True(t, eval.IsCorrect)
		assert.NotEmpty(t, eval.CorrectAnswer, "the report reveals the correct answer")
		assert.NotEmpty(t, eval.Feedback)
	}

	// Usage stats are recorded per question.
	fx.repo.AssertNumberOfCalls(t, "RecordUsage", 5)
}

func TestEvaluateAttemptOnlyOnce(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	composed, err := fx.service.ComposeAssignment(ctx, composeRequest(3))
	require.NoError(t, err)

	req := &dto.EvaluateAttemptRequest{
		AttemptID: composed.AttemptID,
		Status:    string(domain.AttemptSubmitted),
	}

	_, err = fx.service.EvaluateAttempt(ctx, req)
	require.NoError(t, err)

	_, err = fx.service.EvaluateAttempt(ctx, req)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAttemptEvaluated, domainErr.Code)
}

func TestEvaluateAttemptGradesUnansweredQuestions(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	composed, err := fx.service.ComposeAssignment(ctx, composeRequest(4))
	require.NoError(t, err)

	// A timed-out attempt with no answers: every question still gets a
	// zero-score evaluation.
	report, err := fx.service.EvaluateAttempt(ctx, &dto.EvaluateAttemptRequest{
		AttemptID: composed.AttemptID,
		Status:    string(domain.AttemptTimedOut),
	})
	require.NoError(t, err)

	assert.Len(t, report.Evaluations, 4)
	assert.Equal(t, 0.0, report.Percentage)
	assert.Equal(t, "F", report.Grade)
	for _, eval := range report.Evaluations {
		assert.False(t, eval.IsCorrect)
		assert.Equal(t, 0.0, eval.Total)
	}
}

func TestEvaluateAttemptRehydratesOnCacheMiss(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	fx.repo.On("GetByID", mock.Anything, "bank-tech-easy-01").Return(nil, nil)

	full, ok := fx.bank.Lookup("bank-tech-easy-01")
	require.True(t, ok)

	report, err := fx.service.EvaluateAttempt(ctx, &dto.EvaluateAttemptRequest{
		AttemptID: util.NewULID(),
		Status:    string(domain.AttemptSubmitted),
		Answers: []dto.AnswerSubmission{
			{QuestionID: "bank-tech-easy-01", Answer: full.CorrectAnswer},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Evaluations, 1)
	assert.True(t, report.Evaluations[0].IsCorrect)
	fx.repo.AssertCalled(t, "GetByID", mock.Anything, "bank-tech-easy-01")
}

// Once the assembled set has fallen out of the cache the submitted rows are
// the only record of the attempt, so a skipped question sent with an empty
// answer must still receive a zero-score evaluation.
func TestEvaluateAttemptCacheMissGradesSkippedRow(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	fx.repo.On("GetByID", mock.Anything, "bank-tech-easy-01").Return(nil, nil)
	fx.repo.On("GetByID", mock.Anything, "bank-ana-med-01").Return(nil, nil)

	full, ok := fx.bank.Lookup("bank-tech-easy-01")
	require.True(t, ok)

	report, err := fx.service.EvaluateAttempt(ctx, &dto.EvaluateAttemptRequest{
		AttemptID: util.NewULID(),
		Status:    string(domain.AttemptSubmitted),
		Answers: []dto.AnswerSubmission{
			{QuestionID: "bank-tech-easy-01", Answer: full.CorrectAnswer},
			{QuestionID: "bank-ana-med-01", Answer: ""},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.Evaluations, 2)
	assert.True(t, report.Evaluations[0].IsCorrect)
	assert.False(t, report.Evaluations[1].IsCorrect)
	assert.Equal(t, 0.0, report.Evaluations[1].Total)
}

func TestEvaluateAttemptUnknownQuestion(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	fx.repo.On("GetByID", mock.Anything, "no-such-question").Return(nil, nil)

	_, err := fx.service.EvaluateAttempt(ctx, &dto.EvaluateAttemptRequest{
		AttemptID: util.NewULID(),
		Status:    string(domain.AttemptSubmitted),
		Answers: []dto.AnswerSubmission{
			{QuestionID: "no-such-question", Answer: "anything"},
		},
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
}

// Guards against accidental reseeding of the composer's randomness in a way
// that would make repeated compositions identical.
func TestComposeAssignmentVariesAcrossCalls(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	first, err := fx.service.ComposeAssignment(ctx, composeRequest(5))
	require.NoError(t, err)
	second, err := fx.service.ComposeAssignment(ctx, composeRequest(5))
	require.NoError(t, err)

	assert.NotEqual(t, first.AttemptID, second.AttemptID)
}

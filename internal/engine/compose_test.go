package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"assessly/internal/bank"
	"assessly/internal/config"
	"assessly/internal/domain"
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

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, category, difficulty string, count int, excludedTexts []string) ([]*domain.Question, error) {
	args := m.Called(ctx, category, difficulty, count, excludedTexts)
	if qs := args.Get(0); qs != nil {
		return qs.([]*domain.Question), args.Error(1)
	}
	return nil, args.Error(1)
}

func makeQuestion(id, text, category, difficulty, source string) *domain.Question {
	return &domain.Question{
		ID:            id,
		Category:      category,
		Difficulty:    difficulty,
		Text:          text,
		Options:       []string{"Alpha", "Beta", "Gamma", "Delta"},
		CorrectAnswer: "Alpha",
		Explanation:   "Alpha is the right choice here.",
		Source:        source,
		Active:        true,
	}
}

func stemProfile() domain.LearnerProfile {
	return domain.LearnerProfile{FieldOfStudy: "Computer Science"}
}

func newTestComposer(repo domain.QuestionRepository, gen domain.QuestionGenerator, genCfg config.GenerationConfig) *Composer {
	c := NewComposer(repo, gen, bank.New(), genCfg, NewPacer(0), zap.NewNop())
	c.newRand = func() *rand.Rand {
		return rand.New(rand.NewSource(99))
	}
	return c
}

func assertNoDuplicateTexts(t *testing.T, questions []*domain.Question) {
	t.Helper()
	seen := make(map[string]bool)
	for _, q := range questions {
		norm := util.NormalizeText(q.Text)
		assert.False(t, seen[norm], "duplicate normalized text %q", norm)
		seen[norm] = true
	}
}

func TestComposeExactCountFromBank(t *testing.T) {
	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	c := newTestComposer(repo, nil, config.GenerationConfig{Enabled: false})

	set, err := c.Compose(context.Background(), stemProfile(), 8)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldSTEM, set.Field)
	assert.Len(t, set.Questions, 8)
	assert.False(t, set.Short)
	assertNoDuplicateTexts(t, set.Questions)
}

func TestComposeIncludesAdminQuestions(t *testing.T) {
	adminA := makeQuestion("adm-1", "What does CPU stand for?", domain.CategoryTechnical, domain.DifficultyEasy, domain.SourceAdmin)
	adminB := makeQuestion("adm-2", "What does RAM stand for?", domain.CategoryTechnical, domain.DifficultyEasy, domain.SourceAdmin)

	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{adminA, adminB}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	c := newTestComposer(repo, nil, config.GenerationConfig{Enabled: false})

	set, err := c.Compose(context.Background(), stemProfile(), 5)
	require.NoError(t, err)
	require.Len(t, set.Questions, 5)
	assertNoDuplicateTexts(t, set.Questions)

	ids := make(map[string]bool)
	for _, q := range set.Questions {
		ids[q.ID] = true
	}
	assert.True(t, ids["adm-1"], "first admin question missing from set")
	assert.True(t, ids["adm-2"], "second admin question missing from set")
}

func TestComposeDeduplicatesRepeatedTexts(t *testing.T) {
	// Same text under two different ids must collapse to one slot.
	dupA := makeQuestion("dup-1", "Which protocol secures web traffic?", domain.CategoryTechnical, domain.DifficultyMedium, domain.SourceAdmin)
	dupB := makeQuestion("dup-2", "Which protocol SECURES web traffic??", domain.CategoryTechnical, domain.DifficultyMedium, domain.SourceAdmin)

	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{dupA, dupB}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	c := newTestComposer(repo, nil, config.GenerationConfig{Enabled: false})

	set, err := c.Compose(context.Background(), stemProfile(), 6)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 6)
	assertNoDuplicateTexts(t, set.Questions)
}

func TestComposeGenerationDisabledSkipsProvider(t *testing.T) {
	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	gen := new(mockGenerator)
	c := newTestComposer(repo, gen, config.GenerationConfig{Enabled: false, MaxPerCell: 5})

	set, err := c.Compose(context.Background(), stemProfile(), 7)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 7)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComposeProviderFailureFallsBackToBank(t *testing.T) {
	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("model overloaded"))

	c := newTestComposer(repo, gen, config.GenerationConfig{Enabled: true, MaxPerCell: 5})

	set, err := c.Compose(context.Background(), stemProfile(), 7)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 7)
	assert.False(t, set.Short)
	assertNoDuplicateTexts(t, set.Questions)
}

func TestComposeGeneratedQuestionsArePersisted(t *testing.T) {
	generated := []*domain.Question{
		makeQuestion("genq-0000000000000001", "Which sorting algorithm is stable?", domain.CategoryTechnical, domain.DifficultyMedium, domain.SourceAI),
		makeQuestion("genq-0000000000000002", "Which tree stays balanced on insert?", domain.CategoryTechnical, domain.DifficultyMedium, domain.SourceAI),
	}

	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("PersistGenerated", mock.Anything, mock.Anything, domain.FieldSTEM).Return(nil)

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(generated, nil)

	c := newTestComposer(repo, gen, config.GenerationConfig{Enabled: true, MaxPerCell: 5})

	set, err := c.Compose(context.Background(), stemProfile(), 6)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 6)
	assertNoDuplicateTexts(t, set.Questions)

	repo.AssertCalled(t, "PersistGenerated", mock.Anything, mock.Anything, domain.FieldSTEM)

	hasGenerated := false
	for _, q := range set.Questions {
		if q.Source == domain.SourceAI {
			hasGenerated = true
		}
	}
	assert.True(t, hasGenerated, "expected at least one generated question in the set")
}

func TestComposeMalformedGeneratedQuestionsAreDiscarded(t *testing.T) {
	malformed := &domain.Question{
		ID:         "genq-bad",
		Category:   domain.CategoryTechnical,
		Difficulty: domain.DifficultyMedium,
		Text:       "Broken question with too few options",
		Options:    []string{"Only", "Three", "Options"},
	}

	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{malformed}, nil)

	c := newTestComposer(repo, gen, config.GenerationConfig{Enabled: true, MaxPerCell: 5})

	set, err := c.Compose(context.Background(), stemProfile(), 5)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 5)
	for _, q := range set.Questions {
		assert.NotEqual(t, "genq-bad", q.ID)
	}
	// Nothing valid to persist.
	repo.AssertNotCalled(t, "PersistGenerated", mock.Anything, mock.Anything, mock.Anything)
}

func TestComposeStoreFailureDegradesToBank(t *testing.T) {
	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("ORA-12541: no listener"))
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("ORA-12541: no listener"))

	c := newTestComposer(repo, nil, config.GenerationConfig{Enabled: false})

	set, err := c.Compose(context.Background(), stemProfile(), 6)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 6)
	assert.False(t, set.Short)
}

func TestComposeShortSetWhenEverySourceExhausted(t *testing.T) {
	repo := new(mockQuestionRepo)
	repo.On("FieldMapped", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)
	repo.On("General", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Question{}, nil)

	c := newTestComposer(repo, nil, config.GenerationConfig{Enabled: false})

	// The curated bank holds 9 questions for the primary category; asking
	// for far more yields a documented short set, not an error.
	set, err := c.Compose(context.Background(), stemProfile(), 40)
	require.NoError(t, err)
	assert.Len(t, set.Questions, 9)
	assert.True(t, set.Short)
	assertNoDuplicateTexts(t, set.Questions)
}

func TestComposeRejectsNonPositiveTotal(t *testing.T) {
	c := newTestComposer(new(mockQuestionRepo), nil, config.GenerationConfig{})

	_, err := c.Compose(context.Background(), stemProfile(), 0)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
}

package engine

import (
	"math/rand"
	"testing"

	"assessly/internal/bank"
	"assessly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyFillProducesRequestedCount(t *testing.T) {
	b := bank.New()

	tests := []struct {
		field domain.StudyField
		total int
	}{
		{domain.FieldSTEM, 10},
		{domain.FieldSTEM, 1},
		{domain.FieldOther, 10},
	}
	for _, tt := range tests {
		rng := rand.New(rand.NewSource(11))
		picked, err := legacyFill(b, tt.field, tt.total, rng)
		require.NoError(t, err, "field=%s total=%d", tt.field, tt.total)
		assert.Len(t, picked, tt.total, "field=%s total=%d", tt.field, tt.total)
	}
}

func TestLegacyFillNeverExceedsTotal(t *testing.T) {
	b := bank.New()
	for _, field := range domain.AllStudyFields {
		for total := 1; total <= 30; total++ {
			rng := rand.New(rand.NewSource(int64(total)))
			picked, err := legacyFill(b, field, total, rng)
			require.NoError(t, err, "field=%s total=%d", field, total)
			assert.NotEmpty(t, picked)
			assert.LessOrEqual(t, len(picked), total, "field=%s total=%d", field, total)
		}
	}
}

func TestLegacyFillRejectsNonPositiveTotal(t *testing.T) {
	b := bank.New()
	rng := rand.New(rand.NewSource(1))

	_, err := legacyFill(b, domain.FieldSTEM, 0, rng)
	assert.Error(t, err)

	_, err = legacyFill(b, domain.FieldSTEM, -3, rng)
	assert.Error(t, err)
}

func TestLegacyFillQuestionsAreValid(t *testing.T) {
	b := bank.New()
	rng := rand.New(rand.NewSource(3))

	picked, err := legacyFill(b, domain.FieldBusiness, 12, rng)
	require.NoError(t, err)
	for _, q := range picked {
		assert.NoError(t, q.Validate())
		assert.Equal(t, domain.SourceCurated, q.Source)
	}
}

package bank

import (
	"math/rand"
	"testing"

	"assessly/internal/domain"
	"assessly/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankSeedsEveryCell(t *testing.T) {
	b := New()

	for _, cat := range domain.Categories {
		for _, diff := range domain.Difficulties {
			cell := b.Questions(cat, diff)
			assert.Len(t, cell, 3, "cell %s/%s", cat, diff)
			for _, q := range cell {
				assert.NoError(t, q.Validate(), "question %s", q.ID)
				assert.Equal(t, domain.SourceCurated, q.Source)
				assert.True(t, q.Active)
			}
		}
		assert.Equal(t, 9, b.CategorySize(cat))
	}
}

func TestBankSeedTextsAreUnique(t *testing.T) {
	b := New()
	seen := make(map[string]string)
	for _, q := range b.All() {
		norm := util.NormalizeText(q.Text)
		if prev, ok := seen[norm]; ok {
			t.Fatalf("questions %s and %s share normalized text %q", prev, q.ID, norm)
		}
		seen[norm] = q.ID
	}
}

func TestBankLookup(t *testing.T) {
	b := New()

	q, ok := b.Lookup("bank-tech-easy-01")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryTechnical, q.Category)
	assert.Equal(t, domain.DifficultyEasy, q.Difficulty)

	_, ok = b.Lookup("no-such-id")
	assert.False(t, ok)
}

func TestBankSampleRespectsExclusions(t *testing.T) {
	b := New()
	rng := rand.New(rand.NewSource(42))

	exclude := make(map[string]bool)
	for _, q := range b.Questions(domain.CategoryTechnical, domain.DifficultyEasy) {
		exclude[util.NormalizeText(q.Text)] = true
	}
	assert.Empty(t, b.Sample(domain.CategoryTechnical, domain.DifficultyEasy, 3, exclude, rng))

	got := b.Sample(domain.CategoryTechnical, domain.DifficultyEasy, 2, nil, rng)
	assert.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestBankSampleCapsAtCellSize(t *testing.T) {
	b := New()
	rng := rand.New(rand.NewSource(7))

	got := b.Sample(domain.CategoryAnalytical, domain.DifficultyHard, 10, nil, rng)
	assert.Len(t, got, 3)
}

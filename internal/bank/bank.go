// Package bank holds the static curated question bank used as the last
// sourcing tier. The bank is immutable after construction and safe for
// unsynchronized concurrent reads.
package bank

import (
	"math/rand"

	"assessly/internal/domain"
	"assessly/internal/util"
)

type cellKey struct {
	category   string
	difficulty string
}

// Bank indexes the curated questions by (category, difficulty) cell and id.
type Bank struct {
	byCell map[cellKey][]domain.Question
	byID   map[string]domain.Question
}

// New builds the bank from the embedded seed data. Entries failing
// structural validation are dropped rather than served.
func New() *Bank {
	b := &Bank{
		byCell: make(map[cellKey][]domain.Question),
		byID:   make(map[string]domain.Question),
	}
	for _, q := range seedQuestions {
		q.Source = domain.SourceCurated
		q.Active = true
		if err := q.Validate(); err != nil {
			continue
		}
		key := cellKey{q.Category, q.Difficulty}
		b.byCell[key] = append(b.byCell[key], q)
		b.byID[q.ID] = q
	}
	return b
}

// Questions returns a copy of the cell's question list.
func (b *Bank) Questions(category, difficulty string) []*domain.Question {
	cell := b.byCell[cellKey{category, difficulty}]
	out := make([]*domain.Question, 0, len(cell))
	for i := range cell {
		q := cell[i]
		out = append(out, &q)
	}
	return out
}

// Lookup retrieves a bank question by id.
func (b *Bank) Lookup(id string) (*domain.Question, bool) {
	q, ok := b.byID[id]
	if !ok {
		return nil, false
	}
	return &q, true
}

// CategorySize reports how many bank questions exist for a category across
// all difficulties.
func (b *Bank) CategorySize(category string) int {
	n := 0
	for _, diff := range domain.Difficulties {
		n += len(b.byCell[cellKey{category, diff}])
	}
	return n
}

// All returns every bank question. Used by the seeding command.
func (b *Bank) All() []*domain.Question {
	out := make([]*domain.Question, 0, len(b.byID))
	for id := range b.byID {
		q := b.byID[id]
		out = append(out, &q)
	}
	return out
}

// Sample draws up to n questions from a cell uniformly at random without
// replacement, skipping any whose normalized text appears in exclude.
func (b *Bank) Sample(category, difficulty string, n int, exclude map[string]bool, rng *rand.Rand) []*domain.Question {
	if n <= 0 {
		return nil
	}
	candidates := b.Questions(category, difficulty)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var out []*domain.Question
	for _, q := range candidates {
		if len(out) == n {
			break
		}
		if exclude != nil && exclude[util.NormalizeText(q.Text)] {
			continue
		}
		out = append(out, q)
	}
	return out
}

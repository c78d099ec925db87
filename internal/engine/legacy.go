package engine

import (
	"fmt"
	"math"
	"math/rand"

	"assessly/internal/bank"
	"assessly/internal/domain"
	"assessly/internal/util"
)

// legacyFill is the older, simpler distribution algorithm kept as the
// whole-pipeline fallback. It spreads the total across every category by
// weight, splits each category by difficulty, and draws from the curated
// bank only. The used set is scoped to this call; it never leaks across
// assemblies. If a cell's bank is exhausted the draw is allowed to repeat
// bank content rather than come up short.
func legacyFill(b *bank.Bank, field domain.StudyField, total int, rng *rand.Rand) ([]*domain.Question, error) {
	if total <= 0 {
		return nil, fmt.Errorf("legacy fill: total must be positive, got %d", total)
	}

	categoryWeights := domain.CategoryWeights(field)
	difficultyDist := domain.DifficultyWeights(field)

	counts := make(map[string]int, len(domain.Categories))
	allocated := 0
	for _, cat := range domain.Categories {
		counts[cat] = int(math.Round(float64(categoryWeights[cat]) / 100.0 * float64(total)))
		allocated += counts[cat]
	}

	// Correct any mismatch on the highest-weight category, clamped to 1.
	if allocated != total {
		primary := PrimaryCategory(field)
		counts[primary] += total - allocated
		if counts[primary] < 1 {
			counts[primary] = 1
		}
	}

	used := make(map[string]bool)
	var picked []*domain.Question

	for _, cat := range domain.Categories {
		categoryCount := counts[cat]
		if categoryCount <= 0 {
			continue
		}
		for _, diff := range domain.Difficulties {
			cellCount := int(math.Round(float64(difficultyDist[diff]) / 100.0 * float64(categoryCount)))
			if cellCount <= 0 {
				continue
			}

			fresh := b.Sample(cat, diff, cellCount, used, rng)
			for _, q := range fresh {
				used[util.NormalizeText(q.Text)] = true
				picked = append(picked, q)
			}
			if len(fresh) < cellCount {
				// Cell exhausted; repeats are permitted here.
				repeats := b.Sample(cat, diff, cellCount-len(fresh), nil, rng)
				picked = append(picked, repeats...)
			}
		}
	}

	if len(picked) == 0 {
		return nil, fmt.Errorf("legacy fill: curated bank yielded no questions for field %s", field)
	}

	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > total {
		picked = picked[:total]
	}
	return picked, nil
}

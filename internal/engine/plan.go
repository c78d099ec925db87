// Package engine implements the assessment composition and scoring core:
// distribution planning, tiered question sourcing, rubric scoring and
// attempt aggregation.
package engine

import (
	"math"

	"assessly/internal/domain"
)

// PrimaryCategory returns the category with the highest weight for the
// field. Ties are broken by declaration order in domain.Categories.
func PrimaryCategory(field domain.StudyField) string {
	weights := domain.CategoryWeights(field)
	best := domain.Categories[0]
	bestWeight := weights[best]
	for _, cat := range domain.Categories[1:] {
		if weights[cat] > bestWeight {
			best = cat
			bestWeight = weights[cat]
		}
	}
	return best
}

// HighPriorityCount is the number of questions reserved for curated/admin
// sourcing before any generation happens.
func HighPriorityCount(total int) int {
	if total <= 10 {
		return min(5, total)
	}
	return min(10, total)
}

// SplitByDifficulty allocates count across difficulties following the
// field's distribution. Rounding is repaired so the buckets always sum to
// exactly count; the medium bucket is forced to at least 1 whenever count
// is positive, and under-allocation is fixed in {medium, easy, hard} order.
func SplitByDifficulty(field domain.StudyField, count int) map[string]int {
	weights := domain.DifficultyWeights(field)
	split := make(map[string]int, len(domain.Difficulties))
	if count <= 0 {
		for _, diff := range domain.Difficulties {
			split[diff] = 0
		}
		return split
	}

	weightSum := 0
	for _, diff := range domain.Difficulties {
		weightSum += weights[diff]
	}

	for _, diff := range domain.Difficulties {
		split[diff] = int(math.Round(float64(weights[diff]) / float64(weightSum) * float64(count)))
	}
	if split[domain.DifficultyMedium] == 0 {
		split[domain.DifficultyMedium] = 1
	}

	repairPriority := []string{domain.DifficultyMedium, domain.DifficultyEasy, domain.DifficultyHard}

	total := split[domain.DifficultyEasy] + split[domain.DifficultyMedium] + split[domain.DifficultyHard]
	for total > count {
		for _, diff := range repairPriority {
			if total == count {
				break
			}
			// Never empty the forced medium bucket.
			floor := 0
			if diff == domain.DifficultyMedium {
				floor = 1
			}
			if split[diff] > floor {
				split[diff]--
				total--
			}
		}
	}
	for total < count {
		for _, diff := range repairPriority {
			if total == count {
				break
			}
			split[diff]++
			total++
		}
	}
	return split
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

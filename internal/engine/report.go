package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"assessly/internal/domain"

	"go.uber.org/zap"
)

// perQuestionMax is the maximum weighted total one evaluation can reach.
const perQuestionMax = 10.0

const (
	strengthThreshold    = 80.0
	improvementThreshold = 70.0
)

// Aggregator rolls per-question evaluations into an attempt report. The
// narrative feedback collaborator is optional; any failure falls back to a
// deterministic offline template that always succeeds.
type Aggregator struct {
	feedback domain.FeedbackGenerator
	pacer    *Pacer
	logger   *zap.Logger
}

// NewAggregator creates an aggregator. feedback may be nil, in which case
// the template fallback is always used.
func NewAggregator(feedback domain.FeedbackGenerator, pacer *Pacer, logger *zap.Logger) *Aggregator {
	return &Aggregator{feedback: feedback, pacer: pacer, logger: logger}
}

// Aggregate produces the report for an evaluable attempt. Evaluation order
// follows the assembled question order, so category accumulation is
// deterministic given the same inputs.
func (a *Aggregator) Aggregate(ctx context.Context, attempt *domain.Attempt, evaluations []*domain.ResponseEvaluation) *domain.AttemptReport {
	categoryScores := make(map[string]domain.CategoryScore)
	var totalScore, maxScore float64

	for _, eval := range evaluations {
		cs := categoryScores[eval.Category]
		cs.Total += eval.Total
		cs.Max += perQuestionMax
		categoryScores[eval.Category] = cs

		totalScore += eval.Total
		maxScore += perQuestionMax
	}

	for cat, cs := range categoryScores {
		cs.Percentage = percentage(cs.Total, cs.Max)
		categoryScores[cat] = cs
	}

	overall := percentage(totalScore, maxScore)

	report := &domain.AttemptReport{
		AttemptID:        attempt.ID,
		TotalScore:       round2(totalScore),
		MaxScore:         maxScore,
		Percentage:       overall,
		Grade:            letterGrade(overall),
		CategoryScores:   categoryScores,
		Strengths:        strengths(categoryScores),
		ImprovementAreas: improvementAreas(categoryScores),
		TimeTaken:        attempt.TimeTaken(),
	}
	report.OverallFeedback = a.overallFeedback(ctx, attempt, evaluations, report)
	return report
}

// letterGrade maps a percentage to a grade. Boundaries are inclusive at the
// lower edge: exactly 90.0 is an A.
func letterGrade(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}

// strengths lists categories at or above the strength threshold, strongest
// first.
func strengths(scores map[string]domain.CategoryScore) []string {
	var out []string
	for cat, cs := range scores {
		if cs.Percentage >= strengthThreshold {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if scores[out[i]].Percentage == scores[out[j]].Percentage {
			return out[i] < out[j]
		}
		return scores[out[i]].Percentage > scores[out[j]].Percentage
	})
	return out
}

// improvementAreas lists categories below the improvement threshold, weakest
// first.
func improvementAreas(scores map[string]domain.CategoryScore) []string {
	var out []string
	for cat, cs := range scores {
		if cs.Percentage < improvementThreshold {
			out = append(out, cat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if scores[out[i]].Percentage == scores[out[j]].Percentage {
			return out[i] < out[j]
		}
		return scores[out[i]].Percentage < scores[out[j]].Percentage
	})
	return out
}

// overallFeedback tries the external narrative collaborator once, then falls
// back to the offline template. The fallback never fails.
func (a *Aggregator) overallFeedback(ctx context.Context, attempt *domain.Attempt, evaluations []*domain.ResponseEvaluation, report *domain.AttemptReport) string {
	if a.feedback != nil {
		if err := a.pacer.Wait(ctx); err == nil {
			text, err := a.feedback.Summarize(ctx, evaluations, report.CategoryScores, report.Percentage, attempt.Profile)
			if err == nil && strings.TrimSpace(text) != "" {
				return text
			}
			if err != nil {
				a.logger.Warn("Narrative feedback generation failed, using template fallback",
					zap.String("attempt_id", attempt.ID),
					zap.Error(err))
			}
		}
	}
	return templateFeedback(evaluations, report)
}

// templateFeedback builds deterministic narrative feedback from the accuracy
// band, the named strong/weak categories and the average explanation
// quality. Fully offline.
func templateFeedback(evaluations []*domain.ResponseEvaluation, report *domain.AttemptReport) string {
	var b strings.Builder

	switch {
	case report.Percentage >= 90:
		b.WriteString(fmt.Sprintf("Outstanding work: you scored %.1f%%, an excellent result across the board.", report.Percentage))
	case report.Percentage >= 75:
		b.WriteString(fmt.Sprintf("Strong performance: you scored %.1f%% and show a solid grasp of the material.", report.Percentage))
	case report.Percentage >= 60:
		b.WriteString(fmt.Sprintf("A fair result at %.1f%%; the fundamentals are there but several topics need reinforcement.", report.Percentage))
	case report.Percentage >= 40:
		b.WriteString(fmt.Sprintf("You scored %.1f%%; focused revision of the core concepts will lift this considerably.", report.Percentage))
	default:
		b.WriteString(fmt.Sprintf("You scored %.1f%%; treat this attempt as a baseline and revisit the material from the start.", report.Percentage))
	}

	if len(report.Strengths) > 0 {
		b.WriteString(fmt.Sprintf(" Your strongest area was %s.", strings.ReplaceAll(report.Strengths[0], "_", " ")))
	}
	if len(report.ImprovementAreas) > 0 {
		b.WriteString(fmt.Sprintf(" Prioritize %s in your next study sessions.", strings.ReplaceAll(report.ImprovementAreas[0], "_", " ")))
	}

	if len(evaluations) > 0 {
		var explanationSum float64
		for _, eval := range evaluations {
			explanationSum += eval.ExplanationScore
		}
		avg := explanationSum / float64(len(evaluations))
		switch {
		case avg >= 7:
			b.WriteString(" Your written explanations were consistently thorough; keep that habit.")
		case avg >= 4:
			b.WriteString(" Your explanations were adequate but would benefit from more supporting detail.")
		default:
			b.WriteString(" Writing fuller explanations for each answer will deepen your understanding.")
		}
	}

	return b.String()
}

// percentage stays unrounded: grade boundaries are inclusive at the lower
// edge, so 89.999 must not round up into an A.
func percentage(total, max float64) float64 {
	if max == 0 {
		return 0
	}
	return total / max * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

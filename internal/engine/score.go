package engine

import (
	"math"
	"strings"

	"assessly/internal/config"
	"assessly/internal/domain"
	"assessly/internal/util"
)

// reasoningConnectives are the markers the rubric counts as evidence of
// structured reasoning. Each distinct connective adds one point, capped.
var reasoningConnectives = []string{
	"because",
	"therefore",
	"since",
	"however",
	"for example",
	"thus",
	"consequently",
	"as a result",
}

const connectiveCap = 4.0

// Scorer grades one (question, answer, explanation) triple against the
// fixed rubric. Scoring is pure and deterministic: no network calls, and
// identical inputs always yield identical evaluations.
type Scorer struct {
	weights config.RubricWeights
}

// NewScorer creates a scorer with the given rubric weights. The weights are
// configuration and must sum to 1.
func NewScorer(weights config.RubricWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score evaluates a single response.
func (s *Scorer) Score(q *domain.Question, answer, explanation string) *domain.ResponseEvaluation {
	isCorrect := answer != "" && answer == q.CorrectAnswer

	accuracy := 0.0
	if isCorrect {
		accuracy = 10.0
	}

	explanationScore := s.scoreExplanation(q, explanation)
	reasoningScore := s.scoreReasoning(q, explanation, isCorrect)

	total := accuracy*s.weights.Accuracy +
		explanationScore*s.weights.Explanation +
		reasoningScore*s.weights.Reasoning

	feedback, suggestions := feedbackFor(isCorrect, explanationScore, reasoningScore)

	return &domain.ResponseEvaluation{
		QuestionID:       q.ID,
		Category:         q.Category,
		IsCorrect:        isCorrect,
		Accuracy:         accuracy,
		ExplanationScore: explanationScore,
		ReasoningScore:   reasoningScore,
		Total:            math.Round(total*100) / 100,
		Feedback:         feedback,
		Suggestions:      suggestions,
	}
}

// scoreExplanation rates explanation quality 0-10: base 3 for any text,
// cumulative length bonuses at 20/50/100 characters, and +1 for keyword
// overlap with the question text or correct answer.
func (s *Scorer) scoreExplanation(q *domain.Question, explanation string) float64 {
	text := strings.TrimSpace(explanation)
	if text == "" {
		return 0
	}

	score := 3.0
	if len(text) >= 20 {
		score += 2
	}
	if len(text) >= 50 {
		score += 2
	}
	if len(text) >= 100 {
		score += 2
	}

	questionKeywords := util.ExtractKeywords(q.Text + " " + q.CorrectAnswer)
	explanationWords := make(map[string]bool)
	for _, w := range strings.Fields(util.NormalizeText(text)) {
		explanationWords[w] = true
	}
	for _, kw := range questionKeywords {
		if explanationWords[kw] {
			score++
			break
		}
	}

	return math.Min(score, 10)
}

// scoreReasoning rates reasoning clarity 0-10: base 2 for any text, +1 per
// distinct connective (capped), +2 when a wrong answer still tracks the
// official explanation, +2 when a correct answer comes with a substantive
// explanation.
func (s *Scorer) scoreReasoning(q *domain.Question, explanation string, isCorrect bool) float64 {
	text := strings.TrimSpace(explanation)
	if text == "" {
		return 0
	}

	score := 2.0
	normalized := util.NormalizeText(text)

	connectives := 0.0
	for _, conn := range reasoningConnectives {
		if strings.Contains(normalized, conn) {
			connectives++
		}
	}
	score += math.Min(connectives, connectiveCap)

	if !isCorrect && overlapsOfficialStart(q.Explanation, normalized) {
		score += 2
	}
	if isCorrect && len(text) > 30 {
		score += 2
	}

	return math.Min(score, 10)
}

// overlapsOfficialStart reports whether the learner's explanation shares
// vocabulary with the opening of the official explanation. A wrong answer
// backed by reasoning that tracks the official rationale earns partial
// reasoning credit.
func overlapsOfficialStart(official, normalizedUser string) bool {
	words := strings.Fields(util.NormalizeText(official))
	if len(words) > 8 {
		words = words[:8]
	}
	matches := 0
	for _, w := range words {
		if len(w) <= 3 {
			continue
		}
		if strings.Contains(normalizedUser, w) {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}

// feedbackFor selects narrative feedback and suggestions from a small
// decision table keyed on correctness and whether each sub-score clears the
// midpoint.
func feedbackFor(isCorrect bool, explanationScore, reasoningScore float64) (string, []string) {
	goodExplanation := explanationScore >= 5
	goodReasoning := reasoningScore >= 5

	switch {
	case isCorrect && goodExplanation && goodReasoning:
		return "Correct, with a clear and well-reasoned explanation.",
			[]string{"Keep connecting your answers to underlying principles."}
	case isCorrect && goodExplanation:
		return "Correct answer with a solid explanation, though the reasoning could be more explicit.",
			[]string{"Use connectives like 'because' and 'therefore' to spell out each step of your thinking."}
	case isCorrect && goodReasoning:
		return "Correct answer and sound reasoning, but the explanation is thin.",
			[]string{"Expand your explanation with the key facts that support the answer."}
	case isCorrect:
		return "Correct answer, but the explanation does not show how you got there.",
			[]string{"Write a short justification for each answer, even when you are confident.", "Mention the key concept the question tests."}
	case goodExplanation && goodReasoning:
		return "Incorrect, but your explanation shows genuine engagement with the problem.",
			[]string{"Re-read the question stem carefully; your reasoning was close.", "Compare your rationale with the official explanation."}
	case goodExplanation || goodReasoning:
		return "Incorrect, and the explanation only partially supports your choice.",
			[]string{"Revisit this topic and work through the official explanation.", "State why the other options are wrong, not just why yours seems right."}
	default:
		return "Incorrect, with little supporting explanation.",
			[]string{"Review the underlying concept before retrying similar questions.", "Always attempt a brief explanation; it consolidates learning even when wrong."}
	}
}

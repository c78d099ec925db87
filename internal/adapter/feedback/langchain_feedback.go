// Package feedback adapts a langchaingo-backed LLM into the aggregator's
// FeedbackGenerator port. Any failure here is recovered by the aggregator's
// offline template, so this adapter surfaces errors freely.
package feedback

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"assessly/internal/config"
	"assessly/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// LangchainFeedbackGenerator implements domain.FeedbackGenerator.
type LangchainFeedbackGenerator struct {
	llm     llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a feedback generator from the LLM configuration.
func New(cfg config.LLMConfig, logger *zap.Logger) (*LangchainFeedbackGenerator, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("LLM server URL cannot be empty")
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.Server),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &LangchainFeedbackGenerator{
		llm:     llm,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Summarize implements domain.FeedbackGenerator.
func (g *LangchainFeedbackGenerator) Summarize(
	ctx context.Context,
	evaluations []*domain.ResponseEvaluation,
	categoryScores map[string]domain.CategoryScore,
	percentage float64,
	profile domain.LearnerProfile,
) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an encouraging learning coach. A learner studying %q just completed an
assessment scoring %.1f%% overall. Category breakdown:
`, profile.FieldOfStudy, percentage)
	for cat, cs := range categoryScores {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", cat, cs.Percentage)
	}

	correct := 0
	for _, eval := range evaluations {
		if eval.IsCorrect {
			correct++
		}
	}
	fmt.Fprintf(&b, "\nThey answered %d of %d questions correctly.\n", correct, len(evaluations))
	b.WriteString(`
Write 3-4 sentences of personal, specific feedback: acknowledge what went
well, name the weakest area, and give one concrete next step. Plain text
only, no lists, no markdown.`)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.llm.Call(ctx, b.String(), llms.WithTemperature(0.4))
	if err != nil {
		g.logger.Warn("Narrative feedback call failed", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}
	return strings.TrimSpace(response), nil
}

var _ domain.FeedbackGenerator = (*LangchainFeedbackGenerator)(nil)

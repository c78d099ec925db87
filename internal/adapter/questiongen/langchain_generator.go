// Package questiongen adapts a langchaingo-backed LLM into the engine's
// QuestionGenerator port.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"assessly/internal/config"
	"assessly/internal/domain"
	"assessly/internal/util"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// LangchainQuestionGenerator implements domain.QuestionGenerator against an
// Ollama-served model. The provider is slow and rate-limited; the composer
// paces and caps its calls.
type LangchainQuestionGenerator struct {
	llm     llms.Model
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a generator from the LLM configuration.
func New(cfg config.LLMConfig, logger *zap.Logger) (*LangchainQuestionGenerator, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("LLM server URL cannot be empty")
	}
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.Server),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &LangchainQuestionGenerator{
		llm:     llm,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// generatedQuestion mirrors the JSON shape the prompt asks the model for.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Generate implements domain.QuestionGenerator.
func (g *LangchainQuestionGenerator) Generate(ctx context.Context, category, difficulty string, count int, excludedTexts []string) ([]*domain.Question, error) {
	prompt := buildPrompt(category, difficulty, count, excludedTexts)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.llm.Call(ctx, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var parsed []generatedQuestion
	if err := json.Unmarshal([]byte(cleanResponse(response)), &parsed); err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to parse LLM response: %w", err))
	}

	questions := make([]*domain.Question, 0, len(parsed))
	for _, gq := range parsed {
		q := &domain.Question{
			ID:            util.DeterministicQuestionID(gq.Question, category, difficulty),
			Category:      category,
			Difficulty:    difficulty,
			Text:          gq.Question,
			Options:       gq.Options,
			CorrectAnswer: gq.CorrectAnswer,
			Explanation:   gq.Explanation,
			Source:        domain.SourceAI,
			Active:        true,
		}
		if err := q.Validate(); err != nil {
			g.logger.Warn("LLM produced malformed question, skipping",
				zap.String("question", gq.Question),
				zap.Error(err))
			continue
		}
		questions = append(questions, q)
	}

	g.logger.Info("Generated question candidates",
		zap.String("category", category),
		zap.String("difficulty", difficulty),
		zap.Int("requested", count),
		zap.Int("usable", len(questions)))
	return questions, nil
}

func buildPrompt(category, difficulty string, count int, excludedTexts []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert assessment author. Create %d unique multiple-choice questions
for the category %q at %q difficulty.

Respond with ONLY a JSON array of %d objects, each in this format:
{
  "question": "the question text",
  "options": ["option A", "option B", "option C", "option D"],
  "correct_answer": "must exactly match one of the options",
  "explanation": "a concise explanation of why the correct answer is right"
}

Rules:
1. Exactly 4 options per question.
2. correct_answer must be copied verbatim from the options array.
3. Questions must be self-contained and factual.
`, count, category, difficulty, count)

	if len(excludedTexts) > 0 {
		limit := len(excludedTexts)
		if limit > 40 {
			limit = 40
		}
		b.WriteString("\nDo NOT generate questions similar to any of these:\n")
		for _, text := range excludedTexts[:limit] {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}
	return b.String()
}

// cleanResponse strips think tags and markdown code fences that small
// instruction-tuned models wrap around JSON output.
func cleanResponse(response string) string {
	s := strings.TrimSpace(response)
	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 {
			s = s[thinkEnd+len("</think>"):]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var _ domain.QuestionGenerator = (*LangchainQuestionGenerator)(nil)

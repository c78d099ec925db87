package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"assessly/internal/bank"
	"assessly/internal/config"
	"assessly/internal/domain"
	"assessly/internal/util"

	"go.uber.org/zap"
)

// Composer assembles an exact-count, deduplicated, shuffled question set
// from three tiers: field-mapped/admin questions, the generative provider
// (or general-store fill when generation is disabled), and the curated
// bank. Store and provider failures are absorbed tier by tier; the caller
// only ever sees a complete (or documented-short) set, or a single
// AssemblyFailed error after the legacy fallback is also exhausted.
type Composer struct {
	repo    domain.QuestionRepository
	gen     domain.QuestionGenerator
	bank    *bank.Bank
	genCfg  config.GenerationConfig
	pacer   *Pacer
	logger  *zap.Logger
	newRand func() *rand.Rand
}

// NewComposer wires a composer. gen may be nil when generation is disabled.
func NewComposer(
	repo domain.QuestionRepository,
	gen domain.QuestionGenerator,
	b *bank.Bank,
	genCfg config.GenerationConfig,
	pacer *Pacer,
	logger *zap.Logger,
) *Composer {
	return &Composer{
		repo:   repo,
		gen:    gen,
		bank:   b,
		genCfg: genCfg,
		pacer:  pacer,
		logger: logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// assemblyState tracks one compose call. seen is the full exclusion set
// (every normalized text observed, including generated-but-unpicked
// candidates); inSet covers only texts actually in the picked set. Both are
// local to the call.
type assemblyState struct {
	picked []*domain.Question
	seen   map[string]bool
	inSet  map[string]bool
	rng    *rand.Rand
}

func (st *assemblyState) add(q *domain.Question) bool {
	norm := util.NormalizeText(q.Text)
	if st.inSet[norm] {
		return false
	}
	st.picked = append(st.picked, q)
	st.seen[norm] = true
	st.inSet[norm] = true
	return true
}

func (st *assemblyState) exclude(text string) {
	st.seen[util.NormalizeText(text)] = true
}

func (st *assemblyState) excludedTexts() []string {
	out := make([]string, 0, len(st.seen))
	for norm := range st.seen {
		out = append(out, norm)
	}
	return out
}

// Compose builds the assembled set for a learner profile. It returns fewer
// than total only when every source, curated bank included, is exhausted.
func (c *Composer) Compose(ctx context.Context, profile domain.LearnerProfile, total int) (*domain.AssembledSet, error) {
	if total <= 0 {
		return nil, domain.NewValidationError("total question count must be positive")
	}

	field := domain.DetectField(profile)
	c.logger.Info("Composing assessment",
		zap.String("field", string(field)),
		zap.Int("total", total))

	questions, err := c.assemble(ctx, field, total)
	if err != nil {
		c.logger.Warn("Tiered assembly failed, falling back to legacy distribution",
			zap.String("field", string(field)),
			zap.Error(err))
		questions, err = legacyFill(c.bank, field, total, c.newRand())
		if err != nil {
			return nil, domain.NewAssemblyFailedError(err)
		}
	}

	return &domain.AssembledSet{
		Field:     field,
		Questions: questions,
		Short:     len(questions) < total,
	}, nil
}

func (c *Composer) assemble(ctx context.Context, field domain.StudyField, total int) ([]*domain.Question, error) {
	primary := PrimaryCategory(field)
	st := &assemblyState{
		seen:  make(map[string]bool),
		inSet: make(map[string]bool),
		rng:   c.newRand(),
	}

	// Tier 1: admin-priority sourcing for the reserved high-priority slots.
	highPriority := HighPriorityCount(total)
	c.fillAdminTier(ctx, st, field, primary, highPriority)

	// Tier 2: generation, or general-store fill when the kill-switch is off.
	remaining := total - len(st.picked)
	if remaining > 0 {
		if c.genCfg.Enabled && c.gen != nil {
			c.fillGenerationTier(ctx, st, field, primary, remaining)
		} else {
			c.fillGeneralTier(ctx, st, field, primary, remaining)
		}
	}

	// Tier 3: curated bank top-up, difficulty priority {medium, easy, hard}.
	if len(st.picked) < total {
		c.fillBankTier(st, primary, total)
	}

	if len(st.picked) == 0 {
		return nil, fmt.Errorf("no questions available from any tier for category %s", primary)
	}

	st.rng.Shuffle(len(st.picked), func(i, j int) {
		st.picked[i], st.picked[j] = st.picked[j], st.picked[i]
	})
	if len(st.picked) > total {
		st.picked = st.picked[:total]
	}

	c.logger.Info("Assembly complete",
		zap.String("category", primary),
		zap.Int("requested", total),
		zap.Int("assembled", len(st.picked)))
	return st.picked, nil
}

// fillAdminTier draws field-mapped questions per difficulty bucket, topping
// up each bucket from the general store. Store failures are absorbed: a
// failing lookup contributes nothing and the later tiers make up the
// shortfall.
func (c *Composer) fillAdminTier(ctx context.Context, st *assemblyState, field domain.StudyField, primary string, count int) {
	split := SplitByDifficulty(field, count)
	for _, diff := range domain.Difficulties {
		want := split[diff]
		if want == 0 {
			continue
		}

		candidates, err := c.repo.FieldMapped(ctx, field, primary, diff, want)
		if err != nil {
			c.logger.Warn("Field-mapped lookup failed, treating as empty",
				zap.String("category", primary),
				zap.String("difficulty", diff),
				zap.Error(err))
			candidates = nil
		}
		got := c.pickRandom(st, candidates, want)

		if got < want {
			general, err := c.repo.General(ctx, primary, diff, want-got)
			if err != nil {
				c.logger.Warn("General lookup failed, treating as empty",
					zap.String("category", primary),
					zap.String("difficulty", diff),
					zap.Error(err))
				continue
			}
			c.pickRandom(st, general, want-got)
		}
	}
}

// fillGenerationTier invokes the generative provider at most once per
// difficulty cell, persists whatever it produced, and falls back to the
// curated bank for a cell whose generation call failed.
func (c *Composer) fillGenerationTier(ctx context.Context, st *assemblyState, field domain.StudyField, primary string, remaining int) {
	split := SplitByDifficulty(field, remaining)
	for _, diff := range domain.Difficulties {
		want := split[diff]
		if want == 0 {
			continue
		}
		if c.genCfg.MaxPerCell > 0 && want > c.genCfg.MaxPerCell {
			want = c.genCfg.MaxPerCell
		}

		if err := c.pacer.Wait(ctx); err != nil {
			return
		}
		generated, err := c.gen.Generate(ctx, primary, diff, want, st.excludedTexts())
		if err != nil {
			c.logger.Warn("Question generation failed, sampling curated bank for cell",
				zap.String("category", primary),
				zap.String("difficulty", diff),
				zap.Error(err))
			for _, q := range c.bank.Sample(primary, diff, want, st.seen, st.rng) {
				st.add(q)
			}
			continue
		}

		valid := make([]*domain.Question, 0, len(generated))
		for _, q := range generated {
			if err := q.Validate(); err != nil {
				c.logger.Warn("Discarding malformed generated question",
					zap.String("text", q.Text),
					zap.Error(err))
				continue
			}
			valid = append(valid, q)
		}

		if len(valid) > 0 {
			if err := c.repo.PersistGenerated(ctx, valid, field); err != nil {
				c.logger.Warn("Failed to persist generated questions",
					zap.String("category", primary),
					zap.Error(err))
			}
		}

		added := 0
		for _, q := range valid {
			// Every generated candidate enters the exclusion set, picked
			// or not, so later tiers never re-propose its text.
			st.exclude(q.Text)
			if added < want && st.add(q) {
				added++
			}
		}
	}
}

// fillGeneralTier covers the generation-disabled path: remaining demand is
// met entirely from the general store, split by difficulty.
func (c *Composer) fillGeneralTier(ctx context.Context, st *assemblyState, field domain.StudyField, primary string, remaining int) {
	split := SplitByDifficulty(field, remaining)
	for _, diff := range domain.Difficulties {
		want := split[diff]
		if want == 0 {
			continue
		}
		candidates, err := c.repo.General(ctx, primary, diff, want)
		if err != nil {
			c.logger.Warn("General lookup failed, treating as empty",
				zap.String("category", primary),
				zap.String("difficulty", diff),
				zap.Error(err))
			continue
		}
		c.pickRandom(st, candidates, want)
	}
}

// fillBankTier tops the set up from the curated bank until the target is
// met or the bank is exhausted for the category. When exclusion filtering
// empties a cell's candidate pool, the filter relaxes to only the texts
// already in the set, so an excluded-but-unpicked generated text cannot
// starve the top-up.
func (c *Composer) fillBankTier(st *assemblyState, primary string, total int) {
	priority := []string{domain.DifficultyMedium, domain.DifficultyEasy, domain.DifficultyHard}
	for _, diff := range priority {
		if len(st.picked) >= total {
			return
		}
		need := total - len(st.picked)

		candidates := c.bank.Sample(primary, diff, need, st.seen, st.rng)
		if len(candidates) == 0 {
			candidates = c.bank.Sample(primary, diff, need, st.inSet, st.rng)
		}
		for _, q := range candidates {
			st.add(q)
		}
	}
}

// pickRandom selects up to want unseen candidates uniformly at random and
// adds them to the set. Returns how many were added.
func (c *Composer) pickRandom(st *assemblyState, candidates []*domain.Question, want int) int {
	st.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	added := 0
	for _, q := range candidates {
		if added == want {
			break
		}
		norm := util.NormalizeText(q.Text)
		if st.seen[norm] {
			continue
		}
		if st.add(q) {
			added++
		}
	}
	return added
}

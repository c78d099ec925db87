package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"assessly/internal/bank"
	"assessly/internal/cache"
	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/engine"
	"assessly/internal/util"

	"go.uber.org/zap"
)

const (
	cacheServiceName = "assessment"

	// evaluatedGuardTTL bounds how long the evaluate-once marker lives. Long
	// enough that a retried client cannot double-evaluate, short enough that
	// the keyspace does not grow forever.
	evaluatedGuardTTL = 24 * time.Hour
)

// AssessmentService exposes the two engine entry points to the transport
// layer: composing an assessment for a learner profile and evaluating a
// finished attempt into a report.
type AssessmentService interface {
	ComposeAssignment(ctx context.Context, req *dto.ComposeAssignmentRequest) (*dto.AssignmentResponse, error)
	EvaluateAttempt(ctx context.Context, req *dto.EvaluateAttemptRequest) (*dto.AttemptReportResponse, error)
}

type assessmentService struct {
	composer   *engine.Composer
	scorer     *engine.Scorer
	aggregator *engine.Aggregator
	repo       domain.QuestionRepository
	bank       *bank.Bank
	cache      domain.Cache
	pacer      *engine.Pacer
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewAssessmentService wires the engine pieces into the service. cache may
// be nil; without it the evaluate-once guard degrades to the store lookup
// path and every evaluation request is rehydrated from the repository.
func NewAssessmentService(
	composer *engine.Composer,
	scorer *engine.Scorer,
	aggregator *engine.Aggregator,
	repo domain.QuestionRepository,
	b *bank.Bank,
	c domain.Cache,
	pacer *engine.Pacer,
	cacheTTL time.Duration,
	logger *zap.Logger,
) AssessmentService {
	return &assessmentService{
		composer:   composer,
		scorer:     scorer,
		aggregator: aggregator,
		repo:       repo,
		bank:       b,
		cache:      c,
		pacer:      pacer,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ComposeAssignment detects the learner's field, assembles the question set
// and caches it under a fresh attempt id so evaluation can rehydrate the
// exact set later. Correct answers and explanations never leave the server.
func (s *assessmentService) ComposeAssignment(ctx context.Context, req *dto.ComposeAssignmentRequest) (*dto.AssignmentResponse, error) {
	profile := toDomainProfile(req.Profile)

	set, err := s.composer.Compose(ctx, profile, req.TotalQuestions)
	if err != nil {
		return nil, err
	}
	set.AttemptID = util.NewULID()

	s.cacheAssembledSet(ctx, set)

	resp := &dto.AssignmentResponse{
		AttemptID: set.AttemptID,
		Field:     string(set.Field),
		Questions: make([]dto.QuestionResponse, 0, len(set.Questions)),
		Short:     set.Short,
	}
	for _, q := range set.Questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:         q.ID,
			Category:   q.Category,
			Difficulty: q.Difficulty,
			Question:   q.Text,
			Options:    q.Options,
		})
	}

	s.logger.Info("Assignment composed",
		zap.String("attempt_id", set.AttemptID),
		zap.String("field", string(set.Field)),
		zap.Int("questions", len(set.Questions)),
		zap.Bool("short", set.Short))
	return resp, nil
}

// EvaluateAttempt grades every question of an evaluable attempt in assembled
// order and aggregates the evaluations into a report. An attempt is
// evaluated at most once; repeats are rejected.
func (s *assessmentService) EvaluateAttempt(ctx context.Context, req *dto.EvaluateAttemptRequest) (*dto.AttemptReportResponse, error) {
	status := domain.AttemptStatus(req.Status)
	if !status.Evaluable() {
		return nil, domain.NewAttemptNotEvaluableError(req.AttemptID, status)
	}
	if s.alreadyEvaluated(ctx, req.AttemptID) {
		return nil, domain.NewAttemptAlreadyEvaluatedError(req.AttemptID)
	}

	attempt := toDomainAttempt(req, status)
	questions, err := s.rehydrateQuestions(ctx, attempt)
	if err != nil {
		return nil, err
	}

	evaluations := make([]*domain.ResponseEvaluation, 0, len(questions))
	questionByID := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, domain.NewInternalError("evaluation cancelled", err)
		}

		answer := attempt.Answers[q.ID]
		eval := s.scorer.Score(q, answer.Answer, answer.Explanation)
		evaluations = append(evaluations, eval)
		questionByID[q.ID] = q

		if err := s.repo.RecordUsage(ctx, q.ID, eval.IsCorrect); err != nil {
			s.logger.Warn("Failed to record question usage",
				zap.String("question_id", q.ID),
				zap.Error(err))
		}
	}

	report := s.aggregator.Aggregate(ctx, attempt, evaluations)
	s.markEvaluated(ctx, req.AttemptID)

	s.logger.Info("Attempt evaluated",
		zap.String("attempt_id", req.AttemptID),
		zap.Float64("percentage", report.Percentage),
		zap.String("grade", report.Grade))
	return toReportResponse(report, evaluations, questionByID), nil
}

// rehydrateQuestions recovers the full questions behind an attempt. The
// cached assembled set is the primary source and fixes the evaluation order;
// on a cache miss each submitted question id is looked up in the store and
// then the curated bank. Without the cached set the submitted rows define
// the attempt's question list, which is why clients send one row per
// question even for skipped ones (see dto.EvaluateAttemptRequest).
func (s *assessmentService) rehydrateQuestions(ctx context.Context, attempt *domain.Attempt) ([]*domain.Question, error) {
	if set := s.cachedAssembledSet(ctx, attempt.ID); set != nil {
		attempt.QuestionIDs = attempt.QuestionIDs[:0]
		for _, q := range set.Questions {
			attempt.QuestionIDs = append(attempt.QuestionIDs, q.ID)
		}
		return set.Questions, nil
	}

	questions := make([]*domain.Question, 0, len(attempt.QuestionIDs))
	for _, id := range attempt.QuestionIDs {
		q, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, domain.NewInternalError("failed to load question for evaluation", err)
		}
		if q == nil {
			if bq, ok := s.bank.Lookup(id); ok {
				q = bq
			}
		}
		if q == nil {
			return nil, domain.NewQuestionNotFoundError(id)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *assessmentService) cacheAssembledSet(ctx context.Context, set *domain.AssembledSet) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(set)
	if err != nil {
		s.logger.Warn("Failed to marshal assembled set for caching", zap.Error(err))
		return
	}
	key := cache.GenerateCacheKey(cacheServiceName, "set", set.AttemptID)
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache assembled set",
			zap.String("attempt_id", set.AttemptID),
			zap.Error(err))
	}
}

func (s *assessmentService) cachedAssembledSet(ctx context.Context, attemptID string) *domain.AssembledSet {
	if s.cache == nil {
		return nil
	}
	key := cache.GenerateCacheKey(cacheServiceName, "set", attemptID)
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("Assembled set cache lookup failed",
				zap.String("attempt_id", attemptID),
				zap.Error(err))
		}
		return nil
	}

	var set domain.AssembledSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		s.logger.Warn("Discarding corrupt cached assembled set",
			zap.String("attempt_id", attemptID),
			zap.Error(err))
		return nil
	}
	return &set
}

func (s *assessmentService) alreadyEvaluated(ctx context.Context, attemptID string) bool {
	if s.cache == nil {
		return false
	}
	key := cache.GenerateCacheKey(cacheServiceName, "evaluated", attemptID)
	_, err := s.cache.Get(ctx, key)
	if err == nil {
		return true
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("Evaluate-once guard lookup failed",
			zap.String("attempt_id", attemptID),
			zap.Error(err))
	}
	return false
}

func (s *assessmentService) markEvaluated(ctx context.Context, attemptID string) {
	if s.cache == nil {
		return
	}
	key := cache.GenerateCacheKey(cacheServiceName, "evaluated", attemptID)
	if err := s.cache.Set(ctx, key, "1", evaluatedGuardTTL); err != nil {
		s.logger.Warn("Failed to set evaluate-once guard",
			zap.String("attempt_id", attemptID),
			zap.Error(err))
	}
}

func toDomainProfile(p dto.LearnerProfileRequest) domain.LearnerProfile {
	return domain.LearnerProfile{
		FieldOfStudy:   p.FieldOfStudy,
		CurrentSkills:  p.CurrentSkills,
		Interests:      p.Interests,
		Goals:          p.Goals,
		EducationLevel: p.EducationLevel,
	}
}

func toDomainAttempt(req *dto.EvaluateAttemptRequest, status domain.AttemptStatus) *domain.Attempt {
	attempt := &domain.Attempt{
		ID:          req.AttemptID,
		Profile:     toDomainProfile(req.Profile),
		QuestionIDs: make([]string, 0, len(req.Answers)),
		Answers:     make(map[string]domain.AttemptAnswer, len(req.Answers)),
		Status:      status,
		StartedAt:   req.StartedAt,
		CompletedAt: req.CompletedAt,
	}
	for _, a := range req.Answers {
		attempt.QuestionIDs = append(attempt.QuestionIDs, a.QuestionID)
		attempt.Answers[a.QuestionID] = domain.AttemptAnswer{
			QuestionID:  a.QuestionID,
			Answer:      a.Answer,
			Explanation: a.Explanation,
		}
	}
	return attempt
}

func toReportResponse(report *domain.AttemptReport, evaluations []*domain.ResponseEvaluation, questions map[string]*domain.Question) *dto.AttemptReportResponse {
	resp := &dto.AttemptReportResponse{
		AttemptID:        report.AttemptID,
		TotalScore:       report.TotalScore,
		MaxScore:         report.MaxScore,
		Percentage:       report.Percentage,
		Grade:            report.Grade,
		CategoryScores:   make(map[string]dto.CategoryScoreResponse, len(report.CategoryScores)),
		Strengths:        report.Strengths,
		ImprovementAreas: report.ImprovementAreas,
		OverallFeedback:  report.OverallFeedback,
		TimeTakenSeconds: report.TimeTaken.Seconds(),
		Evaluations:      make([]dto.EvaluationResponse, 0, len(evaluations)),
	}
	for cat, cs := range report.CategoryScores {
		resp.CategoryScores[cat] = dto.CategoryScoreResponse{
			Total:      cs.Total,
			Max:        cs.Max,
			Percentage: cs.Percentage,
		}
	}
	for _, eval := range evaluations {
		er := dto.EvaluationResponse{
			QuestionID:       eval.QuestionID,
			Category:         eval.Category,
			IsCorrect:        eval.IsCorrect,
			Accuracy:         eval.Accuracy,
			ExplanationScore: eval.ExplanationScore,
			ReasoningScore:   eval.ReasoningScore,
			Total:            eval.Total,
			Feedback:         eval.Feedback,
			Suggestions:      eval.Suggestions,
		}
		if q, ok := questions[eval.QuestionID]; ok {
			er.CorrectAnswer = q.CorrectAnswer
			er.Explanation = q.Explanation
		}
		resp.Evaluations = append(resp.Evaluations, er)
	}
	return resp
}

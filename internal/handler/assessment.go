package handler

import (
	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/logger"
	"assessly/internal/service"
	"assessly/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssessmentHandler handles assessment-related HTTP requests
type AssessmentHandler struct {
	service   service.AssessmentService
	validator *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(service service.AssessmentService, validator *validation.Validator) *AssessmentHandler {
	return &AssessmentHandler{
		service:   service,
		validator: validator,
	}
}

// ComposeAssignment godoc
// @Summary Compose an assessment
// @Description Detects the learner's study field and assembles a weighted, deduplicated question set
// @Tags assessments
// @Accept json
// @Produce json
// @Param request body dto.ComposeAssignmentRequest true "Composition Request"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) ComposeAssignment(c *fiber.Ctx) error {
	var req dto.ComposeAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse compose request", zap.Error(err))
		return domain.NewValidationError("invalid request body")
	}

	if errs := h.validator.ValidateComposeRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ComposeAssignment(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EvaluateAttempt godoc
// @Summary Evaluate a finished attempt
// @Description Grades every question of a submitted or timed-out attempt and returns the report
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body dto.EvaluateAttemptRequest true "Evaluation Request"
// @Success 200 {object} dto.AttemptReportResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /attempts/evaluate [post]
func (h *AssessmentHandler) EvaluateAttempt(c *fiber.Ctx) error {
	var req dto.EvaluateAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse evaluation request", zap.Error(err))
		return domain.NewValidationError("invalid request body")
	}

	if errs := h.validator.ValidateEvaluateRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.EvaluateAttempt(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListFields godoc
// @Summary List study fields
// @Description Returns every recognized study field with its category and difficulty weight tables
// @Tags fields
// @Produce json
// @Success 200 {array} dto.FieldInfoResponse
// @Router /fields [get]
func (h *AssessmentHandler) ListFields(c *fiber.Ctx) error {
	resp := make([]dto.FieldInfoResponse, 0, len(domain.AllStudyFields))
	for _, f := range domain.AllStudyFields {
		resp = append(resp, dto.FieldInfoResponse{
			Field:             string(f),
			CategoryWeights:   domain.CategoryWeights(f),
			DifficultyWeights: domain.DifficultyWeights(f),
		})
	}
	return c.JSON(resp)
}

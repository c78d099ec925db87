package validation

import (
	"regexp"
	"strings"

	"assessly/internal/domain"
	"assessly/internal/dto"
)

const (
	minQuestions      = 1
	maxQuestions      = 50
	maxAnswerLength   = 2000
	maxProfileLength  = 1000
	maxExplanationLen = 4000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateComposeRequest validates an assessment composition request.
func (v *Validator) ValidateComposeRequest(req *dto.ComposeAssignmentRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.TotalQuestions < minQuestions || req.TotalQuestions > maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("total_questions", req.TotalQuestions, minQuestions, maxQuestions))
	}

	for field, value := range map[string]string{
		"profile.field_of_study":  req.Profile.FieldOfStudy,
		"profile.current_skills":  req.Profile.CurrentSkills,
		"profile.interests":       req.Profile.Interests,
		"profile.goals":           req.Profile.Goals,
		"profile.education_level": req.Profile.EducationLevel,
	} {
		if len(value) > maxProfileLength {
			errors = append(errors, domain.NewOutOfRangeError(field, len(value), 0, maxProfileLength))
		}
	}

	return errors
}

// ValidateEvaluateRequest validates an attempt evaluation request.
func (v *Validator) ValidateEvaluateRequest(req *dto.EvaluateAttemptRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.AttemptID) == "" {
		errors = append(errors, domain.NewMissingFieldError("attempt_id"))
	} else if !isValidULID(req.AttemptID) {
		errors = append(errors, domain.NewInvalidFormatError("attempt_id", req.AttemptID))
	}

	status := domain.AttemptStatus(req.Status)
	if status != domain.AttemptSubmitted && status != domain.AttemptTimedOut {
		errors = append(errors, domain.NewInvalidFormatError("status", req.Status))
	}

	for _, answer := range req.Answers {
		if strings.TrimSpace(answer.QuestionID) == "" {
			errors = append(errors, domain.NewMissingFieldError("answers.question_id"))
			break
		}
		if len(answer.Answer) > maxAnswerLength {
			errors = append(errors, domain.NewOutOfRangeError("answers.answer", len(answer.Answer), 0, maxAnswerLength))
			break
		}
		if len(answer.Explanation) > maxExplanationLen {
			errors = append(errors, domain.NewOutOfRangeError("answers.explanation", len(answer.Explanation), 0, maxExplanationLen))
			break
		}
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/middleware"
	"assessly/internal/util"
	"assessly/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssessmentService struct {
	composeFn  func(ctx context.Context, req *dto.ComposeAssignmentRequest) (*dto.AssignmentResponse, error)
	evaluateFn func(ctx context.Context, req *dto.EvaluateAttemptRequest) (*dto.AttemptReportResponse, error)
}

func (s *stubAssessmentService) ComposeAssignment(ctx context.Context, req *dto.ComposeAssignmentRequest) (*dto.AssignmentResponse, error) {
	return s.composeFn(ctx, req)
}

func (s *stubAssessmentService) EvaluateAttempt(ctx context.Context, req *dto.EvaluateAttemptRequest) (*dto.AttemptReportResponse, error) {
	return s.evaluateFn(ctx, req)
}

func newTestApp(svc *stubAssessmentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAssessmentHandler(svc, validation.NewValidator())

	api := app.Group("/api")
	api.Post("/assessments", h.ComposeAssignment)
	api.Post("/attempts/evaluate", h.EvaluateAttempt)
	api.Get("/fields", h.ListFields)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestComposeAssignmentHandler(t *testing.T) {
	svc := &stubAssessmentService{
		composeFn: func(ctx context.Context, req *dto.ComposeAssignmentRequest) (*dto.AssignmentResponse, error) {
			return &dto.AssignmentResponse{
				AttemptID: "01HZXF3V9GK2M4P6Q8R0T1WXYZ",
				Field:     "stem",
				Questions: []dto.QuestionResponse{
					{ID: "q1", Category: "technical", Difficulty: "easy", Question: "What is a queue?", Options: []string{"A", "B", "C", "D"}},
				},
			}, nil
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/assessments", dto.ComposeAssignmentRequest{
		Profile:        dto.LearnerProfileRequest{FieldOfStudy: "Computer Science"},
		TotalQuestions: 10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AssignmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "stem", body.Field)
	require.Len(t, body.Questions, 1)
	assert.Equal(t, "q1", body.Questions[0].ID)
}

func TestComposeAssignmentHandlerRejectsBadCount(t *testing.T) {
	svc := &stubAssessmentService{
		composeFn: func(ctx context.Context, req *dto.ComposeAssignmentRequest) (*dto.AssignmentResponse, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/assessments", dto.ComposeAssignmentRequest{TotalQuestions: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateAttemptHandlerConflictOnRepeat(t *testing.T) {
	svc := &stubAssessmentService{
		evaluateFn: func(ctx context.Context, req *dto.EvaluateAttemptRequest) (*dto.AttemptReportResponse, error) {
			return nil, domain.NewAttemptAlreadyEvaluatedError(req.AttemptID)
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/attempts/evaluate", dto.EvaluateAttemptRequest{
		AttemptID: util.NewULID(),
		Status:    "submitted",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestEvaluateAttemptHandlerRejectsInvalidStatus(t *testing.T) {
	svc := &stubAssessmentService{
		evaluateFn: func(ctx context.Context, req *dto.EvaluateAttemptRequest) (*dto.AttemptReportResponse, error) {
			t.Fatal("service must not be called on validation failure")
			return nil, nil
		},
	}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/attempts/evaluate", dto.EvaluateAttemptRequest{
		AttemptID: util.NewULID(),
		Status:    "in_progress",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListFieldsHandler(t *testing.T) {
	app := newTestApp(&stubAssessmentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var fields []dto.FieldInfoResponse
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 6)

	for _, f := range fields {
		sum := 0
		for _, w := range f.CategoryWeights {
			sum += w
		}
		assert.Equal(t, 100, sum, "field %s", f.Field)
	}
}

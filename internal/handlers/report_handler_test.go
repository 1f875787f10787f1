package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-interviewer/internal/models"
)

type stubReportRepo struct {
	reports map[string]*models.InterviewReport
}

func (r *stubReportRepo) Create(report *models.InterviewReport) error { return nil }

func (r *stubReportRepo) FindBySessionID(sessionID string) (*models.InterviewReport, error) {
	report, ok := r.reports[sessionID]
	if !ok {
		return nil, fmt.Errorf("report not found")
	}
	return report, nil
}

func (r *stubReportRepo) FindRecent(limit int) ([]models.InterviewReport, error) {
	return nil, nil
}

func TestHandleGetReport(t *testing.T) {
	repo := &stubReportRepo{reports: map[string]*models.InterviewReport{
		"session-1": {ID: uuid.New(), SessionID: "session-1", CandidateName: "Alice"},
	}}

	app := fiber.New()
	app.Get("/report/:session_id", NewReportHandler(repo).HandleGetReport)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/report/session-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/report/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/services"
)

type stubInterviewer struct {
	startFunc  func(role, name string) (string, string, error)
	turnFunc   func(sessionID string, msg models.TurnMessage) (string, error)
	finishFunc func(sessionID string) (string, error)

	lastTurnMessage *models.TurnMessage
}

func (s *stubInterviewer) Start(_ context.Context, role, name string, _ *multipart.FileHeader) (string, string, error) {
	if s.startFunc != nil {
		return s.startFunc(role, name)
	}
	return "session-1", "Hi, I'm Kalia.", nil
}

func (s *stubInterviewer) Turn(_ context.Context, sessionID string, msg models.TurnMessage) (string, error) {
	s.lastTurnMessage = &msg
	if s.turnFunc != nil {
		return s.turnFunc(sessionID, msg)
	}
	return "next question", nil
}

func (s *stubInterviewer) Finish(_ context.Context, sessionID string) (string, error) {
	if s.finishFunc != nil {
		return s.finishFunc(sessionID)
	}
	return "<b>Report</b>", nil
}

func newTestApp(interviewer services.InterviewerService) *fiber.App {
	app := fiber.New()
	handler := NewInterviewHandler(interviewer)
	app.Post("/start", handler.HandleStart)
	app.Post("/chat", handler.HandleChat)
	app.Post("/feedback", handler.HandleFeedback)
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

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func startRequest(t *testing.T, role, name, duration string, withResume bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	require.NoError(t, writer.WriteField("role", role))
	require.NoError(t, writer.WriteField("name", name))
	require.NoError(t, writer.WriteField("duration_minutes", duration))

	if withResume {
		part, err := writer.CreateFormFile("resume", "resume.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/start", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleStart_Success(t *testing.T) {
	app := newTestApp(&stubInterviewer{})

	resp, err := app.Test(startRequest(t, "Backend Engineer", "Alice", "15", true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.StartResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "session-1", body.SessionID)
	assert.Equal(t, "Hi, I'm Kalia.", body.Message)
}

func TestHandleStart_MissingFields(t *testing.T) {
	app := newTestApp(&stubInterviewer{})

	resp, err := app.Test(startRequest(t, "", "Alice", "15", true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(startRequest(t, "Backend Engineer", "Alice", "soon", true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(startRequest(t, "Backend Engineer", "Alice", "15", false))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleStart_InvalidRole(t *testing.T) {
	interviewer := &stubInterviewer{
		startFunc: func(role, name string) (string, string, error) {
			return "", "", fmt.Errorf("%w: %q", services.ErrInvalidRole, role)
		},
	}
	app := newTestApp(interviewer)

	resp, err := app.Test(startRequest(t, "asdfgh", "Alice", "15", true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Contains(t, body["error"], "does not appear to be a valid job role")
}

func TestHandleStart_GatewayError(t *testing.T) {
	interviewer := &stubInterviewer{
		startFunc: func(role, name string) (string, string, error) {
			return "", "", fmt.Errorf("%w: quota exceeded", services.ErrModelGateway)
		},
	}
	app := newTestApp(interviewer)

	resp, err := app.Test(startRequest(t, "Backend Engineer", "Alice", "15", true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Contains(t, body["error"], "AI Error")
}

func TestHandleChat_Success(t *testing.T) {
	interviewer := &stubInterviewer{}
	app := newTestApp(interviewer)

	resp := postJSON(t, app, "/chat", models.ChatRequest{
		SessionID:   "session-1",
		Message:     "I used Kafka for event streaming.",
		SecondsLeft: 240,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ChatResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "next question", body.Message)

	require.NotNil(t, interviewer.lastTurnMessage)
	assert.Equal(t, models.KindCandidateText, interviewer.lastTurnMessage.Kind)
	assert.Equal(t, "I used Kafka for event streaming.", interviewer.lastTurnMessage.Text)
	assert.Equal(t, 240, interviewer.lastTurnMessage.SecondsLeft)
}

func TestHandleChat_SentinelTranslation(t *testing.T) {
	interviewer := &stubInterviewer{}
	app := newTestApp(interviewer)

	resp := postJSON(t, app, "/chat", models.ChatRequest{
		SessionID: "session-1",
		Message:   models.SentinelSilence,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, interviewer.lastTurnMessage)
	assert.Equal(t, models.KindSilenceDetected, interviewer.lastTurnMessage.Kind)

	resp = postJSON(t, app, "/chat", models.ChatRequest{
		SessionID: "session-1",
		Message:   models.SentinelTimeUp,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.KindTimeExpired, interviewer.lastTurnMessage.Kind)
}

func TestHandleChat_NearSentinelIsCandidateText(t *testing.T) {
	interviewer := &stubInterviewer{}
	app := newTestApp(interviewer)

	resp := postJSON(t, app, "/chat", models.ChatRequest{
		SessionID: "session-1",
		Message:   strings.ToLower(models.SentinelSilence),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, interviewer.lastTurnMessage)
	assert.Equal(t, models.KindCandidateText, interviewer.lastTurnMessage.Kind)
}

func TestHandleChat_SessionNotFound(t *testing.T) {
	interviewer := &stubInterviewer{
		turnFunc: func(sessionID string, msg models.TurnMessage) (string, error) {
			return "", services.ErrSessionNotFound
		},
	}
	app := newTestApp(interviewer)

	resp := postJSON(t, app, "/chat", models.ChatRequest{SessionID: "missing", Message: "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleChat_GatewayError(t *testing.T) {
	interviewer := &stubInterviewer{
		turnFunc: func(sessionID string, msg models.TurnMessage) (string, error) {
			return "", fmt.Errorf("%w: provider down", services.ErrModelGateway)
		},
	}
	app := newTestApp(interviewer)

	resp := postJSON(t, app, "/chat", models.ChatRequest{SessionID: "session-1", Message: "hi"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleFeedback_Success(t *testing.T) {
	app := newTestApp(&stubInterviewer{})

	resp := postJSON(t, app, "/feedback", models.FeedbackRequest{SessionID: "session-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.FeedbackResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "<b>Report</b>", body.Feedback)
}

func TestHandleFeedback_SessionNotFound(t *testing.T) {
	interviewer := &stubInterviewer{
		finishFunc: func(sessionID string) (string, error) {
			return "", services.ErrSessionNotFound
		},
	}
	app := newTestApp(interviewer)

	resp := postJSON(t, app, "/feedback", models.FeedbackRequest{SessionID: "missing"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleFeedback_MissingSessionID(t *testing.T) {
	app := newTestApp(&stubInterviewer{})

	resp := postJSON(t, app, "/feedback", models.FeedbackRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

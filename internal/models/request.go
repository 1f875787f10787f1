package models

type StartResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatRequest struct {
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	SecondsLeft int    `json:"seconds_left"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type FeedbackRequest struct {
	SessionID string `json:"session_id"`
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

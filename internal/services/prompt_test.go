package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/ai-interviewer/internal/models"
)

func TestBuildValidationPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildValidationPrompt("Backend Engineer")

	assert.Contains(t, prompt, `"Backend Engineer"`)
	assert.Contains(t, prompt, `"VALID"`)
	assert.Contains(t, prompt, `"INVALID"`)
}

func TestBuildPersonaInstruction(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildPersonaInstruction("Alice", "Data Scientist", "worked on ML pipelines", "")

	assert.Contains(t, prompt, "Kalia")
	assert.Contains(t, prompt, "*Alice*")
	assert.Contains(t, prompt, "*Data Scientist*")
	assert.Contains(t, prompt, "worked on ML pipelines")
	assert.Contains(t, prompt, "Hi Alice, I'm Kalia.")
	assert.NotContains(t, prompt, "REFERENCE QUESTION MATERIAL")
}

func TestBuildPersonaInstruction_TruncatesResume(t *testing.T) {
	pb := NewPromptBuilder()

	resume := strings.Repeat("x", 10000)
	prompt := pb.BuildPersonaInstruction("Bob", "DevOps", resume, "")

	assert.Contains(t, prompt, strings.Repeat("x", 4000))
	assert.NotContains(t, prompt, strings.Repeat("x", 4001))
}

func TestBuildPersonaInstruction_WithQuestionContext(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildPersonaInstruction("Bob", "DevOps", ResumePlaceholder, "What is a rolling deployment?")

	assert.Contains(t, prompt, "REFERENCE QUESTION MATERIAL")
	assert.Contains(t, prompt, "What is a rolling deployment?")
}

func TestBuildTurnPrompt_CandidateText(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildTurnPrompt(models.CandidateText("I used Redis for caching", 120))

	assert.Contains(t, prompt, "Time remaining: 120s")
	assert.Contains(t, prompt, "Candidate's Answer: I used Redis for caching")
}

func TestBuildTurnPrompt_Silence(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildTurnPrompt(models.SilenceDetected())

	assert.Equal(t, "[SYSTEM: The user has been silent for 5 seconds. Gently nudge them to reply.]", prompt)
}

func TestBuildTurnPrompt_TimeExpired(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildTurnPrompt(models.TimeExpired())

	assert.Equal(t, "[SYSTEM: Timer reached 0. Give a 1-sentence closing statement and end the interview.]", prompt)
}

func TestBuildFeedbackPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildFeedbackPrompt()

	assert.Contains(t, prompt, "Interview Performance Report")
	assert.Contains(t, prompt, "Final Verdict")
	assert.Contains(t, prompt, InsufficientInteraction)
}

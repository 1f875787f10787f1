package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/ai-interviewer/internal/models"
)

// minExchanges is the number of candidate exchanges (after the opening
// question) required before a full feedback report is produced.
const minExchanges = 3

// InterviewerService sequences an interview: role validation, session
// creation, per-turn conversation, and final feedback with teardown.
type InterviewerService interface {
	Start(ctx context.Context, role, name string, resume *multipart.FileHeader) (string, string, error)
	Turn(ctx context.Context, sessionID string, msg models.TurnMessage) (string, error)
	Finish(ctx context.Context, sessionID string) (string, error)
}

type interviewerService struct {
	store         SessionStore
	gateway       ModelGateway
	extractor     ResumeExtractor
	storage       StorageService
	questionBank  QuestionBankService // optional, nil disables retrieval
	archiver      Archiver            // optional, nil disables archiving
	promptBuilder *PromptBuilder
}

func NewInterviewerService(
	store SessionStore,
	gateway ModelGateway,
	extractor ResumeExtractor,
	storage StorageService,
	questionBank QuestionBankService,
	archiver Archiver,
) InterviewerService {
	return &interviewerService{
		store:         store,
		gateway:       gateway,
		extractor:     extractor,
		storage:       storage,
		questionBank:  questionBank,
		archiver:      archiver,
		promptBuilder: NewPromptBuilder(),
	}
}

// Start implements InterviewerService.
func (s *interviewerService) Start(ctx context.Context, role, name string, resume *multipart.FileHeader) (string, string, error) {
	// Guardrail check. A gateway failure here is logged and treated as a
	// pass; only an explicit INVALID verdict rejects the role.
	verdict, err := s.gateway.GenerateText(ctx, s.promptBuilder.BuildValidationPrompt(role))
	if err != nil {
		log.Printf("⚠️  Role validation check failed, proceeding: %v\n", err)
	} else if strings.Contains(strings.ToUpper(verdict), "INVALID") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	resumeText := s.loadResumeText(resume)
	questionContext := s.retrieveQuestionContext(ctx, role, resumeText)

	persona := s.promptBuilder.BuildPersonaInstruction(name, role, resumeText, questionContext)
	seed := []models.Turn{
		{Role: models.RoleUser, Text: persona},
		{Role: models.RoleModel, Text: SeedAcknowledgment},
	}

	opening, err := s.gateway.SendMessage(ctx, seed, KickoffInstruction)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrModelGateway, err)
	}

	// The session is created only after the first exchange succeeded, so a
	// failed kickoff never leaves a half-built entry behind.
	sessionID := uuid.New().String()
	seed = append(seed,
		models.Turn{Role: models.RoleUser, Text: KickoffInstruction},
		models.Turn{Role: models.RoleModel, Text: opening},
	)

	if err := s.store.Create(models.NewSession(sessionID, name, role, seed)); err != nil {
		return "", "", fmt.Errorf("failed to create session: %w", err)
	}

	return sessionID, opening, nil
}

// Turn implements InterviewerService.
func (s *interviewerService) Turn(ctx context.Context, sessionID string, msg models.TurnMessage) (string, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return "", err
	}

	// The session lock is held across the gateway call so a concurrent turn
	// or finish on the same session cannot interleave appends.
	session.Lock()
	defer session.Unlock()
	if session.Closed() {
		return "", ErrSessionNotFound
	}

	prompt := s.promptBuilder.BuildTurnPrompt(msg)

	reply, err := s.gateway.SendMessage(ctx, session.History(), prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelGateway, err)
	}

	session.Append(
		models.Turn{Role: models.RoleUser, Text: prompt},
		models.Turn{Role: models.RoleModel, Text: reply},
	)

	// Keep internal signal tokens out of candidate-visible text.
	return strings.TrimSpace(strings.ReplaceAll(reply, "SYSTEM", "")), nil
}

// Finish implements InterviewerService.
func (s *interviewerService) Finish(ctx context.Context, sessionID string) (string, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return "", err
	}

	session.Lock()
	defer session.Unlock()
	if session.Closed() {
		return "", ErrSessionNotFound
	}

	// Too few exchanges: short-circuit deterministically instead of trusting
	// the model to honor the instruction.
	if session.Exchanges() < minExchanges {
		if err := s.store.Delete(sessionID); err != nil {
			return "", err
		}
		s.archive(session, InsufficientInteraction)
		return InsufficientInteraction, nil
	}

	feedback, err := s.gateway.SendMessage(ctx, session.History(), s.promptBuilder.BuildFeedbackPrompt())
	if err != nil {
		// Session stays intact so the caller can retry.
		return "", fmt.Errorf("%w: %v", ErrModelGateway, err)
	}

	feedback = strings.ReplaceAll(feedback, "```html", "")
	feedback = strings.ReplaceAll(feedback, "```", "")
	feedback = strings.TrimSpace(feedback)

	if err := s.store.Delete(sessionID); err != nil {
		return "", err
	}

	s.archive(session, feedback)
	return feedback, nil
}

func (s *interviewerService) loadResumeText(resume *multipart.FileHeader) string {
	if resume == nil {
		return ResumePlaceholder
	}

	_, filePath, err := s.storage.SaveResume(resume)
	if err != nil {
		log.Printf("⚠️  Failed to save resume, using placeholder: %v\n", err)
		return ResumePlaceholder
	}

	return CleanText(s.extractor.ExtractText(filePath))
}

func (s *interviewerService) retrieveQuestionContext(ctx context.Context, role, resumeText string) string {
	if s.questionBank == nil {
		return ""
	}

	embedding, err := s.gateway.GenerateEmbedding(ctx, role+"\n"+resumeText)
	if err != nil {
		log.Printf("⚠️  Failed to embed retrieval query: %v\n", err)
		return ""
	}

	results, err := s.questionBank.SearchRelevant(ctx, embedding, 3)
	if err != nil {
		log.Printf("⚠️  Question bank search failed: %v\n", err)
		return ""
	}

	return FormatQuestionContext(results)
}

func (s *interviewerService) archive(session *models.Session, feedback string) {
	if s.archiver == nil {
		return
	}

	s.archiver.Enqueue(&models.InterviewReport{
		ID:            uuid.New(),
		SessionID:     session.ID,
		CandidateName: session.CandidateName,
		JobRole:       session.JobRole,
		Exchanges:     session.Exchanges(),
		Feedback:      feedback,
	})
}

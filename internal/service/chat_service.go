package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bestill-chatbot-be/internal/constant"
	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/pkg/apperror"
	"bestill-chatbot-be/internal/pkg/logger"
	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/pkg/capture"
	"bestill-chatbot-be/pkg/events"
	"bestill-chatbot-be/pkg/llm"
)

const (
	chatModeConversation = "chat"
	chatModeCapture      = "capture"

	// Lost version races are retried with a fresh read. Past this many
	// attempts the conflict is reported to the caller.
	transcriptWriteAttempts = 3
)

// EventPublisher is the slice of the NATS publisher the service needs.
// Events are best-effort: a bus failure never fails the request.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IChatService defines the conversation orchestrator.
type IChatService interface {
	SendChat(ctx context.Context, username string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, username string) (*dto.GetHistoryResponse, error)
	AnalyzeDocument(ctx context.Context, username string, request *dto.AnalyzeDocumentRequest) (*dto.AnalyzeDocumentResponse, error)
	ClearSession(ctx context.Context, username string) error
}

// chatService routes each prompt either to the guided-capture machine or
// to the model, and appends the resulting turn pair to the durable
// transcript with a version-checked write.
type chatService struct {
	transcripts  contract.TranscriptRepository
	captures     contract.CaptureRepository
	sink         contract.EntrySink
	machine      *capture.Machine
	provider     llm.LLMProvider
	publisher    EventPublisher
	log          logger.ILogger
	modelTimeout time.Duration
}

func NewChatService(
	transcripts contract.TranscriptRepository,
	captures contract.CaptureRepository,
	sink contract.EntrySink,
	machine *capture.Machine,
	provider llm.LLMProvider,
	publisher EventPublisher,
	log logger.ILogger,
	modelTimeout time.Duration,
) IChatService {
	return &chatService{
		transcripts:  transcripts,
		captures:     captures,
		sink:         sink,
		machine:      machine,
		provider:     provider,
		publisher:    publisher,
		log:          log,
		modelTimeout: modelTimeout,
	}
}

func (s *chatService) SendChat(ctx context.Context, username string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	prompt := request.Prompt
	if strings.TrimSpace(prompt) == "" {
		return nil, apperror.InvalidInput("prompt must not be empty")
	}

	// Capture dispatch happens under the user's key lock so two
	// simultaneous requests cannot both consume the same step.
	unlock := s.captures.Lock(username)
	session := s.captures.Get(username)

	switch {
	case session.Active:
		outcome := s.machine.Advance(session, prompt)
		s.captures.Save(session)
		unlock()
		return s.finishCaptureStep(ctx, username, prompt, outcome)

	case s.machine.IsTrigger(prompt):
		// Starting a capture touches neither the transcript nor the
		// model; the interview happens outside the conversation and
		// only its confirmation lands in history.
		firstQuestion := s.machine.Start(session)
		s.captures.Save(session)
		unlock()
		return &dto.SendChatResponse{Response: firstQuestion, Mode: chatModeCapture}, nil

	default:
		unlock()
		return s.converse(ctx, username, prompt)
	}
}

// finishCaptureStep handles the outcome of one capture answer. The user's
// key lock is already released; the session was saved at its new step.
func (s *chatService) finishCaptureStep(ctx context.Context, username, prompt string, outcome capture.Outcome) (*dto.SendChatResponse, error) {
	if outcome.Kind == capture.OutcomeNext {
		return &dto.SendChatResponse{Response: outcome.Prompt, Mode: chatModeCapture}, nil
	}

	now := time.Now().UTC()
	entry := &entity.JournalEntry{
		Username:       username,
		EntryTimestamp: now,
		Title:          constant.CaptureEntryTitle,
		Content:        outcome.Record["description"],
		EventDate:      outcome.Record["date"],
		Fields:         outcome.Record,
	}

	// The session stays at the completed step until the sink write
	// lands, so a failed write can be retried by sending anything.
	if err := s.sink.Record(ctx, entry); err != nil {
		s.log.Error("chat", "journal sink write failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return nil, apperror.SinkFailure(err)
	}

	unlock := s.captures.Lock(username)
	session := s.captures.Get(username)
	s.machine.Reset(session)
	s.captures.Save(session)
	unlock()

	s.publish(ctx, events.JournalEntryRecorded(username, now))

	if err := s.appendTurnPair(ctx, username, prompt, constant.CaptureConfirmationMsg); err != nil {
		return nil, err
	}
	return &dto.SendChatResponse{Response: constant.CaptureConfirmationMsg, Mode: chatModeCapture}, nil
}

// converse runs the model over the stored history plus the new prompt and
// appends both turns atomically. The model call sits inside the
// read-modify-write loop: a lost version race re-reads and re-asks the
// model, so a reply is never stored against a history it did not see.
func (s *chatService) converse(ctx context.Context, username, prompt string) (*dto.SendChatResponse, error) {
	var reply string
	err := s.appendWithRetry(ctx, username, func(history []entity.Turn) ([]entity.Turn, error) {
		messages := make([]llm.Message, 0, len(history)+1)
		for _, turn := range history {
			messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
		}
		messages = append(messages, llm.Message{Role: entity.TurnRoleUser, Content: prompt})

		modelCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
		defer cancel()

		var err error
		reply, err = s.provider.Chat(modelCtx, messages)
		if err != nil {
			return nil, apperror.ModelUnavailable(err)
		}

		now := time.Now().UTC()
		next := append(append([]entity.Turn{}, history...),
			entity.NewUserTurn(prompt, now),
			entity.NewAssistantTurn(reply, now),
		)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.SendChatResponse{Response: reply, Mode: chatModeConversation}, nil
}

func (s *chatService) GetHistory(ctx context.Context, username string) (*dto.GetHistoryResponse, error) {
	turns, _, err := s.transcripts.Read(ctx, username)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to read conversation history", err)
	}

	response := &dto.GetHistoryResponse{Turns: make([]dto.ChatTurnResponse, 0, len(turns))}
	for _, turn := range turns {
		response.Turns = append(response.Turns, dto.NewChatTurnResponse(turn))
	}
	return response, nil
}

func (s *chatService) AnalyzeDocument(ctx context.Context, username string, request *dto.AnalyzeDocumentRequest) (*dto.AnalyzeDocumentResponse, error) {
	modelCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	analysis, err := s.provider.AnalyzeDocument(modelCtx, request.DocumentContent,
		llm.WithMaxTokens(constant.AnalysisMaxTokens),
		llm.WithTemperature(constant.AnalysisTemperature),
	)
	if err != nil {
		return nil, apperror.ModelUnavailable(err)
	}

	// The transcript records that an analysis happened, not the
	// document body itself.
	marker := fmt.Sprintf(constant.AnalyzedDocumentTurnLabel, request.DocumentName)
	if err := s.appendTurnPair(ctx, username, marker, analysis); err != nil {
		return nil, err
	}
	return &dto.AnalyzeDocumentResponse{Analysis: analysis}, nil
}

func (s *chatService) ClearSession(ctx context.Context, username string) error {
	unlock := s.captures.Lock(username)
	s.captures.Delete(username)
	unlock()

	if _, err := s.transcripts.Clear(ctx, username); err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to clear conversation history", err)
	}

	s.publish(ctx, events.TranscriptCleared(username, time.Now().UTC()))
	return nil
}

// appendTurnPair appends one user turn and one assistant turn to the
// stored history with the standard retry loop.
func (s *chatService) appendTurnPair(ctx context.Context, username, userContent, assistantContent string) error {
	return s.appendWithRetry(ctx, username, func(history []entity.Turn) ([]entity.Turn, error) {
		now := time.Now().UTC()
		next := append(append([]entity.Turn{}, history...),
			entity.NewUserTurn(userContent, now),
			entity.NewAssistantTurn(assistantContent, now),
		)
		return next, nil
	})
}

// appendWithRetry is the version-checked read-modify-write loop. build
// receives the freshly read history and returns the full replacement
// sequence. A version conflict re-runs build against a fresh read;
// anything the closure did (like a model call) may therefore run more
// than once, but no turn is ever appended twice.
func (s *chatService) appendWithRetry(ctx context.Context, username string, build func(history []entity.Turn) ([]entity.Turn, error)) error {
	var lastErr error
	for attempt := 0; attempt < transcriptWriteAttempts; attempt++ {
		turns, version, err := s.transcripts.Read(ctx, username)
		if err != nil {
			return apperror.Wrap(apperror.KindInternal, "failed to read conversation history", err)
		}

		next, err := build(turns)
		if err != nil {
			return err
		}

		if _, err := s.transcripts.WriteIfVersion(ctx, username, next, version); err != nil {
			if errors.Is(err, contract.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return apperror.Wrap(apperror.KindInternal, "failed to write conversation history", err)
		}
		return nil
	}

	s.log.Warn("chat", "transcript write conflict persisted", map[string]interface{}{
		"username": username,
		"attempts": transcriptWriteAttempts,
	})
	return apperror.PersistenceConflict(lastErr)
}

// publish fires a domain event without affecting the request outcome.
func (s *chatService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("chat", "event publish failed", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

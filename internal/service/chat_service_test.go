package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"bestill-chatbot-be/internal/constant"
	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/pkg/apperror"
	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/internal/repository/memory"
	"bestill-chatbot-be/pkg/capture"
	"bestill-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// stubProvider counts model calls and replies with a canned string.
type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	if p.reply != "" {
		return p.reply, nil
	}
	return fmt.Sprintf("reply %d", p.calls), nil
}

func (p *stubProvider) AnalyzeDocument(ctx context.Context, documentContent string, options ...llm.Option) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return "analysis of: " + documentContent, nil
}

// flakyTranscripts injects version conflicts into the first n writes.
type flakyTranscripts struct {
	contract.TranscriptRepository
	conflicts int
}

func (f *flakyTranscripts) WriteIfVersion(ctx context.Context, username string, turns []entity.Turn, expectedVersion int64) (int64, error) {
	if f.conflicts > 0 {
		f.conflicts--
		return 0, contract.ErrVersionConflict
	}
	return f.TranscriptRepository.WriteIfVersion(ctx, username, turns, expectedVersion)
}

// failingSink rejects the first n Record calls.
type failingSink struct {
	failures int
	recorded []*entity.JournalEntry
}

func (s *failingSink) Record(ctx context.Context, entry *entity.JournalEntry) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("storage unavailable")
	}
	s.recorded = append(s.recorded, entry)
	return nil
}

type fixture struct {
	service     IChatService
	transcripts contract.TranscriptRepository
	provider    *stubProvider
	sink        *failingSink
}

func newFixture(transcripts contract.TranscriptRepository) *fixture {
	provider := &stubProvider{}
	sink := &failingSink{}
	machine := capture.NewMachine(constant.CaptureTriggerPhrase, capture.DefaultQuestions())
	svc := NewChatService(
		transcripts,
		memory.NewCaptureRepository(),
		sink,
		machine,
		provider,
		nil,
		noopLogger{},
		5*time.Second,
	)
	return &fixture{service: svc, transcripts: transcripts, provider: provider, sink: sink}
}

func historyOf(t *testing.T, transcripts contract.TranscriptRepository, username string) []entity.Turn {
	t.Helper()
	turns, _, err := transcripts.Read(context.Background(), username)
	require.NoError(t, err)
	return turns
}

func TestSendChatAppendsTurnPair(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	ctx := context.Background()

	res, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "I need someone to talk to"})
	require.NoError(t, err)
	assert.Equal(t, "chat", res.Mode)

	turns := historyOf(t, f.transcripts, "alice")
	require.Len(t, turns, 2)
	assert.Equal(t, entity.TurnRoleUser, turns[0].Role)
	assert.Equal(t, "I need someone to talk to", turns[0].Content)
	assert.Equal(t, entity.TurnRoleAssistant, turns[1].Role)
	assert.Equal(t, res.Response, turns[1].Content)
}

func TestSendChatEmptyPromptRejected(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := f.service.SendChat(context.Background(), "alice", &dto.SendChatRequest{Prompt: prompt})
		require.Error(t, err)
		assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	}
	assert.Zero(t, f.provider.calls)
	assert.Empty(t, historyOf(t, f.transcripts, "alice"))
}

func TestSendChatModelFailureLeavesTranscriptUntouched(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	f.provider.err = errors.New("throttled")

	_, err := f.service.SendChat(context.Background(), "alice", &dto.SendChatRequest{Prompt: "hello"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindModelUnavailable, apperror.KindOf(err))
	assert.Empty(t, historyOf(t, f.transcripts, "alice"))
}

func TestSendChatRetriesVersionConflict(t *testing.T) {
	flaky := &flakyTranscripts{TranscriptRepository: memory.NewTranscriptRepository(), conflicts: 2}
	f := newFixture(flaky)

	res, err := f.service.SendChat(context.Background(), "alice", &dto.SendChatRequest{Prompt: "hello"})
	require.NoError(t, err)

	// Each lost race re-reads and re-asks the model, so the stored
	// reply is the one computed on the attempt that won.
	assert.Equal(t, 3, f.provider.calls)
	turns := historyOf(t, f.transcripts, "alice")
	require.Len(t, turns, 2)
	assert.Equal(t, res.Response, turns[1].Content)
}

func TestSendChatGivesUpAfterRepeatedConflicts(t *testing.T) {
	flaky := &flakyTranscripts{TranscriptRepository: memory.NewTranscriptRepository(), conflicts: 10}
	f := newFixture(flaky)

	_, err := f.service.SendChat(context.Background(), "alice", &dto.SendChatRequest{Prompt: "hello"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindPersistenceConflict, apperror.KindOf(err))
	assert.Equal(t, transcriptWriteAttempts, f.provider.calls)
}

func TestGuidedCaptureFullFlow(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	ctx := context.Background()
	questions := capture.DefaultQuestions()

	res, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "New Entry"})
	require.NoError(t, err)
	assert.Equal(t, "capture", res.Mode)
	assert.Equal(t, questions[0].Prompt, res.Response)

	answers := []string{"2024-03-01", "home", "my partner", "he broke my phone", "photos of the damage"}
	for i, answer := range answers[:4] {
		res, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: answer})
		require.NoError(t, err)
		assert.Equal(t, "capture", res.Mode)
		assert.Equal(t, questions[i+1].Prompt, res.Response)
	}

	res, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: answers[4]})
	require.NoError(t, err)
	assert.Equal(t, constant.CaptureConfirmationMsg, res.Response)

	// No model call anywhere in the flow.
	assert.Zero(t, f.provider.calls)

	require.Len(t, f.sink.recorded, 1)
	entry := f.sink.recorded[0]
	assert.Equal(t, "alice", entry.Username)
	assert.Equal(t, "2024-03-01", entry.Fields["date"])
	assert.Equal(t, "photos of the damage", entry.Fields["evidence_notes"])
	assert.Equal(t, "he broke my phone", entry.Content)

	// The interview itself stays out of the transcript; only the
	// closing exchange is recorded.
	turns := historyOf(t, f.transcripts, "alice")
	require.Len(t, turns, 2)
	assert.Equal(t, entity.TurnRoleUser, turns[0].Role)
	assert.Equal(t, "photos of the damage", turns[0].Content)
	assert.Equal(t, constant.CaptureConfirmationMsg, turns[1].Content)

	// The machine is idle again: the next prompt goes to the model.
	res, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "thank you"})
	require.NoError(t, err)
	assert.Equal(t, "chat", res.Mode)
	assert.Equal(t, 1, f.provider.calls)
}

func TestSinkFailureKeepsCaptureRetryable(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	f.sink.failures = 1
	ctx := context.Background()

	_, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "new entry"})
	require.NoError(t, err)
	for _, answer := range []string{"a", "b", "c", "d"} {
		_, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: answer})
		require.NoError(t, err)
	}

	// The final answer completes the capture but the sink is down.
	_, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "e"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindSinkFailure, apperror.KindOf(err))
	assert.Empty(t, f.sink.recorded)

	// Any prompt retries the write; the retry input is discarded.
	res, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "did it save?"})
	require.NoError(t, err)
	assert.Equal(t, constant.CaptureConfirmationMsg, res.Response)

	require.Len(t, f.sink.recorded, 1)
	entry := f.sink.recorded[0]
	assert.Equal(t, "e", entry.Fields["evidence_notes"])
	for _, v := range entry.Fields {
		assert.NotEqual(t, "did it save?", v)
	}

	// Still exactly one entry after the capture finishes.
	res, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "hello again"})
	require.NoError(t, err)
	assert.Equal(t, "chat", res.Mode)
	assert.Len(t, f.sink.recorded, 1)
}

func TestTriggerInsideSentenceGoesToModel(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())

	res, err := f.service.SendChat(context.Background(), "alice", &dto.SendChatRequest{Prompt: "I want to write a new entry about yesterday"})
	require.NoError(t, err)
	assert.Equal(t, "chat", res.Mode)
	assert.Equal(t, 1, f.provider.calls)
}

func TestUsersAreIsolated(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	ctx := context.Background()

	_, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "new entry"})
	require.NoError(t, err)

	// Bob's identical words go to the model; Alice's capture is untouched.
	res, err := f.service.SendChat(ctx, "bob", &dto.SendChatRequest{Prompt: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "chat", res.Mode)

	res, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "capture", res.Mode)
	assert.Equal(t, capture.DefaultQuestions()[1].Prompt, res.Response)
}

func TestAnalyzeDocumentAppendsMarkerTurn(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())

	res, err := f.service.AnalyzeDocument(context.Background(), "alice", &dto.AnalyzeDocumentRequest{
		DocumentName:    "bank_statement.pdf",
		DocumentContent: "statement text",
	})
	require.NoError(t, err)
	assert.Equal(t, "analysis of: statement text", res.Analysis)

	turns := historyOf(t, f.transcripts, "alice")
	require.Len(t, turns, 2)
	assert.Equal(t, "(Analyzed document: bank_statement.pdf)", turns[0].Content)
	assert.Equal(t, res.Analysis, turns[1].Content)
}

func TestClearSessionWipesHistoryAndCapture(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	ctx := context.Background()

	_, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "hello"})
	require.NoError(t, err)
	_, err = f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "new entry"})
	require.NoError(t, err)

	require.NoError(t, f.service.ClearSession(ctx, "alice"))

	history, err := f.service.GetHistory(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, history.Turns)

	// The abandoned capture is gone too: old answers go to the model.
	res, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "chat", res.Mode)
}

func TestGetHistoryPreservesOrder(t *testing.T) {
	f := newFixture(memory.NewTranscriptRepository())
	ctx := context.Background()

	for _, prompt := range []string{"one", "two", "three"} {
		_, err := f.service.SendChat(ctx, "alice", &dto.SendChatRequest{Prompt: prompt})
		require.NoError(t, err)
	}

	history, err := f.service.GetHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history.Turns, 6)
	assert.Equal(t, "one", history.Turns[0].Content)
	assert.Equal(t, "two", history.Turns[2].Content)
	assert.Equal(t, "three", history.Turns[4].Content)
	for i, turn := range history.Turns {
		if i%2 == 0 {
			assert.Equal(t, entity.TurnRoleUser, turn.Role)
		} else {
			assert.Equal(t, entity.TurnRoleAssistant, turn.Role)
		}
	}
}

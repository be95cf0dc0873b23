package service

import (
	"context"
	"time"

	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/pkg/apperror"
	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/pkg/events"
)

type IJournalService interface {
	CreateEntry(ctx context.Context, username string, request *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error)
	GetEntries(ctx context.Context, username string) ([]dto.JournalEntryResponse, error)
}

type journalService struct {
	journals  contract.JournalRepository
	publisher EventPublisher
}

func NewJournalService(journals contract.JournalRepository, publisher EventPublisher) IJournalService {
	return &journalService{journals: journals, publisher: publisher}
}

// CreateEntry records a direct (non-guided) journal entry.
func (s *journalService) CreateEntry(ctx context.Context, username string, request *dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	now := time.Now().UTC()
	entry := &entity.JournalEntry{
		Username:       username,
		EntryTimestamp: now,
		Title:          request.Title,
		Content:        request.Content,
		EventDate:      request.EventDate,
	}

	if err := s.journals.Record(ctx, entry); err != nil {
		return nil, apperror.SinkFailure(err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.JournalEntryRecorded(username, now))
	}

	response := dto.NewJournalEntryResponse(*entry)
	return &response, nil
}

func (s *journalService) GetEntries(ctx context.Context, username string) ([]dto.JournalEntryResponse, error) {
	entries, err := s.journals.FindAllByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to list journal entries", err)
	}

	responses := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewJournalEntryResponse(*entry))
	}
	return responses, nil
}

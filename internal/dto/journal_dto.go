package dto

import (
	"time"

	"bestill-chatbot-be/internal/entity"
)

type CreateJournalEntryRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content" validate:"required"`
	EventDate string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
}

type JournalEntryResponse struct {
	Title          string            `json:"title"`
	Content        string            `json:"content,omitempty"`
	EventDate      string            `json:"event_date,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
	EntryTimestamp time.Time         `json:"entry_timestamp"`
}

func NewJournalEntryResponse(e entity.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		Title:          e.Title,
		Content:        e.Content,
		EventDate:      e.EventDate,
		Fields:         e.Fields,
		EntryTimestamp: e.EntryTimestamp,
	}
}

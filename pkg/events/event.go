package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "JOURNAL_ENTRY_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the concrete carrier used by the event constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// JournalEntryRecorded fires after a guided-capture record or direct
// journal entry is durably stored.
func JournalEntryRecorded(username string, at time.Time) Event {
	return BaseEvent{
		Type: "JOURNAL_ENTRY_RECORDED",
		Data: map[string]interface{}{
			"username":    username,
			"recorded_at": at,
		},
		OccurredAt: at,
	}
}

// TranscriptCleared fires after a user's conversation history is wiped.
func TranscriptCleared(username string, at time.Time) Event {
	return BaseEvent{
		Type: "TRANSCRIPT_CLEARED",
		Data: map[string]interface{}{
			"username": username,
		},
		OccurredAt: at,
	}
}

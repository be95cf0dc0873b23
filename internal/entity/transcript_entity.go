package entity

import "time"

const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// Turn is one message in a conversation. Immutable once appended; ordering
// within the transcript is the only relationship between turns.
type Turn struct {
	Role      string    `json:"role" dynamodbav:"role"`
	Content   string    `json:"content" dynamodbav:"content"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transcript is the full ordered history of turns for one user, together
// with the opaque version token returned by the store. Version 0 is the
// sentinel for "no record yet".
type Transcript struct {
	Username string
	Turns    []Turn
	Version  int64
}

func NewUserTurn(content string, at time.Time) Turn {
	return Turn{Role: TurnRoleUser, Content: content, CreatedAt: at}
}

func NewAssistantTurn(content string, at time.Time) Turn {
	return Turn{Role: TurnRoleAssistant, Content: content, CreatedAt: at}
}

package dto

import (
	"time"

	"bestill-chatbot-be/internal/entity"
)

type SendChatRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// Mode tells the client whether the reply came from the model or from
// the guided-capture flow.
type SendChatResponse struct {
	Response string `json:"response"`
	Mode     string `json:"mode"` // "chat" | "capture"
}

type ChatTurnResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type GetHistoryResponse struct {
	Turns []ChatTurnResponse `json:"turns"`
}

type AnalyzeDocumentRequest struct {
	DocumentName    string `json:"document_name" validate:"required"`
	DocumentContent string `json:"document_content" validate:"required"`
}

type AnalyzeDocumentResponse struct {
	Analysis string `json:"analysis"`
}

func NewChatTurnResponse(t entity.Turn) ChatTurnResponse {
	return ChatTurnResponse{
		Role:      t.Role,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

package factory

import (
	"context"
	"fmt"

	"bestill-chatbot-be/pkg/llm"
	"bestill-chatbot-be/pkg/llm/bedrock"
	"bestill-chatbot-be/pkg/llm/ollama"
)

func NewLLMProvider(ctx context.Context, providerType, modelName, region, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "bedrock":
		return bedrock.NewTitanProvider(ctx, region, modelName)
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bestill-chatbot-be/internal/constant"
	"bestill-chatbot-be/pkg/llm"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// TitanProvider invokes Amazon Titan text models through Bedrock Runtime.
type TitanProvider struct {
	client  *bedrockruntime.Client
	modelId string
}

// Ensure TitanProvider implements LLMProvider
var _ llm.LLMProvider = &TitanProvider{}

func NewTitanProvider(ctx context.Context, region, modelId string) (*TitanProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if modelId == "" {
		modelId = constant.TitanModelId
	}
	return &TitanProvider{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelId: modelId,
	}, nil
}

// --- Request/Response structs (Internal to this package) ---

type titanTextGenerationConfig struct {
	MaxTokenCount int      `json:"maxTokenCount"`
	StopSequences []string `json:"stopSequences"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"topP"`
}

type titanRequest struct {
	InputText            string                    `json:"inputText"`
	TextGenerationConfig titanTextGenerationConfig `json:"textGenerationConfig"`
}

type titanResult struct {
	OutputText string `json:"outputText"`
}

type titanResponse struct {
	Results []titanResult `json:"results"`
}

// formatConversation flattens history into the prompt layout the preface
// expects, one prefixed block per turn.
func formatConversation(history []llm.Message) string {
	blocks := make([]string, 0, len(history))
	for _, message := range history {
		prefix := constant.ChatAssistantPrefix
		if message.Role == "user" {
			prefix = constant.ChatUserPrefix
		}
		blocks = append(blocks, fmt.Sprintf("%s: %s", prefix, message.Content))
	}
	return strings.Join(blocks, "\n\n")
}

// --- Interface Implementation ---

func (p *TitanProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: constant.ChatTemperature,
		MaxTokens:   constant.ChatMaxTokenCount,
	}
	for _, opt := range opts {
		opt(options)
	}

	fullPrompt := constant.SystemPreface + "\n\n" + formatConversation(history) + "\n\n"
	return p.invoke(ctx, fullPrompt, options)
}

func (p *TitanProvider) AnalyzeDocument(ctx context.Context, documentContent string, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: constant.AnalysisTemperature,
		MaxTokens:   constant.AnalysisMaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	prompt := fmt.Sprintf(constant.DocumentAnalysisPromptTemplate, documentContent)
	return p.invoke(ctx, prompt, options)
}

func (p *TitanProvider) invoke(ctx context.Context, prompt string, options *llm.Options) (string, error) {
	payload := titanRequest{
		InputText: prompt,
		TextGenerationConfig: titanTextGenerationConfig{
			MaxTokenCount: options.MaxTokens,
			StopSequences: []string{},
			Temperature:   options.Temperature,
			TopP:          constant.ChatTopP,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	modelId := p.modelId
	if options.Model != "" {
		modelId = options.Model
	}

	output, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelId),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke failed: %w", err)
	}

	var resp titanResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("bedrock returned no results")
	}

	return strings.TrimSpace(resp.Results[0].OutputText), nil
}

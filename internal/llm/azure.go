package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultChatModel      = "gpt-4o"
	defaultReasoningModel = "o3-mini"

	reasoningAPIVersion = "2024-12-01-preview"
)

// AzureClient talks to Azure OpenAI deployments through the OpenAI-compatible
// API. The chat deployment doubles as the vision deployment (gpt-4o reads
// images); scoring goes to a separate reasoning deployment.
type AzureClient struct {
	chat      *openai.Client
	reasoning *openai.Client

	chatModel      string
	reasoningModel string
}

// NewAzureClient builds a client from the environment. Missing credentials
// are an error here so startup can fail fast.
func NewAzureClient() (*AzureClient, error) {
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if apiKey == "" {
		return nil, errors.New("missing AZURE_OPENAI_API_KEY")
	}
	if endpoint == "" {
		return nil, errors.New("missing AZURE_OPENAI_ENDPOINT")
	}

	chatModel := os.Getenv("AZURE_OPENAI_CHAT_MODEL")
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	reasoningModel := os.Getenv("AZURE_OPENAI_REASONING_MODEL")
	if reasoningModel == "" {
		reasoningModel = defaultReasoningModel
	}

	chatCfg := openai.DefaultAzureConfig(apiKey, endpoint)

	// Reasoning deployments are only served on the newer API version.
	reasoningCfg := openai.DefaultAzureConfig(apiKey, endpoint)
	reasoningCfg.APIVersion = reasoningAPIVersion

	return &AzureClient{
		chat:           openai.NewClientWithConfig(chatCfg),
		reasoning:      openai.NewClientWithConfig(reasoningCfg),
		chatModel:      chatModel,
		reasoningModel: reasoningModel,
	}, nil
}

func (c *AzureClient) Vision(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert food product label analyzer with OCR capabilities.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64),
						},
					},
				},
			},
		},
		MaxTokens:   2000,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("vision completion: %w", err)
	}
	return firstChoice(resp)
}

func (c *AzureClient) Reason(ctx context.Context, prompt string) (string, error) {
	resp, err := c.reasoning.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.reasoningModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxCompletionTokens: 5000,
	})
	if err != nil {
		return "", fmt.Errorf("reasoning completion: %w", err)
	}
	return firstChoice(resp)
}

func (c *AzureClient) Chat(ctx context.Context, system, user string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return firstChoice(resp)
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errors.New("empty model response")
	}
	return resp.Choices[0].Message.Content, nil
}

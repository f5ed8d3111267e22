package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const chatSystemPrompt = `You are an assistant inside a legal case management tool.
You help lawyers, paralegals and their clients understand the case they are working on.
Answer concisely. You are not a substitute for legal advice; say so when a question needs a lawyer's judgement.`

type AIService struct {
	client *openai.Client
	model  string
}

// NewAIService returns nil when apiKey is empty so callers can treat the
// assistant as not configured.
func NewAIService(apiKey, baseURL, model string) *AIService {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Respond sends the case context, recent history and the new message to the
// chat completion API.
func (s *AIService) Respond(ctx context.Context, prompt ChatPrompt) (string, error) {
	if s == nil || s.client == nil {
		return "", errors.New("OpenAI client not initialized")
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
	}
	if prompt.CaseTitle != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("Current case: %s", prompt.CaseTitle),
		})
	}
	for _, turn := range prompt.History {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.Message},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.Response},
		)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.Message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return content, nil
}

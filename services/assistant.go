package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CrowderSoup/godolist/models"
	openai "github.com/sashabaranov/go-openai"
)

const assistantPrompt = "You are the assistant of a to-do list app. Help the user plan, " +
	"prioritise and break down their tasks. Keep answers short."

// maxHistory bounds how many earlier messages are sent with each request.
const maxHistory = 20

// Assistant writes the reply to a chat message with an OpenAI-compatible
// chat completion API.
type Assistant struct {
	client *openai.Client
	model  string
}

type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

func NewAssistant(cfg AssistantConfig) *Assistant {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	config.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Assistant{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}
}

// Reply returns the assistant's answer to the last message of history.
func (a *Assistant) Reply(ctx context.Context, history []models.Message) (string, error) {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: convertMessages(history),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func convertMessages(history []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: assistantPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

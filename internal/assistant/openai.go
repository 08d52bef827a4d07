package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"taskdeck/internal/service"
)

const (
	// defaultModel is the chat model used when none is configured.
	defaultModel = "gpt-4o-mini"

	// requestTimeout bounds a single completion call.
	requestTimeout = 30 * time.Second
)

// OpenAIResponder answers questions through the OpenAI chat API, feeding the
// task context into the system prompt.
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

var _ Responder = (*OpenAIResponder)(nil)

// NewOpenAIResponder creates a responder with the given API key. Model may be
// empty to use the default.
func NewOpenAIResponder(apiKey, model string) *OpenAIResponder {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIResponder{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Respond implements Responder.
func (r *OpenAIResponder) Respond(ctx context.Context, message string, tasks []service.TaskContext) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(tasks),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: message,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("assistant returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func systemPrompt(tasks []service.TaskContext) string {
	var sb strings.Builder
	sb.WriteString("You are a concise task-management assistant. ")
	sb.WriteString("Answer questions about the user's tasks.")
	if len(tasks) > 0 {
		sb.WriteString(" Current tasks:")
		for _, t := range tasks {
			fmt.Fprintf(&sb, "\n- [%s] %s", t.Status, t.Title)
		}
	}
	return sb.String()
}

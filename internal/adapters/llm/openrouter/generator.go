package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultTimeout = 60 * time.Second
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator talks to any OpenAI-compatible chat completions endpoint.
type Generator struct {
	client chatClient
}

var _ ports.Generator = (*Generator)(nil)

func NewGenerator(cfg Config) *Generator {
	apiKey := cfg.APIKey
	if apiKey == "" {
		// Local gateways accept any bearer token.
		apiKey = "sk-xxx"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/")
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &Generator{client: openai.NewClientWithConfig(config)}
}

func (g *Generator) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, toChatRequest(req))
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}

	text := CleanResponse(resp.Choices[0].Message.Content)
	if text == "" {
		return "", domain.ErrEmptyCompletion
	}

	return text, nil
}

func toChatRequest(req ports.GenerationRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Context)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemInstructions,
	})
	for _, message := range req.Context {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    chatRole(message.Role),
			Content: message.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
}

func chatRole(role domain.Role) string {
	if role == domain.RoleAgent {
		return openai.ChatMessageRoleAssistant
	}

	return openai.ChatMessageRoleUser
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		return fmt.Errorf("chat completion: %w", err)
	}

	if status == http.StatusTooManyRequests {
		return fmt.Errorf("chat completion status %d: %w: %w", status, domain.ErrRateLimited, err)
	}

	return fmt.Errorf("chat completion status %d: %w: %w", status, domain.ErrGeneratorAPI, err)
}

// CleanResponse collapses every whitespace run, newlines included, into a
// single space.
func CleanResponse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/bnema/emergent-chefs/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequestBody struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionJSON(content string) string {
	return fmt.Sprintf(`{"id":"gen-1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGenerator(Config{APIKey: "sk-test", BaseURL: server.URL, Timeout: 5 * time.Second})
}

func testRequest() ports.GenerationRequest {
	return ports.GenerationRequest{
		AgentName:          "Agent 1 Chef Pasta",
		SystemInstructions: "You are Chef Pasta.\n\nTeam words: hot=++. Use these too.",
		Context: []domain.Message{
			{Role: domain.RolePrompt, Content: "Course 1: Spring Dawn Amuse-Bouche. Your initial concept?"},
			{Role: domain.RoleAgent, Content: "T + basil >> foam"},
		},
		Prompt:      "Course 1: Spring Dawn Amuse-Bouche. Your initial concept?",
		Model:       "anthropic/claude-3.5-sonnet",
		Temperature: 0.9,
		MaxTokens:   30,
	}
}

func TestGeneratorSendsChatRequestAndCleansResponse(t *testing.T) {
	t.Parallel()

	var got chatRequestBody
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, completionJSON("  T +\n basil\r\n>>   S  "))
	})

	text, err := generator.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "T + basil >> S", text)

	assert.Equal(t, "anthropic/claude-3.5-sonnet", got.Model)
	assert.Equal(t, 30, got.MaxTokens)
	assert.InDelta(t, 0.9, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Team words: hot=++")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "user", got.Messages[3].Role)
	assert.Equal(t, "Course 1: Spring Dawn Amuse-Bouche. Your initial concept?", got.Messages[3].Content)
}

func TestGeneratorClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down","type":"rate_limit"}}`, wantErr: domain.ErrRateLimited},
		{name: "api error", status: http.StatusInternalServerError, body: `{"error":{"message":"boom","type":"server_error"}}`, wantErr: domain.ErrGeneratorAPI},
		{name: "non json error", status: http.StatusBadGateway, body: `upstream down`, wantErr: domain.ErrGeneratorAPI},
		{name: "no choices", status: http.StatusOK, body: `{"id":"gen-1","object":"chat.completion","choices":[]}`, wantErr: domain.ErrEmptyCompletion},
		{name: "blank content", status: http.StatusOK, body: completionJSON(" \n "), wantErr: domain.ErrEmptyCompletion},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			generator := newTestGenerator(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = fmt.Fprint(w, tc.body)
			})

			_, err := generator.Generate(context.Background(), testRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGeneratorPassesThroughCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	generator := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := generator.Generate(ctx, testRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCleanResponse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", CleanResponse("\ta \n b\r\nc  "))
	assert.Equal(t, "", CleanResponse(" \n "))
}

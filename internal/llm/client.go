// Package llm is the boundary to the external completion engine. The wire
// format is the OpenAI chat-completions API; anything speaking it can back
// the assistant.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableside/pkg/utils"
)

type Client interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

type ChatRequest struct {
	Model      string    `json:"model"`
	Messages   []Message `json:"messages"`
	Tools      []ToolDef `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the requested tool name plus its arguments as a
// JSON-encoded string, exactly as the engine sends them.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type ToolDef struct {
	Type     string      `json:"type"`
	Function FunctionDef `json:"function"`
}

type FunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message Message `json:"message"`
}

// Msg returns the first choice's message, or a zero Message when the
// engine sent no choices.
func (r ChatResponse) Msg() Message {
	if len(r.Choices) == 0 {
		return Message{}
	}
	return r.Choices[0].Message
}

type HTTPClient struct {
	logger  *zap.Logger
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHTTPClient(logger *zap.Logger, baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http: utils.NewHTTPClient(
			utils.WithClientTimeout(timeout),
			utils.WithResponseHeaderTimeout(timeout),
		),
	}
}

func (c *HTTPClient) ChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var out ChatResponse
	body, err := json.Marshal(req)
	if err != nil {
		return out, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("completion engine error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return out, fmt.Errorf("completion engine returned %d: %s", resp.StatusCode, snippet)
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

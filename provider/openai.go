package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAI calls the chat completions endpoint directly so the request body
// carries a temperature only for models that accept one.
type OpenAI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAI(apiKey, baseURL string, timeout time.Duration) (*OpenAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &generator.ConfigurationError{Setting: "OpenAI API key"}
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func roleOf(t schema.ChatMessageType) (string, error) {
	switch t {
	case schema.ChatMessageTypeSystem:
		return "system", nil
	case schema.ChatMessageTypeHuman, schema.ChatMessageTypeGeneric:
		return "user", nil
	case schema.ChatMessageTypeAI:
		return "assistant", nil
	default:
		return "", fmt.Errorf("unsupported message role %q", t)
	}
}

// BuildChatRequest converts a completion request into the chat completions
// payload.
func BuildChatRequest(req generator.CompletionRequest) (ChatRequest, error) {
	payload := ChatRequest{
		Model:    string(req.Model),
		Messages: make([]chatMessage, 0, len(req.Messages)),
	}

	for _, m := range req.Messages {
		role, err := roleOf(m.Role)
		if err != nil {
			return ChatRequest{}, err
		}

		var text strings.Builder
		for _, part := range m.Parts {
			tc, ok := part.(llms.TextContent)
			if !ok {
				return ChatRequest{}, fmt.Errorf("unsupported content part %T", part)
			}
			text.WriteString(tc.Text)
		}
		payload.Messages = append(payload.Messages, chatMessage{Role: role, Content: text.String()})
	}

	if req.JSONMode {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	switch opts := req.Options.(type) {
	case generator.SampledOptions:
		t := opts.Temperature
		payload.Temperature = &t
	case generator.ReasoningOptions, nil:
	}

	return payload, nil
}

func (o *OpenAI) Complete(ctx context.Context, req generator.CompletionRequest) (string, error) {
	payload, err := BuildChatRequest(req)
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", &generator.ProviderError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &generator.ProviderError{Reason: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &generator.ProviderError{
			Reason:     "unexpected response",
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(respBody))),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &generator.ProviderError{Reason: "failed to parse response", Err: err}
	}
	if len(chatResp.Choices) == 0 {
		return "", &generator.ProviderError{Reason: "response has no choices"}
	}

	content := chatResp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &generator.ProviderError{Reason: "completion returned no content"}
	}

	return content, nil
}

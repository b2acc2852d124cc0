package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"documind-backend/internal/llm"
	"documind-backend/internal/shared/telemetry"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Per-call-shape sampling settings. Analysis runs cool for consistent JSON;
// the free-text shapes run slightly warmer.
const (
	analyzeTemperature = 0.3
	analyzeMaxTokens   = 2000
	qaTemperature      = 0.5
	qaMaxTokens        = 500
	summaryTemperature = 0.4
	summaryMaxTokens   = 800
)

// Client implements llm.Client against the Groq OpenAI-compatible
// chat-completions endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient constructs a Groq-backed client.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GROQ_MODEL is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = defaultBaseURL
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete runs a single chat completion and returns the response content.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONObject {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion missing choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion empty content")
	}

	telemetry.Info("llm.completion", map[string]any{
		"model":             c.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	})
	return content, nil
}

// AnalyzeDocument requests a JSON-only structured analysis of the document
// text, stripping any markdown code fence before parsing.
func (c *Client) AnalyzeDocument(ctx context.Context, text string) (llm.DocumentAnalysis, error) {
	raw, err := c.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.AnalyzeMessages(text),
		JSONObject:  true,
		Temperature: analyzeTemperature,
		MaxTokens:   analyzeMaxTokens,
	})
	if err != nil {
		return llm.DocumentAnalysis{}, fmt.Errorf("%w: %v", llm.ErrAnalysis, err)
	}

	var analysis llm.DocumentAnalysis
	if err := json.Unmarshal([]byte(llm.StripJSONFence(raw)), &analysis); err != nil {
		return llm.DocumentAnalysis{}, fmt.Errorf("%w: parse response: %v", llm.ErrAnalysis, err)
	}
	return analysis, nil
}

// AnswerQuestion answers a question about the document text with the caller's
// history replayed as context.
func (c *Client) AnswerQuestion(ctx context.Context, text, question string, history []llm.Turn) (string, error) {
	answer, err := c.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.QAMessages(text, question, history),
		Temperature: qaTemperature,
		MaxTokens:   qaMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrQA, err)
	}
	return answer, nil
}

// FocusedSummary produces a free-text summary constrained to the focus
// instruction.
func (c *Client) FocusedSummary(ctx context.Context, text, focus string) (string, error) {
	summary, err := c.Complete(ctx, llm.CompletionRequest{
		Messages:    llm.SummaryMessages(text, focus),
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrSummary, err)
	}
	return summary, nil
}

var _ llm.Client = (*Client)(nil)

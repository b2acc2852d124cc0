package llm

import (
	"context"
	"errors"
)

// Character budgets for text sent upstream. These are approximations of the
// model's input ceiling, not token counts; very dense text may still overflow.
const (
	AnalyzeTextLimit = 15000
	QATextLimit      = 10000
	SummaryTextLimit = 12000
	CustomTextLimit  = 10000
)

var (
	// ErrAnalysis covers any failure of structured document analysis,
	// upstream or parse, undistinguished by cause.
	ErrAnalysis = errors.New("failed to analyze document")
	// ErrQA covers upstream failures while answering a question.
	ErrQA = errors.New("failed to answer question")
	// ErrSummary covers upstream failures while generating a focused summary.
	ErrSummary = errors.New("failed to generate focused summary")
)

// DocumentAnalysis is the structured result of analyzing a document.
type DocumentAnalysis struct {
	Summary     string              `json:"summary"`
	KeyPoints   []string            `json:"keyPoints"`
	Entities    map[string][]string `json:"entities"`
	Sentiment   string              `json:"sentiment"`
	ActionItems []string            `json:"actionItems"`
	Topics      []string            `json:"topics"`
	WordCount   int                 `json:"wordCount"`
	ReadingTime string              `json:"readingTime"`
}

// Turn is one prior question/answer pair supplied by the caller as
// conversational context. Turns are never stored server-side.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Message roles mirror the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat message in a completion request.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest is the single parameterized completion every call shape
// is built on: a message sequence plus an explicit JSON-vs-free-text switch.
type CompletionRequest struct {
	Messages    []Message
	JSONObject  bool
	Temperature float32
	MaxTokens   int
}

// Client abstracts the hosted chat-completion provider. All calls are
// single-shot request/response with no retries and no streaming.
type Client interface {
	// AnalyzeDocument produces a structured analysis of the document text.
	AnalyzeDocument(ctx context.Context, text string) (DocumentAnalysis, error)
	// AnswerQuestion answers a question about the document text, replaying
	// the supplied history as conversational context.
	AnswerQuestion(ctx context.Context, text, question string, history []Turn) (string, error)
	// FocusedSummary produces a free-text summary constrained to the given
	// focus instruction.
	FocusedSummary(ctx context.Context, text, focus string) (string, error)
	// Complete runs an arbitrary completion request.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Truncate cuts text to at most limit characters without splitting a rune.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"documind-backend/internal/analyses"
	"documind-backend/internal/llm"
)

var (
	// ErrInvalidExtractionType rejects extraction types outside the built-in set.
	ErrInvalidExtractionType = errors.New("invalid extractionType")
)

var extractionPrompts = map[string]string{
	"dates":   "Extract all dates, deadlines, and time-related information",
	"names":   "Extract all person names and their roles/positions mentioned",
	"numbers": "Extract all important numbers, statistics, and figures with their context",
	"emails":  "Extract all email addresses and contact information",
}

var summaryLengths = map[string]string{
	"short":  "1-2 sentences",
	"medium": "1 paragraph (4-5 sentences)",
	"long":   "2-3 paragraphs",
}

// Service provides the auxiliary model operations that sit beside the main
// document pipeline.
type Service struct {
	Repo  analyses.Repo
	LLM   llm.Client
	Model string
}

// TestConnection issues a trivial completion to verify upstream reachability.
func (s *Service) TestConnection(ctx context.Context) (string, error) {
	return s.LLM.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Respond with 'OK' if you can read this."},
		},
		MaxTokens: 50,
	})
}

// CustomAnalysis runs a caller-supplied prompt over caller-supplied text.
func (s *Service) CustomAnalysis(ctx context.Context, text, prompt string) (string, error) {
	return s.LLM.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a helpful AI assistant for document analysis."},
			{Role: llm.RoleUser, Content: fmt.Sprintf("%s\n\nText to analyze:\n%s", prompt, llm.Truncate(text, llm.CustomTextLimit))},
		},
		Temperature: 0.5,
		MaxTokens:   1000,
	})
}

// DocumentRef identifies one side of a comparison.
type DocumentRef struct {
	ID        string `json:"id"`
	FileName  string `json:"fileName"`
	WordCount int    `json:"wordCount"`
}

// Comparison is the result of comparing two stored analyses.
type Comparison struct {
	Document1  DocumentRef `json:"document1"`
	Document2  DocumentRef `json:"document2"`
	Comparison string      `json:"comparison"`
}

// Compare loads two records and asks the model to contrast them using their
// stored summaries and key points.
func (s *Service) Compare(ctx context.Context, id1, id2 string) (Comparison, error) {
	rec1, err := s.Repo.Load(ctx, id1)
	if err != nil {
		return Comparison{}, err
	}
	rec2, err := s.Repo.Load(ctx, id2)
	if err != nil {
		return Comparison{}, err
	}

	prompt := fmt.Sprintf(`Compare these two documents and provide:
1. Main similarities
2. Key differences
3. Which document covers topics more comprehensively
4. Recommendations based on the comparison

Document 1 (%s):
Summary: %s
Key Points: %s

Document 2 (%s):
Summary: %s
Key Points: %s`,
		rec1.FileName, rec1.Analysis.Summary, strings.Join(rec1.Analysis.KeyPoints, ", "),
		rec2.FileName, rec2.Analysis.Summary, strings.Join(rec2.Analysis.KeyPoints, ", "))

	comparison, err := s.LLM.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are an expert at comparing and contrasting documents."},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   800,
	})
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Document1:  DocumentRef{ID: rec1.ID, FileName: rec1.FileName, WordCount: rec1.Metadata.WordCount},
		Document2:  DocumentRef{ID: rec2.ID, FileName: rec2.FileName, WordCount: rec2.Metadata.WordCount},
		Comparison: comparison,
	}, nil
}

// Summarize produces a summary of a stored document at one of the supported
// lengths, defaulting to medium.
func (s *Service) Summarize(ctx context.Context, id, length string) (string, string, error) {
	target, ok := summaryLengths[length]
	if !ok {
		length = "medium"
		target = summaryLengths[length]
	}

	rec, err := s.Repo.Load(ctx, id)
	if err != nil {
		return "", "", err
	}
	summary, err := s.LLM.FocusedSummary(ctx, rec.DocumentText, fmt.Sprintf("Create a %s summary of the main points", target))
	if err != nil {
		return "", "", err
	}
	return summary, length, nil
}

// ExtractInfo pulls one category of structured information out of a stored
// document via a focused instruction.
func (s *Service) ExtractInfo(ctx context.Context, id, extractionType string) (string, error) {
	prompt, ok := extractionPrompts[extractionType]
	if !ok {
		return "", ErrInvalidExtractionType
	}

	rec, err := s.Repo.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.LLM.FocusedSummary(ctx, rec.DocumentText, prompt)
}

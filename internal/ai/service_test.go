package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"documind-backend/internal/analyses"
	"documind-backend/internal/extract"
	"documind-backend/internal/llm"
)

type memRepo struct {
	records map[string]analyses.Record
}

func (m *memRepo) Save(ctx context.Context, rec analyses.Record) error {
	if m.records == nil {
		m.records = map[string]analyses.Record{}
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *memRepo) Load(ctx context.Context, id string) (analyses.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return analyses.Record{}, analyses.ErrNotFound
	}
	return rec, nil
}

func (m *memRepo) List(ctx context.Context) ([]analyses.Record, error) {
	out := make([]analyses.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

type scriptedLLM struct {
	completion  string
	completeErr error
	summary     string
	summaryErr  error
	lastReq     llm.CompletionRequest
	lastFocus   string
}

func (s *scriptedLLM) AnalyzeDocument(ctx context.Context, text string) (llm.DocumentAnalysis, error) {
	return llm.DocumentAnalysis{}, errors.New("not used")
}

func (s *scriptedLLM) AnswerQuestion(ctx context.Context, text, question string, history []llm.Turn) (string, error) {
	return "", errors.New("not used")
}

func (s *scriptedLLM) FocusedSummary(ctx context.Context, text, focus string) (string, error) {
	s.lastFocus = focus
	return s.summary, s.summaryErr
}

func (s *scriptedLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	s.lastReq = req
	return s.completion, s.completeErr
}

func seededService(mock *scriptedLLM) *Service {
	repo := &memRepo{records: map[string]analyses.Record{
		"doc-1": {
			ID:       "doc-1",
			FileName: "roadmap.pdf",
			Metadata: extract.Metadata{WordCount: 800},
			Analysis: llm.DocumentAnalysis{
				Summary:   "A product roadmap for next year.",
				KeyPoints: []string{"Q1 launch", "Q3 expansion"},
			},
			DocumentText: "roadmap body",
		},
		"doc-2": {
			ID:       "doc-2",
			FileName: "budget.docx",
			Metadata: extract.Metadata{WordCount: 450},
			Analysis: llm.DocumentAnalysis{
				Summary:   "An annual budget proposal.",
				KeyPoints: []string{"headcount", "capex"},
			},
			DocumentText: "budget body",
		},
	}}
	return &Service{Repo: repo, LLM: mock, Model: "test-model"}
}

func TestTestConnection(t *testing.T) {
	mock := &scriptedLLM{completion: "OK"}
	svc := seededService(mock)

	response, err := svc.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", response)
	assert.Equal(t, 50, mock.lastReq.MaxTokens)
	assert.False(t, mock.lastReq.JSONObject)
}

func TestCustomAnalysisTruncatesText(t *testing.T) {
	mock := &scriptedLLM{completion: "analysis result"}
	svc := seededService(mock)

	long := strings.Repeat("y", llm.CustomTextLimit+100)
	result, err := svc.CustomAnalysis(context.Background(), long, "List the risks")
	require.NoError(t, err)
	assert.Equal(t, "analysis result", result)

	require.Len(t, mock.lastReq.Messages, 2)
	user := mock.lastReq.Messages[1].Content
	assert.Contains(t, user, "List the risks")
	assert.Less(t, len(user), llm.CustomTextLimit+100, "document text must be truncated before sending")
}

func TestCompare(t *testing.T) {
	mock := &scriptedLLM{completion: "Both cover planning; the roadmap goes deeper."}
	svc := seededService(mock)

	cmp, err := svc.Compare(context.Background(), "doc-1", "doc-2")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", cmp.Document1.ID)
	assert.Equal(t, "roadmap.pdf", cmp.Document1.FileName)
	assert.Equal(t, 800, cmp.Document1.WordCount)
	assert.Equal(t, "budget.docx", cmp.Document2.FileName)
	assert.Equal(t, "Both cover planning; the roadmap goes deeper.", cmp.Comparison)

	prompt := mock.lastReq.Messages[1].Content
	assert.Contains(t, prompt, "A product roadmap for next year.")
	assert.Contains(t, prompt, "Q1 launch, Q3 expansion")
	assert.Contains(t, prompt, "An annual budget proposal.")
}

func TestCompareMissingRecord(t *testing.T) {
	svc := seededService(&scriptedLLM{})

	_, err := svc.Compare(context.Background(), "doc-1", "gone")
	assert.ErrorIs(t, err, analyses.ErrNotFound)
}

func TestSummarizeLengths(t *testing.T) {
	mock := &scriptedLLM{summary: "short summary"}
	svc := seededService(mock)
	ctx := context.Background()

	_, length, err := svc.Summarize(ctx, "doc-1", "short")
	require.NoError(t, err)
	assert.Equal(t, "short", length)
	assert.Contains(t, mock.lastFocus, "1-2 sentences")

	// Unknown lengths fall back to medium rather than failing.
	_, length, err = svc.Summarize(ctx, "doc-1", "gigantic")
	require.NoError(t, err)
	assert.Equal(t, "medium", length)
	assert.Contains(t, mock.lastFocus, "1 paragraph")
}

func TestExtractInfo(t *testing.T) {
	mock := &scriptedLLM{summary: "2025-01-15: kickoff"}
	svc := seededService(mock)

	result, err := svc.ExtractInfo(context.Background(), "doc-1", "dates")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15: kickoff", result)
	assert.Contains(t, mock.lastFocus, "dates")
}

func TestExtractInfoInvalidType(t *testing.T) {
	svc := seededService(&scriptedLLM{})

	_, err := svc.ExtractInfo(context.Background(), "doc-1", "phone-numbers")
	assert.ErrorIs(t, err, ErrInvalidExtractionType)
}

package analyses

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"documind-backend/internal/extract"
	"documind-backend/internal/llm"
	"documind-backend/internal/notify"
	"documind-backend/internal/shared/metrics"
	"documind-backend/internal/shared/telemetry"
)

const (
	// minTextChars is the minimum trimmed length of extracted text.
	minTextChars = 50
	// documentTextLimit is the fixed retention cutoff for Q&A text.
	documentTextLimit = 5000
)

// Service contains the analysis pipeline and record operations.
type Service struct {
	Repo   Repo
	LLM    llm.Client
	Mailer notify.Mailer
}

// Upload describes a spooled uploaded file awaiting analysis.
type Upload struct {
	// Path is the temporary on-disk location of the uploaded bytes. The
	// pipeline deletes it on every terminal path.
	Path     string
	FileName string
	Email    string
	Notify   bool
}

// Result is returned to the caller after a successful pipeline run.
type Result struct {
	AnalysisID string               `json:"analysisId"`
	FileName   string               `json:"fileName"`
	Metadata   extract.Metadata     `json:"metadata"`
	Analysis   llm.DocumentAnalysis `json:"analysis"`
}

// Analyze runs the full pipeline for one upload: extract, validate, analyze,
// persist, then optionally notify, and finally remove the spooled file. Every
// failure before persistence also removes the spooled file; a notification
// failure is logged and never aborts the pipeline.
func (s *Service) Analyze(ctx context.Context, up Upload) (Result, error) {
	start := time.Now()

	data, err := os.ReadFile(up.Path)
	if err != nil {
		s.removeUpload(up.Path)
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	extracted, err := extract.Extract(data, up.FileName)
	if err != nil {
		s.removeUpload(up.Path)
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	if utf8.RuneCountInString(strings.TrimSpace(extracted.Text)) < minTextChars {
		s.removeUpload(up.Path)
		metrics.IncAnalysisFailed()
		return Result{}, ErrInsufficientText
	}

	telemetry.Info("analysis.extracted", map[string]any{
		"file_name":  up.FileName,
		"word_count": extracted.Metadata.WordCount,
		"page_count": extracted.Metadata.PageCount,
	})

	analysis, err := s.LLM.AnalyzeDocument(ctx, extracted.Text)
	if err != nil {
		s.removeUpload(up.Path)
		metrics.IncAnalysisFailed()
		return Result{}, err
	}

	rec := Record{
		ID:           uuid.NewString(),
		FileName:     up.FileName,
		UploadedAt:   time.Now().UTC(),
		Metadata:     extracted.Metadata,
		Analysis:     analysis,
		DocumentText: llm.Truncate(extracted.Text, documentTextLimit),
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		s.removeUpload(up.Path)
		metrics.IncAnalysisFailed()
		return Result{}, err
	}
	telemetry.Info("analysis.saved", map[string]any{
		"analysis_id": rec.ID,
		"file_name":   rec.FileName,
	})

	if up.Notify && up.Email != "" {
		s.sendReport(ctx, up.Email, rec)
	}

	s.removeUpload(up.Path)
	metrics.IncDocumentsAnalyzed()
	metrics.ObservePipelineDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	return Result{
		AnalysisID: rec.ID,
		FileName:   rec.FileName,
		Metadata:   rec.Metadata,
		Analysis:   rec.Analysis,
	}, nil
}

// Get returns the full record for id.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.Repo.Load(ctx, id)
}

// List returns all records with document text elided, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})
	return records, nil
}

// Ask answers a question about a stored document using the caller-supplied
// conversation history. No conversation state is kept between calls.
func (s *Service) Ask(ctx context.Context, id, question string, history []llm.Turn) (string, error) {
	rec, err := s.Repo.Load(ctx, id)
	if err != nil {
		return "", err
	}
	answer, err := s.LLM.AnswerQuestion(ctx, rec.DocumentText, question, history)
	if err != nil {
		return "", err
	}
	metrics.IncQuestionsAnswered()
	return answer, nil
}

// FocusedSummary generates a summary of a stored document constrained to the
// given focus instruction.
func (s *Service) FocusedSummary(ctx context.Context, id, focus string) (string, error) {
	rec, err := s.Repo.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return s.LLM.FocusedSummary(ctx, rec.DocumentText, focus)
}

// ResendEmail re-sends the analysis report for a stored record.
func (s *Service) ResendEmail(ctx context.Context, id, email string) error {
	rec, err := s.Repo.Load(ctx, id)
	if err != nil {
		return err
	}
	if s.Mailer == nil {
		return ErrEmailNotConfigured
	}
	if err := s.Mailer.SendAnalysis(ctx, email, rec.FileName, rec.Analysis); err != nil {
		metrics.IncEmailsFailed()
		return err
	}
	metrics.IncEmailsSent()
	return nil
}

func (s *Service) sendReport(ctx context.Context, email string, rec Record) {
	if s.Mailer == nil {
		telemetry.Warn("analysis.notify.disabled", map[string]any{"analysis_id": rec.ID})
		return
	}
	if err := s.Mailer.SendAnalysis(ctx, email, rec.FileName, rec.Analysis); err != nil {
		metrics.IncEmailsFailed()
		telemetry.Error("analysis.notify.failed", map[string]any{
			"analysis_id": rec.ID,
			"err":         err.Error(),
		})
		return
	}
	metrics.IncEmailsSent()
	telemetry.Info("analysis.notify.sent", map[string]any{"analysis_id": rec.ID})
}

func (s *Service) removeUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		telemetry.Warn("analysis.cleanup.failed", map[string]any{"path": path, "err": err.Error()})
	}
}

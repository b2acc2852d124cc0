package analyses

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"documind-backend/internal/extract"
	"documind-backend/internal/llm"
)

func testRecord(id string) Record {
	return Record{
		ID:         id,
		FileName:   "contract.pdf",
		UploadedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Metadata: extract.Metadata{
			FileSizeBytes: 2048,
			FileType:      ".pdf",
			PageCount:     3,
			WordCount:     512,
		},
		Analysis: llm.DocumentAnalysis{
			Summary:   "A services contract between two parties.",
			KeyPoints: []string{"12 month term", "net-30 payment"},
			Entities: map[string][]string{
				"organizations": {"Acme Corp"},
				"dates":         {"2025-06-01"},
			},
			Sentiment:   "neutral",
			ActionItems: []string{"Sign by end of month"},
			Topics:      []string{"legal", "services"},
			WordCount:   512,
			ReadingTime: "3 min",
		},
		DocumentText: "This agreement is entered into...",
	}
}

func TestFileRepoSaveLoad(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	rec := testRecord("rec-1")
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Load(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestFileRepoLoadMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepoLoadRejectsPathTraversal(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"", "../escape", "a/b", `a\b`, "./x"} {
		_, err := repo.Load(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
}

func TestFileRepoLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))

	_, err = repo.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepoListSkipsCorruptAndElidesText(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord("rec-1")))
	require.NoError(t, repo.Save(ctx, testRecord("rec-2")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{{{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Empty(t, rec.DocumentText, "listing must not carry full document text")
		assert.NotEmpty(t, rec.Analysis.Summary)
	}
}

func TestFileRepoSaveOverwrites(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	rec := testRecord("rec-1")
	require.NoError(t, repo.Save(ctx, rec))

	rec.Analysis.Summary = "Updated summary after re-analysis."
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Load(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated summary after re-analysis.", got.Analysis.Summary)
}

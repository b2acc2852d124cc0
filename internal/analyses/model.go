package analyses

import (
	"time"

	"documind-backend/internal/extract"
	"documind-backend/internal/llm"
)

// Record is the durable unit of the system: one analyzed document. A record
// is written wholesale at creation and never partially updated.
type Record struct {
	ID         string           `json:"id"`
	FileName   string           `json:"fileName"`
	UploadedAt time.Time        `json:"uploadedAt"`
	Metadata   extract.Metadata `json:"metadata"`

	// Analysis is persisted as-is; the store never validates its shape.
	Analysis llm.DocumentAnalysis `json:"analysis"`

	// DocumentText holds the first documentTextLimit characters of the
	// extracted text, retained for Q&A and focused summaries. Always a
	// prefix of the original extraction, never re-extracted.
	DocumentText string `json:"documentText,omitempty"`
}

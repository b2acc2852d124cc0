package analyses

import "context"

// Repo defines persistence operations for analysis records.
type Repo interface {
	// Save writes the full record as a single unit, overwriting any record
	// with the same id.
	Save(ctx context.Context, rec Record) error
	// Load returns the record for id, or ErrNotFound if it is missing or
	// unreadable.
	Load(ctx context.Context, id string) (Record, error)
	// List returns all readable records with DocumentText elided, in no
	// guaranteed order. Unreadable records are skipped, not failed.
	List(ctx context.Context) ([]Record, error)
}

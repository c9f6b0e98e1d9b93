package domain

import "context"

// Service is the append-only usage ledger. Tracking is best-effort
// telemetry: Track never returns an error to its caller, and read
// operations degrade to empty results when the underlying store is
// unreadable.
type Service interface {
	// Track appends one record and returns its id. Storage failures are
	// logged and swallowed so telemetry never aborts the primary
	// operation that triggered it.
	Track(ctx context.Context, req TrackRequest) string

	Stats(ctx context.Context, window Window) Stats
	StatsByModel(ctx context.Context) []ModelStats
	Recent(ctx context.Context, limit int) []Record
	SessionStats(ctx context.Context) SessionStats
	Export(ctx context.Context, window Window, limit int) []ExportRow
}

// TrackRequest describes one generation or edit attempt.
type TrackRequest struct {
	Model        string
	Operation    string
	Size         string
	Quality      string
	Style        string
	N            int
	Cost         float64
	Prompt       string
	PresetName   string
	Success      bool
	ErrorMessage string
}

package analyses

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "analysis not found" }

// Repo stores analysis records for one analysis kind. Each kind has its own
// table; the pipeline above is shared.
type Repo interface {
	// Create inserts a new record in the analyzing state.
	Create(ctx context.Context, record Record) error
	// LatestCompletedByURL returns the newest completed record for the URL.
	LatestCompletedByURL(ctx context.Context, url string) (Record, error)
	// Complete writes results and final suggestion together with the
	// completed status in a single update.
	Complete(ctx context.Context, id string, results, finalSuggestion map[string]any) error
	// MarkAnalyzing resets an existing record for a forced re-analysis.
	MarkAnalyzing(ctx context.Context, id string) error
	// MarkFailed moves the record to the failed state.
	MarkFailed(ctx context.Context, id string) error
}

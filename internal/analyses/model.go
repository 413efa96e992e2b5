package analyses

import "time"

// Analysis lifecycle. A record is created analyzing and ends completed or
// failed; completed rows are the only ones the cache will serve.
const (
	StatusAnalyzing = "analyzing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one analysis run for a URL. Results holds the per-provider
// payload map; FinalSuggestion holds the synthesized second-round output.
type Record struct {
	ID              string         `json:"id"`
	URL             string         `json:"url"`
	Status          string         `json:"status"`
	Results         map[string]any `json:"results"`
	FinalSuggestion map[string]any `json:"finalSuggestion"`
	AnalysisDate    time.Time      `json:"analysisDate"`
}

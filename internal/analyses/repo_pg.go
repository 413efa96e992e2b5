package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo over one of the analysis tables. The two analysis
// kinds share a schema, so one implementation parameterized by table name
// serves both.
type PGRepo struct {
	DB    *sql.DB
	table string
}

// NewMultiAIRepo stores multi-provider analysis records.
func NewMultiAIRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db, table: "multi_ai_analyses"}
}

// NewSEORepo stores single-provider SEO analysis records.
func NewSEORepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db, table: "seo_analyses"}
}

func (r *PGRepo) Create(ctx context.Context, record Record) error {
	query := fmt.Sprintf(`
INSERT INTO %s (id, url, status, analysis_date)
VALUES ($1, $2, $3, now())`, r.table)
	_, err := r.DB.ExecContext(ctx, query, record.ID, record.URL, StatusAnalyzing)
	return err
}

func (r *PGRepo) LatestCompletedByURL(ctx context.Context, url string) (Record, error) {
	query := fmt.Sprintf(`
SELECT id, url, status, results, final_suggestion, analysis_date
FROM %s
WHERE url = $1 AND status = $2
ORDER BY analysis_date DESC
LIMIT 1`, r.table)

	var record Record
	var results, finalSuggestion []byte
	err := r.DB.QueryRowContext(ctx, query, url, StatusCompleted).Scan(
		&record.ID,
		&record.URL,
		&record.Status,
		&results,
		&finalSuggestion,
		&record.AnalysisDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &record.Results); err != nil {
			return Record{}, fmt.Errorf("decode results: %w", err)
		}
	}
	if len(finalSuggestion) > 0 {
		if err := json.Unmarshal(finalSuggestion, &record.FinalSuggestion); err != nil {
			return Record{}, fmt.Errorf("decode final suggestion: %w", err)
		}
	}
	return record, nil
}

func (r *PGRepo) Complete(ctx context.Context, id string, results, finalSuggestion map[string]any) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	finalJSON, err := json.Marshal(finalSuggestion)
	if err != nil {
		return fmt.Errorf("encode final suggestion: %w", err)
	}
	query := fmt.Sprintf(`
UPDATE %s
SET results = $2, final_suggestion = $3, status = $4, analysis_date = now()
WHERE id = $1`, r.table)
	_, err = r.DB.ExecContext(ctx, query, id, resultsJSON, finalJSON, StatusCompleted)
	return err
}

func (r *PGRepo) MarkAnalyzing(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, StatusAnalyzing)
}

func (r *PGRepo) MarkFailed(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, StatusFailed)
}

func (r *PGRepo) setStatus(ctx context.Context, id, status string) error {
	query := fmt.Sprintf(`
UPDATE %s
SET status = $2, analysis_date = now()
WHERE id = $1`, r.table)
	_, err := r.DB.ExecContext(ctx, query, id, status)
	return err
}

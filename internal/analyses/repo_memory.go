package analyses

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is the dev fallback used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record.Status = StatusAnalyzing
	record.AnalysisDate = time.Now().UTC()
	r.records[record.ID] = record
	return nil
}

func (r *MemoryRepo) LatestCompletedByURL(ctx context.Context, url string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest Record
	found := false
	for _, record := range r.records {
		if record.URL != url || record.Status != StatusCompleted {
			continue
		}
		if !found || record.AnalysisDate.After(latest.AnalysisDate) {
			latest = record
			found = true
		}
	}
	if !found {
		return Record{}, ErrNotFound
	}
	return latest, nil
}

func (r *MemoryRepo) Complete(ctx context.Context, id string, results, finalSuggestion map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	record.Results = results
	record.FinalSuggestion = finalSuggestion
	record.Status = StatusCompleted
	record.AnalysisDate = time.Now().UTC()
	r.records[id] = record
	return nil
}

func (r *MemoryRepo) MarkAnalyzing(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, StatusAnalyzing)
}

func (r *MemoryRepo) MarkFailed(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, StatusFailed)
}

func (r *MemoryRepo) setStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	record.Status = status
	record.AnalysisDate = time.Now().UTC()
	r.records[id] = record
	return nil
}

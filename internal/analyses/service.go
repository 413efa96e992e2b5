package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"seo-backend/internal/extract"
	"seo-backend/internal/llm"
	"seo-backend/internal/shared/telemetry"
)

// pageTextLimit caps the page body embedded in prompts.
const pageTextLimit = 6000

// PageFetcher retrieves raw HTML for a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service runs the analysis pipelines. Multi fans out to every configured
// provider in two rounds; SEO uses the single Gemini provider plus local
// structural checks.
type Service struct {
	Multi     Repo
	SEO       Repo
	Fetcher   PageFetcher
	Clients   []llm.Client
	Gemini    llm.Client
	MaxTokens int
}

// MultiOutcome is the multi-provider analysis response payload.
type MultiOutcome struct {
	Results         map[string]any
	FinalSuggestion map[string]any
	FromCache       bool
	AnalysisDate    time.Time
}

// SEOOutcome is the single-provider analysis response payload.
type SEOOutcome struct {
	Improvements       []any
	ClusterSuggestions map[string]any
	Audit              map[string]any
	FromCache          bool
	AnalysisDate       time.Time
}

// AnalyzeMulti serves the latest completed analysis for the URL, or runs a
// fresh two-round analysis when there is none or force is set. A fetch
// failure marks the record failed before any provider is called.
func (s *Service) AnalyzeMulti(ctx context.Context, url string, force bool) (out MultiOutcome, err error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return MultiOutcome{}, errors.New("url is required")
	}
	if len(s.Clients) == 0 {
		return MultiOutcome{}, errors.New("no AI providers are configured")
	}

	if !force {
		if record, cacheErr := s.Multi.LatestCompletedByURL(ctx, url); cacheErr == nil {
			return MultiOutcome{
				Results:         record.Results,
				FinalSuggestion: record.FinalSuggestion,
				FromCache:       true,
				AnalysisDate:    record.AnalysisDate,
			}, nil
		}
	}

	id := s.beginRecord(ctx, s.Multi, url, force)
	defer s.failOnPanic(ctx, s.Multi, id, &err)

	html, structural, err := s.loadPage(ctx, s.Multi, id, url)
	if err != nil {
		return MultiOutcome{}, err
	}

	prompt := BuildAnalysisPrompt(url,
		extract.FormatForPrompt(structural),
		extract.TruncateText(extract.Text(html), pageTextLimit))

	firstRound := llm.Dispatch(ctx, prompt, s.Clients, s.MaxTokens)
	secondRound := Synthesize(ctx, url, firstRound, s.Clients, s.MaxTokens)

	results := firstRound.Payloads()
	finalSuggestion := secondRound.Payloads()
	s.complete(ctx, s.Multi, id, results, finalSuggestion)

	return MultiOutcome{
		Results:         results,
		FinalSuggestion: finalSuggestion,
		AnalysisDate:    time.Now().UTC(),
	}, nil
}

// AnalyzeSEO runs the Gemini-only analysis with local structural checks,
// under the same record lifecycle and cache policy as AnalyzeMulti.
func (s *Service) AnalyzeSEO(ctx context.Context, url string, force bool) (out SEOOutcome, err error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return SEOOutcome{}, errors.New("url is required")
	}
	if s.Gemini == nil {
		return SEOOutcome{}, errors.New("GEMINI_API_KEY is not configured")
	}

	if !force {
		if record, cacheErr := s.SEO.LatestCompletedByURL(ctx, url); cacheErr == nil {
			return seoOutcomeFromRecord(record), nil
		}
	}

	id := s.beginRecord(ctx, s.SEO, url, force)
	defer s.failOnPanic(ctx, s.SEO, id, &err)

	html, structural, err := s.loadPage(ctx, s.SEO, id, url)
	if err != nil {
		return SEOOutcome{}, err
	}

	audit := basicAudit(structural, html)

	prompt := BuildAnalysisPrompt(url,
		extract.FormatForPrompt(structural),
		extract.TruncateText(extract.Text(html), pageTextLimit))
	round := llm.Dispatch(ctx, prompt, []llm.Client{s.Gemini}, s.MaxTokens)
	geminiResult := round[s.Gemini.Name()]

	improvements := improvementsFromResult(geminiResult)
	clusters := clusterSuggestions(url, structural.Title, geminiResult.Data)

	results := map[string]any{
		"improvements":       improvements,
		"clusterSuggestions": clusters,
		"analysis":           audit,
	}
	s.complete(ctx, s.SEO, id, results, nil)

	return SEOOutcome{
		Improvements:       improvements,
		ClusterSuggestions: clusters,
		Audit:              audit,
		AnalysisDate:       time.Now().UTC(),
	}, nil
}

// Check reports whether a completed analysis exists for the URL.
func (s *Service) Check(ctx context.Context, url string) (bool, time.Time, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, time.Time{}, errors.New("url is required")
	}
	record, err := s.Multi.LatestCompletedByURL(ctx, url)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, time.Time{}, nil
		}
		return false, time.Time{}, err
	}
	return true, record.AnalysisDate, nil
}

// CachedResults returns the stored analysis without triggering a new one.
func (s *Service) CachedResults(ctx context.Context, url string) (MultiOutcome, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return MultiOutcome{}, errors.New("url is required")
	}
	record, err := s.Multi.LatestCompletedByURL(ctx, url)
	if err != nil {
		return MultiOutcome{}, err
	}
	return MultiOutcome{
		Results:         record.Results,
		FinalSuggestion: record.FinalSuggestion,
		FromCache:       true,
		AnalysisDate:    record.AnalysisDate,
	}, nil
}

// beginRecord returns the record id the run will write to. Forced reruns
// reuse the newest completed record; everything else starts a new one. A
// storage failure here is logged and the run proceeds without a record: the
// caller still gets freshly computed results, the run just isn't cached.
func (s *Service) beginRecord(ctx context.Context, repo Repo, url string, force bool) string {
	if force {
		if existing, err := repo.LatestCompletedByURL(ctx, url); err == nil {
			if err := repo.MarkAnalyzing(ctx, existing.ID); err != nil {
				telemetry.Error("analysis.persist", map[string]any{"url": url, "error": err.Error()})
				return ""
			}
			return existing.ID
		}
	}
	id := uuid.NewString()
	if err := repo.Create(ctx, Record{ID: id, URL: url}); err != nil {
		telemetry.Error("analysis.persist", map[string]any{"url": url, "error": err.Error()})
		return ""
	}
	return id
}

// loadPage fetches and parses the target page. Any failure here marks the
// record failed; no provider has been called yet.
func (s *Service) loadPage(ctx context.Context, repo Repo, id, url string) (string, *extract.StructuralData, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		s.fail(ctx, repo, id)
		return "", nil, errors.New("failed to fetch the page")
	}
	structural, err := extract.Structural(html)
	if err != nil {
		s.fail(ctx, repo, id)
		return "", nil, errors.New("failed to parse the page")
	}
	return html, structural, nil
}

// complete and fail tolerate a missing record id: when record creation
// already failed there is nothing to update.
func (s *Service) complete(ctx context.Context, repo Repo, id string, results, finalSuggestion map[string]any) {
	if id == "" {
		return
	}
	if err := repo.Complete(ctx, id, results, finalSuggestion); err != nil {
		telemetry.Error("analysis.persist", map[string]any{"analysis_id": id, "error": err.Error()})
	}
}

func (s *Service) fail(ctx context.Context, repo Repo, id string) {
	if id == "" {
		return
	}
	if err := repo.MarkFailed(ctx, id); err != nil {
		telemetry.Error("analysis.mark_failed", map[string]any{"analysis_id": id, "error": err.Error()})
	}
}

// failOnPanic converts a pipeline panic into a failed record and an error
// return, so a half-done run never stays in the analyzing state.
func (s *Service) failOnPanic(ctx context.Context, repo Repo, id string, err *error) {
	if rec := recover(); rec != nil {
		telemetry.Error("analysis.panic", map[string]any{"analysis_id": id, "error": fmt.Sprint(rec)})
		s.fail(ctx, repo, id)
		*err = fmt.Errorf("analysis failed: %v", rec)
	}
}

// improvementsFromResult pulls the improvements list out of a provider
// result, substituting a single explanatory entry when the provider failed
// or returned something unusable.
func improvementsFromResult(result llm.Result) []any {
	if result.IsStructured() {
		if improvements, ok := result.Data["improvements"].([]any); ok && len(improvements) > 0 {
			return improvements
		}
	}
	description := "The AI analysis did not return usable improvements."
	if result.Failure() {
		description = result.Err
	} else if result.RawText != "" {
		description = extract.TruncateText(result.RawText, 300)
	}
	return []any{map[string]any{
		"type":        "error",
		"title":       "AI analysis unavailable",
		"description": description,
	}}
}

func seoOutcomeFromRecord(record Record) SEOOutcome {
	out := SEOOutcome{FromCache: true, AnalysisDate: record.AnalysisDate}
	if improvements, ok := record.Results["improvements"].([]any); ok {
		out.Improvements = improvements
	}
	if clusters, ok := record.Results["clusterSuggestions"].(map[string]any); ok {
		out.ClusterSuggestions = clusters
	}
	if audit, ok := record.Results["analysis"].(map[string]any); ok {
		out.Audit = audit
	}
	return out
}

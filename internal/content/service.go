package content

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"seo-backend/internal/extract"
	"seo-backend/internal/llm"
)

// pageTextLimit caps the page body embedded in prompts.
const pageTextLimit = 6000

// contentMaxTokens gives long-form generation more room than analyses get.
const contentMaxTokens = 4096

// Structure is the article outline the content generator works from.
type Structure struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription"`
	Headings        []string `json:"headings"`
}

// PageFetcher retrieves raw HTML for a URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service generates long-form content and targeted improvement texts using
// the single Gemini provider.
type Service struct {
	Fetcher PageFetcher
	Gemini  llm.Client
}

func NewService(fetcher PageFetcher, gemini llm.Client) *Service {
	return &Service{Fetcher: fetcher, Gemini: gemini}
}

// CreateContent produces a complete markdown article for the given outline.
func (s *Service) CreateContent(ctx context.Context, structure Structure) (string, error) {
	if strings.TrimSpace(structure.Title) == "" {
		return "", errors.New("title is required")
	}
	if s.Gemini == nil {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}
	markdown, err := s.Gemini.Generate(ctx, BuildContentPrompt(structure), contentMaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return cleanupMarkdown(markdown), nil
}

// ExecuteImprovement produces a focused improvement text for one aspect of a
// page. For the structural types a local quick audit runs first and the
// provider deepens it; the gemini type goes straight to a comprehensive
// provider analysis.
func (s *Service) ExecuteImprovement(ctx context.Context, url, improvementType string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" || improvementType == "" {
		return "", errors.New("url and type are required")
	}
	if s.Gemini == nil {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", errors.New("failed to fetch the page")
	}
	pageText := extract.TruncateText(extract.Text(html), pageTextLimit)

	if improvementType == "gemini" {
		result, err := s.Gemini.Generate(ctx, BuildComprehensivePrompt(url, pageText), contentMaxTokens)
		if err != nil {
			return "", fmt.Errorf("generate improvement: %w", err)
		}
		return result, nil
	}

	if _, ok := typeDescriptions[improvementType]; !ok {
		return "", fmt.Errorf("unknown improvement type %q", improvementType)
	}

	structural, err := extract.Structural(html)
	if err != nil {
		return "", errors.New("failed to parse the page")
	}
	audit := quickAudit(improvementType, structural)

	enhancement, err := s.Gemini.Generate(ctx, BuildEnhancementPrompt(url, improvementType, audit, pageText), contentMaxTokens)
	if err != nil {
		// The local findings still stand on their own.
		return audit, nil
	}
	return audit + "\n\n" + enhancement, nil
}

// ExecuteCluster produces a topic-cluster content plan centered on the page.
func (s *Service) ExecuteCluster(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", errors.New("url is required")
	}
	if s.Gemini == nil {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", errors.New("failed to fetch the page")
	}
	pageText := extract.TruncateText(extract.Text(html), pageTextLimit)

	result, err := s.Gemini.Generate(ctx, BuildClusterPrompt(url, pageText), contentMaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate cluster plan: %w", err)
	}
	return result, nil
}

var (
	markdownFenceOpenRe  = regexp.MustCompile("(?m)^```markdown\\s*\n?")
	markdownFenceCloseRe = regexp.MustCompile("\n?```\\s*$")
	blankRunsRe          = regexp.MustCompile(`\n{3,}`)
)

// cleanupMarkdown strips a wrapping code fence the provider sometimes adds
// and collapses runs of blank lines.
func cleanupMarkdown(markdown string) string {
	markdown = markdownFenceOpenRe.ReplaceAllString(markdown, "")
	markdown = markdownFenceCloseRe.ReplaceAllString(markdown, "")
	markdown = blankRunsRe.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}

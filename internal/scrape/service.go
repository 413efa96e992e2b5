package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"seo-backend/internal/shared/telemetry"
	"seo-backend/internal/sites"
)

// progressEvery controls the cadence of progress frames during streaming.
const progressEvery = 10

type Service struct {
	Repo  sites.Repo
	Links LinkSource
}

func NewService(repo sites.Repo, links LinkSource) *Service {
	return &Service{Repo: repo, Links: links}
}

// Scrape replaces a site's page set with the root page plus every same-domain
// link found on it, and returns how many pages were stored.
func (s *Service) Scrape(ctx context.Context, siteID string) (int, error) {
	site, err := s.resolve(ctx, siteID)
	if err != nil {
		return 0, err
	}
	base := "https://" + site.Domain

	anchors, err := s.Links.Links(base)
	if err != nil {
		return 0, err
	}

	if err := s.Repo.ClearPages(ctx, siteID); err != nil {
		return 0, fmt.Errorf("clear pages: %w", err)
	}

	// The root page may also appear as a link with a trailing slash.
	seen := map[string]bool{base: true, base + "/": true}
	count := 0
	if err := s.savePage(ctx, siteID, base); err != nil {
		return 0, err
	}
	count++

	for _, a := range anchors {
		abs, ok := acceptLink(a, site.Domain, seen)
		if !ok {
			continue
		}
		if err := s.savePage(ctx, siteID, abs); err != nil {
			return count, err
		}
		count++
	}

	telemetry.Info("scrape.complete", map[string]any{
		"site_id": siteID,
		"domain":  site.Domain,
		"count":   count,
	})
	return count, nil
}

// Stream performs the same scrape while reporting progress frames. Failures
// are reported as an error frame; the stream always ends with either a
// complete or an error frame.
func (s *Service) Stream(ctx context.Context, siteID string, out *Streamer) {
	site, err := s.resolve(ctx, siteID)
	if err != nil {
		if errors.Is(err, sites.ErrNotFound) {
			out.Error("Site not found")
		} else {
			out.Error(err.Error())
		}
		return
	}
	base := "https://" + site.Domain

	out.Send(Frame{Type: "start", Message: "Scraping " + site.Domain})

	anchors, err := s.Links.Links(base)
	if err != nil {
		out.Error("Failed to fetch site: " + err.Error())
		return
	}
	total := len(anchors)

	if err := s.Repo.ClearPages(ctx, siteID); err != nil {
		out.Error("Failed to reset pages")
		return
	}

	// The root page may also appear as a link with a trailing slash.
	seen := map[string]bool{base: true, base + "/": true}
	count := 0
	if err := s.savePage(ctx, siteID, base); err != nil {
		out.Error("Failed to save page")
		return
	}
	count++

	processed := 0
	for _, a := range anchors {
		abs, ok := acceptLink(a, site.Domain, seen)
		if !ok {
			continue
		}
		if err := s.savePage(ctx, siteID, abs); err != nil {
			out.Error("Failed to save page")
			return
		}
		count++
		processed++
		if processed%progressEvery == 0 {
			out.Send(Frame{
				Type:       "progress",
				Processed:  processed,
				Total:      total,
				CurrentURL: abs,
			})
		}
	}

	telemetry.Info("scrape.complete", map[string]any{
		"site_id": siteID,
		"domain":  site.Domain,
		"count":   count,
	})
	out.Send(Frame{Type: "complete", Count: count})
}

func (s *Service) resolve(ctx context.Context, siteID string) (sites.Site, error) {
	if strings.TrimSpace(siteID) == "" {
		return sites.Site{}, errors.New("site id is required")
	}
	return s.Repo.GetSiteByID(ctx, siteID)
}

func (s *Service) savePage(ctx context.Context, siteID, pageURL string) error {
	return s.Repo.AddPage(ctx, sites.Page{
		ID:     uuid.NewString(),
		SiteID: siteID,
		URL:    pageURL,
	})
}

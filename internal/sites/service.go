package sites

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// NormalizeDomain reduces user input to a bare host: scheme optional,
// leading "www." stripped. "https://www.Example.com/path" and "example.com"
// register the same site.
func NormalizeDomain(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("url is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return "", errors.New("invalid url")
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return host, nil
}

// Register normalizes the given URL to a domain and stores it. Duplicate
// domains are rejected with ErrDuplicateDomain.
func (s *Service) Register(ctx context.Context, rawURL string) (Site, error) {
	domain, err := NormalizeDomain(rawURL)
	if err != nil {
		return Site{}, err
	}
	site := Site{ID: uuid.NewString(), Domain: domain}
	if err := s.Repo.CreateSite(ctx, site); err != nil {
		return Site{}, err
	}
	return site, nil
}

func (s *Service) List(ctx context.Context) ([]Site, error) {
	return s.Repo.ListSites(ctx)
}

func (s *Service) Get(ctx context.Context, siteID string) (Site, error) {
	if strings.TrimSpace(siteID) == "" {
		return Site{}, errors.New("site id is required")
	}
	return s.Repo.GetSiteByID(ctx, siteID)
}

func (s *Service) Pages(ctx context.Context, siteID string) ([]Page, error) {
	if strings.TrimSpace(siteID) == "" {
		return nil, errors.New("site id is required")
	}
	if _, err := s.Repo.GetSiteByID(ctx, siteID); err != nil {
		return nil, err
	}
	return s.Repo.ListPages(ctx, siteID)
}

// DeletePages removes the given URLs from a site's page set and reports how
// many rows went away.
func (s *Service) DeletePages(ctx context.Context, siteID string, urls []string) (int, error) {
	if strings.TrimSpace(siteID) == "" {
		return 0, errors.New("site id is required")
	}
	if len(urls) == 0 {
		return 0, errors.New("no urls given")
	}
	return s.Repo.DeletePages(ctx, siteID, urls)
}

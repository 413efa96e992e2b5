package sites

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is the dev fallback used when no database is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	sites map[string]Site
	pages map[string][]Page
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sites: make(map[string]Site),
		pages: make(map[string][]Page),
	}
}

func (r *MemoryRepo) CreateSite(ctx context.Context, site Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sites {
		if existing.Domain == site.Domain {
			return ErrDuplicateDomain
		}
	}
	if site.CreatedAt.IsZero() {
		site.CreatedAt = time.Now().UTC()
	}
	r.sites[site.ID] = site
	return nil
}

func (r *MemoryRepo) GetSiteByID(ctx context.Context, siteID string) (Site, error) {
	if err := ctx.Err(); err != nil {
		return Site{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	site, ok := r.sites[siteID]
	if !ok {
		return Site{}, ErrNotFound
	}
	return site, nil
}

func (r *MemoryRepo) GetSiteByDomain(ctx context.Context, domain string) (Site, error) {
	if err := ctx.Err(); err != nil {
		return Site{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, site := range r.sites {
		if site.Domain == domain {
			return site, nil
		}
	}
	return Site{}, ErrNotFound
}

func (r *MemoryRepo) ListSites(ctx context.Context) ([]Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Site, 0, len(r.sites))
	for _, site := range r.sites {
		out = append(out, site)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) AddPage(ctx context.Context, page Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = time.Now().UTC()
	}
	r.pages[page.SiteID] = append(r.pages[page.SiteID], page)
	return nil
}

func (r *MemoryRepo) ListPages(ctx context.Context, siteID string) ([]Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pages := r.pages[siteID]
	out := make([]Page, len(pages))
	copy(out, pages)
	return out, nil
}

func (r *MemoryRepo) ClearPages(ctx context.Context, siteID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pages, siteID)
	return nil
}

func (r *MemoryRepo) DeletePages(ctx context.Context, siteID string, urls []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[string]bool, len(urls))
	for _, u := range urls {
		drop[u] = true
	}
	kept := r.pages[siteID][:0]
	deleted := 0
	for _, page := range r.pages[siteID] {
		if drop[page.URL] {
			deleted++
			continue
		}
		kept = append(kept, page)
	}
	r.pages[siteID] = kept
	return deleted, nil
}

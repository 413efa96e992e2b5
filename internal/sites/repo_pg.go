package sites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateSite(ctx context.Context, site Site) error {
	const query = `
INSERT INTO sites (id, domain, created_at)
VALUES ($1, $2, now())
ON CONFLICT (domain) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query, site.ID, site.Domain)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicateDomain
	}
	return nil
}

func (r *PGRepo) GetSiteByID(ctx context.Context, siteID string) (Site, error) {
	const query = `
SELECT id, domain, created_at
FROM sites
WHERE id = $1
LIMIT 1`
	var site Site
	err := r.DB.QueryRowContext(ctx, query, siteID).Scan(&site.ID, &site.Domain, &site.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Site{}, ErrNotFound
		}
		return Site{}, err
	}
	return site, nil
}

func (r *PGRepo) GetSiteByDomain(ctx context.Context, domain string) (Site, error) {
	const query = `
SELECT id, domain, created_at
FROM sites
WHERE domain = $1
LIMIT 1`
	var site Site
	err := r.DB.QueryRowContext(ctx, query, domain).Scan(&site.ID, &site.Domain, &site.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Site{}, ErrNotFound
		}
		return Site{}, err
	}
	return site, nil
}

func (r *PGRepo) ListSites(ctx context.Context) ([]Site, error) {
	const query = `
SELECT id, domain, created_at
FROM sites
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Site
	for rows.Next() {
		var site Site
		if err := rows.Scan(&site.ID, &site.Domain, &site.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, site)
	}
	return out, rows.Err()
}

func (r *PGRepo) AddPage(ctx context.Context, page Page) error {
	const query = `
INSERT INTO pages (id, site_id, url, created_at)
VALUES ($1, $2, $3, now())`
	_, err := r.DB.ExecContext(ctx, query, page.ID, page.SiteID, page.URL)
	return err
}

func (r *PGRepo) ListPages(ctx context.Context, siteID string) ([]Page, error) {
	const query = `
SELECT id, site_id, url, created_at
FROM pages
WHERE site_id = $1
ORDER BY created_at ASC, url ASC`
	rows, err := r.DB.QueryContext(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.SiteID, &page.URL, &page.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, rows.Err()
}

func (r *PGRepo) ClearPages(ctx context.Context, siteID string) error {
	const query = `DELETE FROM pages WHERE site_id = $1`
	_, err := r.DB.ExecContext(ctx, query, siteID)
	return err
}

func (r *PGRepo) DeletePages(ctx context.Context, siteID string, urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(urls))
	args := make([]any, 0, len(urls)+1)
	args = append(args, siteID)
	for i, u := range urls {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, u)
	}
	query := fmt.Sprintf(
		`DELETE FROM pages WHERE site_id = $1 AND url IN (%s)`,
		strings.Join(placeholders, ", "),
	)
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

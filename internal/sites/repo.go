package sites

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "site not found" }

var ErrDuplicateDomain = errDuplicateDomain{}

type errDuplicateDomain struct{}

func (errDuplicateDomain) Error() string { return "domain already registered" }

type Repo interface {
	CreateSite(ctx context.Context, site Site) error
	GetSiteByID(ctx context.Context, siteID string) (Site, error)
	GetSiteByDomain(ctx context.Context, domain string) (Site, error)
	ListSites(ctx context.Context) ([]Site, error)

	AddPage(ctx context.Context, page Page) error
	ListPages(ctx context.Context, siteID string) ([]Page, error)
	ClearPages(ctx context.Context, siteID string) error
	DeletePages(ctx context.Context, siteID string, urls []string) (int, error)
}

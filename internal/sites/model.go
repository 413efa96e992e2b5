package sites

import "time"

// Site is a registered domain whose pages can be scraped and analyzed.
type Site struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one discovered URL belonging to a site. The page set is fully
// replaced on every scrape.
type Page struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

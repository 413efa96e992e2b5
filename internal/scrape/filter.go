package scrape

import (
	"net/url"
	"strings"
)

// acceptLink decides whether an anchor becomes a stored page URL. Fragments,
// script and mail links, off-domain hosts and duplicates are dropped. The
// returned URL is the absolute form.
func acceptLink(a Anchor, domain string, seen map[string]bool) (string, bool) {
	href := strings.TrimSpace(a.Href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
		return "", false
	}
	if a.Abs == "" {
		return "", false
	}
	parsed, err := url.Parse(a.Abs)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	// Registered domains are stored without the www. prefix.
	if strings.TrimPrefix(host, "www.") != domain {
		return "", false
	}
	if seen[a.Abs] {
		return "", false
	}
	seen[a.Abs] = true
	return a.Abs, true
}

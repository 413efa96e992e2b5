package scrape

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Anchor is one <a href> found on the root page: the raw attribute value and
// its form resolved against the page URL.
type Anchor struct {
	Href string
	Abs  string
}

// LinkSource yields the anchors of a site's root page.
type LinkSource interface {
	Links(baseURL string) ([]Anchor, error)
}

// CollyCrawler fetches a single page and collects its anchors. The walk is
// single-level: discovered links are recorded, never followed.
type CollyCrawler struct {
	timeout time.Duration
}

func NewCollyCrawler(timeout time.Duration) *CollyCrawler {
	return &CollyCrawler{timeout: timeout}
}

func (c *CollyCrawler) Links(baseURL string) ([]Anchor, error) {
	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)
	collector.SetRequestTimeout(c.timeout)

	var anchors []Anchor
	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		anchors = append(anchors, Anchor{
			Href: href,
			Abs:  e.Request.AbsoluteURL(href),
		})
	})

	var visitErr error
	collector.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("fetch %s: %w", r.Request.URL, err)
	})

	if err := collector.Visit(baseURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", baseURL, err)
	}
	collector.Wait()
	if visitErr != nil {
		return nil, visitErr
	}
	return anchors, nil
}

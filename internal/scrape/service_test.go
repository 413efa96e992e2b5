package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"seo-backend/internal/sites"
)

type stubLinks struct {
	anchors []Anchor
	err     error
}

func (s *stubLinks) Links(baseURL string) ([]Anchor, error) {
	return s.anchors, s.err
}

func newTestSite(t *testing.T, repo sites.Repo) sites.Site {
	t.Helper()
	site := sites.Site{ID: "site-1", Domain: "example.com"}
	if err := repo.CreateSite(context.Background(), site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	return site
}

func TestAcceptLinkFiltering(t *testing.T) {
	cases := []struct {
		name   string
		anchor Anchor
		want   bool
	}{
		{"plain path", Anchor{Href: "/about", Abs: "https://example.com/about"}, true},
		{"www host", Anchor{Href: "https://www.example.com/x", Abs: "https://www.example.com/x"}, true},
		{"empty href", Anchor{Href: "", Abs: ""}, false},
		{"fragment", Anchor{Href: "#top", Abs: "https://example.com/#top"}, false},
		{"javascript", Anchor{Href: "javascript:void(0)", Abs: "javascript:void(0)"}, false},
		{"mailto", Anchor{Href: "mailto:a@example.com", Abs: "mailto:a@example.com"}, false},
		{"other domain", Anchor{Href: "https://other.com/", Abs: "https://other.com/"}, false},
		{"subdomain", Anchor{Href: "https://blog.example.com/", Abs: "https://blog.example.com/"}, false},
	}
	for _, tc := range cases {
		seen := map[string]bool{}
		_, got := acceptLink(tc.anchor, "example.com", seen)
		if got != tc.want {
			t.Errorf("%s: accept = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAcceptLinkDeduplicates(t *testing.T) {
	seen := map[string]bool{}
	a := Anchor{Href: "/about", Abs: "https://example.com/about"}
	if _, ok := acceptLink(a, "example.com", seen); !ok {
		t.Fatal("first occurrence rejected")
	}
	if _, ok := acceptLink(a, "example.com", seen); ok {
		t.Fatal("duplicate accepted")
	}
}

func TestScrapeReplacesPageSet(t *testing.T) {
	repo := sites.NewMemoryRepo()
	site := newTestSite(t, repo)
	ctx := context.Background()

	// Leftover page from a previous run must not survive.
	if err := repo.AddPage(ctx, sites.Page{ID: "old", SiteID: site.ID, URL: "https://example.com/old"}); err != nil {
		t.Fatalf("AddPage: %v", err)
	}

	svc := NewService(repo, &stubLinks{anchors: []Anchor{
		{Href: "/a", Abs: "https://example.com/a"},
		{Href: "/b", Abs: "https://example.com/b"},
		{Href: "https://other.com/", Abs: "https://other.com/"},
	}})

	count, err := svc.Scrape(ctx, site.ID)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	// Root page plus two accepted links.
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	pages, err := repo.ListPages(ctx, site.ID)
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}
	for _, p := range pages {
		if p.URL == "https://example.com/old" {
			t.Fatal("stale page survived the scrape")
		}
	}
}

func TestScrapeRootLinkWithTrailingSlashNotDuplicated(t *testing.T) {
	repo := sites.NewMemoryRepo()
	site := newTestSite(t, repo)
	ctx := context.Background()

	// Sites commonly link back to their own root as "/", which resolves to
	// the seeded root URL plus a trailing slash.
	svc := NewService(repo, &stubLinks{anchors: []Anchor{
		{Href: "/", Abs: "https://example.com/"},
		{Href: "/about", Abs: "https://example.com/about"},
	}})

	count, err := svc.Scrape(ctx, site.ID)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	pages, err := repo.ListPages(ctx, site.ID)
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	for _, p := range pages {
		if p.URL == "https://example.com/" {
			t.Fatal("root page stored twice under a trailing-slash URL")
		}
	}
}

func TestStreamRootLinkWithTrailingSlashNotDuplicated(t *testing.T) {
	repo := sites.NewMemoryRepo()
	site := newTestSite(t, repo)
	svc := NewService(repo, &stubLinks{anchors: []Anchor{
		{Href: "/", Abs: "https://example.com/"},
	}})

	var buf bytes.Buffer
	svc.Stream(context.Background(), site.ID, NewStreamer(&buf, nil))

	frames := decodeFrames(t, &buf)
	last := frames[len(frames)-1]
	if last.Type != "complete" || last.Count != 1 {
		t.Fatalf("last frame = %+v, want complete count=1", last)
	}
}

func TestScrapeUnknownSite(t *testing.T) {
	svc := NewService(sites.NewMemoryRepo(), &stubLinks{})
	_, err := svc.Scrape(context.Background(), "missing")
	if !errors.Is(err, sites.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func decodeFrames(t *testing.T, buf *bytes.Buffer) []Frame {
	t.Helper()
	var frames []Frame
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var f Frame
		if err := json.Unmarshal([]byte(line), &f); err != nil {
			t.Fatalf("bad frame %q: %v", line, err)
		}
		frames = append(frames, f)
	}
	return frames
}

func TestStreamProgressCadence(t *testing.T) {
	repo := sites.NewMemoryRepo()
	site := newTestSite(t, repo)

	anchors := make([]Anchor, 0, 25)
	for i := 0; i < 25; i++ {
		abs := fmt.Sprintf("https://example.com/p%d", i)
		anchors = append(anchors, Anchor{Href: abs, Abs: abs})
	}
	svc := NewService(repo, &stubLinks{anchors: anchors})

	var buf bytes.Buffer
	flushes := 0
	svc.Stream(context.Background(), site.ID, NewStreamer(&buf, func() { flushes++ }))

	frames := decodeFrames(t, &buf)
	// start, progress at 10 and 20, complete.
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4: %+v", len(frames), frames)
	}
	if frames[0].Type != "start" {
		t.Errorf("frames[0].Type = %q, want start", frames[0].Type)
	}
	if frames[1].Type != "progress" || frames[1].Processed != 10 || frames[1].Total != 25 {
		t.Errorf("frames[1] = %+v, want progress 10/25", frames[1])
	}
	if frames[2].Type != "progress" || frames[2].Processed != 20 {
		t.Errorf("frames[2] = %+v, want progress 20/25", frames[2])
	}
	if frames[3].Type != "complete" || frames[3].Count != 26 {
		t.Errorf("frames[3] = %+v, want complete count=26", frames[3])
	}
	if flushes != len(frames) {
		t.Errorf("flushes = %d, want one per frame (%d)", flushes, len(frames))
	}
}

func TestStreamFetchFailureEmitsErrorFrame(t *testing.T) {
	repo := sites.NewMemoryRepo()
	site := newTestSite(t, repo)
	svc := NewService(repo, &stubLinks{err: errors.New("connection refused")})

	var buf bytes.Buffer
	svc.Stream(context.Background(), site.ID, NewStreamer(&buf, nil))

	frames := decodeFrames(t, &buf)
	last := frames[len(frames)-1]
	if last.Type != "error" {
		t.Fatalf("last frame = %+v, want error", last)
	}
}

func TestStreamUnknownSite(t *testing.T) {
	svc := NewService(sites.NewMemoryRepo(), &stubLinks{})
	var buf bytes.Buffer
	svc.Stream(context.Background(), "missing", NewStreamer(&buf, nil))

	frames := decodeFrames(t, &buf)
	if len(frames) != 1 || frames[0].Type != "error" {
		t.Fatalf("frames = %+v, want single error frame", frames)
	}
}

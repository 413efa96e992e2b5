package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Image describes one <img> on the page.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"hasAlt"`
}

// Link describes one <a href> on the page.
type Link struct {
	Href       string `json:"href"`
	Text       string `json:"text"`
	IsExternal bool   `json:"isExternal"`
}

// StructuralData is the fixed set of HTML-derived facts used to build
// analysis prompts.
type StructuralData struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription"`
	Headings        []string `json:"headings"`
	Images          []Image  `json:"images"`
	Links           []Link   `json:"links"`
	PageSize        int      `json:"pageSize"`
	TextLength      int      `json:"textLength"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Structural parses HTML and extracts the structural facts of the page.
func Structural(html string) (*StructuralData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	data := &StructuralData{PageSize: len(html)}

	data.Title = strings.TrimSpace(doc.Find("title").First().Text())
	data.MetaDescription = strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))

	for level := 1; level <= 6; level++ {
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(_ int, s *goquery.Selection) {
			data.Headings = append(data.Headings, fmt.Sprintf("H%d: %s", level, strings.TrimSpace(s.Text())))
		})
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt := s.AttrOr("alt", "")
		data.Images = append(data.Images, Image{
			Src:    s.AttrOr("src", ""),
			Alt:    alt,
			HasAlt: strings.TrimSpace(alt) != "",
		})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		data.Links = append(data.Links, Link{
			Href:       href,
			Text:       strings.TrimSpace(s.Text()),
			IsExternal: strings.HasPrefix(href, "http"),
		})
	})

	data.TextLength = len([]rune(Text(html)))
	return data, nil
}

// Text strips tags and collapses whitespace into single spaces.
func Text(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	text := doc.Text()
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// TruncateText caps text at max runes, appending an ellipsis marker when cut.
// Provider input limits make whole-page bodies unusable as-is.
func TruncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// FormatForPrompt renders structural data as the human-readable block embedded
// in analysis prompts.
func FormatForPrompt(d *StructuralData) string {
	var info []string

	title := d.Title
	if title == "" {
		title = "[no title]"
	}
	info = append(info, "Title: "+title)

	meta := d.MetaDescription
	if meta == "" {
		meta = "[no meta description]"
	}
	info = append(info, "Meta description: "+meta)

	if len(d.Headings) > 0 {
		info = append(info, "Heading structure:")
		for _, h := range d.Headings {
			info = append(info, "  "+h)
		}
	} else {
		info = append(info, "Headings: [none]")
	}

	withAlt := 0
	for _, img := range d.Images {
		if img.HasAlt {
			withAlt++
		}
	}
	info = append(info, fmt.Sprintf("Images: %d total (%d with alt text, %d without)",
		len(d.Images), withAlt, len(d.Images)-withAlt))

	external := 0
	for _, l := range d.Links {
		if l.IsExternal {
			external++
		}
	}
	info = append(info, fmt.Sprintf("Links: %d internal, %d external", len(d.Links)-external, external))
	info = append(info, fmt.Sprintf("Page size: %d bytes", d.PageSize))
	info = append(info, fmt.Sprintf("Text length: %d characters", d.TextLength))

	return strings.Join(info, "\n")
}

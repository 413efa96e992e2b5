package analyses

import (
	"strings"

	"seo-backend/internal/extract"
)

// basicAudit derives the traditional SEO checks from structural data. This
// runs locally, before any provider is involved, and is returned alongside
// the AI improvements as the "analysis" block.
func basicAudit(d *extract.StructuralData, html string) map[string]any {
	headings := map[string][]string{}
	for _, h := range d.Headings {
		parts := strings.SplitN(h, ": ", 2)
		if len(parts) != 2 {
			continue
		}
		level := strings.ToLower(parts[0])
		headings[level] = append(headings[level], parts[1])
	}

	withAlt := 0
	for _, img := range d.Images {
		if img.HasAlt {
			withAlt++
		}
	}

	external := 0
	for _, l := range d.Links {
		if l.IsExternal {
			external++
		}
	}

	return map[string]any{
		"title": map[string]any{
			"content": d.Title,
			"length":  len([]rune(d.Title)),
			"exists":  d.Title != "",
		},
		"metaDescription": map[string]any{
			"content": d.MetaDescription,
			"length":  len([]rune(d.MetaDescription)),
			"exists":  d.MetaDescription != "",
		},
		"headings": headings,
		"images": map[string]any{
			"total":      len(d.Images),
			"withAlt":    withAlt,
			"withoutAlt": len(d.Images) - withAlt,
		},
		"links": map[string]any{
			"total":    len(d.Links),
			"internal": len(d.Links) - external,
			"external": external,
		},
		"pageSize":  d.PageSize,
		"wordCount": len(strings.Fields(extract.Text(html))),
	}
}

// clusterSuggestions sketches a topic-cluster plan around the page. The
// provider's structured output enriches the description when available.
func clusterSuggestions(url, title string, geminiData map[string]any) map[string]any {
	description := "Use this page as the pillar content and build out pages for related subtopics. " +
		"A topic cluster around it strengthens topical authority and search rankings."

	if geminiData != nil {
		if keywords, ok := geminiData["mainKeywords"].([]any); ok && len(keywords) > 0 {
			names := make([]string, 0, 3)
			for _, k := range keywords {
				if s, ok := k.(string); ok {
					names = append(names, s)
				}
				if len(names) == 3 {
					break
				}
			}
			if len(names) > 0 {
				description += "\n\nMain keywords: " + strings.Join(names, ", ")
			}
		}
		if category, ok := geminiData["topicCategory"].(string); ok && category != "" {
			description += "\nTopic category: " + category
		}
	}

	mainTopic := title
	if mainTopic == "" {
		mainTopic = "Main topic"
	}

	return map[string]any{
		"description": description,
		"mainTopic":   mainTopic,
		"url":         url,
	}
}

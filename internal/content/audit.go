package content

import (
	"fmt"
	"strings"

	"seo-backend/internal/extract"
)

// quickAudit produces the local, rule-based findings for one improvement
// focus. These run without any provider call and seed the enhancement prompt.
func quickAudit(improvementType string, d *extract.StructuralData) string {
	switch improvementType {
	case "title":
		return titleAudit(d)
	case "meta":
		return metaAudit(d)
	case "heading":
		return headingAudit(d)
	case "images":
		return imageAudit(d)
	case "links":
		return linkAudit(d)
	default:
		return ""
	}
}

func titleAudit(d *extract.StructuralData) string {
	var lines []string
	length := len([]rune(d.Title))
	switch {
	case d.Title == "":
		lines = append(lines,
			"The page has no title tag.",
			"Suggestions:",
			"- Add a title naming the page's main topic followed by the site name",
			"- Include the primary keyword users search for")
	case length < 30:
		lines = append(lines,
			fmt.Sprintf("Current title (%d characters) is short: %q", length, d.Title),
			"Suggestions:",
			"- Extend it with a clarifying phrase or the site name",
			"- Add a secondary keyword that matches search intent")
	case length > 60:
		lines = append(lines,
			fmt.Sprintf("Current title (%d characters) is long and will be cut off in results: %q", length, d.Title),
			"Suggestions:",
			"- Shorten to the core keyword and value proposition",
			"- Move secondary details into the meta description")
	default:
		lines = append(lines,
			fmt.Sprintf("Current title (%d characters) has a good length: %q", length, d.Title),
			"Suggestions:",
			"- Check that the primary keyword appears near the front",
			"- Make the value to the searcher explicit")
	}
	lines = append(lines, "", "Best practices:", "- Keep titles between 30 and 60 characters", "- One unique title per page")
	return strings.Join(lines, "\n")
}

func metaAudit(d *extract.StructuralData) string {
	var lines []string
	length := len([]rune(d.MetaDescription))
	switch {
	case d.MetaDescription == "":
		lines = append(lines,
			"The page has no meta description.",
			"Suggestions:",
			"- Add a 120-160 character summary with the primary keyword",
			"- End with a reason to click through")
	case length < 80:
		lines = append(lines,
			fmt.Sprintf("Current meta description (%d characters) is short.", length),
			"Suggestions:",
			"- Expand toward 120-160 characters with concrete benefits")
	case length > 160:
		lines = append(lines,
			fmt.Sprintf("Current meta description (%d characters) will be truncated in results.", length),
			"Suggestions:",
			"- Trim to 160 characters keeping the keyword and call to action")
	default:
		lines = append(lines,
			fmt.Sprintf("Current meta description (%d characters) has a good length.", length),
			"Suggestions:",
			"- Verify it matches the searcher's intent for this page")
	}
	return strings.Join(lines, "\n")
}

func headingAudit(d *extract.StructuralData) string {
	h1s := 0
	for _, h := range d.Headings {
		if strings.HasPrefix(h, "H1: ") {
			h1s++
		}
	}
	var lines []string
	switch {
	case len(d.Headings) == 0:
		lines = append(lines,
			"The page has no headings.",
			"Suggestions:",
			"- Add a single H1 stating the main topic",
			"- Break the content into H2 sections")
	case h1s == 0:
		lines = append(lines, "The page has headings but no H1.", "Suggestions:", "- Promote the main topic heading to H1")
	case h1s > 1:
		lines = append(lines,
			fmt.Sprintf("The page has %d H1 headings.", h1s),
			"Suggestions:",
			"- Keep exactly one H1 and demote the others to H2")
	default:
		lines = append(lines,
			fmt.Sprintf("Heading structure looks reasonable (%d headings, one H1).", len(d.Headings)),
			"Suggestions:",
			"- Check that heading levels nest without skipping")
	}
	return strings.Join(lines, "\n")
}

func imageAudit(d *extract.StructuralData) string {
	if len(d.Images) == 0 {
		return "The page has no images. Consider adding relevant images with descriptive alt text."
	}
	missing := 0
	for _, img := range d.Images {
		if !img.HasAlt {
			missing++
		}
	}
	if missing == 0 {
		return fmt.Sprintf("All %d images have alt text. Verify the descriptions are specific rather than generic.", len(d.Images))
	}
	var lines []string
	lines = append(lines, fmt.Sprintf("%d of %d images are missing alt text:", missing, len(d.Images)))
	shown := 0
	for _, img := range d.Images {
		if img.HasAlt {
			continue
		}
		lines = append(lines, "- "+img.Src)
		shown++
		if shown == 5 {
			break
		}
	}
	lines = append(lines, "", "Add alt text describing what each image shows, including keywords only where natural.")
	return strings.Join(lines, "\n")
}

func linkAudit(d *extract.StructuralData) string {
	internal := 0
	for _, l := range d.Links {
		if !l.IsExternal {
			internal++
		}
	}
	var lines []string
	lines = append(lines, fmt.Sprintf("The page has %d links (%d internal, %d external).",
		len(d.Links), internal, len(d.Links)-internal))
	if internal < 3 {
		lines = append(lines,
			"Suggestions:",
			"- Add internal links to related pages to spread authority",
			"- Link from descriptive anchor text, not \"click here\"")
	} else {
		lines = append(lines,
			"Suggestions:",
			"- Check anchor texts describe the target pages",
			"- Link back from the targets to strengthen the cluster")
	}
	return strings.Join(lines, "\n")
}

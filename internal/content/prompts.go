package content

import (
	"fmt"
	"strings"
)

// typeDescriptions names each improvement focus for the provider prompt.
var typeDescriptions = map[string]string{
	"title":   "title tag optimization",
	"meta":    "meta description improvement",
	"heading": "heading structure optimization",
	"images":  "image alt attribute improvement",
	"links":   "internal linking strategy",
}

// BuildContentPrompt asks for a complete markdown article following the
// given structure, front matter included.
func BuildContentPrompt(s Structure) string {
	return fmt.Sprintf(`Create a high-quality, SEO-optimized article in markdown based on the following structure.

## Article structure
Title: %s
Meta description: %s

Heading outline:
%s

## Requirements
1. **Markdown**: output a complete markdown article
2. **Front matter**: include YAML metadata
3. **SEO**: place keywords naturally
4. **Readability**: use paragraphs, lists and tables where they help
5. **Usefulness**: practical, valuable content
6. **Structure**: include a table of contents, body, FAQ and related information
7. **Length**: a substantial article of roughly 3000-5000 characters

## Direction
- Comprehensive information useful from beginner to expert level
- Concrete examples and step-by-step explanations
- Current best practices
- Actionable, specific advice

Produce the complete markdown article following the requirements above.`,
		s.Title, s.MetaDescription, strings.Join(s.Headings, "\n"))
}

// BuildEnhancementPrompt asks the provider to deepen a locally produced
// audit for one improvement focus.
func BuildEnhancementPrompt(url, improvementType, audit, pageText string) string {
	description, ok := typeDescriptions[improvementType]
	if !ok {
		description = "general SEO improvement"
	}
	return fmt.Sprintf(`Propose more specific, practical improvements for the %s of the following web page.

URL: %s

Existing audit findings:
%s

Page content:
%s

Cover the following angles:
1. Detailed analysis of the current problems
2. Concrete improvements based on industry best practices
3. Implementation priority and expected effect
4. Differentiation from competitors
5. User experience improvements

Keep the answer practical and specific, formatted as readable markdown.`,
		description, url, audit, pageText)
}

// BuildComprehensivePrompt asks for a full SEO strategy for the page.
func BuildComprehensivePrompt(url, pageText string) string {
	return fmt.Sprintf(`Propose a comprehensive SEO improvement strategy for the following web page.

URL: %s

Page content:
%s

Include a detailed analysis and improvement plan covering:

## Analysis areas
1. **Content quality**
   - Originality and value
   - Accuracy and trustworthiness
   - Fit with user needs

2. **Technical SEO**
   - Page structure optimization
   - Metadata improvements
   - Loading speed considerations

3. **User experience**
   - Readability and clarity
   - Navigation improvements
   - Mobile friendliness

4. **E-A-T (expertise, authoritativeness, trustworthiness)**
   - Depth of expertise
   - Reliability of sources
   - Author and site authority

Format the answer as readable markdown with concrete, prioritized recommendations.`, url, pageText)
}

// BuildClusterPrompt asks for a topic-cluster content plan centered on the page.
func BuildClusterPrompt(url, pageText string) string {
	return fmt.Sprintf(`Design a topic cluster strategy centered on this web page.

URL: %s

Page content:
%s

Deliver:
1. The pillar topic this page should own, with an optimized title and meta description
2. 5-8 cluster page ideas, each with a working title and the search intent it serves
3. The internal linking plan between pillar and cluster pages
4. A publishing order that builds topical authority fastest

Format the answer as readable markdown.`, url, pageText)
}

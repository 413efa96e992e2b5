package analyses

import (
	"encoding/json"
	"fmt"

	"seo-backend/internal/llm"
)

const noAnalysisPlaceholder = "No analysis available"

// BuildAnalysisPrompt creates the first-round prompt sent to every provider.
// structuralInfo is the formatted structural block; pageText is the stripped
// and truncated page body.
func BuildAnalysisPrompt(url, structuralInfo, pageText string) string {
	return fmt.Sprintf(`You are an SEO expert. Analyze the following web page and propose concrete, practical improvements.

IMPORTANT: lead with the conclusion. Present copy-paste ready improvements first, then add the supporting reasoning.

Target URL: %s

Page structure:
%s

Page body: %s

Analysis request:
For each of the following areas, present the conclusion (an improvement ready to use) first, then the explanation:

1. **Title improvement**
2. **Meta description improvement**
3. **Heading structure improvement**
4. **Content improvement**
5. **Internal linking strategy**

Output format:
Respond in JSON as follows:

{
  "improvements": [
    {
      "title": "name of the improvement area",
      "conclusion": "[Conclusion] a concrete improvement ready to copy and paste",
      "explanation": "reasoning and details behind this improvement",
      "priority": "high/medium/low",
      "expectedResult": "expected effect"
    }
  ]
}`, url, structuralInfo, pageText)
}

// BuildFinalPrompt creates the second-round synthesis prompt from the
// first-round results. Providers that failed or returned no improvements
// contribute a placeholder instead of dropping out of the prompt.
func BuildFinalPrompt(url string, results llm.Results) string {
	return fmt.Sprintf(`You are an integrating SEO analyst. Merge the following analyses from three AIs into the single most effective improvement plan.

Target URL: %s

Gemini analysis:
%s

OpenAI analysis:
%s

Claude analysis:
%s

IMPORTANT:
1. Lead with the conclusion: concrete improvements ready to copy and paste into the site
2. Analyze where the three analyses agree and where they differ
3. Judge which improvements are most effective overall
4. Weigh both implementation effort and impact

Output format:
Respond in JSON as follows:

{
  "finalImprovement": {
    "title": "integrated final improvement",
    "conclusion": "[Final conclusion] the most effective, copy-paste ready improvement",
    "analysis": "integrated assessment of the three analyses",
    "commonPoints": ["points all three AIs raised"],
    "bestPractice": "the best overall approach",
    "implementationOrder": ["order of implementation"],
    "expectedImpact": "detailed expected effect"
  }
}`, url, improvementsText(results, "gemini"), improvementsText(results, "openai"), improvementsText(results, "claude"))
}

// improvementsText extracts one provider's improvements list as JSON text,
// falling back to the placeholder for failed or unstructured results.
func improvementsText(results llm.Results, provider string) string {
	result, ok := results[provider]
	if !ok || !result.IsStructured() {
		return noAnalysisPlaceholder
	}
	improvements, ok := result.Data["improvements"]
	if !ok {
		return noAnalysisPlaceholder
	}
	encoded, err := json.Marshal(improvements)
	if err != nil {
		return noAnalysisPlaceholder
	}
	return string(encoded)
}

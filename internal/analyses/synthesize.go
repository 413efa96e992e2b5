package analyses

import (
	"context"

	"seo-backend/internal/llm"
)

// Synthesize runs the second analysis round: the first-round results are fed
// back to every provider, which each produce an integrated final suggestion.
// The same fan-out guarantees apply, so the returned map has one entry per
// provider even when some first-round results were failures.
func Synthesize(ctx context.Context, url string, firstRound llm.Results, clients []llm.Client, maxTokens int) llm.Results {
	return llm.Dispatch(ctx, BuildFinalPrompt(url, firstRound), clients, maxTokens)
}

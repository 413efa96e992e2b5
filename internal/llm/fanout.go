package llm

import (
	"context"
	"fmt"
	"sync"

	"seo-backend/internal/shared/telemetry"
)

// DefaultMaxTokens bounds analysis replies.
const DefaultMaxTokens = 2048

// Dispatch fans one prompt out to every client concurrently and waits for all
// of them to settle. The returned map always has exactly one entry per client:
// provider errors and panics are converted to Failure results at the
// per-provider boundary, so a slow or broken provider never blocks or aborts
// its siblings.
func Dispatch(ctx context.Context, prompt string, clients []Client, maxTokens int) Results {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	results := make(Results, len(clients))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, client := range clients {
		wg.Add(1)
		go func(c Client) {
			defer wg.Done()
			result := invoke(ctx, c, prompt, maxTokens)
			mu.Lock()
			results[c.Name()] = result
			mu.Unlock()
		}(client)
	}

	wg.Wait()
	return results
}

// invoke runs one provider call and normalizes its outcome. The reply text is
// run through ExtractJSON; raw text is carried through when recovery fails
// because it is still useful to the caller.
func invoke(ctx context.Context, c Client, prompt string, maxTokens int) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			telemetry.Error("llm.panic", map[string]any{"provider": c.Name(), "error": fmt.Sprint(rec)})
			result = Failed(fmt.Sprintf("%s analysis error: %v", c.Name(), rec))
		}
	}()

	text, err := c.Generate(ctx, prompt, maxTokens)
	if err != nil {
		telemetry.Warn("llm.failure", map[string]any{"provider": c.Name(), "error": err.Error()})
		return Failed(fmt.Sprintf("%s analysis error: %v", c.Name(), err))
	}

	if data := ExtractJSON(text); data != nil {
		return Structured(data)
	}
	return Raw(text)
}

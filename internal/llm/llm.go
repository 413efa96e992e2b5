package llm

import (
	"context"
	"encoding/json"
)

// Client is the interface implemented by each LLM provider.
type Client interface {
	// Name returns the provider key used in result maps ("gemini", "openai", "claude").
	Name() string
	// Generate sends one prompt to the provider and returns the reply text.
	// One outbound HTTP call, no retries; a failed call surfaces immediately.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Result is the outcome of one provider invocation. Exactly one shape holds:
// structured data, raw text (reply received but not parseable as JSON), or a
// failure message. Consumers switch on the shape instead of probing fields.
type Result struct {
	Data    map[string]any
	RawText string
	Err     string
}

// Structured wraps a parsed JSON object.
func Structured(data map[string]any) Result {
	return Result{Data: data}
}

// Raw wraps a reply that could not be recovered as JSON.
func Raw(text string) Result {
	return Result{RawText: text}
}

// Failed wraps a provider error.
func Failed(message string) Result {
	return Result{Err: message}
}

// Failure reports whether the provider call failed outright.
func (r Result) Failure() bool {
	return r.Err != ""
}

// IsStructured reports whether the provider returned a usable JSON object.
func (r Result) IsStructured() bool {
	return r.Err == "" && r.Data != nil
}

// Payload returns the persistable JSON form of the result, matching the wire
// shapes the UI expects: the object itself, {"rawText": ...}, or {"error": ...}.
func (r Result) Payload() map[string]any {
	switch {
	case r.Err != "":
		return map[string]any{"error": r.Err}
	case r.Data != nil:
		return r.Data
	default:
		return map[string]any{"rawText": r.RawText}
	}
}

// MarshalJSON serializes the payload form.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Payload())
}

// Results maps provider name to that provider's result.
type Results map[string]Result

// Payloads converts the result map to its persistable form.
func (rs Results) Payloads() map[string]any {
	out := make(map[string]any, len(rs))
	for name, r := range rs {
		out[name] = r.Payload()
	}
	return out
}

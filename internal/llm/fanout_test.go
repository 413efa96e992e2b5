package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClient struct {
	name  string
	reply string
	err   error
	delay time.Duration
	panic bool
	calls int
}

func (s *stubClient) Name() string { return s.name }

func (s *stubClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.panic {
		panic("stub exploded")
	}
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestDispatchOneEntryPerProvider(t *testing.T) {
	clients := []Client{
		&stubClient{name: "gemini", reply: `{"improvements": []}`},
		&stubClient{name: "openai", err: errors.New("timeout")},
		&stubClient{name: "claude", reply: "plain prose, no JSON"},
	}

	results := Dispatch(context.Background(), "prompt", clients, 0)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if !results["gemini"].IsStructured() {
		t.Errorf("gemini = %#v, want structured", results["gemini"])
	}
	if !results["openai"].Failure() {
		t.Errorf("openai = %#v, want failure", results["openai"])
	}
	if results["claude"].Failure() || results["claude"].RawText == "" {
		t.Errorf("claude = %#v, want raw-text success", results["claude"])
	}
}

func TestDispatchAllProvidersDown(t *testing.T) {
	clients := []Client{
		&stubClient{name: "gemini", err: errors.New("boom")},
		&stubClient{name: "openai", err: errors.New("boom")},
		&stubClient{name: "claude", err: errors.New("boom")},
	}

	results := Dispatch(context.Background(), "prompt", clients, 100)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for name, r := range results {
		if !r.Failure() {
			t.Errorf("%s = %#v, want failure", name, r)
		}
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	clients := []Client{
		&stubClient{name: "gemini", panic: true},
		&stubClient{name: "openai", reply: `{"ok": true}`},
	}

	results := Dispatch(context.Background(), "prompt", clients, 100)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if !results["gemini"].Failure() {
		t.Errorf("gemini = %#v, want failure from recovered panic", results["gemini"])
	}
	if !results["openai"].IsStructured() {
		t.Errorf("openai = %#v, want structured", results["openai"])
	}
}

func TestDispatchSlowProviderDoesNotBlockOthers(t *testing.T) {
	slow := &stubClient{name: "claude", reply: `{"slow": true}`, delay: 50 * time.Millisecond}
	fast := &stubClient{name: "gemini", reply: `{"fast": true}`}

	start := time.Now()
	results := Dispatch(context.Background(), "prompt", []Client{slow, fast}, 100)
	elapsed := time.Since(start)

	// Fan-in waits for the slowest, but total time is bounded by it, not the sum.
	if elapsed > 200*time.Millisecond {
		t.Fatalf("dispatch took %v, expected concurrent execution", elapsed)
	}
	if !results["claude"].IsStructured() || !results["gemini"].IsStructured() {
		t.Fatalf("results = %#v, want both structured", results)
	}
}

func TestResultPayloadShapes(t *testing.T) {
	cases := []struct {
		name   string
		result Result
		key    string
	}{
		{"failure", Failed("gemini analysis error: x"), "error"},
		{"raw", Raw("free text"), "rawText"},
	}
	for _, tc := range cases {
		payload := tc.result.Payload()
		if _, ok := payload[tc.key]; !ok {
			t.Errorf("%s payload = %#v, want key %q", tc.name, payload, tc.key)
		}
	}

	structured := Structured(map[string]any{"improvements": []any{}})
	if _, ok := structured.Payload()["improvements"]; !ok {
		t.Errorf("structured payload lost data: %#v", structured.Payload())
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.AnalysisTimeout != 30*time.Second {
		t.Errorf("AnalysisTimeout = %v, want 30s", cfg.AnalysisTimeout)
	}
	if cfg.ContentTimeout != 120*time.Second {
		t.Errorf("ContentTimeout = %v, want 120s", cfg.ContentTimeout)
	}
	if cfg.HasAllProviderKeys() {
		t.Error("HasAllProviderKeys() = true with no keys set")
	}
}

func TestHasAllProviderKeysRequiresEveryKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("CLAUDE_API_KEY", "")

	cfg := Load()
	if cfg.HasAllProviderKeys() {
		t.Error("HasAllProviderKeys() = true with claude key missing")
	}

	t.Setenv("CLAUDE_API_KEY", "c")
	cfg = Load()
	if !cfg.HasAllProviderKeys() {
		t.Error("HasAllProviderKeys() = false with all keys set")
	}
}

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"prod":       "production",
		"PRODUCTION": "production",
		"staging":    "staging",
		"dev":        "dev",
		"":           "dev",
		"weird":      "dev",
	}
	for in, want := range cases {
		if got := normalizeEnv(in); got != want {
			t.Errorf("normalizeEnv(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetEnvSeconds(t *testing.T) {
	t.Setenv("ANALYSIS_TIMEOUT_SECONDS", "45")
	if got := getEnvSeconds("ANALYSIS_TIMEOUT_SECONDS", time.Second); got != 45*time.Second {
		t.Errorf("getEnvSeconds = %v, want 45s", got)
	}
	t.Setenv("ANALYSIS_TIMEOUT_SECONDS", "nope")
	if got := getEnvSeconds("ANALYSIS_TIMEOUT_SECONDS", 7*time.Second); got != 7*time.Second {
		t.Errorf("getEnvSeconds invalid = %v, want fallback 7s", got)
	}
}

package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Providers wrap JSON in prose or code fences inconsistently. ExtractJSON
// recovers an object with an ordered set of patterns; a pattern only counts
// when the matched span also unmarshals cleanly, so invalid JSON inside a
// fence falls through to the next pattern.
var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	fencedRe     = regexp.MustCompile("(?s)```\\s*(\\{.*?\\})\\s*```")
)

// ExtractJSON returns the first recoverable JSON object in text, or nil when
// every pattern fails. Pattern order: labeled fence, bare fence, first brace
// span (greedy, then balanced), last brace span.
func ExtractJSON(text string) map[string]any {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		if data := tryUnmarshal(m[1]); data != nil {
			return data
		}
	}

	if m := fencedRe.FindStringSubmatch(text); m != nil {
		if data := tryUnmarshal(m[1]); data != nil {
			return data
		}
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first < 0 || last < first {
		return nil
	}

	// Greedy span from the first { to the last }.
	if data := tryUnmarshal(text[first : last+1]); data != nil {
		return data
	}
	// Balanced span starting at the first {.
	if span := balancedSpan(text, first); span != "" {
		if data := tryUnmarshal(span); data != nil {
			return data
		}
	}
	// Last balanced span, for replies with brace-bearing preamble.
	if span := lastBalancedSpan(text); span != "" {
		if data := tryUnmarshal(span); data != nil {
			return data
		}
	}

	return nil
}

func tryUnmarshal(candidate string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &data); err != nil {
		return nil
	}
	return data
}

// balancedSpan returns the substring from start to its matching closing brace.
// String literals are honored so braces inside values do not affect depth.
func balancedSpan(text string, start int) string {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}

// lastBalancedSpan walks backwards from the final } to its opening brace.
func lastBalancedSpan(text string) string {
	end := strings.LastIndex(text, "}")
	if end < 0 {
		return ""
	}
	depth := 0
	for i := end; i >= 0; i-- {
		switch text[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				return text[i : end+1]
			}
		}
	}
	return ""
}

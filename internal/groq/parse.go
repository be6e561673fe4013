package groq

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceRE    = regexp.MustCompile("```(?:json)?\\s*")
	jsonBodyRE = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractJSON strips markdown code fences and isolates the outermost JSON
// object from a completion that wrapped its payload in prose.
func extractJSON(text string) string {
	cleaned := strings.TrimSpace(fenceRE.ReplaceAllString(text, ""))
	if m := jsonBodyRE.FindString(cleaned); m != "" {
		return m
	}
	return cleaned
}

// stringOr returns the trimmed value when non-empty, otherwise the fallback.
func stringOr(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// stringsOr sanitizes a loosely typed list field. Completions sometimes emit
// a JSON array, sometimes a stringified array, and sometimes a comma or
// newline separated blob; all are accepted. Empty results yield the fallback.
func stringsOr(value any, fallback []string) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) > 0 {
			return out
		}
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		if len(out) > 0 {
			return out
		}
	case string:
		if strings.TrimSpace(v) == "" {
			break
		}
		var parsed []string
		if err := json.Unmarshal([]byte(v), &parsed); err == nil && len(parsed) > 0 {
			return parsed
		}
		var out []string
		for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '\n' }) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

// truncate caps s at max bytes, appending an ellipsis when clipped.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

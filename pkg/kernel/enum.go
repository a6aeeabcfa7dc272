package kernel

import "strings"

// Normalize maps a free-text token onto one of values, ignoring case and
// surrounding whitespace.
func Normalize[T ~string](token string, values []T) (T, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		var zero T
		return zero, false
	}
	for _, v := range values {
		if strings.EqualFold(string(v), token) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// NormalizeList splits a comma-separated list and keeps the tokens that map
// onto values. Unknown tokens are dropped and duplicates collapse, preserving
// first-seen order. An empty result means "no constraint".
func NormalizeList[T ~string](raw string, values []T) []T {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []T
	seen := make(map[T]struct{})
	for _, token := range strings.Split(raw, ",") {
		v, ok := Normalize(token, values)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SplitList splits a comma-separated list into trimmed, non-empty tokens
func SplitList(raw string) []string {
	var out []string
	for _, token := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(token); t != "" {
			out = append(out, t)
		}
	}
	return out
}

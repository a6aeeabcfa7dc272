// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Fallback is the base used when a name has no [a-z0-9] characters
const Fallback = "item"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ExistsFunc reports whether a slug is already taken
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Base lowercases name, collapses every run of characters outside [a-z0-9]
// into one hyphen and trims hyphens at both ends. Non-ASCII letters are not
// transliterated; they collapse like any other separator.
func Base(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// Generate returns Base(name) if it is free, otherwise the first free
// candidate among base-1, base-2, ...
func Generate(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := Base(name)
	if base == "" {
		base = Fallback
	}

	candidate := base
	for counter := 1; ; counter++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Package catalog serves the pick lists shown by search forms.
package catalog

import (
	"context"
	"slices"
)

// StaticSkills are offered even before any job lists them
var StaticSkills = []string{
	"JavaScript", "Python", "Java", "C++", "Ruby", "PHP", "Swift", "Go",
	"React", "Node.js", "Angular", "Vue.js", "Django", "Flask", "Spring",
	"Laravel", "PostgreSQL", "MongoDB", "MySQL", "AWS", "Docker", "Kubernetes",
}

// Source reads the raw values behind the pick lists
type Source interface {
	// JobSkills returns every distinct skill listed by any job
	JobSkills(ctx context.Context) ([]string, error)

	// JobLocations returns distinct non-empty job locations in ascending order
	JobLocations(ctx context.Context) ([]string, error)
}

// MergeSkills returns the union of lists, deduplicated and sorted. Matching
// is case-sensitive, so "go" and "Go" are both kept.
func MergeSkills(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, skill := range list {
			if skill == "" {
				continue
			}
			if _, dup := seen[skill]; dup {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	slices.Sort(out)
	return out
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeSkills(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"dedup and sort", [][]string{{"Go", "AWS"}, {"Rust", "Go", ""}}, []string{"AWS", "Go", "Rust"}},
		{"case sensitive", [][]string{{"go", "Go"}}, []string{"Go", "go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeSkills(tt.lists...))
		})
	}
}

func TestStaticSkillsSurviveMerge(t *testing.T) {
	merged := MergeSkills(StaticSkills, []string{"Elixir"})
	assert.Len(t, merged, len(StaticSkills)+1)
	assert.Contains(t, merged, "Kubernetes")
	assert.Contains(t, merged, "Elixir")
}

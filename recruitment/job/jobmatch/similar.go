package jobmatch

import (
	"sort"
	"strings"

	"github.com/aarifhsn/nexthire-backend/recruitment/job"
)

// MaxSimilar caps the similar-jobs list
const MaxSimilar = 5

// Similar picks active jobs related to source: same category, or any source
// skill found in the candidate's skills. A source with neither matches every
// other active job. Results are newest first.
func Similar(source job.Job, catalog []job.JobDetails, limit int) []job.JobDetails {
	if limit <= 0 || limit > MaxSimilar {
		limit = MaxSimilar
	}

	open := source.Category == "" && len(source.Skills) == 0
	out := make([]job.JobDetails, 0, limit)
	for _, c := range catalog {
		if c.ID == source.ID || !c.IsActive() {
			continue
		}
		if open || related(source, c.Job) {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].Seq < out[b].Seq
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func related(source, candidate job.Job) bool {
	if source.Category != "" && candidate.Category == source.Category {
		return true
	}
	if len(source.Skills) == 0 {
		return false
	}
	text := strings.ToLower(job.SkillsText(candidate.Skills))
	for _, s := range source.Skills {
		if s != "" && strings.Contains(text, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

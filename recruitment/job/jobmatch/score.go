// Package jobmatch scores jobs against job seeker profiles and finds related
// postings.
package jobmatch

import (
	"sort"
	"strings"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
)

const (
	skillWeight = 2
	levelBonus  = 5
)

// Profile is what a recommendation is computed from
type Profile struct {
	Skills          []string
	ExperienceLevel kernel.ExperienceLevel
}

// IsEmpty reports whether the profile carries nothing to match on
func (p Profile) IsEmpty() bool {
	return len(p.Skills) == 0 && p.ExperienceLevel == ""
}

// Text is the profile rendered for embedding
func (p Profile) Text() string {
	var b strings.Builder
	if len(p.Skills) > 0 {
		b.WriteString("Skills: ")
		b.WriteString(strings.Join(p.Skills, ", "))
	}
	if p.ExperienceLevel != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Level: ")
		b.WriteString(string(p.ExperienceLevel))
	}
	return b.String()
}

// Score counts user skills that overlap some job skill by case-insensitive
// substring in either direction, two points each, plus a bonus when the
// experience levels are equal.
func Score(p Profile, j *job.Job) int {
	score := 0
	for _, s := range p.Skills {
		us := strings.ToLower(s)
		for _, k := range j.Skills {
			js := strings.ToLower(k)
			if strings.Contains(js, us) || strings.Contains(us, js) {
				score += skillWeight
				break
			}
		}
	}
	if p.ExperienceLevel != "" && j.ExperienceLevel == p.ExperienceLevel {
		score += levelBonus
	}
	return score
}

// Rank drops jobs scoring zero and orders the rest by score, highest first.
// Equal scores keep their input order.
func Rank(p Profile, jobs []job.JobDetails) []job.JobDetails {
	if p.IsEmpty() {
		return []job.JobDetails{}
	}

	type scored struct {
		job   job.JobDetails
		score int
	}
	kept := make([]scored, 0, len(jobs))
	for _, j := range jobs {
		if s := Score(p, &j.Job); s > 0 {
			kept = append(kept, scored{job: j, score: s})
		}
	}

	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].score > kept[b].score
	})

	out := make([]job.JobDetails, len(kept))
	for i, k := range kept {
		out[i] = k.job
	}
	return out
}

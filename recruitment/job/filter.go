package job

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortOrder selects the ordering of a job listing. Ties always break on
// insertion order.
type SortOrder string

const (
	SortRecent     SortOrder = "recent"      // created_at DESC
	SortOldest     SortOrder = "oldest"      // created_at ASC
	SortSalaryHigh SortOrder = "salary_high" // salary_max DESC NULLS LAST
	SortSalaryLow  SortOrder = "salary_low"  // salary_min ASC NULLS LAST
)

// Filter is the compiled predicate and ordering of a job listing
type Filter struct {
	Statuses   []Status
	CompanyID  kernel.CompanyID
	Search     string
	TitleOnly  bool
	Types      []Type
	Levels     []kernel.ExperienceLevel
	Skills     []string
	MinSalary  *int
	MaxSalary  *int
	Sort       SortOrder
	Pagination kernel.PaginationOptions
}

// CompileFilter builds the public listing filter. It never fails: unknown
// enum tokens and unparsable numbers are dropped.
func CompileFilter(p SearchParams) Filter {
	f := Filter{
		Statuses:   []Status{StatusActive},
		Search:     strings.TrimSpace(p.Search),
		Types:      kernel.NormalizeList(p.Type, TypeValues),
		Levels:     kernel.NormalizeList(p.ExperienceLevel, kernel.ExperienceLevelValues),
		Skills:     kernel.SplitList(p.Skills),
		MinSalary:  parseBound(p.MinSalary),
		MaxSalary:  parseBound(p.MaxSalary),
		Sort:       SortRecent,
		Pagination: kernel.NewPaginationOptions(p.Page, p.Limit, DefaultPageSize, MaxPageSize),
	}

	switch strings.ToLower(strings.TrimSpace(p.Sort)) {
	case string(SortSalaryHigh):
		f.Sort = SortSalaryHigh
	case string(SortSalaryLow):
		f.Sort = SortSalaryLow
	}
	return f
}

// CompileCompanyFilter builds a company's own listing. Unlike the public
// listing, status and sort are validated strictly.
func CompileCompanyFilter(companyID kernel.CompanyID, p CompanyJobsParams) (Filter, error) {
	f := Filter{
		CompanyID:  companyID,
		Search:     strings.TrimSpace(p.Search),
		TitleOnly:  true,
		Sort:       SortRecent,
		Pagination: kernel.NewPaginationOptions(p.Page, p.Limit, DefaultPageSize, MaxPageSize),
	}

	if p.Status != "" {
		status, err := ParseStatus(p.Status)
		if err != nil {
			return Filter{}, err
		}
		f.Statuses = []Status{status}
	}

	switch p.Sort {
	case "", "newest":
	case "oldest":
		f.Sort = SortOldest
	default:
		return Filter{}, ErrInvalidSort().WithDetail("sort", p.Sort)
	}
	return f, nil
}

// ParseStatus accepts exactly one of the canonical job statuses
func ParseStatus(raw string) (Status, error) {
	for _, s := range StatusValues {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", ErrInvalidStatus().WithDetail("status", raw)
}

func parseBound(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// Matches evaluates the filter predicate against a job in memory. It agrees
// with the SQL built by the Postgres repository.
func (f Filter) Matches(j Job) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, j.Status) {
		return false
	}
	if !f.CompanyID.IsEmpty() && j.CompanyID != f.CompanyID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(j.Title), needle)
		if !hit && !f.TitleOnly {
			hit = strings.Contains(strings.ToLower(SkillsText(j.Skills)), needle)
		}
		if !hit {
			return false
		}
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, j.Type) {
		return false
	}
	if len(f.Levels) > 0 && !slices.Contains(f.Levels, j.ExperienceLevel) {
		return false
	}
	if len(f.Skills) > 0 {
		text := strings.ToLower(SkillsText(j.Skills))
		matched := false
		for _, s := range f.Skills {
			if strings.Contains(text, strings.ToLower(s)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if f.MinSalary != nil && (j.SalaryMin == nil || *j.SalaryMin < *f.MinSalary) {
		return false
	}
	if f.MaxSalary != nil && (j.SalaryMax == nil || *j.SalaryMax > *f.MaxSalary) {
		return false
	}
	return true
}

// SkillsText renders skills the way Postgres prints a jsonb array, which is
// the text the store searches with ILIKE. HTML characters stay unescaped.
func SkillsText(skills []string) string {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	parts := make([]string, len(skills))
	for i, s := range skills {
		buf.Reset()
		_ = enc.Encode(s)
		parts[i] = strings.TrimSuffix(buf.String(), "\n")
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

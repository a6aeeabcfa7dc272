package jobinfra

import (
	"fmt"
	"strings"

	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/lib/pq"
)

const jobColumns = `
	j.id, j.company_id, j.title, j.slug, j.type, j.work_mode, j.location,
	j.salary_min, j.salary_max, COALESCE(j.salary_period, '') AS salary_period,
	j.description, j.requirements, j.benefits,
	COALESCE(j.category, '') AS category,
	COALESCE(j.experience_level, '') AS experience_level,
	j.skills, j.status, j.vacancies, j.deadline, j.seq, j.created_at, j.updated_at`

// detailsSelect reads jobs with their applicants count and owning company
const detailsSelect = `
	SELECT ` + jobColumns + `,
		(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applicants,
		c.name AS company_name,
		c.slug AS company_slug,
		COALESCE(c.logo_url, '') AS company_logo_url,
		COALESCE(c.location, '') AS company_location,
		COALESCE(c.industry, '') AS company_industry,
		COALESCE(c.website_url, '') AS company_website_url,
		COALESCE(c.description, '') AS company_description
	FROM jobs j
	INNER JOIN companies c ON c.id = j.company_id`

// buildSearchQuery renders the WHERE clause and its positional args for a
// compiled filter. It mirrors job.Filter.Matches.
func buildSearchQuery(f job.Filter) (string, []any) {
	conditions := []string{}
	args := []any{}
	argCount := 1

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("j.status = ANY($%d)", argCount))
		args = append(args, pq.Array(statuses))
		argCount++
	}

	if !f.CompanyID.IsEmpty() {
		conditions = append(conditions, fmt.Sprintf("j.company_id = $%d", argCount))
		args = append(args, f.CompanyID.String())
		argCount++
	}

	if f.Search != "" {
		if f.TitleOnly {
			conditions = append(conditions, fmt.Sprintf("j.title ILIKE $%d", argCount))
		} else {
			conditions = append(conditions, fmt.Sprintf("(j.title ILIKE $%d OR j.skills::text ILIKE $%d)", argCount, argCount))
		}
		args = append(args, "%"+escapeLike(f.Search)+"%")
		argCount++
	}

	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		conditions = append(conditions, fmt.Sprintf("j.type = ANY($%d)", argCount))
		args = append(args, pq.Array(types))
		argCount++
	}

	if len(f.Levels) > 0 {
		levels := make([]string, len(f.Levels))
		for i, l := range f.Levels {
			levels[i] = string(l)
		}
		conditions = append(conditions, fmt.Sprintf("j.experience_level = ANY($%d)", argCount))
		args = append(args, pq.Array(levels))
		argCount++
	}

	if len(f.Skills) > 0 {
		skillConditions := make([]string, 0, len(f.Skills))
		for _, s := range f.Skills {
			skillConditions = append(skillConditions, fmt.Sprintf("j.skills::text ILIKE $%d", argCount))
			args = append(args, "%"+escapeLike(s)+"%")
			argCount++
		}
		conditions = append(conditions, "("+strings.Join(skillConditions, " OR ")+")")
	}

	if f.MinSalary != nil {
		conditions = append(conditions, fmt.Sprintf("j.salary_min >= $%d", argCount))
		args = append(args, *f.MinSalary)
		argCount++
	}

	if f.MaxSalary != nil {
		conditions = append(conditions, fmt.Sprintf("j.salary_max <= $%d", argCount))
		args = append(args, *f.MaxSalary)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps a sort order to SQL. Every order ends on seq so pages
// are stable.
func orderClause(s job.SortOrder) string {
	switch s {
	case job.SortSalaryHigh:
		return "ORDER BY j.salary_max DESC NULLS LAST, j.seq ASC"
	case job.SortSalaryLow:
		return "ORDER BY j.salary_min ASC NULLS LAST, j.seq ASC"
	case job.SortOldest:
		return "ORDER BY j.created_at ASC, j.seq ASC"
	default:
		return "ORDER BY j.created_at DESC, j.seq ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildSimilarQuery selects active jobs other than source that share its
// category or contain one of its skills. A source with neither matches every
// other active job. It mirrors jobmatch.Similar.
func buildSimilarQuery(source job.Job, limit int) (string, []any) {
	conditions := []string{"j.status = 'Active'", "j.id <> $1"}
	args := []any{source.ID.String()}

	if source.Category != "" || len(source.Skills) > 0 {
		related := []string{}
		if source.Category != "" {
			args = append(args, string(source.Category))
			related = append(related, fmt.Sprintf("j.category = $%d", len(args)))
		}

		patterns := []string{}
		for _, s := range source.Skills {
			if s != "" {
				patterns = append(patterns, "%"+escapeLike(s)+"%")
			}
		}
		if len(patterns) > 0 {
			args = append(args, pq.Array(patterns))
			related = append(related, fmt.Sprintf("j.skills::text ILIKE ANY($%d)", len(args)))
		}

		if len(related) == 0 {
			related = append(related, "FALSE")
		}
		conditions = append(conditions, "("+strings.Join(related, " OR ")+")")
	}

	args = append(args, limit)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY j.created_at DESC, j.seq ASC
		LIMIT $%d`, detailsSelect, strings.Join(conditions, " AND "), len(args))

	return query, args
}

// escapeLike makes user input match literally inside an ILIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

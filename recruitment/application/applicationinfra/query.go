package applicationinfra

import (
	"fmt"
	"strings"

	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/lib/pq"
)

const applicationColumns = `
	a.id, a.job_id, a.user_id, a.status, a.cover_letter, a.resume_url,
	a.seq, a.created_at, a.updated_at`

// detailsFrom joins an application to its job, company and applicant
const detailsFrom = `
	FROM applications a
	INNER JOIN jobs j ON j.id = a.job_id
	INNER JOIN companies c ON c.id = j.company_id
	INNER JOIN users u ON u.id = a.user_id`

const detailsSelect = `
	SELECT ` + applicationColumns + `,
		j.title AS job_title,
		j.slug AS job_slug,
		j.type AS job_type,
		j.location AS job_location,
		j.status AS job_status,
		c.id AS company_id,
		c.name AS company_name,
		c.slug AS company_slug,
		COALESCE(c.logo_url, '') AS company_logo_url,
		COALESCE(c.location, '') AS company_location,
		u.name AS user_name,
		u.email AS user_email,
		COALESCE(u.experience_level, '') AS user_experience_level,
		COALESCE(u.profile_picture_url, '') AS user_profile_picture_url` + detailsFrom

// buildFilterQuery renders the WHERE clause and its positional args for a
// compiled filter. It mirrors application.Filter.Matches.
func buildFilterQuery(f application.Filter) (string, []any) {
	conditions := []string{}
	args := []any{}
	argCount := 1

	if !f.UserID.IsEmpty() {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argCount))
		args = append(args, f.UserID.String())
		argCount++
	}

	if !f.CompanyID.IsEmpty() {
		conditions = append(conditions, fmt.Sprintf("j.company_id = $%d", argCount))
		args = append(args, f.CompanyID.String())
		argCount++
	}

	if !f.JobID.IsEmpty() {
		conditions = append(conditions, fmt.Sprintf("a.job_id = $%d", argCount))
		args = append(args, f.JobID.String())
		argCount++
	}

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("a.status = ANY($%d)", argCount))
		args = append(args, pq.Array(statuses))
		argCount++
	}

	if f.Since != nil {
		conditions = append(conditions, fmt.Sprintf("a.created_at >= $%d", argCount))
		args = append(args, *f.Since)
		argCount++
	}

	if len(f.Levels) > 0 {
		levels := make([]string, len(f.Levels))
		for i, l := range f.Levels {
			levels[i] = string(l)
		}
		conditions = append(conditions, fmt.Sprintf("u.experience_level = ANY($%d)", argCount))
		args = append(args, pq.Array(levels))
		argCount++
	}

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf("u.name ILIKE $%d", argCount))
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func orderClause(oldest bool) string {
	if oldest {
		return "ORDER BY a.created_at ASC, a.seq ASC"
	}
	return "ORDER BY a.created_at DESC, a.seq ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

package auth

import (
	"slices"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

// ============================================================================
// JOB BOARD SCOPES
// ============================================================================

const (
	// Job scopes
	ScopeJobsWrite     = "jobs:write"     // Create, update and delete own postings
	ScopeJobsRecommend = "jobs:recommend" // Personalised recommendations

	// Application scopes
	ScopeApplicationsApply    = "applications:apply"
	ScopeApplicationsReadOwn  = "applications:read:own"
	ScopeApplicationsWithdraw = "applications:withdraw"
	ScopeApplicationsReview   = "applications:review" // List applicants, change status

	// Profile scopes
	ScopeProfileManage = "profile:manage"
	ScopeCompanyManage = "company:manage"
)

// RoleScopes grants scopes to each subject role
var RoleScopes = map[kernel.Role][]string{
	kernel.RoleUser: {
		ScopeJobsRecommend,
		ScopeApplicationsApply,
		ScopeApplicationsReadOwn,
		ScopeApplicationsWithdraw,
		ScopeProfileManage,
	},
	kernel.RoleCompany: {
		ScopeJobsWrite,
		ScopeApplicationsReview,
		ScopeCompanyManage,
	},
}

// ScopesFor returns the scopes granted to role
func ScopesFor(role kernel.Role) []string {
	return RoleScopes[role]
}

// RoleHasScope reports whether role is granted scope
func RoleHasScope(role kernel.Role, scope string) bool {
	return slices.Contains(RoleScopes[role], scope)
}

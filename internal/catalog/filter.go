package catalog

import (
	"strings"

	"matchahire/marketplace/internal/model"
)

// ApplyFilters returns the roles matching every active criterion of st, in
// input order. The input slice is not modified; the result is never nil.
//
// The search term matches case-insensitively as a substring of the title,
// the description, any requirement or any responsibility. An empty term
// matches everything. Location, type and level are exact matches and are
// ignored when unset.
func ApplyFilters(roles []model.Role, st FilterState) []model.Role {
	out := make([]model.Role, 0, len(roles))
	term := strings.ToLower(st.Search)
	for i := range roles {
		r := &roles[i]
		if st.Location != "" && r.Location != st.Location {
			continue
		}
		if st.EmploymentType != "" && string(r.EmploymentType) != st.EmploymentType {
			continue
		}
		if st.ExperienceLevel != "" && string(r.ExperienceLevel) != st.ExperienceLevel {
			continue
		}
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

// matchesSearch expects term already lower-cased.
func matchesSearch(r *model.Role, term string) bool {
	if containsFold(r.Title, term) || containsFold(r.Description, term) {
		return true
	}
	for _, s := range r.Requirements {
		if containsFold(s, term) {
			return true
		}
	}
	for _, s := range r.Responsibilities {
		if containsFold(s, term) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerTerm string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerTerm)
}

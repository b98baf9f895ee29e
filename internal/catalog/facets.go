// Package catalog implements the roles listing pipeline: facet extraction,
// search and attribute filtering, and pagination over an in-memory slice of
// roles. Nothing here performs I/O; Browser pulls data through a RoleSource.
package catalog

import "matchahire/marketplace/internal/model"

// Facets are the distinct filter options present in a role list.
type Facets struct {
	Locations        []string `json:"locations"`
	EmploymentTypes  []string `json:"types"`
	ExperienceLevels []string `json:"levels"`
}

// ComputeFacets collects the distinct non-empty locations, employment types
// and experience levels of roles, each in first-seen order.
func ComputeFacets(roles []model.Role) Facets {
	f := Facets{
		Locations:        make([]string, 0),
		EmploymentTypes:  make([]string, 0),
		ExperienceLevels: make([]string, 0),
	}
	seenLoc := make(map[string]struct{})
	seenType := make(map[string]struct{})
	seenLevel := make(map[string]struct{})

	for i := range roles {
		r := &roles[i]
		f.Locations = appendDistinct(f.Locations, seenLoc, r.Location)
		f.EmploymentTypes = appendDistinct(f.EmploymentTypes, seenType, string(r.EmploymentType))
		f.ExperienceLevels = appendDistinct(f.ExperienceLevels, seenLevel, string(r.ExperienceLevel))
	}
	return f
}

func appendDistinct(dst []string, seen map[string]struct{}, v string) []string {
	if v == "" {
		return dst
	}
	if _, ok := seen[v]; ok {
		return dst
	}
	seen[v] = struct{}{}
	return append(dst, v)
}

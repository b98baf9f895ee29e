package catalog

import "matchahire/marketplace/internal/model"

// View is everything a listing page renders for one FilterState.
type View struct {
	Facets Facets      `json:"facets"`
	Filter FilterState `json:"filter"`
	Page
}

// Build runs the full pipeline: facets over all roles, filters, then the
// page. The page in st is clamped to the filtered total, and the returned
// View.Filter carries the clamped value.
func Build(roles []model.Role, st FilterState, size int) View {
	if size <= 0 {
		size = DefaultPageSize
	}
	filtered := ApplyFilters(roles, st)
	st = st.WithPage(st.Page, TotalPages(len(filtered), size))
	return View{
		Facets: ComputeFacets(roles),
		Filter: st,
		Page:   Paginate(filtered, st.Page, size),
	}
}

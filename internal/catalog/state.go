package catalog

// FilterState is the user's current search, attribute filters and page.
// An empty string means the filter is unset. Page is 1-based.
//
// The With* setters return a copy; any of them resets Page to 1 when the
// value actually changes so that a shrinking result never leaves the user on
// a page past the end.
type FilterState struct {
	Search          string `json:"search"`
	Location        string `json:"location,omitempty"`
	EmploymentType  string `json:"type,omitempty"`
	ExperienceLevel string `json:"level,omitempty"`
	Page            int    `json:"page"`
}

// NewFilterState returns the initial state: no filters, page 1.
func NewFilterState() FilterState { return FilterState{Page: 1} }

// WithSearch sets the search term.
func (s FilterState) WithSearch(term string) FilterState {
	if s.Search != term {
		s.Search = term
		s.Page = 1
	}
	return s
}

// WithLocation sets the location filter.
func (s FilterState) WithLocation(loc string) FilterState {
	if s.Location != loc {
		s.Location = loc
		s.Page = 1
	}
	return s
}

// WithEmploymentType sets the employment type filter.
func (s FilterState) WithEmploymentType(t string) FilterState {
	if s.EmploymentType != t {
		s.EmploymentType = t
		s.Page = 1
	}
	return s
}

// WithExperienceLevel sets the experience level filter.
func (s FilterState) WithExperienceLevel(l string) FilterState {
	if s.ExperienceLevel != l {
		s.ExperienceLevel = l
		s.Page = 1
	}
	return s
}

// Cleared drops every filter and the search term.
func (s FilterState) Cleared() FilterState { return NewFilterState() }

// HasFilters reports whether any filter or search term is active.
func (s FilterState) HasFilters() bool {
	return s.Search != "" || s.Location != "" || s.EmploymentType != "" || s.ExperienceLevel != ""
}

// WithPage moves to page p, clamped to [1, totalPages].
func (s FilterState) WithPage(p, totalPages int) FilterState {
	s.Page = clampPage(p, totalPages)
	return s
}

// NextPage advances one page, never past totalPages.
func (s FilterState) NextPage(totalPages int) FilterState {
	return s.WithPage(s.Page+1, totalPages)
}

// PrevPage goes back one page, never before 1.
func (s FilterState) PrevPage() FilterState {
	if s.Page > 1 {
		s.Page--
	} else {
		s.Page = 1
	}
	return s
}

func clampPage(p, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if p < 1 {
		return 1
	}
	if p > totalPages {
		return totalPages
	}
	return p
}

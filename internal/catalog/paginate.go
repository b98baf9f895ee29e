package catalog

import "matchahire/marketplace/internal/model"

// DefaultPageSize is the number of roles shown per listing page.
const DefaultPageSize = 6

// Page is one window of a filtered role list.
type Page struct {
	Items        []model.Role `json:"roles"`
	Page         int          `json:"page"`
	PageSize     int          `json:"pageSize"`
	TotalPages   int          `json:"totalPages"`
	TotalItems   int          `json:"totalItems"`
	ShowControls bool         `json:"showPagination"`
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate slices roles to the requested page. A page outside
// [1, TotalPages] yields an empty Items slice but correct totals; callers
// that want clamping go through FilterState.WithPage first.
func Paginate(roles []model.Role, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := TotalPages(len(roles), size)
	p := Page{
		Items:        make([]model.Role, 0, size),
		Page:         page,
		PageSize:     size,
		TotalPages:   total,
		TotalItems:   len(roles),
		ShowControls: total > 1,
	}
	start := (page - 1) * size
	if start >= len(roles) {
		return p
	}
	end := start + size
	if end > len(roles) {
		end = len(roles)
	}
	p.Items = append(p.Items, roles[start:end]...)
	return p
}

package catalog_test

import (
	"reflect"
	"testing"

	"matchahire/marketplace/internal/catalog"
	"matchahire/marketplace/internal/model"
)

func sampleRoles() []model.Role {
	return []model.Role{
		{ID: "1", Title: "Engineer", Location: "Remote", EmploymentType: model.EmploymentFullTime, ExperienceLevel: model.LevelMid},
		{ID: "2", Title: "Designer", Location: "NYC", EmploymentType: model.EmploymentContract, ExperienceLevel: model.LevelSenior},
	}
}

func ids(roles []model.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.ID)
	}
	return out
}

// ── ComputeFacets ──────────────────────────────────────────────────────────

func TestComputeFacets_FirstSeenDistinctNonEmpty(t *testing.T) {
	roles := []model.Role{
		{ID: "a", Location: "NYC", EmploymentType: model.EmploymentContract},
		{ID: "b", Location: "Remote", ExperienceLevel: model.LevelLead},
		{ID: "c", Location: "NYC", EmploymentType: model.EmploymentFullTime, ExperienceLevel: model.LevelEntry},
		{ID: "d", Location: ""},
	}
	f := catalog.ComputeFacets(roles)

	if want := []string{"NYC", "Remote"}; !reflect.DeepEqual(f.Locations, want) {
		t.Errorf("Locations = %v, want %v", f.Locations, want)
	}
	if want := []string{"Contract", "Full-time"}; !reflect.DeepEqual(f.EmploymentTypes, want) {
		t.Errorf("EmploymentTypes = %v, want %v", f.EmploymentTypes, want)
	}
	if want := []string{"Lead", "Entry"}; !reflect.DeepEqual(f.ExperienceLevels, want) {
		t.Errorf("ExperienceLevels = %v, want %v", f.ExperienceLevels, want)
	}
}

func TestComputeFacets_EmptyInput(t *testing.T) {
	f := catalog.ComputeFacets(nil)
	if f.Locations == nil || len(f.Locations) != 0 {
		t.Errorf("Locations = %#v, want empty non-nil", f.Locations)
	}
}

// ── ApplyFilters ───────────────────────────────────────────────────────────

func TestApplyFilters_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		state catalog.FilterState
		want  []string
	}{
		{"search is case-insensitive", catalog.FilterState{Search: "ENGINEER"}, []string{"1"}},
		{"location", catalog.FilterState{Location: "NYC"}, []string{"2"}},
		{"type and level both match", catalog.FilterState{EmploymentType: "Full-time", ExperienceLevel: "Mid"}, []string{"1"}},
		{"type and level disagree", catalog.FilterState{EmploymentType: "Full-time", ExperienceLevel: "Senior"}, []string{}},
		{"no filters", catalog.FilterState{}, []string{"1", "2"}},
		{"no match", catalog.FilterState{Search: "zzz"}, []string{}},
	}
	for _, c := range cases {
		got := ids(catalog.ApplyFilters(sampleRoles(), c.state))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestApplyFilters_SearchesListsAndDescription(t *testing.T) {
	roles := []model.Role{
		{ID: "r", Title: "Backend", Requirements: []string{"5 years of Go"}},
		{ID: "s", Title: "Frontend", Responsibilities: []string{"Own the Design system"}},
		{ID: "d", Title: "Ops", Description: "Keep the lights on"},
		{ID: "n", Title: "Nothing"},
	}
	if got := ids(catalog.ApplyFilters(roles, catalog.FilterState{Search: "go"})); !reflect.DeepEqual(got, []string{"r"}) {
		t.Errorf("requirements search = %v", got)
	}
	if got := ids(catalog.ApplyFilters(roles, catalog.FilterState{Search: "design"})); !reflect.DeepEqual(got, []string{"s"}) {
		t.Errorf("responsibilities search = %v", got)
	}
	if got := ids(catalog.ApplyFilters(roles, catalog.FilterState{Search: "LIGHTS"})); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("description search = %v", got)
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	in := sampleRoles()
	before := ids(in)
	out := catalog.ApplyFilters(in, catalog.FilterState{Location: "NYC"})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d", len(out))
	}
	out[0].Title = "changed"
	if !reflect.DeepEqual(ids(in), before) || in[1].Title != "Designer" {
		t.Error("ApplyFilters must not alias or reorder its input")
	}
}

func TestApplyFilters_PreservesOrder(t *testing.T) {
	roles := []model.Role{
		{ID: "3", Location: "Remote"}, {ID: "1", Location: "Remote"}, {ID: "2", Location: "NYC"}, {ID: "0", Location: "Remote"},
	}
	got := ids(catalog.ApplyFilters(roles, catalog.FilterState{Location: "Remote"}))
	if want := []string{"3", "1", "0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// ── Paginate ───────────────────────────────────────────────────────────────

func manyRoles(n int) []model.Role {
	out := make([]model.Role, n)
	for i := range out {
		out[i] = model.Role{ID: string(rune('a' + i))}
	}
	return out
}

func TestPaginate_ThirteenRoles(t *testing.T) {
	roles := manyRoles(13)

	p := catalog.Paginate(roles, 3, 6)
	if p.TotalPages != 3 || len(p.Items) != 1 || p.Items[0].ID != roles[12].ID {
		t.Errorf("page 3 = %+v", p)
	}
	if !p.ShowControls {
		t.Error("ShowControls should be true with 3 pages")
	}

	p = catalog.Paginate(roles, 1, 6)
	if len(p.Items) != 6 || p.Items[5].ID != roles[5].ID {
		t.Errorf("page 1 items = %v", ids(p.Items))
	}
}

func TestPaginate_Bounds(t *testing.T) {
	cases := []struct {
		n, size, page    int
		wantTotal, wantN int
		wantControls     bool
	}{
		{0, 6, 1, 1, 0, false},
		{6, 6, 1, 1, 6, false},
		{7, 6, 2, 2, 1, true},
		{5, 0, 1, 1, 5, false},
		{3, 6, 9, 1, 0, false},
	}
	for _, c := range cases {
		p := catalog.Paginate(manyRoles(c.n), c.page, c.size)
		if p.TotalPages != c.wantTotal || len(p.Items) != c.wantN || p.ShowControls != c.wantControls {
			t.Errorf("Paginate(n=%d, page=%d, size=%d) = total %d, items %d, controls %v",
				c.n, c.page, c.size, p.TotalPages, len(p.Items), p.ShowControls)
		}
		if len(p.Items) > p.PageSize {
			t.Errorf("page holds %d items, size %d", len(p.Items), p.PageSize)
		}
	}
}

// ── FilterState ────────────────────────────────────────────────────────────

func TestFilterState_ChangingFilterResetsPage(t *testing.T) {
	st := catalog.FilterState{Page: 3}

	if got := st.WithLocation("Remote").Page; got != 1 {
		t.Errorf("WithLocation page = %d, want 1", got)
	}
	if got := st.WithSearch("go").Page; got != 1 {
		t.Errorf("WithSearch page = %d, want 1", got)
	}
	if got := st.WithEmploymentType("Contract").Page; got != 1 {
		t.Errorf("WithEmploymentType page = %d, want 1", got)
	}
	if got := st.WithExperienceLevel("Lead").Page; got != 1 {
		t.Errorf("WithExperienceLevel page = %d, want 1", got)
	}
}

func TestFilterState_SameValueKeepsPage(t *testing.T) {
	st := catalog.FilterState{Location: "Remote", Page: 2}
	if got := st.WithLocation("Remote").Page; got != 2 {
		t.Errorf("page = %d, want 2", got)
	}
}

func TestFilterState_Cleared(t *testing.T) {
	st := catalog.FilterState{Search: "x", Location: "NYC", EmploymentType: "Contract", ExperienceLevel: "Mid", Page: 4}
	c := st.Cleared()
	if c.HasFilters() || c.Page != 1 {
		t.Errorf("Cleared() = %+v", c)
	}
}

func TestFilterState_PageClamps(t *testing.T) {
	st := catalog.NewFilterState()
	if got := st.PrevPage().Page; got != 1 {
		t.Errorf("PrevPage from 1 = %d", got)
	}
	st = st.NextPage(2).NextPage(2)
	if st.Page != 2 {
		t.Errorf("NextPage past end = %d, want 2", st.Page)
	}
	if got := st.WithPage(0, 2).Page; got != 1 {
		t.Errorf("WithPage(0) = %d", got)
	}
}

// ── Build ──────────────────────────────────────────────────────────────────

func TestBuild_FacetsOverAllRolesAndClampedPage(t *testing.T) {
	v := catalog.Build(sampleRoles(), catalog.FilterState{Location: "NYC", Page: 5}, 6)
	if len(v.Facets.Locations) != 2 {
		t.Errorf("facets must cover unfiltered roles, got %v", v.Facets.Locations)
	}
	if v.Filter.Page != 1 || v.Page.Page != 1 {
		t.Errorf("page not clamped: filter %d, page %d", v.Filter.Page, v.Page.Page)
	}
	if got := ids(v.Items); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("items = %v", got)
	}
}

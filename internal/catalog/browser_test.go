package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"matchahire/marketplace/internal/catalog"
	"matchahire/marketplace/internal/model"
)

// ── fakes ──────────────────────────────────────────────────────────────────

type fakeSource struct {
	roles []model.Role
	err   error
}

func (f *fakeSource) ListRoles(context.Context) ([]model.Role, error) { return f.roles, f.err }

// gatedSource hands each call its own reply channel so a test can resolve
// concurrent fetches in any order.
type gatedSource struct {
	calls chan chan []model.Role
}

func (g *gatedSource) ListRoles(ctx context.Context) ([]model.Role, error) {
	reply := make(chan []model.Role)
	g.calls <- reply
	select {
	case roles := <-reply:
		return roles, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ── Load ───────────────────────────────────────────────────────────────────

func TestBrowser_LoadAndFilter(t *testing.T) {
	b := catalog.NewBrowser(&fakeSource{roles: sampleRoles()}, 6, time.Millisecond)
	defer b.Close()

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	b.SetLocation("NYC")
	s := b.Snapshot()
	if s.Loading || s.Error != "" {
		t.Errorf("unexpected state: %+v", s)
	}
	if len(s.Items) != 1 || s.Items[0].Title != "Designer" {
		t.Errorf("items = %v", ids(s.Items))
	}
}

func TestBrowser_FetchErrorClearsRoles(t *testing.T) {
	src := &fakeSource{roles: sampleRoles()}
	b := catalog.NewBrowser(src, 6, time.Millisecond)
	defer b.Close()

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	src.err = errors.New("db down")
	if err := b.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	s := b.Snapshot()
	if s.Error == "" || len(s.Items) != 0 || len(s.Facets.Locations) != 0 {
		t.Errorf("error state should carry no data: %+v", s)
	}

	// retry
	src.err = nil
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s := b.Snapshot(); s.Error != "" || s.TotalItems != 2 {
		t.Errorf("after retry: %+v", s)
	}
}

func TestBrowser_StaleResponseIgnored(t *testing.T) {
	src := &gatedSource{calls: make(chan chan []model.Role)}
	b := catalog.NewBrowser(src, 6, time.Millisecond)
	defer b.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(2)

	go func() { defer wg.Done(); _ = b.Load(ctx) }()
	first := <-src.calls
	go func() { defer wg.Done(); _ = b.Load(ctx) }()
	second := <-src.calls

	second <- []model.Role{{ID: "new", Title: "Fresh"}}
	first <- []model.Role{{ID: "old", Title: "Stale"}, {ID: "old2"}}
	wg.Wait()

	s := b.Snapshot()
	if s.Loading {
		t.Error("still loading after both fetches resolved")
	}
	if got := ids(s.Items); len(got) != 1 || got[0] != "new" {
		t.Errorf("items = %v, want [new]", got)
	}
}

// ── paging & search ────────────────────────────────────────────────────────

func TestBrowser_PagingClampsAndFilterResets(t *testing.T) {
	roles := manyRoles(13)
	for i := range roles {
		roles[i].Location = "Remote"
	}
	b := catalog.NewBrowser(&fakeSource{roles: roles}, 6, time.Millisecond)
	defer b.Close()
	_ = b.Load(context.Background())

	b.SetLocation("Remote")
	b.NextPage()
	b.NextPage()
	b.NextPage()
	if p := b.State().Page; p != 3 {
		t.Fatalf("page = %d, want 3", p)
	}
	b.SetLocation("Remote")
	if p := b.State().Page; p != 3 {
		t.Errorf("same location must keep page, got %d", p)
	}
	b.SetLocation("Berlin")
	if p := b.State().Page; p != 1 {
		t.Errorf("new location must reset page, got %d", p)
	}
	b.SetLocation("Remote")
	b.NextPage()
	b.SetExperienceLevel("Lead")
	if p := b.State().Page; p != 1 {
		t.Errorf("page = %d, want 1", p)
	}
	b.PrevPage()
	if p := b.State().Page; p != 1 {
		t.Errorf("page = %d, want 1", p)
	}
}

func TestBrowser_TypeSearchIsDebounced(t *testing.T) {
	b := catalog.NewBrowser(&fakeSource{roles: sampleRoles()}, 6, 20*time.Millisecond)
	defer b.Close()
	_ = b.Load(context.Background())

	b.TypeSearch("eng")
	b.TypeSearch("engi")
	if got := b.State().Search; got != "" {
		t.Fatalf("search applied before window: %q", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for b.State().Search == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := b.State().Search; got != "engi" {
		t.Errorf("search = %q, want engi", got)
	}
}

func TestBrowser_CloseDropsPendingSearch(t *testing.T) {
	b := catalog.NewBrowser(&fakeSource{}, 6, 10*time.Millisecond)
	b.TypeSearch("late")
	b.Close()
	time.Sleep(40 * time.Millisecond)
	if got := b.State().Search; got != "" {
		t.Errorf("search = %q after Close", got)
	}
}

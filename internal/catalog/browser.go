package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"matchahire/marketplace/internal/model"
)

// RoleSource supplies the full role list, newest first.
type RoleSource interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
}

// ─── Browser ─────────────────────────────────────────────────────────────────

// Snapshot is what a listing renders at one instant.
type Snapshot struct {
	View
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Browser owns one listing session: the fetched roles, the filter state and
// the debounced search box. It is safe for concurrent use; the debounce
// timer commits searches from its own goroutine.
type Browser struct {
	src      RoleSource
	pageSize int
	search   *Debouncer

	mu      sync.Mutex
	roles   []model.Role
	state   FilterState
	loading bool
	err     error
	gen     uint64
}

// NewBrowser returns a Browser reading from src. Non-positive pageSize and
// debounce fall back to DefaultPageSize and DefaultDebounce.
func NewBrowser(src RoleSource, pageSize int, debounce time.Duration) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	b := &Browser{
		src:      src,
		pageSize: pageSize,
		roles:    make([]model.Role, 0),
		state:    NewFilterState(),
	}
	b.search = NewDebouncer(debounce, b.SetSearch)
	return b
}

// Load fetches roles from the source. If another Load starts before this one
// returns, this one's result is discarded. On failure the role list is
// emptied and the error is kept until the next successful Load.
func (b *Browser) Load(ctx context.Context) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.loading = true
	b.mu.Unlock()

	roles, err := b.src.ListRoles(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return nil
	}
	b.loading = false
	if err != nil {
		b.roles = make([]model.Role, 0)
		b.err = fmt.Errorf("fetch roles: %w", err)
		return b.err
	}
	if roles == nil {
		roles = make([]model.Role, 0)
	}
	b.roles = roles
	b.err = nil
	return nil
}

// Snapshot returns the current view with the page clamped to what exists.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := Build(b.roles, b.state, b.pageSize)
	b.state = v.Filter
	s := Snapshot{View: v, Loading: b.loading}
	if b.err != nil {
		s.Error = b.err.Error()
	}
	return s
}

// State returns the current filter state.
func (b *Browser) State() FilterState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// TypeSearch records a keystroke; the term is applied after the debounce window.
func (b *Browser) TypeSearch(term string) { b.search.Push(term) }

// SetSearch applies a search term immediately.
func (b *Browser) SetSearch(term string) {
	b.update(func(s FilterState) FilterState { return s.WithSearch(term) })
}

// SetLocation filters by location; "" clears it.
func (b *Browser) SetLocation(loc string) {
	b.update(func(s FilterState) FilterState { return s.WithLocation(loc) })
}

// SetEmploymentType filters by employment type; "" clears it.
func (b *Browser) SetEmploymentType(t string) {
	b.update(func(s FilterState) FilterState { return s.WithEmploymentType(t) })
}

// SetExperienceLevel filters by experience level; "" clears it.
func (b *Browser) SetExperienceLevel(l string) {
	b.update(func(s FilterState) FilterState { return s.WithExperienceLevel(l) })
}

// ClearFilters drops every filter. A search still waiting on the debouncer is
// committed first so its timer cannot re-apply it afterwards.
func (b *Browser) ClearFilters() {
	b.search.Flush()
	b.update(func(s FilterState) FilterState { return s.Cleared() })
}

// NextPage advances one page within the filtered results.
func (b *Browser) NextPage() {
	b.update(func(s FilterState) FilterState {
		n := len(ApplyFilters(b.roles, s))
		return s.NextPage(TotalPages(n, b.pageSize))
	})
}

// PrevPage goes back one page, stopping at 1.
func (b *Browser) PrevPage() {
	b.update(func(s FilterState) FilterState { return s.PrevPage() })
}

// Close stops the debounce timer. Pending keystrokes are dropped.
func (b *Browser) Close() { b.search.Cancel() }

func (b *Browser) update(fn func(FilterState) FilterState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = fn(b.state)
}

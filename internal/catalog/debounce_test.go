package catalog_test

import (
	"sync"
	"testing"
	"time"

	"matchahire/marketplace/internal/catalog"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, v)
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestDebouncer_OnlyLatestCommits(t *testing.T) {
	var rec recorder
	d := catalog.NewDebouncer(15*time.Millisecond, rec.add)
	defer d.Cancel()

	d.Push("a")
	d.Push("ab")
	d.Push("abc")
	time.Sleep(80 * time.Millisecond)

	got := rec.values()
	if len(got) != 1 || got[0] != "abc" {
		t.Errorf("committed %v, want [abc]", got)
	}
	if d.Pending() {
		t.Error("nothing should be pending")
	}
}

func TestDebouncer_FlushCommitsNow(t *testing.T) {
	var rec recorder
	d := catalog.NewDebouncer(time.Hour, rec.add)
	defer d.Cancel()

	d.Push("now")
	d.Flush()
	if got := rec.values(); len(got) != 1 || got[0] != "now" {
		t.Errorf("committed %v", got)
	}
	d.Flush()
	if got := rec.values(); len(got) != 1 {
		t.Errorf("second Flush must be a no-op, got %v", got)
	}
}

func TestDebouncer_CancelStopsEverything(t *testing.T) {
	var rec recorder
	d := catalog.NewDebouncer(5*time.Millisecond, rec.add)
	d.Push("x")
	d.Cancel()
	d.Push("y")
	time.Sleep(30 * time.Millisecond)
	if got := rec.values(); len(got) != 0 {
		t.Errorf("committed %v after Cancel", got)
	}
}

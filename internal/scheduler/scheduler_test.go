package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingRefresher struct {
	n   atomic.Int32
	err error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.n.Add(1)
	return c.err
}

type countingSweeper struct{ n atomic.Int32 }

func (c *countingSweeper) Sweep() int {
	c.n.Add(1)
	return 2
}

func TestStart_WarmsCacheImmediately(t *testing.T) {
	r := &countingRefresher{}
	s := New(r, &countingSweeper{}, "@every 1h", "@every 1h")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for r.n.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if r.n.Load() == 0 {
		t.Error("refresh did not run on Start")
	}
}

func TestStart_RejectsBadSpec(t *testing.T) {
	s := New(&countingRefresher{}, nil, "every now and then", "")
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestJobs(t *testing.T) {
	r := &countingRefresher{err: errors.New("db down")}
	sw := &countingSweeper{}
	s := New(r, sw, "@every 1m", "@every 1m")

	s.refreshRoles(context.Background())
	s.sweepSessions()
	if r.n.Load() != 1 || sw.n.Load() != 1 {
		t.Errorf("refresh=%d sweep=%d", r.n.Load(), sw.n.Load())
	}
}

func TestNilJobsAreSkipped(t *testing.T) {
	s := New(nil, nil, "bad", "bad")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}

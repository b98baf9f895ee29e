// Package scheduler runs the periodic maintenance jobs: refreshing the
// cached role list and sweeping idle wizard sessions.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher rebuilds a cache from its source of truth.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Sweeper drops expired entries and reports how many went.
type Sweeper interface {
	Sweep() int
}

// Scheduler wraps robfig/cron and owns the maintenance jobs.
type Scheduler struct {
	cron        *cron.Cron
	roles       Refresher
	sessions    Sweeper
	refreshSpec string // e.g. "@every 1m"
	sweepSpec   string
	timeout     time.Duration
}

// New creates a Scheduler. Either job may be nil to disable it.
func New(roles Refresher, sessions Sweeper, refreshSpec, sweepSpec string) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLogger(cron.DefaultLogger)),
		roles:       roles,
		sessions:    sessions,
		refreshSpec: refreshSpec,
		sweepSpec:   sweepSpec,
		timeout:     30 * time.Second,
	}
}

// Start registers the jobs and starts the scheduler. The role cache is also
// warmed immediately so the first listing request does not miss.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.roles != nil {
		if _, err := s.cron.AddFunc(s.refreshSpec, func() { s.refreshRoles(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc(%q): %w", s.refreshSpec, err)
		}
	}
	if s.sessions != nil {
		if _, err := s.cron.AddFunc(s.sweepSpec, s.sweepSessions); err != nil {
			return fmt.Errorf("cron.AddFunc(%q): %w", s.sweepSpec, err)
		}
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started: refresh %s, sweep %s", s.refreshSpec, s.sweepSpec)

	if s.roles != nil {
		go s.refreshRoles(ctx)
	}
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) refreshRoles(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.roles.Refresh(ctx); err != nil {
		log.Printf("[scheduler] Role cache refresh error: %v", err)
	}
}

func (s *Scheduler) sweepSessions() {
	if n := s.sessions.Sweep(); n > 0 {
		log.Printf("[scheduler] Swept %d idle wizard session(s)", n)
	}
}

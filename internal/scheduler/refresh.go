package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher runs a job on a cron schedule. Overlapping runs are skipped.
type Refresher struct {
	name  string
	cron  *cron.Cron
	entry cron.EntryID
	job   func() error
}

// NewRefresher parses spec (standard 5-field or a descriptor such as
// "@every 2m") and registers job under name
func NewRefresher(name, spec string, job func() error) (*Refresher, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	r := &Refresher{
		name: name,
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		job:  job,
	}
	r.entry = r.cron.Schedule(schedule, cron.FuncJob(r.Trigger))
	return r, nil
}

// Trigger runs the job once, logging any failure
func (r *Refresher) Trigger() {
	start := time.Now()
	if err := r.job(); err != nil {
		log.Printf("[Scheduler] %s failed: %v", r.name, err)
		return
	}
	log.Printf("[Scheduler] %s done in %v", r.name, time.Since(start))
}

// Start begins running the schedule in the background
func (r *Refresher) Start() {
	r.cron.Start()
	log.Printf("[Scheduler] %s scheduled, next run at %s", r.name, r.Next().Format(time.RFC3339))
}

// Next returns the next scheduled run, zero before Start
func (r *Refresher) Next() time.Time {
	return r.cron.Entry(r.entry).Next
}

// Stop halts the schedule and waits for a running job or ctx, whichever ends first
func (r *Refresher) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

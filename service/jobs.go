package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ui-design-gallery/config"
	"ui-design-gallery/metrics"
)

const jobTimeout = 2 * time.Minute

// Scheduler runs background maintenance jobs on cron schedules
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the view flush (when views is non-nil) and saved match prune jobs
func NewScheduler(cfg config.JobsConfig, views *ViewBuffer, matches MatchServiceInterface) (*Scheduler, error) {
	c := cron.New()

	if views != nil {
		if _, err := c.AddFunc(cfg.ViewFlushSpec, runJob("view_flush", func(ctx context.Context) error {
			_, err := views.Flush(ctx)
			return err
		})); err != nil {
			return nil, fmt.Errorf("invalid view flush schedule %q: %w", cfg.ViewFlushSpec, err)
		}
	}

	if matches != nil && cfg.MatchRetainDays > 0 {
		retain := time.Duration(cfg.MatchRetainDays) * 24 * time.Hour
		if _, err := c.AddFunc(cfg.MatchPruneSpec, runJob("match_prune", func(ctx context.Context) error {
			_, err := matches.PruneSaved(ctx, retain)
			return err
		})); err != nil {
			return nil, fmt.Errorf("invalid match prune schedule %q: %w", cfg.MatchPruneSpec, err)
		}
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	log.Printf("⏰ Starting scheduler with %d jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Printf("⚠️  Scheduler stop timed out")
	}
}

func runJob(name string, fn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		err := fn(ctx)
		metrics.RecordJobRun(name, time.Since(start), err == nil)
		if err != nil {
			log.Printf("❌ Job %s failed: %v", name, err)
		}
	}
}

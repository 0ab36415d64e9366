// Package jobs holds the background schedules: currently only the webhook
// redelivery sweep.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper is satisfied by automation.Dispatcher.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type Scheduler struct {
	c *cron.Cron
}

// NewScheduler registers the webhook sweep under spec (cron expression or
// @every syntax) and returns the unstarted scheduler.
func NewScheduler(spec string, sweeper Sweeper) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := sweeper.Sweep(ctx)
		if err != nil {
			log.Printf("jobs: webhook sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("jobs: webhook sweep redelivered %d", n)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{c: c}, nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() { <-s.c.Stop().Done() }

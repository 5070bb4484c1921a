package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/C-dan93/oil-price-analysis-uk/internal/pipeline"
)

// Scheduler periodically runs the full data pipeline.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pipe      *pipeline.Pipeline
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pipe *pipeline.Pipeline, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pipe:      pipe,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// An interval of 0 disables scheduling.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: interval is 0; periodic runs disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Println("scheduler: running data pipeline job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := s.pipe.Run(ctx); err != nil {
			log.Printf("scheduler: pipeline run failed: %v", err)
			return
		}
		log.Println("scheduler: completed data pipeline job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

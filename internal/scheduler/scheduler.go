package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-report/internal/weather"
)

const defaultInterval = 15 * time.Minute

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, name string) (weather.Snapshot, error)
}

// Scheduler periodically reloads the configured weather sources.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	sources   []string
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(sources []string, interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		sources:   sources,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.sources) == 0 {
		log.Println("scheduler: no sources configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.every()).Do(func() {
		log.Println("scheduler: running refresh job")
		failed := s.RunOnce(context.Background())
		log.Printf("scheduler: completed refresh job (%d of %d failed)", failed, len(s.sources))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// every is the job period; non-positive intervals fall back to 15 minutes.
func (s *Scheduler) every() time.Duration {
	if s.interval <= 0 {
		return defaultInterval
	}
	return s.interval
}

// RunOnce refreshes every source concurrently and returns how many failed.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for _, name := range s.sources {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			if _, err := s.service.Refresh(ctx, name); err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", name, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()
	return failed
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Package scheduler runs periodic background jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/lexicology/internal/entities"
)

// StatsSource provides the global statistics snapshot.
type StatsSource interface {
	GetStats() (*entities.GlobalStats, error)
}

// StatsSnapshotScheduler periodically logs a snapshot of the global
// vocabulary statistics.
type StatsSnapshotScheduler struct {
	source   StatsSource
	schedule string

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewStatsSnapshotScheduler creates a new scheduler instance.
func NewStatsSnapshotScheduler(source StatsSource, schedule string) *StatsSnapshotScheduler {
	return &StatsSnapshotScheduler{
		source:   source,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *StatsSnapshotScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSnapshot); err != nil {
		return fmt.Errorf("failed to schedule stats snapshot job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	log.Printf("Stats snapshot scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *StatsSnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("Stats snapshot scheduler: stopped")
}

func (s *StatsSnapshotScheduler) runSnapshot() {
	stats, err := s.source.GetStats()
	if err != nil {
		log.Printf("Stats snapshot: failed to collect stats: %v", err)
		return
	}

	log.Printf("Stats snapshot: %d words across %d users, %d added in the last 24h",
		stats.TotalWords, stats.TotalUsers, stats.RecentActivity)
}

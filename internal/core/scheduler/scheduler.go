package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a scheduled unit of work. ctx is cancelled when the scheduler stops.
type Job func(ctx context.Context)

// Scheduler runs named jobs on cron expressions with a seconds field
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	jobs    map[string]cron.EntryID
	jobsMux sync.RWMutex
}

// New creates a scheduler evaluating expressions in loc
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	log.Println("⏰ Starting scheduler...")
	s.cron.Start()
	log.Println("✅ Scheduler started")
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	log.Println("⏰ Stopping scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	log.Println("✅ Scheduler stopped")
}

// AddJob schedules job under name, replacing any job with the same name.
// schedule is a six-field cron expression, e.g. "0 5 0 * * *".
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}

	entryID, err := s.cron.AddFunc(schedule, func() { job(s.ctx) })
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	log.Printf("   ✅ Scheduled job %s: %s", name, schedule)
	return nil
}

// RemoveJob removes a job from the scheduler
func (s *Scheduler) RemoveJob(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		log.Printf("   ✅ Removed scheduled job: %s", name)
	}
}

// Jobs returns the scheduled job names, sorted
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextRun reports when a job fires next. Zero before Start.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.jobsMux.RLock()
	entryID, exists := s.jobs[name]
	s.jobsMux.RUnlock()
	if !exists {
		return time.Time{}, false
	}
	return s.cron.Entry(entryID).Next, true
}

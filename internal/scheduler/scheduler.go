package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner and keeps registered tasks addressable by id
// so the same job cannot be installed twice.
type Scheduler struct {
	cron  *cron.Cron
	mu    sync.Mutex
	tasks map[string]cron.EntryID
}

func New() *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		tasks: make(map[string]cron.EntryID),
	}
}

// Register installs cmd under spec. Registering an id that already exists is
// a logged no-op.
func (s *Scheduler) Register(id, spec string, cmd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[id]; exists {
		slog.Info(fmt.Sprintf("task %s already registered", id))
		return nil
	}

	entryID, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		return fmt.Errorf("failed to register task %s: %w", id, err)
	}
	s.tasks[id] = entryID
	slog.Info(fmt.Sprintf("registered task %s with schedule %s", id, spec))
	return nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// TaskCount reports how many tasks are installed.
func (s *Scheduler) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

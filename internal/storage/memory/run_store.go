// Package memory keeps extraction runs in process memory for the presentation layer.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/JakeFAU/email-extractor/internal/harvest"
)

// DefaultCapacity bounds the store when no capacity is configured.
const DefaultCapacity = 100

var (
	// ErrRunNotFound is returned for unknown or evicted run IDs.
	ErrRunNotFound = errors.New("run not found")
	// ErrRunExists is returned when a run ID is saved twice.
	ErrRunExists = errors.New("run already exists")
)

// RunStore holds the most recent runs; the oldest run is evicted once capacity is reached.
type RunStore struct {
	mu       sync.RWMutex
	capacity int
	runs     map[string]harvest.Run
	order    []string
}

// NewRunStore constructs a RunStore holding at most capacity runs.
func NewRunStore(capacity int) *RunStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RunStore{
		capacity: capacity,
		runs:     make(map[string]harvest.Run, capacity),
	}
}

// SaveRun stores a copy of run.
func (s *RunStore) SaveRun(_ context.Context, run harvest.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.runs[run.ID]; exists {
		return ErrRunExists
	}
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
	s.runs[run.ID] = cloneRun(run)
	s.order = append(s.order, run.ID)
	return nil
}

// GetRun fetches a run by ID.
func (s *RunStore) GetRun(_ context.Context, runID string) (harvest.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return harvest.Run{}, ErrRunNotFound
	}
	return cloneRun(run), nil
}

// Len reports how many runs are currently held.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

func cloneRun(src harvest.Run) harvest.Run {
	cp := src
	cp.URLs = append([]string(nil), src.URLs...)
	cp.Emails = append([]string(nil), src.Emails...)
	cp.Notices = append([]harvest.Notice(nil), src.Notices...)
	return cp
}

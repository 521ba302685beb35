package harvest

import (
	"context"
	"fmt"
)

// Service turns raw form input into a stored Run.
type Service struct {
	engine *Engine
	runs   RunStore
	ids    IDGenerator
	clock  Clock
}

// NewService wires the engine to run bookkeeping.
func NewService(engine *Engine, runs RunStore, ids IDGenerator, clock Clock) *Service {
	return &Service{
		engine: engine,
		runs:   runs,
		ids:    ids,
		clock:  clock,
	}
}

// Extract parses a comma-separated URL list, runs the batch and stores the result.
// It returns ErrNoURLs without doing any work when rawURLs is blank.
func (s *Service) Extract(ctx context.Context, rawURLs string, filter string) (Run, error) {
	urls, err := ParseURLList(rawURLs)
	if err != nil {
		return Run{}, err
	}
	id, err := s.ids.NewID()
	if err != nil {
		return Run{}, fmt.Errorf("generate run id: %w", err)
	}
	createdAt := s.clock.Now()

	result := s.engine.Run(ctx, urls, filter)
	run := Run{
		ID:           id,
		CreatedAt:    createdAt,
		URLs:         urls,
		DomainFilter: filter,
		Emails:       result.Emails,
		Notices:      result.Notices,
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// Run fetches a stored run by ID.
func (s *Service) Run(ctx context.Context, runID string) (Run, error) {
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return run, nil
}

// Result returns the batch outcome held by a run.
func (r Run) Result() Result {
	return Result{Emails: r.Emails, Notices: r.Notices}
}

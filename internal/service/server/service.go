package server

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oshokin/sump-watch/internal/api/http/status"
	"github.com/oshokin/sump-watch/internal/domain/alarm"
	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
	repo "github.com/oshokin/sump-watch/internal/repository/history"
)

// clockFactory builds the alarm clock, seeded with the persisted history.
type clockFactory func(seed ...event.Event) (*alarm.Clock, error)

// service runs received events through the alarm clock and persists the history.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// repo handles persistent storage of the history.
	repo repo.Repository
	// clock holds the history and the configured alarms.
	clock *alarm.Clock
	// sources tracks every watcher that sent events, by source id.
	sources map[string]*status.Source
	// now stamps source activity.
	now func() time.Time
	// mu serializes access to the clock, which is not safe for concurrent use.
	mu sync.RWMutex
}

// newService creates a service backed by the provided repository.
// A missing history file starts an empty history.
func newService(ctx context.Context, repository repo.Repository, newClock clockFactory) (*service, error) {
	var seed []event.Event

	if repository != nil {
		events, err := repository.Load(ctx)

		switch {
		case err == nil:
			seed = events
		case errors.Is(err, repo.ErrNotFound):
			// Start empty.
		default:
			return nil, fmt.Errorf("load history: %w", err)
		}
	}

	clock, err := newClock(seed...)
	if err != nil {
		return nil, fmt.Errorf("build alarm clock: %w", err)
	}

	logger.InfoKV(ctx, "History restored", "events", clock.History().Len(), "alarms", len(clock.Bindings()))

	return &service{
		repo:    repository,
		clock:   clock,
		sources: make(map[string]*status.Source),
		now:     time.Now,
	}, nil
}

// LogEvent records e from sourceID, runs the alarms and persists the history.
// Trigger errors are logged; only persistence failures are returned.
func (s *service) LogEvent(ctx context.Context, sourceID string, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sourceID == "" {
		sourceID = "unknown"
	}

	src, ok := s.sources[sourceID]
	if !ok {
		src = &status.Source{ID: sourceID}
		s.sources[sourceID] = src
	}

	src.LastSeen = s.now()
	src.Events++

	logger.InfoKV(ctx, "Event received", "source_id", sourceID, "event", e.String())

	if err := s.clock.Log(ctx, e); err != nil {
		logger.WarnKV(ctx, "Alarm evaluation failed", "source_id", sourceID, "error", err)
	}

	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, s.clock.History().Events()); err != nil {
		logger.Errorf(ctx, "Failed to persist history: %v", err)

		return fmt.Errorf("persist history: %w", err)
	}

	return nil
}

// History returns a copy of the retained events, oldest first.
func (s *service) History(_ context.Context) []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.clock.History().Events()
}

// Alarms returns the configured alarm names in evaluation order.
func (s *service) Alarms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bindings := s.clock.Bindings()
	names := make([]string, 0, len(bindings))

	for _, b := range bindings {
		names = append(names, b.Name)
	}

	return names
}

// Sources returns every watcher seen so far, ordered by id.
func (s *service) Sources() []status.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]status.Source, 0, len(s.sources))
	for _, src := range s.sources {
		result = append(result, *src)
	}

	slices.SortFunc(result, func(a, b status.Source) int {
		return strings.Compare(a.ID, b.ID)
	})

	return result
}

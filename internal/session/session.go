// Package session owns all behavioral state for a single page view: the
// assigned experiment variant, the chronological event log, captured leads,
// and milestone dedup sets. State lives in memory only and is discarded when
// the session is torn down.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/domain"
)

// EventSink receives a copy of every tracked event. Implementations must not
// block; a sink that cannot keep up drops events rather than stalling the
// session.
type EventSink interface {
	Offer(event *domain.Event)
}

// State holds a live session. All mutating methods are safe for concurrent
// use; handlers and widget timers re-enter through the same lock.
type State struct {
	session domain.Session
	log     *zap.Logger
	sink    EventSink

	mu         sync.Mutex
	events     []domain.Event
	leads      []domain.Lead
	scrollSeen map[int]bool
	timeSeen   map[int]bool

	scrollMilestones []int
	timeMilestones   []int

	now func() time.Time
}

// Option customizes session construction. Used by tests to pin randomness
// and time.
type Option func(*State, *float64)

// WithRand overrides the uniform draw used for variant assignment.
func WithRand(draw float64) Option {
	return func(_ *State, d *float64) {
		*d = draw
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *State, _ *float64) {
		s.now = now
	}
}

// New creates a session, assigns its variant, and tracks the initial
// page_view event. variantBWeight is the probability of landing in bucket B.
func New(variantBWeight float64, scrollMilestones, timeMilestones []int, sink EventSink, log *zap.Logger, opts ...Option) *State {
	s := &State{
		log:              log,
		sink:             sink,
		scrollSeen:       make(map[int]bool),
		timeSeen:         make(map[int]bool),
		scrollMilestones: scrollMilestones,
		timeMilestones:   timeMilestones,
		now:              time.Now,
	}

	draw := rand.Float64()
	for _, opt := range opts {
		opt(s, &draw)
	}

	variant := domain.VariantA
	if draw < variantBWeight {
		variant = domain.VariantB
	}

	s.session = domain.Session{
		ID:        uuid.NewString(),
		Variant:   variant,
		StartTime: s.now(),
	}

	s.log.Info("Session started",
		zap.String("session_id", s.session.ID),
		zap.String("variant", string(variant)))

	s.Track("page_view", nil)

	return s
}

// Session returns the immutable session identity.
func (s *State) Session() domain.Session {
	return s.session
}

// Track appends an event carrying the session context plus the given extra
// fields. It never fails; the only side effects are the append, a debug log
// line, and a copy offered to the sink.
func (s *State) Track(name string, fields map[string]any) {
	event := domain.Event{
		Name:      name,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		SessionID: s.session.ID,
		Variant:   s.session.Variant,
		Fields:    fields,
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	s.log.Debug("Event tracked",
		zap.String("session_id", s.session.ID),
		zap.String("event", name),
		zap.Any("fields", fields))

	if s.sink != nil {
		s.sink.Offer(&event)
	}
}

// RecordLead appends a captured lead. Validation happened upstream; the store
// accepts anything and never deduplicates.
func (s *State) RecordLead(leadType domain.LeadType, data map[string]string) {
	lead := domain.Lead{
		Type:      leadType,
		Timestamp: s.now(),
		Data:      data,
	}

	s.mu.Lock()
	s.leads = append(s.leads, lead)
	s.mu.Unlock()

	s.log.Info("Lead captured",
		zap.String("session_id", s.session.ID),
		zap.String("type", string(leadType)))
}

// ScrollDepth reports the deepest scroll position reached, as a percentage.
// Every configured milestone at or below that depth fires a scroll_depth
// event, each at most once per session.
func (s *State) ScrollDepth(percent int) {
	fired := s.claimMilestones(s.scrollMilestones, percent, s.scrollSeen)
	for _, m := range fired {
		s.Track("scroll_depth", map[string]any{"percent": m})
	}
}

// TimeOnPage reports elapsed seconds since load. Every configured milestone
// at or below the elapsed time fires a time_on_page event, each at most once
// per session.
func (s *State) TimeOnPage(seconds int) {
	fired := s.claimMilestones(s.timeMilestones, seconds, s.timeSeen)
	for _, m := range fired {
		s.Track("time_on_page", map[string]any{"seconds": m})
	}
}

// claimMilestones marks every unseen milestone at or below value and returns
// the ones newly claimed, in ascending configuration order.
func (s *State) claimMilestones(milestones []int, value int, seen map[int]bool) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fired []int
	for _, m := range milestones {
		if m <= value && !seen[m] {
			seen[m] = true
			fired = append(fired, m)
		}
	}
	return fired
}

// Events returns a copy of the event log in insertion order.
func (s *State) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Event(nil), s.events...)
}

// Leads returns a copy of the captured leads in insertion order.
func (s *State) Leads() []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Lead(nil), s.leads...)
}

// CountEvents returns how many tracked events have the given name.
func (s *State) CountEvents(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, e := range s.events {
		if e.Name == name {
			count++
		}
	}
	return count
}

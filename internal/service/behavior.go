package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/config"
	"github.com/BarkinBalci/landing-behavior-service/internal/dto"
	"github.com/BarkinBalci/landing-behavior-service/internal/form"
	"github.com/BarkinBalci/landing-behavior-service/internal/modal"
	"github.com/BarkinBalci/landing-behavior-service/internal/session"
	"github.com/BarkinBalci/landing-behavior-service/internal/widget"
)

// ErrSessionNotFound is returned for operations against an unknown or torn
// down session.
var ErrSessionNotFound = errors.New("session not found")

// liveSession bundles a session's state with the controllers driving it. The
// whole bundle is created at session start and disposed together at teardown.
type liveSession struct {
	state     *session.State
	modals    *modal.Controller
	forms     map[form.ID]*form.Flow
	carousel  *widget.Carousel
	counters  map[string]*widget.Counter
	countdown *widget.Countdown
	chat      *widget.Chat
}

func (ls *liveSession) close() {
	ls.carousel.Close()
	ls.chat.Close()
	for _, flow := range ls.forms {
		flow.Close()
	}
}

// BehaviorService owns every live session and routes page signals to the
// right controllers.
type BehaviorService struct {
	profile *config.PageProfile
	sink    session.EventSink
	log     *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewBehaviorService creates a service driving pages described by profile.
// sink may be nil when the event journal is disabled.
func NewBehaviorService(profile *config.PageProfile, sink session.EventSink, log *zap.Logger) *BehaviorService {
	return &BehaviorService{
		profile:  profile,
		sink:     sink,
		log:      log,
		sessions: make(map[string]*liveSession),
	}
}

// StartSession creates a session, assigns its experiment variant, and wires
// up the page's controllers.
func (s *BehaviorService) StartSession() (*dto.StartSessionResponse, error) {
	p := s.profile

	state := session.New(p.VariantBWeight, p.ScrollMilestones, p.TimeMilestones, s.sink, s.log)

	ls := &liveSession{
		state:  state,
		modals: modal.NewController(state, s.log),
		forms:  make(map[form.ID]*form.Flow),
		carousel: widget.NewCarousel(
			p.Carousel.Slides,
			time.Duration(p.Carousel.IntervalMS)*time.Millisecond,
			state, s.log),
		counters:  make(map[string]*widget.Counter),
		countdown: widget.NewCountdown(p.CountdownTarget),
		chat: widget.NewChat(
			p.Chat.Greeting,
			p.Chat.BotReplies,
			time.Duration(p.Chat.ReplyDelayMS)*time.Millisecond,
			state, s.log),
	}

	submitDelay := time.Duration(p.Form.SubmitDelayMS) * time.Millisecond
	resetDelay := time.Duration(p.Form.ResetDelayMS) * time.Millisecond
	for _, id := range []form.ID{form.FormEnterprise, form.FormCarrier, form.FormEmail} {
		ls.forms[id] = form.NewFlow(id, state, submitDelay, resetDelay, s.log)
	}

	for _, c := range p.Counters {
		ls.counters[c.Label] = widget.NewCounter(c.Label, c.Target, state)
	}

	sess := state.Session()

	s.mu.Lock()
	s.sessions[sess.ID] = ls
	s.mu.Unlock()

	return &dto.StartSessionResponse{
		SessionID: sess.ID,
		Variant:   string(sess.Variant),
		StartTime: sess.StartTime,
	}, nil
}

// EndSession tears a session down, stopping every widget and form timer. The
// session's state is discarded; nothing survives teardown.
func (s *BehaviorService) EndSession(sessionID string) error {
	s.mu.Lock()
	ls, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	ls.close()
	s.log.Info("Session torn down", zap.String("session_id", sessionID))

	return nil
}

func (s *BehaviorService) lookup(sessionID string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ls, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ls, nil
}

// TrackEvent appends a page-reported event to the session log.
func (s *BehaviorService) TrackEvent(sessionID string, req *dto.TrackEventRequest) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	ls.state.Track(req.Name, req.Fields)
	return nil
}

// ReportScroll fires any newly reached scroll milestones.
func (s *BehaviorService) ReportScroll(sessionID string, req *dto.ScrollSignalRequest) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	ls.state.ScrollDepth(req.Percent)
	return nil
}

// ReportTime fires any newly reached time-on-page milestones.
func (s *BehaviorService) ReportTime(sessionID string, req *dto.TimeSignalRequest) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	ls.state.TimeOnPage(req.Seconds)
	return nil
}

// OpenModal shows the named dialog.
func (s *BehaviorService) OpenModal(sessionID, modalID string) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	id, err := modal.Parse(modalID)
	if err != nil {
		return err
	}

	ls.modals.Open(id)
	return nil
}

// CloseModal hides the named dialog. Closing a dialog that is not open is a
// no-op aside from the tracked event.
func (s *BehaviorService) CloseModal(sessionID, modalID string) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	id, err := modal.Parse(modalID)
	if err != nil {
		return err
	}

	ls.modals.Close(id)
	return nil
}

// CloseAllModals handles escape-key and backdrop-click signals.
func (s *BehaviorService) CloseAllModals(sessionID string) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	ls.modals.CloseAll()
	return nil
}

// SubmitForm runs the named form's submission flow against the posted
// values.
func (s *BehaviorService) SubmitForm(sessionID, formID string, req *dto.SubmitFormRequest) (*dto.SubmitFormResponse, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	id, err := form.Parse(formID)
	if err != nil {
		return nil, err
	}

	flow := ls.forms[id]
	result, err := flow.Submit(req.Values)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitFormResponse{
		Accepted:    result.Accepted,
		Phase:       string(flow.Phase()),
		FieldErrors: result.FieldErrors,
	}, nil
}

// ToggleChat flips the chat box open or closed.
func (s *BehaviorService) ToggleChat(sessionID string) (*dto.ChatStateResponse, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	open := ls.chat.Toggle()
	return &dto.ChatStateResponse{
		Open:     open,
		Messages: ls.chat.Messages(),
	}, nil
}

// SendChatMessage appends a user message and schedules the scripted reply.
func (s *BehaviorService) SendChatMessage(sessionID string, req *dto.ChatMessageRequest) (*dto.ChatStateResponse, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	ls.chat.Send(req.Text)
	return &dto.ChatStateResponse{
		Open:     ls.chat.Open(),
		Messages: ls.chat.Messages(),
	}, nil
}

// NavigateCarousel advances the carousel manually in the given direction.
func (s *BehaviorService) NavigateCarousel(sessionID, direction string) (*dto.CarouselStateResponse, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	var index int
	switch direction {
	case "next":
		index = ls.carousel.Next()
	case "prev":
		index = ls.carousel.Prev()
	default:
		return nil, fmt.Errorf("unknown carousel direction: %q", direction)
	}

	return &dto.CarouselStateResponse{
		Index: index,
		Slide: ls.carousel.Slide(),
	}, nil
}

// CounterSeen triggers the named one-shot counter. Repeat signals are
// no-ops.
func (s *BehaviorService) CounterSeen(sessionID string, req *dto.CounterSignalRequest) error {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	counter, ok := ls.counters[req.Label]
	if !ok {
		return fmt.Errorf("unknown counter: %q", req.Label)
	}

	counter.Trigger()
	return nil
}

// Countdown renders the time remaining on the countdown banner.
func (s *BehaviorService) Countdown(sessionID string) (*dto.CountdownResponse, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.CountdownResponse{
		Remaining: ls.countdown.Remaining(time.Now()),
	}, nil
}

// SessionState returns a full snapshot of a live session.
func (s *BehaviorService) SessionState(sessionID string) (*dto.SessionStateResponse, error) {
	ls, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SessionStateResponse{
		Session:    ls.state.Session(),
		Events:     ls.state.Events(),
		Leads:      ls.state.Leads(),
		FormPhases: make(map[string]string, len(ls.forms)),
		Carousel: dto.CarouselStateResponse{
			Index: ls.carousel.Index(),
			Slide: ls.carousel.Slide(),
		},
		Chat: dto.ChatStateResponse{
			Open:     ls.chat.Open(),
			Messages: ls.chat.Messages(),
		},
		Countdown: dto.CountdownResponse{
			Remaining: ls.countdown.Remaining(time.Now()),
		},
	}

	if open, ok := ls.modals.OpenModal(); ok {
		resp.OpenModal = string(open)
	}

	for id, flow := range ls.forms {
		resp.FormPhases[string(id)] = string(flow.Phase())
	}

	return resp, nil
}

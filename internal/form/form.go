// Package form runs the lead capture flows: field validation, a simulated
// submission delay, lead recording, and a timed reset back to idle.
package form

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/domain"
	"github.com/BarkinBalci/landing-behavior-service/internal/validate"
)

// ID names one of the page's lead capture forms.
type ID string

const (
	FormEnterprise ID = "enterprise"
	FormCarrier    ID = "carrier"
	FormEmail      ID = "email"
)

// Parse maps a raw identifier onto a known form ID.
func Parse(raw string) (ID, error) {
	switch ID(raw) {
	case FormEnterprise:
		return FormEnterprise, nil
	case FormCarrier:
		return FormCarrier, nil
	case FormEmail:
		return FormEmail, nil
	default:
		return "", fmt.Errorf("unknown form: %q", raw)
	}
}

// Phase is the submission state of a single form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
)

// Field pairs a form field name with its validation rules.
type Field struct {
	Name  string
	Rules validate.Rules
}

// Recorder receives the lead and the tracked event an accepted submission
// produces.
type Recorder interface {
	Track(name string, fields map[string]any)
	RecordLead(leadType domain.LeadType, data map[string]string)
}

// Result reports the outcome of a submission attempt. A rejected attempt
// carries one inline message per failing field.
type Result struct {
	Accepted    bool              `json:"accepted"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// Flow is the per-form state machine: idle, then validating synchronously,
// then either back to idle with field errors or submitting through a fixed
// artificial delay. A completed submission records exactly one lead and one
// event, shows the submitted state, and auto-resets to idle. Submission
// cannot fail after validation passes.
type Flow struct {
	id       ID
	leadType domain.LeadType
	event    string
	fields   []Field
	recorder Recorder
	log      *zap.Logger

	submitDelay time.Duration
	resetDelay  time.Duration

	mu     sync.Mutex
	phase  Phase
	timers []*time.Timer
	closed bool
}

// NewFlow creates an idle flow for the given form.
func NewFlow(id ID, recorder Recorder, submitDelay, resetDelay time.Duration, log *zap.Logger) *Flow {
	f := &Flow{
		id:          id,
		recorder:    recorder,
		log:         log,
		submitDelay: submitDelay,
		resetDelay:  resetDelay,
		phase:       PhaseIdle,
	}

	switch id {
	case FormEnterprise:
		f.leadType = domain.LeadEnterprise
		f.event = "form_submitted"
		f.fields = []Field{
			{Name: "name", Rules: validate.Rules{Required: true, Name: true}},
			{Name: "email", Rules: validate.Rules{Required: true, Email: true}},
			{Name: "company", Rules: validate.Rules{Required: true, MinLength: 2}},
			{Name: "fleet_size", Rules: validate.Rules{Numeric: true}},
		}
	case FormCarrier:
		f.leadType = domain.LeadCarrier
		f.event = "form_submitted"
		f.fields = []Field{
			{Name: "name", Rules: validate.Rules{Required: true, Name: true}},
			{Name: "email", Rules: validate.Rules{Required: true, Email: true}},
			{Name: "carrier_id", Rules: validate.Rules{Required: true, Numeric: true, MinLength: 6}},
		}
	case FormEmail:
		f.leadType = domain.LeadEmail
		f.event = "email_captured"
		f.fields = []Field{
			{Name: "email", Rules: validate.Rules{Required: true, Email: true}},
		}
	}

	return f
}

// Phase returns the current submission state.
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Submit validates values and, when every field passes, starts the simulated
// submission. A submission already in flight rejects further attempts until
// the auto-reset returns the form to idle.
func (f *Flow) Submit(values map[string]string) (*Result, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, fmt.Errorf("form %s: session torn down", f.id)
	}
	if f.phase != PhaseIdle {
		f.mu.Unlock()
		return nil, fmt.Errorf("form %s: submission already in progress", f.id)
	}
	f.mu.Unlock()

	fieldErrors := make(map[string]string)
	for _, field := range f.fields {
		result := validate.Validate(values[field.Name], field.Rules)
		if !result.Valid {
			fieldErrors[field.Name] = result.Message
		}
	}

	if len(fieldErrors) > 0 {
		f.log.Debug("Form validation failed",
			zap.String("form", string(f.id)),
			zap.Int("invalid_fields", len(fieldErrors)))
		return &Result{FieldErrors: fieldErrors}, nil
	}

	f.mu.Lock()
	// Recheck: another submission may have won the race while the lock was
	// released for validation.
	if f.closed {
		f.mu.Unlock()
		return nil, fmt.Errorf("form %s: session torn down", f.id)
	}
	if f.phase != PhaseIdle {
		f.mu.Unlock()
		return nil, fmt.Errorf("form %s: submission already in progress", f.id)
	}
	f.phase = PhaseSubmitting
	f.timers = append(f.timers, time.AfterFunc(f.submitDelay, func() {
		f.complete(values)
	}))
	f.mu.Unlock()

	return &Result{Accepted: true}, nil
}

// complete finishes the simulated submission: record the lead, track the
// event, show the submitted state, and schedule the reset.
func (f *Flow) complete(values map[string]string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.phase = PhaseSubmitted
	f.timers = append(f.timers, time.AfterFunc(f.resetDelay, f.reset))
	f.mu.Unlock()

	data := make(map[string]string, len(values))
	for _, field := range f.fields {
		if v, ok := values[field.Name]; ok {
			data[field.Name] = v
		}
	}

	f.recorder.RecordLead(f.leadType, data)
	f.recorder.Track(f.event, map[string]any{"form": string(f.id)})

	f.log.Info("Form submission completed", zap.String("form", string(f.id)))
}

func (f *Flow) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.phase = PhaseIdle
	}
}

// Close stops pending submit and reset timers. Used at session teardown.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for _, t := range f.timers {
		t.Stop()
	}
	f.timers = nil
}

package form

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/domain"
)

const (
	testSubmitDelay = 5 * time.Millisecond
	testResetDelay  = 10 * time.Millisecond
	testWait        = time.Second
	testTick        = time.Millisecond
)

// recordingRecorder captures leads and events produced by completed
// submissions.
type recordingRecorder struct {
	mu     sync.Mutex
	leads  []domain.Lead
	events []string
}

func (r *recordingRecorder) Track(name string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *recordingRecorder) RecordLead(leadType domain.LeadType, data map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, domain.Lead{Type: leadType, Data: data})
}

func (r *recordingRecorder) snapshot() ([]domain.Lead, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Lead(nil), r.leads...), append([]string(nil), r.events...)
}

func validEnterpriseValues() map[string]string {
	return map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@acme.co",
		"company": "Acme Logistics",
	}
}

func TestParse(t *testing.T) {
	id, err := Parse("email")
	assert.NoError(t, err)
	assert.Equal(t, FormEmail, id)

	_, err = Parse("contact")
	assert.Error(t, err)
}

func TestFlow_ValidEnterpriseSubmissionRecordsOneLeadAndOneEvent(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEnterprise, recorder, testSubmitDelay, testResetDelay, zap.NewNop())
	defer flow.Close()

	result, err := flow.Submit(validEnterpriseValues())

	assert.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Empty(t, result.FieldErrors)
	assert.Equal(t, PhaseSubmitting, flow.Phase())

	assert.Eventually(t, func() bool {
		leads, events := recorder.snapshot()
		return len(leads) == 1 && len(events) == 1
	}, testWait, testTick)

	leads, events := recorder.snapshot()
	assert.Equal(t, domain.LeadEnterprise, leads[0].Type)
	assert.Equal(t, "Acme Logistics", leads[0].Data["company"])
	assert.Equal(t, []string{"form_submitted"}, events)
}

func TestFlow_InvalidSubmissionReturnsFieldErrorsAndStaysIdle(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEnterprise, recorder, testSubmitDelay, testResetDelay, zap.NewNop())
	defer flow.Close()

	result, err := flow.Submit(map[string]string{
		"name":    "J4ne",
		"email":   "jane@acme",
		"company": "",
	})

	assert.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Len(t, result.FieldErrors, 3)
	assert.Equal(t, PhaseIdle, flow.Phase())

	leads, events := recorder.snapshot()
	assert.Empty(t, leads)
	assert.Empty(t, events)
}

func TestFlow_EmailFormTracksEmailCaptured(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEmail, recorder, testSubmitDelay, testResetDelay, zap.NewNop())
	defer flow.Close()

	result, err := flow.Submit(map[string]string{"email": "a@b.co"})

	assert.NoError(t, err)
	assert.True(t, result.Accepted)

	assert.Eventually(t, func() bool {
		_, events := recorder.snapshot()
		return len(events) == 1
	}, testWait, testTick)

	leads, events := recorder.snapshot()
	assert.Equal(t, domain.LeadEmail, leads[0].Type)
	assert.Equal(t, "email_captured", events[0])
}

func TestFlow_CarrierFormRequiresNumericIdentifier(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormCarrier, recorder, testSubmitDelay, testResetDelay, zap.NewNop())
	defer flow.Close()

	result, err := flow.Submit(map[string]string{
		"name":       "Jane Doe",
		"email":      "jane@acme.co",
		"carrier_id": "DOT-12345",
	})

	assert.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Contains(t, result.FieldErrors, "carrier_id")
}

func TestFlow_RejectsSubmitWhileInFlight(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEmail, recorder, 50*time.Millisecond, testResetDelay, zap.NewNop())
	defer flow.Close()

	_, err := flow.Submit(map[string]string{"email": "a@b.co"})
	assert.NoError(t, err)

	_, err = flow.Submit(map[string]string{"email": "a@b.co"})
	assert.Error(t, err)
}

func TestFlow_ConcurrentSubmitsAcceptExactlyOne(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEmail, recorder, testSubmitDelay, time.Hour, zap.NewNop())
	defer flow.Close()

	const submitters = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := flow.Submit(map[string]string{"email": "a@b.co"})
			if err == nil && result.Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)

	assert.Eventually(t, func() bool {
		leads, events := recorder.snapshot()
		return len(leads) == 1 && len(events) == 1
	}, testWait, testTick)

	// Nothing more arrives after the winning submission completes.
	time.Sleep(5 * testSubmitDelay)
	leads, events := recorder.snapshot()
	assert.Len(t, leads, 1)
	assert.Len(t, events, 1)
}

func TestFlow_AutoResetsToIdleAfterSubmission(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEmail, recorder, testSubmitDelay, testResetDelay, zap.NewNop())
	defer flow.Close()

	_, err := flow.Submit(map[string]string{"email": "a@b.co"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return flow.Phase() == PhaseIdle
	}, testWait, testTick)

	// Once idle again, a fresh submission is accepted.
	result, err := flow.Submit(map[string]string{"email": "a@b.co"})
	assert.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestFlow_CloseStopsPendingSubmission(t *testing.T) {
	recorder := &recordingRecorder{}
	flow := NewFlow(FormEmail, recorder, 20*time.Millisecond, testResetDelay, zap.NewNop())

	_, err := flow.Submit(map[string]string{"email": "a@b.co"})
	assert.NoError(t, err)

	flow.Close()
	time.Sleep(50 * time.Millisecond)

	leads, _ := recorder.snapshot()
	assert.Empty(t, leads)
}

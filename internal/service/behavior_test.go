package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/landing-behavior-service/internal/config"
	"github.com/BarkinBalci/landing-behavior-service/internal/domain"
	"github.com/BarkinBalci/landing-behavior-service/internal/dto"
)

func testProfile() *config.PageProfile {
	p := config.DefaultProfile()
	p.Carousel.Slides = []string{"s1", "s2", "s3"}
	p.Carousel.IntervalMS = 3600000
	p.Counters = []config.CounterProfile{{Label: "deliveries", Target: 125000}}
	p.Chat.BotReplies = []string{"A teammate will be right with you."}
	p.CountdownTarget = time.Now().Add(48 * time.Hour)
	p.Form.SubmitDelayMS = 5
	p.Form.ResetDelayMS = 10
	return p
}

func newTestService(t *testing.T) (*BehaviorService, string) {
	t.Helper()

	svc := NewBehaviorService(testProfile(), nil, zap.NewNop())
	resp, err := svc.StartSession()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = svc.EndSession(resp.SessionID)
	})

	return svc, resp.SessionID
}

func TestBehaviorService_StartSessionAssignsVariant(t *testing.T) {
	svc := NewBehaviorService(testProfile(), nil, zap.NewNop())

	resp, err := svc.StartSession()
	require.NoError(t, err)
	defer svc.EndSession(resp.SessionID)

	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, []string{"A", "B"}, resp.Variant)
	assert.False(t, resp.StartTime.IsZero())
}

func TestBehaviorService_UnknownSessionReturnsNotFound(t *testing.T) {
	svc := NewBehaviorService(testProfile(), nil, zap.NewNop())

	err := svc.TrackEvent("missing", &dto.TrackEventRequest{Name: "cta_click"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SessionState("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.EndSession("missing"), ErrSessionNotFound)
}

func TestBehaviorService_TrackEventAppearsInState(t *testing.T) {
	svc, id := newTestService(t)

	err := svc.TrackEvent(id, &dto.TrackEventRequest{
		Name:   "cta_click",
		Fields: map[string]any{"button": "hero"},
	})
	require.NoError(t, err)

	state, err := svc.SessionState(id)
	require.NoError(t, err)

	names := make([]string, 0, len(state.Events))
	for _, e := range state.Events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"page_view", "cta_click"}, names)
}

func TestBehaviorService_ScrollSignalsDedupAcrossCalls(t *testing.T) {
	svc, id := newTestService(t)

	require.NoError(t, svc.ReportScroll(id, &dto.ScrollSignalRequest{Percent: 50}))
	require.NoError(t, svc.ReportScroll(id, &dto.ScrollSignalRequest{Percent: 50}))

	state, err := svc.SessionState(id)
	require.NoError(t, err)

	count := 0
	for _, e := range state.Events {
		if e.Name == "scroll_depth" {
			count++
		}
	}
	assert.Equal(t, 2, count) // 25 and 50, once each
}

func TestBehaviorService_ModalLifecycle(t *testing.T) {
	svc, id := newTestService(t)

	require.NoError(t, svc.OpenModal(id, "enterprise"))

	state, err := svc.SessionState(id)
	require.NoError(t, err)
	assert.Equal(t, "enterprise", state.OpenModal)

	require.NoError(t, svc.CloseAllModals(id))

	state, err = svc.SessionState(id)
	require.NoError(t, err)
	assert.Empty(t, state.OpenModal)

	assert.Error(t, svc.OpenModal(id, "nonexistent"))
}

func TestBehaviorService_EnterpriseSubmissionProducesOneLeadOneEvent(t *testing.T) {
	svc, id := newTestService(t)

	resp, err := svc.SubmitForm(id, "enterprise", &dto.SubmitFormRequest{
		Values: map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@acme.co",
			"company": "Acme Logistics",
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "submitting", resp.Phase)

	assert.Eventually(t, func() bool {
		state, err := svc.SessionState(id)
		return err == nil && len(state.Leads) == 1
	}, time.Second, time.Millisecond)

	state, err := svc.SessionState(id)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadEnterprise, state.Leads[0].Type)

	submitted := 0
	for _, e := range state.Events {
		if e.Name == "form_submitted" {
			submitted++
		}
	}
	assert.Equal(t, 1, submitted)
}

func TestBehaviorService_InvalidSubmissionReturnsFieldErrors(t *testing.T) {
	svc, id := newTestService(t)

	resp, err := svc.SubmitForm(id, "email", &dto.SubmitFormRequest{
		Values: map[string]string{"email": "a@b"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Accepted)
	assert.Equal(t, "idle", resp.Phase)
	assert.Contains(t, resp.FieldErrors, "email")
}

func TestBehaviorService_UnknownFormRejected(t *testing.T) {
	svc, id := newTestService(t)

	_, err := svc.SubmitForm(id, "newsletter", &dto.SubmitFormRequest{
		Values: map[string]string{},
	})
	assert.Error(t, err)
}

func TestBehaviorService_ChatToggleAndMessages(t *testing.T) {
	svc, id := newTestService(t)

	state, err := svc.ToggleChat(id)
	require.NoError(t, err)
	assert.True(t, state.Open)

	state, err = svc.SendChatMessage(id, &dto.ChatMessageRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Len(t, state.Messages, 2) // greeting + user message
}

func TestBehaviorService_CarouselNavigation(t *testing.T) {
	svc, id := newTestService(t)

	state, err := svc.NavigateCarousel(id, "next")
	require.NoError(t, err)
	assert.Equal(t, 1, state.Index)
	assert.Equal(t, "s2", state.Slide)

	state, err = svc.NavigateCarousel(id, "prev")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Index)

	_, err = svc.NavigateCarousel(id, "sideways")
	assert.Error(t, err)
}

func TestBehaviorService_CounterSeen(t *testing.T) {
	svc, id := newTestService(t)

	require.NoError(t, svc.CounterSeen(id, &dto.CounterSignalRequest{Label: "deliveries"}))
	require.NoError(t, svc.CounterSeen(id, &dto.CounterSignalRequest{Label: "deliveries"}))

	state, err := svc.SessionState(id)
	require.NoError(t, err)

	viewed := 0
	for _, e := range state.Events {
		if e.Name == "counter_viewed" {
			viewed++
		}
	}
	assert.Equal(t, 1, viewed)

	assert.Error(t, svc.CounterSeen(id, &dto.CounterSignalRequest{Label: "missing"}))
}

func TestBehaviorService_CountdownRenders(t *testing.T) {
	svc, id := newTestService(t)

	resp, err := svc.Countdown(id)
	require.NoError(t, err)
	assert.NotEqual(t, "Expired", resp.Remaining)
	assert.Regexp(t, `^\d+d \d+h \d+m \d+s$`, resp.Remaining)
}

func TestBehaviorService_EndSessionDiscardsState(t *testing.T) {
	svc := NewBehaviorService(testProfile(), nil, zap.NewNop())

	resp, err := svc.StartSession()
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(resp.SessionID))

	_, err = svc.SessionState(resp.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

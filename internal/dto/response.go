package dto

import (
	"time"

	"github.com/BarkinBalci/landing-behavior-service/internal/domain"
	"github.com/BarkinBalci/landing-behavior-service/internal/widget"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"name is required"`
}

// StartSessionResponse returns the identity assigned to a new page view
type StartSessionResponse struct {
	SessionID string    `json:"session_id"`
	Variant   string    `json:"variant" example:"A"`
	StartTime time.Time `json:"start_time"`
}

// SubmitFormResponse reports the outcome of a submission attempt
type SubmitFormResponse struct {
	Accepted    bool              `json:"accepted"`
	Phase       string            `json:"phase" example:"submitting"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// CarouselStateResponse reports the carousel position after navigation
type CarouselStateResponse struct {
	Index int    `json:"index"`
	Slide string `json:"slide,omitempty"`
}

// ChatStateResponse reports the chat toggle state and message log
type ChatStateResponse struct {
	Open     bool                 `json:"open"`
	Messages []widget.ChatMessage `json:"messages"`
}

// CountdownResponse reports the rendered time remaining
type CountdownResponse struct {
	Remaining string `json:"remaining" example:"2d 4h 10m 3s"`
}

// SessionStateResponse is a full snapshot of a live session
type SessionStateResponse struct {
	Session    domain.Session        `json:"session"`
	Events     []domain.Event        `json:"events"`
	Leads      []domain.Lead         `json:"leads"`
	OpenModal  string                `json:"open_modal,omitempty"`
	FormPhases map[string]string     `json:"form_phases"`
	Carousel   CarouselStateResponse `json:"carousel"`
	Chat       ChatStateResponse     `json:"chat"`
	Countdown  CountdownResponse     `json:"countdown"`
}

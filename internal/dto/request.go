package dto

// TrackEventRequest represents a named event reported by the page
type TrackEventRequest struct {
	Name   string         `json:"name" binding:"required" example:"cta_click"`
	Fields map[string]any `json:"fields" example:"button:hero"`
}

// ScrollSignalRequest reports the deepest scroll position reached
type ScrollSignalRequest struct {
	Percent int `json:"percent" binding:"required,min=1,max=100" example:"75"`
}

// TimeSignalRequest reports elapsed seconds since page load
type TimeSignalRequest struct {
	Seconds int `json:"seconds" binding:"required,min=1" example:"60"`
}

// SubmitFormRequest carries the raw field values of a lead capture form
type SubmitFormRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// ChatMessageRequest carries one user chat message
type ChatMessageRequest struct {
	Text string `json:"text" binding:"required" example:"What does onboarding look like?"`
}

// CounterSignalRequest reports a stat counter scrolling into view
type CounterSignalRequest struct {
	Label string `json:"label" binding:"required" example:"deliveries"`
}

package domain

import "time"

// Variant is the A/B experiment bucket assigned to a session.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Session identifies a single page view. Identity fields are set once at
// creation and never change.
type Session struct {
	ID        string    `json:"session_id"`
	Variant   Variant   `json:"variant"`
	StartTime time.Time `json:"start_time"`
}

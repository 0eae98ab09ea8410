package domain

// Event is a single tracked user action. Events are append-only; insertion
// order is chronological order and nothing enforces uniqueness.
type Event struct {
	Name      string         `json:"name"`
	Timestamp string         `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Variant   Variant        `json:"variant"`
	Fields    map[string]any `json:"fields,omitempty"`
}

package widget

import "sync"

// Counter is a one-shot stat animation. The page reports when the counter
// scrolls into view; the first report triggers it and tracks a counter_viewed
// event, after which the counter disables itself.
type Counter struct {
	label   string
	target  int64
	tracker Tracker

	mu        sync.Mutex
	triggered bool
}

// NewCounter creates an untriggered counter.
func NewCounter(label string, target int64, tracker Tracker) *Counter {
	return &Counter{
		label:   label,
		target:  target,
		tracker: tracker,
	}
}

// Trigger fires the counter once. Repeat calls are no-ops and report false.
func (c *Counter) Trigger() bool {
	c.mu.Lock()
	if c.triggered {
		c.mu.Unlock()
		return false
	}
	c.triggered = true
	c.mu.Unlock()

	c.tracker.Track("counter_viewed", map[string]any{
		"label":  c.label,
		"target": c.target,
	})
	return true
}

// Triggered reports whether the one-shot animation already fired.
func (c *Counter) Triggered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.triggered
}

// Label returns the counter's display label.
func (c *Counter) Label() string {
	return c.label
}

// Target returns the value the animation counts up to.
func (c *Counter) Target() int64 {
	return c.target
}

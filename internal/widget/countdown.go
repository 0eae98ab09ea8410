package widget

import (
	"fmt"
	"time"
)

// Countdown formats the time remaining until a fixed target instant.
type Countdown struct {
	target time.Time
}

// NewCountdown creates a countdown toward target.
func NewCountdown(target time.Time) *Countdown {
	return &Countdown{target: target}
}

// Remaining renders the time left at now as "Nd Nh Nm Ns", clamped to
// "Expired" at and after the target. One second before the target it renders
// "0d 0h 0m 1s".
func (c *Countdown) Remaining(now time.Time) string {
	left := c.target.Sub(now)
	if left <= 0 {
		return "Expired"
	}

	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	minutes := int(left.Minutes()) % 60
	seconds := int(left.Seconds()) % 60

	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// Target returns the instant the countdown expires.
func (c *Countdown) Target() time.Time {
	return c.target
}

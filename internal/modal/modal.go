// Package modal tracks which page dialog is open and emits open/close events.
package modal

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ID names a registered page dialog.
type ID string

const (
	ModalEnterprise ID = "enterprise"
	ModalCarrier    ID = "carrier"
	ModalVideo      ID = "video"
)

// registry lists every dialog the page can show, in a fixed order so that
// CloseAll behaves deterministically.
var registry = []ID{ModalEnterprise, ModalCarrier, ModalVideo}

// Parse maps a raw identifier onto a registered modal ID.
func Parse(raw string) (ID, error) {
	switch ID(raw) {
	case ModalEnterprise:
		return ModalEnterprise, nil
	case ModalCarrier:
		return ModalCarrier, nil
	case ModalVideo:
		return ModalVideo, nil
	default:
		return "", fmt.Errorf("unknown modal: %q", raw)
	}
}

// Tracker receives the events the controller emits.
type Tracker interface {
	Track(name string, fields map[string]any)
}

// Controller holds the open-dialog state. At most one dialog is open at a
// time; opening a second one replaces the first.
type Controller struct {
	tracker Tracker
	log     *zap.Logger

	mu   sync.Mutex
	open ID // zero value means no dialog is open
}

// NewController creates a controller with every dialog closed.
func NewController(tracker Tracker, log *zap.Logger) *Controller {
	return &Controller{
		tracker: tracker,
		log:     log,
	}
}

// Open shows the dialog and tracks a modal_opened event.
func (c *Controller) Open(id ID) {
	c.mu.Lock()
	previous := c.open
	c.open = id
	c.mu.Unlock()

	if previous != "" && previous != id {
		c.log.Warn("Opening modal over an already-open one",
			zap.String("previous", string(previous)),
			zap.String("modal", string(id)))
	}

	c.tracker.Track("modal_opened", map[string]any{"modal": string(id)})
}

// Close hides the dialog when it is the open one. Closing a dialog that is
// not open mutates nothing but still tracks a modal_closed event.
func (c *Controller) Close(id ID) {
	c.mu.Lock()
	if c.open == id {
		c.open = ""
	}
	c.mu.Unlock()

	c.tracker.Track("modal_closed", map[string]any{"modal": string(id)})
}

// CloseAll issues a Close for every registered dialog. Escape-key and
// backdrop-click handlers route here.
func (c *Controller) CloseAll() {
	for _, id := range registry {
		c.Close(id)
	}
}

// OpenModal returns the currently open dialog and whether one is open at all.
func (c *Controller) OpenModal() (ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open, c.open != ""
}

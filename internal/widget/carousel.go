// Package widget drives the page's small UI loops: the testimonial carousel,
// one-shot stat counters, the countdown banner, and the scripted chat box.
// Every timer-driven widget exposes Close so teardown stops its timers.
package widget

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tracker receives the events widgets emit for user interactions.
type Tracker interface {
	Track(name string, fields map[string]any)
}

// Carousel rotates through a fixed slide list on a timer and supports manual
// navigation. The index wraps in both directions.
type Carousel struct {
	slides  []string
	tracker Tracker
	log     *zap.Logger

	mu    sync.Mutex
	index int

	done chan struct{}
	once sync.Once
}

// NewCarousel starts the rotation timer. A carousel with fewer than two
// slides never rotates but still accepts navigation calls.
func NewCarousel(slides []string, interval time.Duration, tracker Tracker, log *zap.Logger) *Carousel {
	c := &Carousel{
		slides:  slides,
		tracker: tracker,
		log:     log,
		done:    make(chan struct{}),
	}

	if len(slides) > 1 {
		go c.rotate(interval)
	}

	return c
}

func (c *Carousel) rotate(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.advance(1)
		}
	}
}

func (c *Carousel) advance(step int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return 0
	}
	c.index = (c.index + step + len(c.slides)) % len(c.slides)
	return c.index
}

// Next advances to the following slide and tracks the navigation.
func (c *Carousel) Next() int {
	index := c.advance(1)
	c.tracker.Track("carousel_nav", map[string]any{"direction": "next", "index": index})
	return index
}

// Prev steps back to the previous slide and tracks the navigation.
func (c *Carousel) Prev() int {
	index := c.advance(-1)
	c.tracker.Track("carousel_nav", map[string]any{"direction": "prev", "index": index})
	return index
}

// Index returns the current slide position.
func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Slide returns the current slide content, or an empty string when the
// carousel has no slides.
func (c *Carousel) Slide() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return ""
	}
	return c.slides[c.index]
}

// Close stops the rotation timer.
func (c *Carousel) Close() {
	c.once.Do(func() {
		close(c.done)
		c.log.Debug("Carousel rotation stopped")
	})
}

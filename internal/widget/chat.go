package widget

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// ChatMessage is one entry in the chat log.
type ChatMessage struct {
	From string    `json:"from"` // "user" or "bot"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Chat keeps the chat box open/closed toggle and an ordered message log.
// User messages append synchronously; a fixed-text bot reply follows each one
// after a fixed delay. There is no conversational logic.
type Chat struct {
	greeting   string
	replies    []string
	replyDelay time.Duration
	tracker    Tracker
	log        *zap.Logger

	mu        sync.Mutex
	open      bool
	messages  []ChatMessage
	nextReply int
	timers    []*time.Timer
	closed    bool
}

// NewChat creates a closed chat box seeded with the scripted greeting.
func NewChat(greeting string, replies []string, replyDelay time.Duration, tracker Tracker, log *zap.Logger) *Chat {
	c := &Chat{
		greeting:   greeting,
		replies:    replies,
		replyDelay: replyDelay,
		tracker:    tracker,
		log:        log,
	}

	if greeting != "" {
		c.messages = append(c.messages, ChatMessage{
			From: "bot",
			Text: greeting,
			At:   time.Now(),
		})
	}

	return c
}

// Toggle flips the open/closed state, tracks the action, and returns the new
// state.
func (c *Chat) Toggle() bool {
	c.mu.Lock()
	c.open = !c.open
	open := c.open
	c.mu.Unlock()

	name := "chat_closed"
	if open {
		name = "chat_opened"
	}
	c.tracker.Track(name, nil)

	return open
}

// Open reports whether the chat box is showing.
func (c *Chat) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Send appends a user message, tracks it, and schedules the next scripted bot
// reply.
func (c *Chat) Send(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, ChatMessage{
		From: "user",
		Text: text,
		At:   time.Now(),
	})
	c.timers = append(c.timers, time.AfterFunc(c.replyDelay, c.reply))
	c.mu.Unlock()

	c.tracker.Track("chat_message_sent", nil)
}

func (c *Chat) reply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.replies) == 0 {
		return
	}

	index := c.nextReply
	c.messages = append(c.messages, ChatMessage{
		From: "bot",
		Text: c.replies[index],
		At:   time.Now(),
	})
	c.nextReply = (index + 1) % len(c.replies)

	c.log.Debug("Scripted chat reply delivered", zap.Int("script_index", index))
}

// Messages returns a copy of the chat log in order.
func (c *Chat) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatMessage(nil), c.messages...)
}

// Close stops pending bot reply timers.
func (c *Chat) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
}

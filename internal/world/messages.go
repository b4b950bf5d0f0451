package world

import (
	"github.com/jogru0/save-the-planet/internal/duration"
)

// StandardMessageDuration is how long a message is shown by default.
var StandardMessageDuration = duration.FromSeconds(5)

// Message is a line of text shown for a fixed simulated duration.
type Message struct {
	Text     string
	Duration duration.Duration
}

// NewMessage returns a message shown for d. d must not be zero.
func NewMessage(text string, d duration.Duration) Message {
	if d.IsZero() {
		panic("world: message with zero duration")
	}
	return Message{Text: text, Duration: d}
}

// Messages is a FIFO queue; only the front message is shown and its time
// runs down.
type Messages struct {
	entries []Message
	shown   duration.Duration
}

// Queue appends m.
func (q *Messages) Queue(m Message) {
	q.entries = append(q.entries, m)
}

// Simulate advances the front message by delta and drops it once its time is
// up.
func (q *Messages) Simulate(delta duration.Duration) {
	if len(q.entries) == 0 {
		return
	}
	q.shown = q.shown.Add(delta)
	if !q.shown.Less(q.entries[0].Duration) {
		q.entries = q.entries[1:]
		q.shown = duration.Instant
	}
}

// Current returns the front message.
func (q *Messages) Current() (Message, bool) {
	if len(q.entries) == 0 {
		return Message{}, false
	}
	return q.entries[0], true
}

// Len returns the number of queued messages.
func (q *Messages) Len() int {
	return len(q.entries)
}

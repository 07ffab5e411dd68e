package sim

import "math"

// Notifier queues short messages for the player. Each message stays up for
// max(15, 50 - waiting³) frames, so a backlog drains faster.
type Notifier struct {
	current string
	queue   []string
	timer   int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Push queues a message. Empty messages are ignored.
func (n *Notifier) Push(msg string) {
	if msg == "" {
		return
	}
	n.queue = append(n.queue, msg)
}

// Tick advances one frame, moving to the next message when the current one
// has been shown long enough.
func (n *Notifier) Tick() {
	if n.timer > 0 {
		n.timer--
	}
	if n.timer > 0 {
		return
	}
	if len(n.queue) == 0 {
		n.current = ""
		return
	}
	n.current = n.queue[0]
	n.queue = n.queue[1:]
	waiting := float64(len(n.queue))
	n.timer = int(math.Max(15, 50-waiting*waiting*waiting))
}

// Current returns the message on display, or "".
func (n *Notifier) Current() string {
	return n.current
}

// Pending returns the number of queued messages not yet shown.
func (n *Notifier) Pending() int {
	return len(n.queue)
}

// Reset drops every message.
func (n *Notifier) Reset() {
	n.current = ""
	n.queue = nil
	n.timer = 0
}

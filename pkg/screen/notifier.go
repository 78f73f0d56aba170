package screen

import "sync"

// Notification kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Notification is one transient message raised by a screen.
type Notification struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Notifier displays submission feedback.
type Notifier interface {
	Success(title, description string)
	Error(title string)
}

// MemoryNotifier queues notifications until they are drained. It backs the
// HTML flash toasts and tests.
type MemoryNotifier struct {
	mu      sync.Mutex
	pending []Notification
}

var _ Notifier = (*MemoryNotifier)(nil)

func (n *MemoryNotifier) Success(title, description string) {
	n.push(Notification{Kind: KindSuccess, Title: title, Description: description})
}

func (n *MemoryNotifier) Error(title string) {
	n.push(Notification{Kind: KindError, Title: title})
}

// Pending returns the queued notifications without removing them.
func (n *MemoryNotifier) Pending() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.pending...)
}

// Drain returns and clears the queued notifications.
func (n *MemoryNotifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

func (n *MemoryNotifier) push(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, note)
}

// NotifierFunc adapts a single function to Notifier.
type NotifierFunc func(Notification)

func (fn NotifierFunc) Success(title, description string) {
	fn(Notification{Kind: KindSuccess, Title: title, Description: description})
}

func (fn NotifierFunc) Error(title string) {
	fn(Notification{Kind: KindError, Title: title})
}

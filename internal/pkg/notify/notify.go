// Package notify carries user-facing messages out of storefront operations.
// Every failed or notable operation ends in exactly one Notification; how it
// is shown (terminal, JSON inbox, log line) is up to the Notifier.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Variant classifies a notification the way the storefront shows it
type Variant string

const (
	Success Variant = "success"
	Info    Variant = "info"
	Warning Variant = "warning"
	Error   Variant = "error"
)

// Notification is a single user-facing message
type Notification struct {
	Variant Variant   `json:"variant"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives user-facing messages
type Notifier interface {
	Notify(variant Variant, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(variant Variant, message string)

// Notify calls f
func (f NotifierFunc) Notify(variant Variant, message string) {
	f(variant, message)
}

// Discard drops every notification
var Discard Notifier = NotifierFunc(func(Variant, string) {})

// LogNotifier writes notifications to a logrus logger at a level matching the variant
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message
func (n *LogNotifier) Notify(variant Variant, message string) {
	entry := n.logger.WithField("variant", string(variant))
	switch variant {
	case Error:
		entry.Error(message)
	case Warning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Multi fans a notification out to several notifiers
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(variant Variant, message string) {
		for _, n := range notifiers {
			if n != nil {
				n.Notify(variant, message)
			}
		}
	})
}

// Inbox keeps the most recent notifications until they are drained
type Inbox struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
	now      func() time.Time
}

// NewInbox creates an inbox holding at most capacity notifications
func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = 50
	}
	return &Inbox{capacity: capacity, now: time.Now}
}

// Notify appends a notification, dropping the oldest when full
func (i *Inbox) Notify(variant Variant, message string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.items) == i.capacity {
		i.items = i.items[1:]
	}
	i.items = append(i.items, Notification{Variant: variant, Message: message, At: i.now().UTC()})
}

// Drain returns all pending notifications and empties the inbox
func (i *Inbox) Drain() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := i.items
	i.items = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

// Peek returns a copy of the pending notifications without removing them
func (i *Inbox) Peek() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]Notification, len(i.items))
	copy(out, i.items)
	return out
}

// Len reports the number of pending notifications
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items)
}

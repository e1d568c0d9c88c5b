// Package notify provides change notification for setting writes.
//
// The notify package implements an observer pattern that lets collaborators
// (the tunnel, the shell prompt) react when a setting is written. Delivery
// is synchronous: observers run on the writer's goroutine after the write
// is installed.
package notify

import (
	"strings"
	"sync"
)

// ChangeType represents the type of setting change.
type ChangeType int

const (
	// ChangeSet indicates a value was written wholesale.
	ChangeSet ChangeType = iota

	// ChangeAppend indicates a line was appended or the buffer rebound.
	ChangeAppend

	// ChangeRemove indicates a dynamic header was marked for removal.
	ChangeRemove
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeAppend:
		return "append"
	case ChangeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change represents a setting change event.
type Change struct {
	// Name is the normalized setting name.
	Name string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous raw value (empty when unset).
	OldValue string

	// NewValue is the new raw value: a literal or a bind address.
	NewValue string
}

// Observer is called when a setting changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages setting change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Observers keyed by name prefix; "" receives every change.
	observers map[string]map[uint64]Observer

	nextID uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePrefix("", observer)
}

// SubscribePrefix registers an observer for settings whose name starts
// with prefix. For example "HTTP_" receives every header change.
func (n *Notifier) SubscribePrefix(prefix string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.observers[prefix] == nil {
		n.observers[prefix] = make(map[uint64]Observer)
	}
	n.observers[prefix][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify sends a change notification to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	var matched []Observer
	for prefix, obs := range n.observers {
		if !strings.HasPrefix(change.Name, prefix) {
			continue
		}
		for _, o := range obs {
			matched = append(matched, o)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, o := range matched {
		o(change)
	}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for prefix, obs := range n.observers {
		delete(obs, id)
		if len(obs) == 0 {
			delete(n.observers, prefix)
		}
	}
}

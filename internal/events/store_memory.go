package events

import (
	"context"
	"sync"
)

// MemoryPublisher is an append-only in-memory sink. Tests and single-node
// deployments use it in place of the Kafka publisher.
type MemoryPublisher struct {
	mu            sync.RWMutex
	notifications []Notification
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, n Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, n)
	return nil
}

// All returns a copy of everything published so far, in order.
func (p *MemoryPublisher) All() []Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Notification, len(p.notifications))
	copy(out, p.notifications)
	return out
}

// OfType returns published notifications of the given type, in order.
func (p *MemoryPublisher) OfType(t Type) []Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []Notification
	for _, n := range p.notifications {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

package notify

import (
	"context"
	"sync"
)

// MemoryPublisher records every published message. Test double.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
}

// NewMemoryPublisher creates an empty recording publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(ctx context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

// Messages returns a copy of everything published so far.
func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.messages...)
}

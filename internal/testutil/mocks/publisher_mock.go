package mocks

import (
	"context"
	"sync"

	"github.com/velora/velora-commerce-go/internal/events"
)

// MockPublisher records published events in memory
type MockPublisher struct {
	mu        sync.Mutex
	published []*events.Event

	PublishErr error
}

var _ events.Publisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, event *events.Event) error {
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

// Published returns a copy of the recorded events
func (m *MockPublisher) Published() []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.Event, len(m.published))
	copy(out, m.published)
	return out
}

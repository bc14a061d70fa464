package feed

import (
	"fmt"
	"sync"

	"github.com/kilianp07/dispatchsim/core/model"
)

// UnservedMessage is one PublishUnserved call captured by the mock.
type UnservedMessage struct {
	Call   model.Call
	Reason string
}

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	mu        sync.Mutex
	Records   []model.DispatchRecord
	Unserved  []UnservedMessage
	FailTypes map[string]bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailTypes: make(map[string]bool)}
}

// PublishRecord captures the record or fails if its call type is configured to.
func (m *MockPublisher) PublishRecord(rec model.DispatchRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTypes[rec.CallType] {
		return "", fmt.Errorf("publish failed")
	}
	m.Records = append(m.Records, rec)
	return fmt.Sprintf("msg-%d", len(m.Records)), nil
}

// PublishUnserved captures the unserved call.
func (m *MockPublisher) PublishUnserved(call model.Call, reason string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTypes[call.Type] {
		return "", fmt.Errorf("publish failed")
	}
	m.Unserved = append(m.Unserved, UnservedMessage{Call: call, Reason: reason})
	return fmt.Sprintf("msg-u%d", len(m.Unserved)), nil
}

// Disconnect is a no-op.
func (m *MockPublisher) Disconnect() {}

// RecordCount returns how many records were published.
func (m *MockPublisher) RecordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

// UnservedCount returns how many unserved calls were published.
func (m *MockPublisher) UnservedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Unserved)
}

package transfer

import (
	"context"
	"sync"
	"time"

	id "bursar/pkg/domain"
)

// MockTransferer records sends and can be told to fail. Used in tests and
// local development.
type MockTransferer struct {
	Latency time.Duration
	Err     error

	mu    sync.Mutex
	sends []Send
}

// Send is one recorded transfer instruction.
type Send struct {
	To     id.AccountID
	Amount int64
}

func (m *MockTransferer) Send(_ context.Context, to id.AccountID, amount int64) error {
	time.Sleep(m.Latency)
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, Send{To: to, Amount: amount})
	return nil
}

// Sends returns a copy of the recorded transfers, in order.
func (m *MockTransferer) Sends() []Send {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Send, len(m.sends))
	copy(out, m.sends)
	return out
}

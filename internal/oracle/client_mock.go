package oracle

import (
	"context"
	"time"

	id "bursar/pkg/domain"
)

// MockClient returns a deterministic classification with a configurable
// latency to mimic real-world calls. Used in tests and local development.
type MockClient struct {
	Kind      id.ParticipantClass
	TTL       time.Duration
	Suspended bool
	Latency   time.Duration
	Err       error
}

func (c MockClient) Classify(_ context.Context, _ id.AccountID) (Classification, error) {
	time.Sleep(c.Latency)
	if c.Err != nil {
		return Classification{}, c.Err
	}
	return Classification{
		Kind:      c.Kind,
		ExpiresAt: time.Now().Add(c.TTL),
		Suspended: c.Suspended,
	}, nil
}

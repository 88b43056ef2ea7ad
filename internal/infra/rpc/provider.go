package rpc

import (
	"context"
	"encoding/json"
	"time"
)

// Provider is a single node endpoint capable of executing operations.
type Provider interface {
	Execute(ctx context.Context, op Operation) (json.RawMessage, error)
	GetName() string
	GetHealth() HealthStatus
	IsAvailable() bool
	Close() error
}

// HealthStatus is a provider's rolling health view.
type HealthStatus struct {
	Available     bool
	ErrorRate     float64
	Latency       time.Duration
	LastSuccessAt time.Time
	LastFailureAt time.Time
}

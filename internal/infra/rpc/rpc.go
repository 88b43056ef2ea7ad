// Package rpc provides resilient access to blockchain node HTTP APIs.
//
// A Client executes transport-agnostic Operations against one or more
// Providers with retry, failover, and per-provider health tracking:
//
//	providers := []rpc.Provider{
//	    rpc.NewHTTPProvider("trongrid", "https://api.trongrid.io", 30*time.Second),
//	    rpc.NewHTTPProvider("nileex", "https://nile.trongrid.io", 30*time.Second),
//	}
//	client := rpc.NewFailoverClient("tron", providers, rpc.DefaultRetryConfig)
//
//	raw, err := client.Request(ctx, rpc.Operation{
//	    Endpoint: "wallet/getaccount",
//	    Method:   "POST",
//	    Body:     req,
//	})
package rpc

import (
	"context"
	"encoding/json"
)

// Operation describes a single node API call, independent of transport.
type Operation struct {
	// Endpoint is the path relative to the provider base URL,
	// e.g. "wallet/broadcasttransaction".
	Endpoint string
	// Method is the HTTP verb; wallet APIs are POST throughout.
	Method string
	// Body is marshaled as the JSON request body. A json.RawMessage
	// passes through untouched.
	Body any
}

// Client executes operations against the chain's node providers.
type Client interface {
	// Request executes the operation and returns the raw response body.
	Request(ctx context.Context, op Operation) (json.RawMessage, error)
	// Chain returns the chain name this client serves.
	Chain() string
	// Close releases provider resources.
	Close() error
}

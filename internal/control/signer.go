package control

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSigner implements transfer.Signer against an external signing
// service. The service receives the unsigned transaction plus the key
// reference and returns the signed transaction; private keys never pass
// through this process when callers use key references.
type HTTPSigner struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSigner creates a signer talking to the given service URL.
func NewHTTPSigner(url string, timeout time.Duration) *HTTPSigner {
	return &HTTPSigner{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type signRequest struct {
	Transaction json.RawMessage `json:"transaction"`
	Key         string          `json:"key"`
}

type signResponse struct {
	Transaction json.RawMessage `json:"transaction"`
	Address     string          `json:"address,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Sign submits the unsigned transaction for signing.
func (s *HTTPSigner) Sign(ctx context.Context, unsigned json.RawMessage, keyMaterial string) (json.RawMessage, error) {
	out, err := s.call(ctx, signRequest{Transaction: unsigned, Key: keyMaterial})
	if err != nil {
		return nil, err
	}
	if len(out.Transaction) == 0 {
		return nil, fmt.Errorf("signer returned no transaction")
	}
	return out.Transaction, nil
}

func (s *HTTPSigner) call(ctx context.Context, in signRequest) (*signResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call signer: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read signer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signer http %d: %s", resp.StatusCode, string(respBody))
	}

	var out signResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("parse signer response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("signer error: %s", out.Error)
	}
	return &out, nil
}

// DeriveAddress asks the signing service which address the key controls.
// A request without a transaction is treated by the service as an
// address query.
func (s *HTTPSigner) DeriveAddress(ctx context.Context, keyMaterial string) (string, error) {
	out, err := s.call(ctx, signRequest{Key: keyMaterial})
	if err != nil {
		return "", err
	}
	if out.Address == "" {
		return "", fmt.Errorf("signer returned no address")
	}
	return out.Address, nil
}

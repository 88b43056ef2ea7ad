package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPProvider_Execute(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"balance": 42}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider("test", srv.URL, 5*time.Second)
	defer p.Close()

	raw, err := p.Execute(context.Background(), Operation{
		Endpoint: "wallet/getaccount",
		Method:   "POST",
		Body:     map[string]string{"address": "41abc"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/wallet/getaccount" {
		t.Errorf("path = %s", gotPath)
	}
	if !strings.Contains(gotBody, `"address":"41abc"`) {
		t.Errorf("request body = %s", gotBody)
	}

	var resp struct {
		Balance int64 `json:"balance"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Balance != 42 {
		t.Errorf("balance = %d", resp.Balance)
	}

	health := p.GetHealth()
	if !health.Available || health.ErrorRate != 0 {
		t.Errorf("health after success: %+v", health)
	}
}

func TestHTTPProvider_RawBodyPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if string(b) != `{"signed":true}` {
			t.Errorf("raw body modified: %s", b)
		}
		w.Write([]byte(`{"result": true}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider("test", srv.URL, 5*time.Second)
	defer p.Close()

	_, err := p.Execute(context.Background(), Operation{
		Endpoint: "wallet/broadcasttransaction",
		Body:     json.RawMessage(`{"signed":true}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPProvider_NodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error": "class java.lang.NumberFormatException"}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider("test", srv.URL, 5*time.Second)
	defer p.Close()

	_, err := p.Execute(context.Background(), Operation{Endpoint: "wallet/getaccount"})
	if err == nil {
		t.Fatal("expected error for node Error field")
	}
	if ClassifyError(err) != ActionFatal {
		t.Errorf("node errors should classify fatal, got %v for %v", ClassifyError(err), err)
	}
}

func TestHTTPProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewHTTPProvider("test", srv.URL, 5*time.Second)
	defer p.Close()

	_, err := p.Execute(context.Background(), Operation{Endpoint: "wallet/getaccount"})
	if err == nil {
		t.Fatal("expected error for 429")
	}
	if ClassifyError(err) != ActionFailover {
		t.Errorf("rate limits should classify failover, got %v", ClassifyError(err))
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		msg  string
		want ErrorAction
	}{
		{"rate limited (429), retry after: 3", ActionFailover},
		{"access blocked (403)", ActionFailover},
		{"node error: Invalid address", ActionFatal},
		{"http 500: internal", ActionRetry},
		{"dial tcp: connection refused", ActionRetry},
	}
	for _, tt := range tests {
		if got := ClassifyError(errString(tt.msg)); got != tt.want {
			t.Errorf("ClassifyError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestFailoverClient_FailsOver(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balance": 7}`))
	}))
	defer good.Close()

	client := NewFailoverClient("tron", []Provider{
		NewHTTPProvider("bad", bad.URL, 5*time.Second),
		NewHTTPProvider("good", good.URL, 5*time.Second),
	}, RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffMultiple: 1})
	defer client.Close()

	raw, err := client.Request(context.Background(), Operation{Endpoint: "wallet/getaccount"})
	if err != nil {
		t.Fatalf("expected failover to succeed: %v", err)
	}
	if !strings.Contains(string(raw), `"balance": 7`) {
		t.Errorf("unexpected response: %s", raw)
	}
}

func TestFailoverClient_FatalStopsImmediately(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"Error": "Invalid JSON"}`))
	}))
	defer srv.Close()

	client := NewFailoverClient("tron", []Provider{
		NewHTTPProvider("a", srv.URL, 5*time.Second),
		NewHTTPProvider("b", srv.URL, 5*time.Second),
	}, RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffMultiple: 1})
	defer client.Close()

	_, err := client.Request(context.Background(), Operation{Endpoint: "wallet/getaccount"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("fatal error should stop after one call, got %d", calls)
	}
}

func TestFailoverClient_NoProviders(t *testing.T) {
	client := NewFailoverClient("tron", nil, DefaultRetryConfig)
	if _, err := client.Request(context.Background(), Operation{Endpoint: "x"}); err == nil {
		t.Fatal("expected error with no providers")
	}
}

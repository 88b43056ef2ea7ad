package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vietddude/payout/internal/infra/chain/tron"
	"github.com/vietddude/payout/internal/infra/rpc"
)

const (
	// Nile testnet public endpoint.
	testnetURL = "https://nile.trongrid.io"
	// USDT contract on Nile.
	testnetUSDT = "TXYZopYRdj2D9XRtbG411XZZ3kM5VkAeBf"
)

func liveNode(t *testing.T) *tron.NodeClient {
	t.Helper()
	if os.Getenv("E2E_LIVE") == "" {
		t.Skip("set E2E_LIVE=1 to run live network tests")
	}

	url := os.Getenv("E2E_NODE_URL")
	if url == "" {
		url = testnetURL
	}

	client := rpc.NewFailoverClient("tron", []rpc.Provider{
		rpc.NewHTTPProvider("live", url, 30*time.Second),
	}, rpc.DefaultRetryConfig)
	t.Cleanup(func() { _ = client.Close() })

	return tron.NewNodeClient(client)
}

func TestLive_GetResourceQuota(t *testing.T) {
	node := liveNode(t)

	addr, err := tron.ParseAddress(testnetUSDT)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	quota, err := node.GetResourceQuota(ctx, addr)
	if err != nil {
		t.Fatalf("get resource quota: %v", err)
	}
	if quota.FreeBandwidth.Limit <= 0 {
		t.Errorf("expected a free bandwidth allotment, got %+v", quota)
	}
}

func TestLive_TokenBalance(t *testing.T) {
	node := liveNode(t)

	contract, err := tron.ParseAddress(testnetUSDT)
	if err != nil {
		t.Fatalf("parse contract: %v", err)
	}
	// The contract's own balance; exists on every deployment.
	bal, err := node.TokenBalance(context.Background(), contract, contract)
	if err != nil {
		t.Fatalf("token balance: %v", err)
	}
	if bal.Sign() < 0 {
		t.Errorf("balance should never be negative, got %s", bal)
	}
}

func TestLive_UnknownTransaction(t *testing.T) {
	node := liveNode(t)

	info, err := node.GetTransactionInfo(context.Background(),
		"0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("get transaction info: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil info for unknown txid, got %+v", info)
	}
}

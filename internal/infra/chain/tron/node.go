package tron

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/vietddude/payout/internal/core/domain"
	"github.com/vietddude/payout/internal/infra/rpc"
)

// NodeClient exposes the subset of the wallet API the transfer pipeline
// needs. It owns no state beyond the injected RPC client; every method is a
// single request/response round trip.
type NodeClient struct {
	client rpc.Client
	log    *slog.Logger
}

// NewNodeClient creates a node client on top of any rpc.Client.
func NewNodeClient(client rpc.Client) *NodeClient {
	return &NodeClient{
		client: client,
		log:    slog.Default().With("component", "tron"),
	}
}

func (c *NodeClient) post(ctx context.Context, endpoint string, body, out any) error {
	raw, err := c.client.Request(ctx, rpc.Operation{
		Endpoint: endpoint,
		Method:   "POST",
		Body:     body,
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// GetBalance returns the native-coin balance in sun. An account the chain
// has never seen unmarshals to an empty object, which reads as zero.
func (c *NodeClient) GetBalance(ctx context.Context, addr Address) (*big.Int, error) {
	var acc Account
	if err := c.post(ctx, "wallet/getaccount", accountReq{Address: addr.Hex(true)}, &acc); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return big.NewInt(acc.Balance), nil
}

// GetResourceQuota fetches the account's current energy and bandwidth state.
func (c *NodeClient) GetResourceQuota(ctx context.Context, addr Address) (domain.ResourceQuota, error) {
	var res AccountResource
	if err := c.post(ctx, "wallet/getaccountresource", accountReq{Address: addr.Hex(true)}, &res); err != nil {
		return domain.ResourceQuota{}, fmt.Errorf("get account resource: %w", err)
	}
	return domain.ResourceQuota{
		Energy:          domain.Resource{Limit: res.EnergyLimit, Used: res.EnergyUsed},
		FreeBandwidth:   domain.Resource{Limit: res.FreeNetLimit, Used: res.FreeNetUsed},
		StakedBandwidth: domain.Resource{Limit: res.NetLimit, Used: res.NetUsed},
	}, nil
}

// TokenBalance reads balanceOf(owner) through a constant call.
func (c *NodeClient) TokenBalance(ctx context.Context, contract, owner Address) (*big.Int, error) {
	out, err := c.ConstantCall(ctx, owner, contract, BalanceOfSelector, EncodeBalanceOfParams(owner))
	if err != nil {
		return nil, err
	}
	if len(out.ConstantResult) == 0 {
		return new(big.Int), nil
	}
	v, err := DecodeUint256(out.ConstantResult[0])
	if err != nil {
		return nil, fmt.Errorf("decode token balance: %w", err)
	}
	return v, nil
}

// ConstantCall simulates a contract call without touching chain state. The
// caller inspects Result itself: a false result is data here, not an error.
func (c *NodeClient) ConstantCall(ctx context.Context, owner, contract Address, selector, parameter string) (*ConstantResult, error) {
	req := triggerReq{
		OwnerAddress:     owner.Hex(true),
		ContractAddress:  contract.Hex(true),
		FunctionSelector: selector,
		Parameter:        parameter,
	}
	var out ConstantResult
	if err := c.post(ctx, "wallet/triggerconstantcontract", req, &out); err != nil {
		return nil, fmt.Errorf("constant call %s: %w", selector, err)
	}
	return &out, nil
}

// BuildTrigger asks the node to assemble an unsigned contract-trigger
// transaction. A negative build verdict is fatal for the transfer.
func (c *NodeClient) BuildTrigger(ctx context.Context, owner, contract Address, selector, parameter string, feeLimit int64) (*Transaction, error) {
	req := triggerReq{
		OwnerAddress:     owner.Hex(true),
		ContractAddress:  contract.Hex(true),
		FunctionSelector: selector,
		Parameter:        parameter,
		FeeLimit:         feeLimit,
	}
	var out TriggerResult
	if err := c.post(ctx, "wallet/triggersmartcontract", req, &out); err != nil {
		return nil, fmt.Errorf("trigger contract: %w", err)
	}
	if !out.Result.Result || out.Transaction == nil || out.Transaction.TxID == "" {
		return nil, &domain.BuildFailedError{
			Code:    out.Result.Code,
			Message: DecodeHexMessage(out.Result.Message),
		}
	}
	return out.Transaction, nil
}

// BuildTransfer assembles an unsigned native-coin transfer.
func (c *NodeClient) BuildTransfer(ctx context.Context, from, to Address, amountSun *big.Int, minTimestamp int64) (*Transaction, error) {
	if !amountSun.IsInt64() {
		return nil, fmt.Errorf("%w: amount %s exceeds native range", domain.ErrInvalidAmount, amountSun)
	}
	req := createTxReq{
		OwnerAddress: from.Hex(true),
		ToAddress:    to.Hex(true),
		Amount:       amountSun.Int64(),
		Timestamp:    minTimestamp,
	}
	var out Transaction
	if err := c.post(ctx, "wallet/createtransaction", req, &out); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	if out.TxID == "" {
		return nil, &domain.BuildFailedError{Message: "node returned no transaction"}
	}
	return &out, nil
}

// Broadcast submits a signed transaction and returns its id on acceptance.
func (c *NodeClient) Broadcast(ctx context.Context, signed json.RawMessage) (string, error) {
	raw, err := c.client.Request(ctx, rpc.Operation{
		Endpoint: "wallet/broadcasttransaction",
		Method:   "POST",
		Body:     signed,
	})
	if err != nil {
		return "", fmt.Errorf("broadcast: %w", err)
	}
	var out BroadcastResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode broadcast response: %w", err)
	}
	if !out.Result {
		return "", &domain.BroadcastError{
			Code:   out.Code,
			Reason: DecodeHexMessage(out.Message),
		}
	}
	return out.TxID, nil
}

// GetTransactionInfo fetches the confirmed receipt for a transaction id.
// A nil result without error means the chain does not know the id yet.
func (c *NodeClient) GetTransactionInfo(ctx context.Context, txID string) (*TransactionInfo, error) {
	var out TransactionInfo
	if err := c.post(ctx, "wallet/gettransactioninfobyid", map[string]any{"value": txID}, &out); err != nil {
		return nil, fmt.Errorf("get transaction info: %w", err)
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}

// GetTransaction fetches the raw transaction for an id, nil if unknown.
func (c *NodeClient) GetTransaction(ctx context.Context, txID string) (*Transaction, error) {
	var out Transaction
	if err := c.post(ctx, "wallet/gettransactionbyid", map[string]any{"value": txID}, &out); err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if out.TxID == "" {
		return nil, nil
	}
	return &out, nil
}

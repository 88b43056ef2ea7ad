package tron

import "encoding/json"

// Wire structs for the wallet HTTP API. Field names follow the node's JSON,
// including its inconsistent casing.

type accountReq struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

// Account is the subset of wallet/getaccount this client reads. An account
// the chain has never seen comes back as an empty object.
type Account struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// AccountResource mirrors wallet/getaccountresource.
type AccountResource struct {
	FreeNetUsed  int64 `json:"freeNetUsed"`
	FreeNetLimit int64 `json:"freeNetLimit"`
	NetUsed      int64 `json:"NetUsed"`
	NetLimit     int64 `json:"NetLimit"`
	EnergyUsed   int64 `json:"EnergyUsed"`
	EnergyLimit  int64 `json:"EnergyLimit"`
}

type triggerReq struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter"`
	FeeLimit         int64  `json:"fee_limit,omitempty"`
	CallValue        int64  `json:"call_value,omitempty"`
	Visible          bool   `json:"visible"`
}

type createTxReq struct {
	OwnerAddress string `json:"owner_address"`
	ToAddress    string `json:"to_address"`
	Amount       int64  `json:"amount"`
	Timestamp    int64  `json:"timestamp,omitempty"`
	Visible      bool   `json:"visible"`
}

// Ret is the per-contract execution result list on a transaction.
type Ret struct {
	ContractRet string `json:"contractRet"`
}

// Transaction is a node-built transaction, unsigned until Signature is set.
// RawData stays raw: the signer covers it byte-for-byte and re-marshalling
// could reorder fields.
type Transaction struct {
	TxID       string          `json:"txID"`
	RawData    json.RawMessage `json:"raw_data"`
	RawDataHex string          `json:"raw_data_hex"`
	Signature  []string        `json:"signature,omitempty"`
	Ret        []Ret           `json:"ret,omitempty"`
}

// CallResult is the node's verdict on a trigger request.
type CallResult struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"` // hex-encoded detail
}

// ConstantResult mirrors wallet/triggerconstantcontract.
type ConstantResult struct {
	Result         CallResult `json:"result"`
	EnergyUsed     int64      `json:"energy_used"`
	ConstantResult []string   `json:"constant_result"`
}

// TriggerResult mirrors wallet/triggersmartcontract.
type TriggerResult struct {
	Result      CallResult   `json:"result"`
	Transaction *Transaction `json:"transaction"`
}

// BroadcastResult mirrors wallet/broadcasttransaction.
type BroadcastResult struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"` // hex-encoded rejection reason
}

// EventLog is one entry of a confirmed transaction's event log. The emitting
// address arrives as bare 20-byte hex, topics as 32-byte hex words.
type EventLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

// Receipt is the resource accounting attached to a confirmed transaction.
type Receipt struct {
	Result           string `json:"result"`
	EnergyUsageTotal int64  `json:"energy_usage_total"`
	NetUsage         int64  `json:"net_usage"`
	NetFee           int64  `json:"net_fee"`
}

// TransactionInfo mirrors wallet/gettransactioninfobyid. An unknown or not
// yet solidified transaction comes back as an empty object.
//
// Result is the transaction-level verdict: the node sets it to FAILED when
// execution reverted and omits it on success. Receipt.Result carries the
// contract outcome (SUCCESS, REVERT, OUT_OF_ENERGY, ...), never FAILED.
type TransactionInfo struct {
	ID              string     `json:"id"`
	Result          string     `json:"result"`
	Fee             int64      `json:"fee"`
	BlockNumber     int64      `json:"blockNumber"`
	ContractAddress string     `json:"contract_address"`
	Receipt         Receipt    `json:"receipt"`
	Log             []EventLog `json:"log"`
	ResMessage      string     `json:"resMessage"` // hex-encoded failure detail
}

// Package sui speaks the SUI full-node JSON-RPC API: fetching transaction
// blocks (singly or batched), reading the current system state, and
// converting between MIST and SUI amounts.
package sui

import (
	"encoding/json"
	"strconv"
	"time"
)

// BlockOptions selects which parts of a transaction block the node returns.
// Field names match the RPC option names.
type BlockOptions struct {
	ShowInput          bool `json:"showInput"`
	ShowEffects        bool `json:"showEffects"`
	ShowEvents         bool `json:"showEvents"`
	ShowBalanceChanges bool `json:"showBalanceChanges"`
}

// DefaultBlockOptions requests everything classification needs.
func DefaultBlockOptions() BlockOptions {
	return BlockOptions{
		ShowInput:          true,
		ShowEffects:        true,
		ShowEvents:         true,
		ShowBalanceChanges: true,
	}
}

// Event is one emitted on-chain event. ParsedJSON is kept raw because the
// payload shape varies by event type and node version; callers probe it
// field by field.
type Event struct {
	Type       string          `json:"type"`
	ParsedJSON json.RawMessage `json:"parsedJson"`
}

// Owner identifies who a balance change belongs to. On the wire this is
// either an object like {"AddressOwner": "0x..."} / {"ObjectOwner": "0x..."}
// / {"Shared": {...}} or the plain string "Immutable".
type Owner struct {
	AddressOwner string
	ObjectOwner  string
}

// UnmarshalJSON tolerates both the object and plain-string owner encodings.
func (o *Owner) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		// "Immutable" — no owner address.
		return nil
	}
	var obj struct {
		AddressOwner string          `json:"AddressOwner"`
		ObjectOwner  string          `json:"ObjectOwner"`
		Shared       json.RawMessage `json:"Shared"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.AddressOwner = obj.AddressOwner
	o.ObjectOwner = obj.ObjectOwner
	return nil
}

// BalanceChange is a signed balance delta for one owner, in MIST,
// encoded by the node as a decimal string.
type BalanceChange struct {
	Owner    Owner  `json:"owner"`
	CoinType string `json:"coinType"`
	Amount   string `json:"amount"`
}

// TransactionBlock is the raw fetched record for one transaction digest.
// Read-only once fetched.
type TransactionBlock struct {
	Digest         string          `json:"digest"`
	TimestampMs    string          `json:"timestampMs"`
	Events         []Event         `json:"events"`
	BalanceChanges []BalanceChange `json:"balanceChanges"`
}

// Time parses the millisecond timestamp, if present.
func (t *TransactionBlock) Time() (time.Time, bool) {
	if t.TimestampMs == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(t.TimestampMs, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

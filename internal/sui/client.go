package sui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jatin-tres/SUI-Stake-data/internal/rpc"
)

// Client wraps the failover RPC transport with the SUI methods this tool
// consumes.
type Client struct {
	rpc *rpc.Client
}

// NewClient creates a SUI client over the given transport.
func NewClient(transport *rpc.Client) *Client {
	return &Client{rpc: transport}
}

// GetTransactionBlock fetches one transaction with events, balance changes
// and effects included.
func (c *Client) GetTransactionBlock(ctx context.Context, digest string) (*TransactionBlock, error) {
	raw, err := c.rpc.Call(ctx, "sui_getTransactionBlock", []any{digest, DefaultBlockOptions()})
	if err != nil {
		return nil, err
	}
	var block TransactionBlock
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, fmt.Errorf("parsing transaction block %s: %w", digest, err)
	}
	return &block, nil
}

// MultiGetTransactionBlocks fetches up to 50 transactions in one round trip.
// The node does not guarantee response order; callers must match records to
// requests by digest, never by position.
func (c *Client) MultiGetTransactionBlocks(ctx context.Context, digests []string) ([]TransactionBlock, error) {
	raw, err := c.rpc.Call(ctx, "sui_multiGetTransactionBlocks", []any{digests, DefaultBlockOptions()})
	if err != nil {
		return nil, err
	}
	var blocks []TransactionBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("parsing transaction blocks: %w", err)
	}
	return blocks, nil
}

// LatestSystemState returns the raw current system state, which carries the
// active validator set.
func (c *Client) LatestSystemState(ctx context.Context) (json.RawMessage, error) {
	return c.rpc.Call(ctx, "suix_getLatestSuiSystemState", nil)
}

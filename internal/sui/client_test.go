package sui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockJSON = `{
	"digest": "4rZ3vNkgyAaF6GhS",
	"timestampMs": "1700000000000",
	"events": [
		{"type": "0x3::validator::StakingRequestEvent",
		 "parsedJson": {"validator_address": "0xa11ce", "amount": "5000000000"}}
	],
	"balanceChanges": [
		{"owner": {"AddressOwner": "0xf00"}, "coinType": "0x2::sui::SUI", "amount": "-5000000000"}
	]
}`

// ---------------------------------------------------------------------------
// GetTransactionBlock
// ---------------------------------------------------------------------------

func TestGetTransactionBlock(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "sui_getTransactionBlock", req.Method)
		require.Len(t, req.Params, 2)
		assert.Equal(t, "4rZ3vNkgyAaF6GhS", req.Params[0])

		// The option set must request events and balance changes.
		opts, ok := req.Params[1].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, opts["showEvents"])
		assert.Equal(t, true, opts["showBalanceChanges"])

		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + blockJSON + `}`)) //nolint:errcheck
	})

	block, err := client.GetTransactionBlock(context.Background(), "4rZ3vNkgyAaF6GhS")
	require.NoError(t, err)
	assert.Equal(t, "4rZ3vNkgyAaF6GhS", block.Digest)
	require.Len(t, block.Events, 1)
	require.Len(t, block.BalanceChanges, 1)
	assert.Equal(t, "0xf00", block.BalanceChanges[0].Owner.AddressOwner)
}

// ---------------------------------------------------------------------------
// MultiGetTransactionBlocks
// ---------------------------------------------------------------------------

func TestMultiGetTransactionBlocks(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "sui_multiGetTransactionBlocks", req.Method)

		digests, ok := req.Params[0].([]any)
		require.True(t, ok)
		assert.Len(t, digests, 2)

		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":[` + blockJSON + `,{"digest":"other"}]}`)) //nolint:errcheck
	})

	blocks, err := client.MultiGetTransactionBlocks(context.Background(), []string{"4rZ3vNkgyAaF6GhS", "other"})
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "4rZ3vNkgyAaF6GhS", blocks[0].Digest)
	assert.Equal(t, "other", blocks[1].Digest)
	assert.Empty(t, blocks[1].Events)
}

func TestMultiGetTransactionBlocksMalformedResult(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"not":"an array"}}`)) //nolint:errcheck
	})

	_, err := client.MultiGetTransactionBlocks(context.Background(), []string{"x"})
	assert.Error(t, err)
}

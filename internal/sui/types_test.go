package sui

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Owner — mixed wire encodings
// ---------------------------------------------------------------------------

func TestOwnerAddressOwner(t *testing.T) {
	var bc BalanceChange
	raw := `{"owner":{"AddressOwner":"0xABCdef"},"coinType":"0x2::sui::SUI","amount":"-42"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &bc))
	assert.Equal(t, "0xABCdef", bc.Owner.AddressOwner)
	assert.Equal(t, "-42", bc.Amount)
}

func TestOwnerObjectOwner(t *testing.T) {
	var o Owner
	require.NoError(t, json.Unmarshal([]byte(`{"ObjectOwner":"0x99"}`), &o))
	assert.Empty(t, o.AddressOwner)
	assert.Equal(t, "0x99", o.ObjectOwner)
}

func TestOwnerImmutableString(t *testing.T) {
	var o Owner
	require.NoError(t, json.Unmarshal([]byte(`"Immutable"`), &o))
	assert.Empty(t, o.AddressOwner)
	assert.Empty(t, o.ObjectOwner)
}

func TestOwnerShared(t *testing.T) {
	var o Owner
	require.NoError(t, json.Unmarshal([]byte(`{"Shared":{"initial_shared_version":42}}`), &o))
	assert.Empty(t, o.AddressOwner)
}

// ---------------------------------------------------------------------------
// TransactionBlock.Time
// ---------------------------------------------------------------------------

func TestBlockTimeParses(t *testing.T) {
	block := TransactionBlock{TimestampMs: "1700000000000"}
	ts, ok := block.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts)
}

func TestBlockTimeMissing(t *testing.T) {
	block := TransactionBlock{}
	_, ok := block.Time()
	assert.False(t, ok)
}

func TestBlockTimeMalformed(t *testing.T) {
	block := TransactionBlock{TimestampMs: "soon"}
	_, ok := block.Time()
	assert.False(t, ok)
}

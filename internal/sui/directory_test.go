package sui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin-tres/SUI-Stake-data/internal/rpc"
)

// ---------------------------------------------------------------------------
// helpers for mock SUI RPC servers
// ---------------------------------------------------------------------------

func suiServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(rpc.NewClient([]string{srv.URL}, rpc.WithSweeps(1)))
}

func systemStateResp(validators string) string {
	return `{"jsonrpc":"2.0","id":1,"result":{"epoch":"500","activeValidators":[` + validators + `]}}`
}

const (
	nansenAddr   = "0xA11CE0000000000000000000000000000000000000000000000000000000AAAA"
	coinbaseAddr = "0xB0B00000000000000000000000000000000000000000000000000000000BBBB"
)

func twoValidators() string {
	return `{"suiAddress":"` + nansenAddr + `","name":"Nansen","stakingPoolSuiBalance":"1"},` +
		`{"suiAddress":"` + coinbaseAddr + `","name":"Coinbase Cloud","commissionRate":"200"}`
}

// ---------------------------------------------------------------------------
// BuildDirectory
// ---------------------------------------------------------------------------

func TestBuildDirectoryResolvesBothWays(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(systemStateResp(twoValidators()))) //nolint:errcheck
	})

	dir := BuildDirectory(context.Background(), client)
	require.Equal(t, 2, dir.Len())

	name, ok := dir.Resolve(nansenAddr)
	require.True(t, ok)
	assert.Equal(t, "Nansen", name)

	// Lookup is case-insensitive on the address.
	name, ok = dir.Resolve("0xa11ce0000000000000000000000000000000000000000000000000000000aaaa")
	require.True(t, ok)
	assert.Equal(t, "Nansen", name)

	addr, ok := dir.AddressOf("nansen")
	require.True(t, ok)
	assert.Equal(t, nansenAddr, addr)
}

func TestBuildDirectoryDegradesToEmpty(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	dir := BuildDirectory(context.Background(), client)
	require.NotNil(t, dir, "a failed build must yield an empty directory, not nil")
	assert.Equal(t, 0, dir.Len())

	_, ok := dir.Resolve(nansenAddr)
	assert.False(t, ok)
}

func TestBuildDirectorySkipsPartialEntries(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(systemStateResp( //nolint:errcheck
			`{"suiAddress":"","name":"Ghost"},{"name":"NoAddress"},` + twoValidators())))
	})

	dir := BuildDirectory(context.Background(), client)
	assert.Equal(t, 2, dir.Len())
}

func TestBuildDirectoryDuplicateNameLastWins(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(systemStateResp( //nolint:errcheck
			`{"suiAddress":"0x111","name":"Twin"},{"suiAddress":"0x222","name":"Twin"}`)))
	})

	dir := BuildDirectory(context.Background(), client)
	assert.Equal(t, 2, dir.Len())

	addr, ok := dir.AddressOf("twin")
	require.True(t, ok)
	assert.Equal(t, "0x222", addr)
}

func TestDirectoryEntriesSorted(t *testing.T) {
	client := suiServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(systemStateResp(twoValidators()))) //nolint:errcheck
	})

	dir := BuildDirectory(context.Background(), client)
	entries := dir.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Coinbase Cloud", entries[0].Name)
	assert.Equal(t, "Nansen", entries[1].Name)
}

func TestEmptyDirectoryUsable(t *testing.T) {
	dir := EmptyDirectory()
	assert.Equal(t, 0, dir.Len())
	_, ok := dir.Resolve("0xwhatever")
	assert.False(t, ok)
	assert.Empty(t, dir.Entries())
}

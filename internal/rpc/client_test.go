package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers for mock JSON-RPC servers
// ---------------------------------------------------------------------------

func rpcServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

func writeResult(w http.ResponseWriter, result string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`)) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"error":{"code":%d,"message":"%s"}}`, code, msg)
}

// ---------------------------------------------------------------------------
// Call — first-success failover
// ---------------------------------------------------------------------------

func TestCallFirstEndpointWins(t *testing.T) {
	first := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `"from-first"`)
	})
	defer first.Close()
	second := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("second endpoint must not be called when the first succeeds")
	})
	defer second.Close()

	c := NewClient([]string{first.URL, second.URL})
	result, err := c.Call(context.Background(), "sui_getTransactionBlock", []any{"0xabc"})
	require.NoError(t, err)
	assert.Equal(t, `"from-first"`, string(result))
}

func TestCallFailsOverOnHTTPError(t *testing.T) {
	first := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer first.Close()
	second := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `"from-second"`)
	})
	defer second.Close()

	c := NewClient([]string{first.URL, second.URL})
	result, err := c.Call(context.Background(), "sui_getTransactionBlock", nil)
	require.NoError(t, err)
	assert.Equal(t, `"from-second"`, string(result))
}

func TestCallFailsOverOnGarbageBody(t *testing.T) {
	first := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>rate limited</html>")) //nolint:errcheck
	})
	defer first.Close()
	second := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `42`)
	})
	defer second.Close()

	c := NewClient([]string{first.URL, second.URL})
	result, err := c.Call(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, `42`, string(result))
}

func TestCallFailsOverOnNullResult(t *testing.T) {
	first := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `null`)
	})
	defer first.Close()
	second := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `{"ok":true}`)
	})
	defer second.Close()

	c := NewClient([]string{first.URL, second.URL})
	result, err := c.Call(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(result))
}

// ---------------------------------------------------------------------------
// Call — terminal RPC errors short-circuit
// ---------------------------------------------------------------------------

func TestCallRPCErrorIsTerminal(t *testing.T) {
	var secondCalls atomic.Int32

	first := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, -32602, "Could not find the referenced transaction")
	})
	defer first.Close()
	second := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		secondCalls.Add(1)
		writeResult(w, `"never used"`)
	})
	defer second.Close()

	c := NewClient([]string{first.URL, second.URL})
	_, err := c.Call(context.Background(), "sui_getTransactionBlock", []any{"0xbad"})
	require.Error(t, err)
	assert.True(t, IsTerminal(err))
	assert.Equal(t, int32(0), secondCalls.Load(), "terminal errors must not fail over")

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32602, rpcErr.Code)
}

// ---------------------------------------------------------------------------
// Call — exhaustion and sweeps
// ---------------------------------------------------------------------------

func TestCallAllEndpointsFailed(t *testing.T) {
	down := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer down.Close()

	c := NewClient([]string{down.URL}, WithSweeps(1))
	_, err := c.Call(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, ErrAllEndpointsFailed)
	assert.False(t, IsTerminal(err))
}

func TestCallRetriesWholeSweep(t *testing.T) {
	var calls atomic.Int32
	flaky := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Fail the first sweep, succeed on the second.
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeResult(w, `"second sweep"`)
	})
	defer flaky.Close()

	c := NewClient([]string{flaky.URL}, WithSweeps(2), WithSweepPause(time.Millisecond))
	result, err := c.Call(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, `"second sweep"`, string(result))
	assert.Equal(t, int32(2), calls.Load())
}

func TestCallHonorsContextCancel(t *testing.T) {
	slow := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeResult(w, `"too late"`)
	})
	defer slow.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewClient([]string{slow.URL})
	_, err := c.Call(ctx, "anything", nil)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// NewClient defaults
// ---------------------------------------------------------------------------

func TestNewClientDefaultEndpoints(t *testing.T) {
	c := NewClient(nil)
	assert.Equal(t, DefaultEndpoints, c.Endpoints())
}

func TestEndpointsReturnsCopy(t *testing.T) {
	c := NewClient([]string{"https://a", "https://b"})
	eps := c.Endpoints()
	eps[0] = "https://mutated"
	assert.Equal(t, "https://a", c.Endpoints()[0])
}

// ---------------------------------------------------------------------------
// ProbeAll
// ---------------------------------------------------------------------------

func TestProbeAllMixedHealth(t *testing.T) {
	up := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `"123456"`)
	})
	defer up.Close()
	down := rpcServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer down.Close()

	statuses := ProbeAll(context.Background(), []string{up.URL, down.URL})
	require.Len(t, statuses, 2)

	assert.True(t, statuses[0].Healthy())
	assert.Equal(t, uint64(123456), statuses[0].Checkpoint)
	assert.Equal(t, up.URL, statuses[0].URL)

	assert.False(t, statuses[1].Healthy())
	assert.Equal(t, down.URL, statuses[1].URL)
}

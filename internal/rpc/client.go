package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoints are the public SUI mainnet full nodes, in failover order.
var DefaultEndpoints = []string{
	"https://fullnode.mainnet.sui.io:443",
	"https://sui-mainnet-endpoint.blockvision.org",
	"https://sui-mainnet.public.blastapi.io",
	"https://rpc-mainnet.suiscan.xyz:443",
}

// ErrAllEndpointsFailed is returned when every endpoint failed transiently
// for every sweep. The call may succeed later; callers should treat the
// result as unknown, not as confirmed empty.
var ErrAllEndpointsFailed = errors.New("all RPC endpoints failed")

// Error is a JSON-RPC level error returned by a node that understood the
// request (e.g. "transaction not found"). It is terminal for the call:
// other endpoints would report the same condition, so no failover happens.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// IsTerminal reports whether err is a node-level JSON-RPC error as opposed
// to a transient transport failure.
func IsTerminal(err error) bool {
	var rpcErr *Error
	return errors.As(err, &rpcErr)
}

const (
	defaultTimeout    = 10 * time.Second
	defaultSweeps     = 2
	defaultSweepPause = 500 * time.Millisecond
)

// Client is a failover JSON-RPC client. Each call walks the endpoint list
// in order and returns the first successful result. The list is read-only
// after construction and no per-endpoint health is remembered, so a Client
// is safe for concurrent use.
type Client struct {
	endpoints  []string
	httpClient *http.Client
	sweeps     int
	sweepPause time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithSweeps sets how many times the full endpoint list is walked before
// giving up.
func WithSweeps(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.sweeps = n
		}
	}
}

// WithSweepPause sets the pause between endpoint sweeps.
func WithSweepPause(d time.Duration) Option {
	return func(c *Client) { c.sweepPause = d }
}

// NewClient creates a failover client over the given endpoints.
// Empty input falls back to DefaultEndpoints.
func NewClient(endpoints []string, opts ...Option) *Client {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints
	}
	c := &Client{
		endpoints:  append([]string(nil), endpoints...),
		httpClient: &http.Client{Timeout: defaultTimeout},
		sweeps:     defaultSweeps,
		sweepPause: defaultSweepPause,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns a copy of the failover list.
func (c *Client) Endpoints() []string {
	return append([]string(nil), c.endpoints...)
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// Call issues a JSON-RPC request against the endpoint list in order and
// returns the first successful result. Transient failures (network error,
// non-2xx status, undecodable or empty body) advance to the next endpoint;
// a JSON-RPC error object is terminal and short-circuits the call. After
// all endpoints fail transiently the whole sweep is retried, with a pause,
// up to the configured sweep count.
func (c *Client) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", method, err)
	}

	for sweep := 0; sweep < c.sweeps; sweep++ {
		if sweep > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.sweepPause):
			}
		}
		for _, url := range c.endpoints {
			result, err := c.post(ctx, url, body)
			if err == nil {
				return result, nil
			}
			if IsTerminal(err) {
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
	}
	return nil, ErrAllEndpointsFailed
}

// post sends the request to a single endpoint.
func (c *Client) post(ctx context.Context, url string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned HTTP %d", url, resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("parsing response from %s: %w", url, err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	// A body with neither result nor error is a broken node.
	if len(decoded.Result) == 0 || string(decoded.Result) == "null" {
		return nil, fmt.Errorf("%s returned an empty result", url)
	}
	return decoded.Result, nil
}

package rpc

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// EndpointStatus holds the result of probing a single endpoint.
type EndpointStatus struct {
	URL        string
	Latency    time.Duration
	Checkpoint uint64
	Err        error
}

// Healthy reports whether the endpoint answered the probe.
func (s EndpointStatus) Healthy() bool { return s.Err == nil }

// ProbeAll pings every endpoint in parallel, asking each for its latest
// checkpoint sequence number. Results keep the order of the input list.
// Probing is operator tooling only; Call never consults probe results and
// always walks the list in its fixed order.
func ProbeAll(ctx context.Context, endpoints []string) []EndpointStatus {
	statuses := make([]EndpointStatus, len(endpoints))
	var wg sync.WaitGroup

	for i, url := range endpoints {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			statuses[idx] = probeOne(ctx, u)
		}(i, url)
	}

	wg.Wait()
	return statuses
}

func probeOne(ctx context.Context, url string) EndpointStatus {
	single := NewClient([]string{url}, WithSweeps(1))

	start := time.Now()
	raw, err := single.Call(ctx, "sui_getLatestCheckpointSequenceNumber", nil)
	status := EndpointStatus{URL: url, Latency: time.Since(start), Err: err}
	if err != nil {
		return status
	}

	// The checkpoint arrives as a quoted decimal string.
	seq, convErr := strconv.ParseUint(unquote(raw), 10, 64)
	if convErr != nil {
		status.Err = convErr
		return status
	}
	status.Checkpoint = seq
	return status
}

func unquote(raw []byte) string {
	s := string(raw)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Package extract drives the batched extraction over an ordered digest
// list: chunked multi-get fetches, per-record classification, and an
// order-preserving results table.
package extract

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jatin-tres/SUI-Stake-data/internal/classify"
	"github.com/jatin-tres/SUI-Stake-data/internal/sui"
)

// ErrEmptyKeyword rejects a run before any network activity starts.
var ErrEmptyKeyword = errors.New("search keyword must not be empty")

const (
	// DefaultBatchSize keeps multi-get calls well under public-node limits.
	DefaultBatchSize = 10
	// defaultPause between chunks stays inside typical rate limits.
	defaultPause = 1 * time.Second
)

// Row notes for the failure kinds a caller can encounter. These are
// deliberately distinct: a network error is retryable, a skip means the run
// was cancelled before the digest was attempted.
const (
	NoteBatchError = "Network Error (batch fetch failed)"
	NoteSkipped    = "Skipped (cancelled)"
)

// Fetcher is the slice of the SUI client the runner needs. *sui.Client
// satisfies it; tests substitute a stub.
type Fetcher interface {
	MultiGetTransactionBlocks(ctx context.Context, digests []string) ([]sui.TransactionBlock, error)
}

// Row is one output row, aligned by Index to the input digest list.
type Row struct {
	Index     int
	Digest    string
	Timestamp string // UTC, "2006-01-02 15:04:05"; empty when unknown
	Amount    decimal.Decimal
	HasAmount bool
	Matched   bool
	Note      string
}

// Runner orchestrates chunked fetching and classification.
type Runner struct {
	fetcher   Fetcher
	dir       *sui.Directory
	batchSize int
	pause     time.Duration
	onRow     func(Row)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBatchSize sets the chunk size (values < 1 keep the default).
func WithBatchSize(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithPause sets the politeness pause between chunks.
func WithPause(d time.Duration) RunnerOption {
	return func(r *Runner) { r.pause = d }
}

// WithRowFunc registers a callback fired once per completed row, in input
// order, for progress display.
func WithRowFunc(fn func(Row)) RunnerOption {
	return func(r *Runner) { r.onRow = fn }
}

// NewRunner creates a Runner over the given fetcher and directory.
func NewRunner(fetcher Fetcher, dir *sui.Directory, opts ...RunnerOption) *Runner {
	r := &Runner{
		fetcher:   fetcher,
		dir:       dir,
		batchSize: DefaultBatchSize,
		pause:     defaultPause,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches and classifies every digest. It always returns exactly
// len(digests) rows in input order: failed chunks become per-row error
// markers and a cancelled run marks the unprocessed tail as skipped while
// keeping rows already produced. Per-row failures never surface as an
// error; only the up-front keyword check and cancellation do.
func (r *Runner) Run(ctx context.Context, digests []string, keyword string) ([]Row, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrEmptyKeyword
	}

	trimmed := make([]string, len(digests))
	for i, d := range digests {
		trimmed[i] = strings.TrimSpace(d)
	}

	rows := make([]Row, len(trimmed))

	for start := 0; start < len(trimmed); start += r.batchSize {
		if start > 0 && r.pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.pause):
			}
		}
		if ctx.Err() != nil {
			r.markSkipped(rows, trimmed, start)
			return rows, ctx.Err()
		}

		end := min(start+r.batchSize, len(trimmed))
		r.processChunk(ctx, rows, trimmed, start, end, keyword)
	}
	return rows, nil
}

// processChunk fetches one chunk and fills rows[start:end]. Records are
// matched to digests by lookup, never by response position — the node is
// not trusted to echo the request order, and silently dropped digests must
// not shift later rows.
func (r *Runner) processChunk(ctx context.Context, rows []Row, digests []string, start, end int, keyword string) {
	chunk := digests[start:end]

	byDigest := make(map[string]*sui.TransactionBlock, len(chunk))
	blocks, err := r.fetcher.MultiGetTransactionBlocks(ctx, chunk)
	if err == nil {
		for i := range blocks {
			byDigest[blocks[i].Digest] = &blocks[i]
		}
	}

	for i, digest := range chunk {
		idx := start + i
		row := Row{Index: idx, Digest: digest}

		rec, ok := byDigest[digest]
		if !ok {
			row.Note = NoteBatchError
		} else {
			res := classify.Classify(rec, r.dir, keyword)
			row.Amount = res.Amount
			row.HasAmount = res.HasAmount
			row.Matched = res.Matched
			row.Note = res.Note
			if ts, tok := rec.Time(); tok {
				row.Timestamp = ts.Format("2006-01-02 15:04:05")
			}
		}

		rows[idx] = row
		if r.onRow != nil {
			r.onRow(row)
		}
	}
}

func (r *Runner) markSkipped(rows []Row, digests []string, from int) {
	for i := from; i < len(digests); i++ {
		rows[i] = Row{Index: i, Digest: digests[i], Note: NoteSkipped}
		if r.onRow != nil {
			r.onRow(rows[i])
		}
	}
}

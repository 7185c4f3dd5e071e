// Package audit records ingest runs. This is an audit trail, not index
// persistence: the trie and registry are rebuilt from CSV on every
// process start, and nothing here is read back to reconstruct the
// index. It exists so an operator can answer "when did the last import
// run, how many rows, did it fail" without grepping logs.
package audit

import (
	"context"
	"time"
)

// Run is one completed or failed ingest attempt.
type Run struct {
	StartedAt time.Time
	Source    string
	Ingested  int
	Err       string
}

// Log records ingest runs.
type Log interface {
	Record(ctx context.Context, run Run) error
}

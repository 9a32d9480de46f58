package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no analysis exists for the requested id.
var ErrNotFound = errors.New("analysis not found")

// AnalysisStore keeps the raw text of recent analyses so a follow-up request
// can fetch it by analysis id. Entries are short-lived; nothing survives a
// process restart.
type AnalysisStore interface {
	Put(ctx context.Context, id string, text string) error
	Get(ctx context.Context, id string) (string, error)
	Close() error
}

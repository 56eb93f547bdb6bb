package observability

import (
	"context"
	"time"
)

// Recorder is implemented by every metrics sink in this package
type Recorder interface {
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordItemsDeleted(ctx context.Context, n int)
}

// MultiRecorder fans out to several sinks
type MultiRecorder []Recorder

func (m MultiRecorder) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	for _, r := range m {
		r.RecordOperation(ctx, operation, duration, err)
	}
}

func (m MultiRecorder) RecordItemsDeleted(ctx context.Context, n int) {
	for _, r := range m {
		r.RecordItemsDeleted(ctx, n)
	}
}

// NopRecorder discards everything
type NopRecorder struct{}

func (NopRecorder) RecordOperation(context.Context, string, time.Duration, error) {}
func (NopRecorder) RecordItemsDeleted(context.Context, int)                       {}

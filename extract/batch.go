package extract

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/artex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is how many URLs ExtractAll processes at once.
const DefaultConcurrency = 4

// ProgressEvent reports progress during ExtractAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting extraction progress.
type ProgressFunc func(event ProgressEvent)

// Outcome is the result of extracting one URL in a batch.
type Outcome struct {
	URL    string
	Result *artex.Result
	Err    error
}

// ExtractAll extracts urls concurrently, at most concurrency at a time, and
// returns one Outcome per URL in input order. Individual failures are
// reported in the outcome; only cancellation of ctx stops the batch.
// The progress callback is never called concurrently.
func (p *Pipeline) ExtractAll(ctx context.Context, urls []string, concurrency int, progress ProgressFunc, opts ...ExtractOption) []Outcome {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		pos int
		out Outcome
	}
	ch := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, u := range urls {
			g.Go(func() error {
				res, err := p.Extract(gctx, u, opts...)
				ch <- indexed{pos: i, out: Outcome{URL: u, Result: res, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(ch)
	}()

	outcomes := make([]Outcome, total)
	var completed atomic.Int64
	for r := range ch {
		outcomes[r.pos] = r.out
		n := int(completed.Add(1))
		if progress == nil {
			continue
		}
		ev := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: r.out.URL}
		if r.out.Err != nil {
			ev.Type = ProgressFailed
			ev.Error = r.out.Err
		}
		progress(ev)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return outcomes
}

package mock

import (
	"context"

	"github.com/fwojciec/artex"
)

var _ artex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of artex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*artex.RawPage, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*artex.RawPage, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ artex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of artex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

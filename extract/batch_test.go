package extract_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/extract"
	"github.com/fwojciec/artex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ExtractAll(t *testing.T) {
	t.Parallel()

	t.Run("returns outcomes in input order", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*artex.RawPage, error) {
				// Earlier URLs finish last.
				if strings.HasSuffix(url, "/a") {
					time.Sleep(20 * time.Millisecond)
				}
				return &artex.RawPage{URL: url, HTML: "<html></html>"}, nil
			},
		}, &mock.Parser{
			ParseFn: func(pageURL, _ string) (*artex.Candidate, error) {
				return &artex.Candidate{Title: pageURL, Content: "<p>Body</p>"}, nil
			},
		})

		urls := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
		outcomes := p.ExtractAll(context.Background(), urls, 3, nil)

		require.Len(t, outcomes, 3)
		for i, o := range outcomes {
			require.NoError(t, o.Err)
			assert.Equal(t, urls[i], o.URL)
			assert.Equal(t, urls[i], o.Result.Title)
		}
	})

	t.Run("reports failures per URL", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(staticFetcher("<html></html>"), candidateParser("T", "<p>Body</p>", "A"))

		outcomes := p.ExtractAll(context.Background(), []string{"https://example.com/ok", "not a url"}, 2, nil)

		require.Len(t, outcomes, 2)
		assert.NoError(t, outcomes[0].Err)
		assert.Equal(t, artex.EINVALID, artex.ErrorCode(outcomes[1].Err))
		assert.Nil(t, outcomes[1].Result)
	})

	t.Run("emits progress events", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(staticFetcher("<html></html>"), candidateParser("T", "<p>Body</p>", "A"))

		var events []extract.ProgressEvent
		p.ExtractAll(context.Background(), []string{"https://example.com/a", "ftp://example.com/b"}, 1, func(ev extract.ProgressEvent) {
			events = append(events, ev)
		})

		require.Len(t, events, 4)
		assert.Equal(t, extract.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, extract.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, extract.ProgressFailed, events[2].Type)
		assert.Equal(t, "ftp://example.com/b", events[2].URL)
		assert.Error(t, events[2].Error)
		assert.Equal(t, extract.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("limits concurrency", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int32
		p := newPipeline(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*artex.RawPage, error) {
				n := active.Add(1)
				defer active.Add(-1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				return &artex.RawPage{URL: url, HTML: "<html></html>"}, nil
			},
		}, candidateParser("T", "<p>Body</p>", "A"))

		urls := make([]string, 8)
		for i := range urls {
			urls[i] = "https://example.com/" + string(rune('a'+i))
		}
		outcomes := p.ExtractAll(context.Background(), urls, 2, nil)

		assert.Len(t, outcomes, 8)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("handles an empty batch", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(failingFetcher(t, "page"), failingParser(t, "primary"))

		outcomes := p.ExtractAll(context.Background(), nil, 0, nil)

		assert.Empty(t, outcomes)
	})
}

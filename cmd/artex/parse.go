package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/extract"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	var opts []extract.ExtractOption
	if c.Markdown {
		opts = append(opts, extract.WithMarkdown())
	}

	var progress extract.ProgressFunc
	if len(c.URLs) > 1 && !c.JSON {
		progress = func(ev extract.ProgressEvent) {
			switch ev.Type {
			case extract.ProgressCompleted:
				fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", ev.Completed, ev.Total, ev.URL)
			case extract.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "[%d/%d] %s failed\n", ev.Completed, ev.Total, ev.URL)
			}
		}
	}

	outcomes := deps.Pipeline.ExtractAll(deps.Ctx, c.URLs, c.Concurrency, progress, opts...)

	var failed int
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
		}
		if c.JSON {
			if err := json.NewEncoder(deps.Stdout).Encode(outcomeJSON(o)); err != nil {
				return err
			}
			continue
		}
		c.printText(deps, o, i > 0)
	}

	if failed > 0 {
		if len(outcomes) == 1 {
			return outcomes[0].Err
		}
		return fmt.Errorf("%d of %d extractions failed", failed, len(outcomes))
	}
	return nil
}

func (c *ParseCmd) printText(deps *Dependencies, o extract.Outcome, separate bool) {
	if separate {
		fmt.Fprintln(deps.Stdout)
	}
	if len(c.URLs) > 1 {
		fmt.Fprintf(deps.Stdout, "==> %s <==\n", o.URL)
	}

	if o.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, artex.ErrorMessage(o.Err))
		if hint := artex.ErrorSuggestion(o.Err); hint != "" {
			fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
		}
		return
	}

	res := o.Result
	if res.Empty {
		fmt.Fprintf(deps.Stderr, "%s (%s)\n", artex.EmptyMessage, artex.EmptyPossibleIssues)
		fmt.Fprintf(deps.Stdout, "Title: %s\nAuthor: %s\n", res.Title, res.Author)
		return
	}

	fmt.Fprintf(deps.Stdout, "Title: %s\nAuthor: %s\n\n", res.Title, res.Author)
	if c.Markdown && res.Markdown != "" {
		fmt.Fprintln(deps.Stdout, res.Markdown)
		return
	}
	fmt.Fprintln(deps.Stdout, res.Content)
}

// outcomeJSON returns the JSON shape the HTTP API uses for the outcome.
func outcomeJSON(o extract.Outcome) any {
	switch {
	case o.Err != nil:
		return map[string]any{
			"url":        o.URL,
			"error":      "Parsing error",
			"details":    o.Err.Error(),
			"suggestion": artex.ErrorSuggestion(o.Err),
		}
	case o.Result.Empty:
		return map[string]any{
			"url":            o.URL,
			"message":        artex.EmptyMessage,
			"fullResult":     o.Result.Full,
			"possibleIssues": artex.EmptyPossibleIssues,
		}
	default:
		return o.Result
	}
}

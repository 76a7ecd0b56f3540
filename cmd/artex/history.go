package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := artex.ExtractionFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	extractions, err := deps.Extractions.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	if len(extractions) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions found. Use 'artex parse' to extract an article.")
		return nil
	}

	for _, e := range extractions {
		fmt.Fprintf(deps.Stdout, "%s  %-11s %6d  %s  %s\n",
			e.CreatedAt.UTC().Format("2006-01-02 15:04"), e.Strategy, e.Score, e.URL, e.Title)
		if c.Full {
			fmt.Fprintf(deps.Stdout, "\n%s\n\n", e.Content)
		}
	}

	return nil
}

package artex

import (
	"context"
	"errors"
	"time"
)

// Extraction is a persisted record of a completed extraction.
type Extraction struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Strategy    Strategy  `json:"strategy"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	return nil
}

// NewExtraction builds a history record from a successful result.
func NewExtraction(r *Result) *Extraction {
	e := &Extraction{
		URL:     r.URL,
		Title:   r.Title,
		Author:  r.Author,
		Content: r.Content,
	}
	if r.Full != nil {
		e.Strategy = r.Full.Strategy
		e.Score = r.Full.Score()
	}
	return e
}

// ExtractionWriter persists extraction records.
type ExtractionWriter interface {
	CreateExtraction(ctx context.Context, e *Extraction) error
}

// MultiWriter returns an ExtractionWriter that hands each extraction to
// every writer in turn. Nil writers are skipped; errors are joined.
func MultiWriter(writers ...ExtractionWriter) ExtractionWriter {
	var ws multiWriter
	for _, w := range writers {
		if w != nil {
			ws = append(ws, w)
		}
	}
	return ws
}

type multiWriter []ExtractionWriter

func (ws multiWriter) CreateExtraction(ctx context.Context, e *Extraction) error {
	var errs []error
	for _, w := range ws {
		if err := w.CreateExtraction(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExtractionService represents a service for managing extraction history.
type ExtractionService interface {
	ExtractionWriter

	// FindExtractionByID retrieves an extraction by ID.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter,
	// most recent first.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

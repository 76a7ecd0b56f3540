package mock

import (
	"context"

	"github.com/fwojciec/artex"
)

var _ artex.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of artex.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn   func(ctx context.Context, e *artex.Extraction) error
	FindExtractionByIDFn func(ctx context.Context, id string) (*artex.Extraction, error)
	FindExtractionsFn    func(ctx context.Context, filter artex.ExtractionFilter) ([]*artex.Extraction, error)
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, e *artex.Extraction) error {
	return s.CreateExtractionFn(ctx, e)
}

func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*artex.Extraction, error) {
	return s.FindExtractionByIDFn(ctx, id)
}

func (s *ExtractionService) FindExtractions(ctx context.Context, filter artex.ExtractionFilter) ([]*artex.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}

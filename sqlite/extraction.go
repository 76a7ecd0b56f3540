package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/artex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ artex.ExtractionService = (*ExtractionService)(nil)

const extractionColumns = "id, url, title, author, content, content_hash, strategy, score, created_at"

// ExtractionService implements artex.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateExtraction stores e, assigning its ID, content hash and creation time.
func (s *ExtractionService) CreateExtraction(ctx context.Context, e *artex.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}

	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	e.ContentHash = hashContent(e.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (`+extractionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.URL, e.Title, e.Author, e.Content, e.ContentHash,
		string(e.Strategy), e.Score, e.CreatedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*artex.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+extractionColumns+` FROM extractions WHERE id = ?`, id)
	e, err := scanExtraction(row)
	if err == sql.ErrNoRows {
		return nil, artex.Errorf(artex.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindExtractions retrieves extractions matching the filter, newest first.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter artex.ExtractionFilter) ([]*artex.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + extractionColumns + " FROM extractions WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite requires a LIMIT before OFFSET.
	limit := filter.Limit
	if limit <= 0 && filter.Offset > 0 {
		limit = -1
	}
	appendPagination(&query, &args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*artex.Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (*artex.Extraction, error) {
	var e artex.Extraction
	var strategy, createdAt string

	if err := row.Scan(&e.ID, &e.URL, &e.Title, &e.Author, &e.Content, &e.ContentHash,
		&strategy, &e.Score, &createdAt); err != nil {
		return nil, err
	}
	e.Strategy = artex.Strategy(strategy)

	var err error
	if e.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &e, nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mbolis/campus-footprint/records"
	"github.com/pkg/errors"
)

// RowStore keeps footprint rows in the footprint_row table, one TEXT column
// per header entry, ordered by insertion.
type RowStore struct {
	db      *sql.DB
	columns []string
}

func NewRowStore(db *sql.DB) *RowStore {
	return &RowStore{db: db, columns: records.Header}
}

// Append writes row in header order. Rows shorter than the header are
// padded with empty cells; longer rows are rejected.
func (s *RowStore) Append(ctx context.Context, row []string) error {
	if len(row) > len(s.columns) {
		return fmt.Errorf("row has %d cells, store has %d columns", len(row), len(s.columns))
	}

	args := make([]any, len(s.columns))
	for i := range args {
		if i < len(row) {
			args[i] = row[i]
		} else {
			args[i] = ""
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO footprint_row (%s) VALUES (?%s)",
		strings.Join(s.columns, ", "),
		strings.Repeat(", ?", len(s.columns)-1),
	)
	_, err := s.db.ExecContext(ctx, query, args...)
	return errors.Wrap(err, "append footprint row")
}

// ReadAll returns the header followed by every row, oldest first.
func (s *RowStore) ReadAll(ctx context.Context) ([][]string, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM footprint_row ORDER BY seq",
		strings.Join(s.columns, ", "),
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "read footprint rows")
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read footprint columns")
	}

	out := [][]string{header}
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scan footprint row")
		}

		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		out = append(out, row)
	}
	return out, errors.Wrap(rows.Err(), "iterate footprint rows")
}

package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"
)

// inList renders a parenthesised placeholder list for ids, numbering the
// placeholders from start, and returns the matching arguments.
// It must not be called with an empty slice.
func inList(start int, ids []int64) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(ids))

	b.WriteByte('(')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
		args = append(args, id)
	}
	b.WriteByte(')')

	return b.String(), args
}

// nullableID converts an optional foreign key for use as a query argument.
func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// idPtr converts a scanned nullable foreign key back to a pointer.
func idPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// closeRows closes rows and logs a failure; used in defers.
func closeRows(ctx context.Context, log *slog.Logger, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.ErrorContext(ctx, "failed to close rows", slog.String("error", err.Error()))
	}
}

package core

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotAuthenticated is returned by write operations invoked without an
// owner identity. Read operations degrade to empty results instead.
var ErrNotAuthenticated = errors.New("no authenticated owner")

// ErrNotFound marks an explicitly identified row that does not exist.
var ErrNotFound = errors.New("not found")

// SchemaError reports a storage schema out of step with the application:
// a column the code expects is absent. It is kept distinct from generic
// storage failures so the caller can show an actionable message.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch: table %q is missing an expected column; run cmd/migrate to bring the database up to date: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// undefined_column
const pgUndefinedColumn = "42703"

// classifyStoreError wraps a storage error, promoting undefined-column
// failures to SchemaError so they surface distinctly from generic failures.
func classifyStoreError(op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedColumn {
		return fmt.Errorf("%s: %w", op, &SchemaError{Table: table, Err: err})
	}
	return fmt.Errorf("%s: %w", op, err)
}

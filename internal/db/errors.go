package db

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var ErrUnavailable = errors.New("database unavailable")

type ShipmentNotFoundError struct {
	SSCC string
}

func (e *ShipmentNotFoundError) Error() string {
	return fmt.Sprintf("Shipment %s not found", e.SSCC)
}

// QueryError means the database answered but rejected the query, usually
// because the configured table or columns do not exist.
type QueryError struct {
	Code string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query rejected (%s): %v", e.Code, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// MySQL server error numbers for unknown column, unknown table, syntax error.
var mysqlQueryErrors = map[uint16]bool{1054: true, 1146: true, 1064: true}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code) {
		return fmt.Errorf("%w", &QueryError{Code: pgErr.Code, Err: err})
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && mysqlQueryErrors[myErr.Number] {
		return fmt.Errorf("%w", &QueryError{Code: fmt.Sprintf("%d", myErr.Number), Err: err})
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_ERROR {
		return fmt.Errorf("%w", &QueryError{Code: "SQLITE_ERROR", Err: err})
	}

	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

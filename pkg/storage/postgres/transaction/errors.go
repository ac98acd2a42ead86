package transaction

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violated")
	ErrConstraintViolation = errors.New("constraint violated")
	ErrNoRows              = errors.New("no rows")
)

const (
	_codeUniqueViolation   = "23505"
	_codeNotNullViolation  = "23502"
	_codeCheckViolation    = "23514"
	_codeForeignKey        = "23503"
	_codeStringTruncation  = "22001"
	_codeNumericOutOfRange = "22003"
	_codeInvalidTextFormat = "22P02"
)

// HandleError annotates err with the transaction and step it came from and,
// for known Postgres failures, with one of the package sentinels. The
// original error stays in the chain, so retry classification still works.
func HandleError(operation, step string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %s: %w: %w", operation, step, ErrNoRows, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case _codeUniqueViolation:
			return fmt.Errorf("%s: %s: %w: %w", operation, step, ErrUniqueViolation, err)
		case _codeNotNullViolation, _codeCheckViolation, _codeForeignKey,
			_codeStringTruncation, _codeNumericOutOfRange, _codeInvalidTextFormat:
			return fmt.Errorf("%s: %s: %w: %w", operation, step, ErrConstraintViolation, err)
		}
	}

	return fmt.Errorf("%s: %s: %w", operation, step, err)
}

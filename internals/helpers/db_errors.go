// file: internals/helpers/db_errors.go
package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation mengenali duplicate key dari gorm (TranslateError),
// pgx, lib/pq, dan sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || pgCode(err) == pgUniqueViolation {
		return true
	}
	// string fallback (sqlite / driver yang dibungkus)
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, pgUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || pgCode(err) == pgForeignKeyViolation {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// --- PG error mapping (pgx/libpq) ---
func MapDBError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Record not found"
	case IsUniqueViolation(err):
		return http.StatusConflict, "Duplicate data (unique violation)"
	case IsForeignKeyViolation(err):
		return http.StatusNotFound, "Referenced record not found (FK violation)"
	case pgCode(err) == pgCheckViolation || errors.Is(err, gorm.ErrCheckConstraintViolated):
		return http.StatusBadRequest, "Value rejected by check constraint"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

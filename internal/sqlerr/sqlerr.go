// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database drivers (PostgreSQL
// SQLSTATEs from pgx, extended result codes from SQLite) and converts
// them into user-friendly messages (e.g., converting a "not null
// violation" into a "Bad Request" error).
package sqlerr

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Code is a driver-independent category for a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ConnectionFailure   Code = "connection_failure"
	Busy                Code = "busy"
)

// Severity mirrors the PostgreSQL severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is the normalized form of a driver error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (Code " + string(e.Code) + ": SQLSTATE " + e.DatabaseCode + ")"
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "08000", "08003", "08006", "08001", "08004":
		return ConnectionFailure
	case "55P03", "40001", "40P01":
		return Busy
	default:
		return Other
	}
}

// MapSeverity maps a PostgreSQL severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}

// MapSQLiteCode maps a SQLite extended result code to a Code.
func MapSQLiteCode(code int) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Busy
	case sqlite3.SQLITE_CANTOPEN:
		return ConnectionFailure
	default:
		return Other
	}
}

// ConvertSQLiteError converts a modernc SQLite error into an Error.
//
// SQLite carries no structured metadata. Constraint messages name the
// column ("NOT NULL constraint failed: items.name"); otherwise the caller
// passes the table the statement ran against.
func ConvertSQLiteError(src *sqlite.Error, tableName string) *Error {
	sqlErr := &Error{
		Code:         MapSQLiteCode(src.Code()),
		Severity:     SeverityError,
		DatabaseCode: sqlite.ErrorCodeString[src.Code()],
		Message:      src.Error(),
		TableName:    tableName,
		driverErr:    src,
	}

	// The driver prefixes and suffixes the SQLite text:
	// "constraint failed: NOT NULL constraint failed: items.name (1299)".
	const marker = "constraint failed: "
	if i := strings.LastIndex(src.Error(), marker); i >= 0 {
		target := src.Error()[i+len(marker):]
		// Multi-column unique constraints list "t.a, t.b"; keep the first.
		target, _, _ = strings.Cut(target, ",")
		target, _, _ = strings.Cut(strings.TrimSpace(target), " ")
		if table, column, ok := strings.Cut(target, "."); ok {
			sqlErr.TableName = table
			sqlErr.ColumnName = column
		}
	}

	return sqlErr
}

// ErrCode reports the mapped Code for err, or Other when err carries no *Error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

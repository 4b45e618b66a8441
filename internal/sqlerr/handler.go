package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/go-items/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
)

// TablePrefix marks the table name inside a not-found error message:
//
//	fmt.Errorf("table:items: %w", sql.ErrNoRows) -> "Item not found"
const TablePrefix = "table:"

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// violation describes how one constraint Code is reported to clients.
type violation struct {
	// suffix completes the error code: ITEM_<suffix>.
	suffix string
	// override lets the message replace the generic status text.
	override bool
	message  func(e *Error) string
}

var violations = map[Code]violation{
	ForeignKeyViolation: {
		suffix: "NOT_FOUND",
		message: func(e *Error) string {
			return fmt.Sprintf("The referenced %s does not exist", entityName(e.TableName, e.ColumnName))
		},
	},
	UniqueViolation: {
		suffix:   "ALREADY_EXISTS",
		override: true,
		message: func(e *Error) string {
			what := "identifier"
			if column := extractColumnForUniqueViolation(e.ConstraintName); column != "" {
				what = humanize(column)
			}
			return fmt.Sprintf("A %s with this %s already exists", entityName(e.TableName, e.ColumnName), what)
		},
	},
	NotNullViolation: {
		suffix:   "REQUIRED",
		override: true,
		message: func(e *Error) string {
			return fmt.Sprintf("The %s is required", orDefault(humanize(e.ColumnName), "field"))
		},
	},
	CheckViolation: {
		suffix:   "INVALID",
		override: true,
		message: func(e *Error) string {
			if field := humanize(e.ColumnName); field != "" {
				return fmt.Sprintf("The %s value does not meet required conditions", field)
			}
			return "One or more values do not meet required conditions"
		},
	},
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// singular drops one trailing "s": "items" -> "item".
func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

// errorCode builds <ENTITY>_<suffix>, e.g. items + REQUIRED => ITEM_REQUIRED.
func errorCode(tableName, suffix string) string {
	return strings.ToUpper(singular(orDefault(tableName, "record"))) + "_" + suffix
}

// entityName names the record a constraint is about. A "<x>_id" column wins
// over the table name ("user_id" -> "User", "items" -> "Item").
func entityName(tableName, columnName string) string {
	if base, ok := strings.CutSuffix(strings.ToLower(columnName), "_id"); ok && base != "" {
		return humanize(base)
	}
	if tableName != "" {
		return humanize(singular(tableName))
	}
	return "record"
}

// humanize converts snake_case into Title Case: "first_name" -> "First Name".
func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueConstraintRegex = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation reads the column out of a unique
// constraint name: "unique_items_name" or "items_name_key" -> "name".
func extractColumnForUniqueViolation(constraintName string) string {
	if rest, ok := strings.CutPrefix(constraintName, "unique_"); ok && strings.Contains(rest, "_") {
		return rest[strings.LastIndex(rest, "_")+1:]
	}
	if m := uniqueConstraintRegex.FindStringSubmatch(constraintName); len(m) > 1 {
		return m[1]
	}
	return ""
}

// tableFromMessage extracts <name> from an error message containing "table:<name>:".
func tableFromMessage(errMsg string) string {
	_, rest, found := strings.Cut(errMsg, TablePrefix)
	if !found {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return strings.TrimSpace(table)
}

// HandleError converts a storage error into an *errs.HTTPError.
//
// HTTP errors pass through. Driver constraint violations become 400 with an
// ITEM_* code, no-rows becomes 404 ("Item not found" when the message
// carries a "table:items:" marker) and everything else is a 500 that hides
// the cause.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return constraintError(ConvertPgError(pgErr))
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return constraintError(ConvertSQLiteError(liteErr, tableFromMessage(err.Error())))
	}

	// pgx.ErrNoRows wraps sql.ErrNoRows; checking both keeps this driver-neutral.
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if table := tableFromMessage(err.Error()); table != "" {
			return errs.NewNotFoundError(entityName(table, "")+" not found", true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func constraintError(e *Error) error {
	v, ok := violations[e.Code]
	if !ok {
		return errs.NewInternalServerError()
	}

	code := errorCode(e.TableName, v.suffix)

	var fieldErrors []errs.FieldError
	if e.Code == NotNullViolation && e.ColumnName != "" {
		fieldErrors = []errs.FieldError{{Field: strings.ToLower(e.ColumnName), Error: "is required"}}
	}

	return errs.NewBadRequestError(v.message(e), v.override, &code, fieldErrors, nil)
}

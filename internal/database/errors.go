package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

func sqliteExtendedCode(err error) (sqlite3.ErrNoExtended, bool) {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode, true
	}
	return 0, false
}

// IsUniqueViolation reports whether err was caused by a unique constraint.
// It recognises raw postgres and SQLite driver errors as well as the gorm
// sentinel produced when a connection enables TranslateError.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	code, ok := sqliteExtendedCode(err)
	return ok && (code == sqlite3.ErrConstraintUnique || code == sqlite3.ErrConstraintPrimaryKey)
}

// IsForeignKeyViolation reports whether err was caused by a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	code, ok := sqliteExtendedCode(err)
	return ok && code == sqlite3.ErrConstraintForeignKey
}

// IsCheckViolation reports whether err was caused by a CHECK constraint.
func IsCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.CheckViolation
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	code, ok := sqliteExtendedCode(err)
	return ok && code == sqlite3.ErrConstraintCheck
}

// IsConstraintViolation reports whether err is any integrity constraint failure.
func IsConstraintViolation(err error) bool {
	return IsUniqueViolation(err) || IsForeignKeyViolation(err) || IsCheckViolation(err)
}

// ConstraintName returns the violated constraint name when the driver reports one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

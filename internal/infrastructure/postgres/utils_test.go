package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolationHelpers(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "boxes_box_code_key"}
	wrapped := fmt.Errorf("insert box: %w", pgErr)

	assert.True(t, isUniqueViolation(wrapped))
	assert.Equal(t, "boxes_box_code_key", constraintName(wrapped))

	plain := errors.New("connection reset")
	assert.False(t, isUniqueViolation(plain))
	assert.Equal(t, "", constraintName(plain))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(pgx.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)))

	badUUID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "V2"`}
	assert.True(t, isNotFound(fmt.Errorf("query: %w", badUUID)), "un id que no es UUID no puede existir")

	assert.False(t, isNotFound(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNotFound(errors.New("connection reset")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	v := nullable("abc")
	assert.Equal(t, "abc", *v)
	assert.Equal(t, "abc", deref(v))
	assert.Equal(t, "", deref(nil))
}

func TestPgxMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/x?sslmode=disable", pgxMigrateURL("postgres://u:p@db:5432/x?sslmode=disable"))
	assert.Equal(t, "pgx5://db/x", pgxMigrateURL("postgresql://db/x"))
	assert.Equal(t, "pgx5://db/x", pgxMigrateURL("pgx5://db/x"))
}

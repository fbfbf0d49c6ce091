package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: CodeUniqueViolation})
	missing := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: CodeUndefinedTable})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUndefinedTable(unique))
	assert.True(t, IsUndefinedTable(missing))
	assert.False(t, IsUniqueViolation(missing))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestInitDB_EmptyConnectionString(t *testing.T) {
	assert.Error(t, InitDB(""))
}

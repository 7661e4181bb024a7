package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaSQL_SplitsIntoStatements(t *testing.T) {
	stmts := strings.Split(schemaSQL, ";")
	require.Greater(t, len(stmts), 5)

	var tables int
	for _, stmt := range stmts {
		stmt = strings.TrimSpace(stmt)
		if strings.HasPrefix(stmt, "CREATE TABLE") {
			tables++
		}
	}
	assert.Equal(t, 7, tables)
}

func TestSchemaSQL_Idempotent(t *testing.T) {
	// Every CREATE carries IF NOT EXISTS and the config seed uses ON
	// CONFLICT, so Migrate can run on every startup.
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if strings.HasPrefix(stmt, "CREATE") {
			assert.Contains(t, stmt, "IF NOT EXISTS", stmt)
		}
		if strings.HasPrefix(stmt, "INSERT") {
			assert.Contains(t, stmt, "ON CONFLICT", stmt)
		}
	}
}

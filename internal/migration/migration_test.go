package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatements_CreateTableFirst(t *testing.T) {
	stmts := Statements()

	assert.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS analysis_reports")
	assert.Contains(t, stmts[0], "payload JSONB NOT NULL")
	for _, stmt := range stmts[1:] {
		assert.True(t, strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"), stmt)
	}
}

func TestNewRunner_Version(t *testing.T) {
	assert.Equal(t, "1.0.0", NewRunner().Version())
}

package relational

import (
	"bytes"
	"context"
	"testing"

	"pet-adoption-platform/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLogReportsFailedQueries(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.ParseLevel("info"), Format: logger.FormatJSON, Output: &buf})

	s, err := OpenSQLite(context.Background(), "file:gormlog?mode=memory&cache=shared", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Pets().GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.NotContains(t, buf.String(), "query failed", "not-found no es un error de SQL")

	require.Error(t, s.db.Exec("SELECT * FROM no_such_table").Error)
	out := buf.String()
	assert.Contains(t, out, `"message":"query failed"`)
	assert.Contains(t, out, `"component":"gorm"`)
	assert.Contains(t, out, "no_such_table")
	assert.NotContains(t, out, `"message":"query"`, "el SQL de cada query solo sale en debug")
}

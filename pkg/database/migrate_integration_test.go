//go:build integration

package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/passin/backend/pkg/database"
	"github.com/passin/backend/pkg/testutil/containers"
)

func tableExists(t *testing.T, pg *containers.PostgresContainer, name string) bool {
	t.Helper()
	var exists bool
	err := pg.Pool.QueryRow(context.Background(), `SELECT to_regclass($1) IS NOT NULL`, "public."+name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestMigrate_DownAndUpAgain(t *testing.T) {
	pg := containers.NewPostgresContainer(t)

	for _, table := range []string{"events", "attendees", "check_ins"} {
		assert.True(t, tableExists(t, pg, table), table)
	}

	// Re-applying is a no-op.
	require.NoError(t, database.Migrate(pg.DSN, zap.NewNop()))

	require.NoError(t, database.MigrateDown(pg.DSN))
	assert.False(t, tableExists(t, pg, "events"))

	require.NoError(t, database.Migrate(pg.DSN, zap.NewNop()))
	assert.True(t, tableExists(t, pg, "check_ins"))
}

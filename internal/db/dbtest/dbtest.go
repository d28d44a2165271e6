// Package dbtest opens the PostgreSQL database used by integration tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/gym-scheduler/internal/db"
)

// lockKey serialises tests from different packages sharing the database.
const lockKey = 7342001

// Open connects to TEST_DATABASE_URL, migrates and empties every table. The
// test is skipped when the variable is unset.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	ctx := context.Background()
	conn, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", lockKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", lockKey)
		conn.Close()
	})

	require.NoError(t, dbpkg.Migrate(db))
	require.NoError(t, db.Exec(`
        TRUNCATE appointments, availability_windows, trainer_services,
                 trainers, services, member_profiles, audit_logs, gym_centers
        RESTART IDENTITY CASCADE
    `).Error)

	return db
}

// Package integration runs the repositories, services and HTTP engine against
// a real PostgreSQL started with testcontainers. The schema comes from the
// embedded golang-migrate migrations.
package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/preorder/backend/internal/infrastructure/config"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/infrastructure/migration"
	"github.com/preorder/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	gormlogger "gorm.io/gorm/logger"
)

const postgresImage = "postgres:16-alpine"

// TestDB is a migrated database in a throwaway container. It embeds the
// production Database wrapper, so it also serves as the readiness Pinger.
type TestDB struct {
	*persistence.Database
}

// NewTestDB skips under -short. The container is terminated on test cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test needs docker; skipped in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("preorder_test"),
		tcpostgres.WithUsername("preorder"),
		tcpostgres.WithPassword("preorder"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start postgres container")

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port.Int(),
		User:         "preorder",
		Password:     "preorder",
		DBName:       "preorder_test",
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}

	level := gormlogger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithCustomLogger(cfg, logger.NewGormLogger(zaptest.NewLogger(t), level))
	require.NoError(t, err, "connect to postgres")
	t.Cleanup(func() { _ = db.Close() })

	migrate(t, db)
	return &TestDB{Database: db}
}

func migrate(t *testing.T, db *persistence.Database) {
	t.Helper()
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	version, dirty, err := m.Version()
	require.NoError(t, err)
	require.False(t, dirty, "schema left dirty")
	require.EqualValues(t, 2, version)
}

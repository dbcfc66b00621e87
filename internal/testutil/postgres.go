// Package testutil provides test helpers: a scripted random source and a
// PostgreSQL test container.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/bankroll/internal/config"
	"github.com/cory-johannsen/bankroll/internal/storage/postgres"
)

// HistoryDB is a throwaway run-history database in a Docker container,
// migrated to the current schema.
type HistoryDB struct {
	*postgres.History
	Config config.DatabaseConfig
}

// StartHistoryDB starts postgres:16-alpine, opens a History on it and applies
// every up migration. The container is removed when the test ends.
//
// Precondition: Docker must be available.
func StartHistoryDB(t *testing.T) *HistoryDB {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "bankroll",
				"POSTGRES_PASSWORD": "bankroll",
				"POSTGRES_DB":       "bankroll_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting history container: %v [%s]", err, time.Since(start))
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("history container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("history container port: %v", err)
	}

	cfg := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "bankroll",
		Password:        "bankroll",
		Name:            "bankroll_test",
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}
	h, err := postgres.OpenHistory(ctx, cfg)
	if err != nil {
		t.Fatalf("opening history: %v [%s]", err, time.Since(start))
	}
	t.Cleanup(h.Close)

	db := &HistoryDB{History: h, Config: cfg}
	db.migrate(t)
	t.Logf("history database ready [%s]", time.Since(start))
	return db
}

// migrate runs migrations/*.up.sql in name order.
func (db *HistoryDB) migrate(t *testing.T) {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("locating migrations directory")
	}
	files, err := filepath.Glob(filepath.Join(filepath.Dir(file), "..", "..", "migrations", "*.up.sql"))
	if err != nil || len(files) == 0 {
		t.Fatalf("finding migrations: %v (found %d)", err, len(files))
	}
	sort.Strings(files)

	for _, f := range files {
		schema, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		if _, err := db.Pool().Exec(context.Background(), string(schema)); err != nil {
			t.Fatalf("applying %s: %v", filepath.Base(f), err)
		}
	}
}

package pg

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/itchan-dev/chatkit/shared/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var container *postgres.PostgresContainer
	testDB, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, testDB, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*DB, *postgres.PostgresContainer) {
	dbName := "chatkit"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// The server restarts once after init, so readiness is logged twice.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	cfg := &config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName}
	db, err := Open(ctx, cfg, LightweightConnectionConfig())
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return db, container
}

func teardown(ctx context.Context, db *DB, container *postgres.PostgresContainer) {
	if err := db.Close(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("integration test needs a postgres container (run without -short)")
	}
}

// createTable makes a fresh table for one test and drops it afterwards.
func createTable(t *testing.T, name string) string {
	t.Helper()
	ctx := context.Background()
	table := QuoteIdentifier(name)
	_, err := testDB.Execute(ctx, "DROP TABLE IF EXISTS "+table)
	require.NoError(t, err)
	status, err := testDB.Execute(ctx, "CREATE TABLE "+table+" (id BIGINT PRIMARY KEY, name TEXT NOT NULL, spoiler BOOLEAN NOT NULL DEFAULT false)")
	require.NoError(t, err)
	assert.Equal(t, "CREATE", status)
	t.Cleanup(func() {
		testDB.Execute(context.Background(), "DROP TABLE IF EXISTS "+table)
	})
	return table
}

func TestDB_ExecuteAndFetch(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	table := createTable(t, "files_fetch")

	status, err := testDB.Execute(ctx, "INSERT INTO "+table+" (id, name) VALUES ($1, $2)", 1, "a.png")
	require.NoError(t, err)
	assert.Equal(t, "INSERT 0 1", status)

	status, err = testDB.ExecuteMany(ctx, "INSERT INTO "+table+" (id, name, spoiler) VALUES ($1, $2, $3)", [][]any{
		{2, "b.png", true},
		{3, "c.pdf", false},
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT 0 1", status)

	records, err := testDB.Fetch(ctx, "SELECT id, name, spoiler FROM "+table+" ORDER BY id")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "name", "spoiler"}, records[0].Keys())
	assert.Equal(t, int64(1), records[0].Index(0))
	name, _ := records[1].Get("name")
	assert.Equal(t, "b.png", name)
	spoiler, _ := records[1].Get("spoiler")
	assert.Equal(t, true, spoiler)

	status, err = testDB.Execute(ctx, "UPDATE "+table+" SET spoiler = true WHERE id <> $1", 2)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE 2", status)
}

func TestDB_FetchEmpty(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	table := createTable(t, "files_empty")

	records, err := testDB.Fetch(ctx, "SELECT * FROM "+table)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	row, err := testDB.FetchRow(ctx, "SELECT * FROM "+table+" WHERE id = $1", 42)
	require.NoError(t, err)
	assert.Nil(t, row)

	val, err := testDB.FetchVal(ctx, "SELECT name FROM "+table+" WHERE id = $1", 42)
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestDB_FetchRowAndVal(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	table := createTable(t, "files_row")
	_, err := testDB.ExecuteMany(ctx, "INSERT INTO "+table+" (id, name) VALUES ($1, $2)", [][]any{{1, "x"}, {2, "y"}})
	require.NoError(t, err)

	row, err := testDB.FetchRow(ctx, "SELECT id, name FROM "+table+" ORDER BY id DESC")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, map[string]any{"id": int64(2), "name": "y"}, row.Map())

	count, err := testDB.FetchVal(ctx, "SELECT count(*) FROM "+table)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDB_ExecuteManyRollsBack(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	table := createTable(t, "files_rollback")

	_, err := testDB.ExecuteMany(ctx, "INSERT INTO "+table+" (id, name) VALUES ($1, $2)", [][]any{
		{1, "first"},
		{1, "duplicate"},
	})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.ErrorContains(t, err, "argument set 1")

	count, err := testDB.FetchVal(ctx, "SELECT count(*) FROM "+table)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDB_ExecuteManyEmpty(t *testing.T) {
	requireDB(t)
	status, err := testDB.ExecuteMany(context.Background(), "INSERT INTO nowhere VALUES ($1)", nil)
	require.NoError(t, err)
	assert.Equal(t, "", status)
}

func TestDB_InTxNested(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	table := createTable(t, "files_tx")

	err := testDB.InTx(ctx, func(tx *DB) error {
		if _, err := tx.Execute(ctx, "INSERT INTO "+table+" (id, name) VALUES (1, 'a')"); err != nil {
			return err
		}
		// ExecuteMany on a transaction-bound DB joins the outer transaction
		_, err := tx.ExecuteMany(ctx, "INSERT INTO "+table+" (id, name) VALUES ($1, $2)", [][]any{{2, "b"}})
		return err
	})
	require.NoError(t, err)

	count, err := testDB.FetchVal(ctx, "SELECT count(*) FROM "+table)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDB_ErrorsAreCounted(t *testing.T) {
	requireDB(t)
	before := testutil.ToFloat64(dbQueriesTotal.WithLabelValues("fetch", "error"))

	_, err := testDB.Fetch(context.Background(), "SELECT * FROM table_that_does_not_exist")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch")

	after := testutil.ToFloat64(dbQueriesTotal.WithLabelValues("fetch", "error"))
	assert.Equal(t, before+1, after)
}

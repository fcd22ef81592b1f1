package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE items (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM items`).Scan(&n))
	return n
}

func TestWithTx_Commit(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO items(id) VALUES ('a'), ('b')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(id) VALUES ('a')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, count(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO items(id) VALUES ('a')`)
			panic("kaboom")
		})
	})
	assert.Equal(t, 0, count(t, db))
}

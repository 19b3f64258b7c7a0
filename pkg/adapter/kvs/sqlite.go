package kvs

import (
	"context"
	"database/sql"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/utils/clock"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a file-backed KeyValueStore for deployments without the platform
// key/value service. Expiry is stored as a unix timestamp and evaluated on
// read; Cleanup removes expired rows in bulk.
type SQLite struct {
	db *sql.DB
}

var _ interfaces.KeyValueStore = &SQLite{}

func NewSQLite(path string) (*SQLite, error) {
	dsn := "file:" + path + "?_journal_mode=WAL&_synchronous=NORMAL"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite store", goerr.V("path", path))
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		expires_at INTEGER
	)`); err != nil {
		return nil, goerr.Wrap(err, "failed to create kv table")
	}

	return &SQLite{db: db}, nil
}

func (x *SQLite) Close() error {
	return x.db.Close()
}

func (x *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := x.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?, ?, NULL)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = NULL`,
		key, value)
	if err != nil {
		return goerr.Wrap(err, "failed to write kv entry", goerr.V("key", key))
	}
	return nil
}

func (x *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	var expiresAt sql.NullInt64
	err := x.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM kv WHERE key = ?`, key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to read kv entry", goerr.V("key", key))
	}

	if expiresAt.Valid && clock.Now(ctx).Unix() >= expiresAt.Int64 {
		return "", false, nil
	}
	return value, true, nil
}

func (x *SQLite) Expire(ctx context.Context, key string, ttl time.Duration) error {
	deadline := clock.Now(ctx).Add(ttl).Unix()
	_, err := x.db.ExecContext(ctx,
		`UPDATE kv SET expires_at = ? WHERE key = ?`, deadline, key)
	if err != nil {
		return goerr.Wrap(err, "failed to set kv expiry", goerr.V("key", key))
	}
	return nil
}

// Cleanup deletes rows past their expiry. Run periodically; reads are
// already expiry-safe without it.
func (x *SQLite) Cleanup(ctx context.Context) (int64, error) {
	res, err := x.db.ExecContext(ctx,
		`DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?`,
		clock.Now(ctx).Unix())
	if err != nil {
		return 0, goerr.Wrap(err, "failed to clean up expired kv entries")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

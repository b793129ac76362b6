// Package db provides SQLite connectivity helpers and migration support
// for the ledger store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Hardened SQLite DSN parameters.
const (
	busyTimeoutMillis = "5000"
	synchronousMode   = "NORMAL"
	journalMode       = "WAL"
)

// Open opens a *sql.DB pool for the given SQLite file path.
//
// mode controls write-safety and pool sizing:
//   - "write": MaxOpenConns=1 and _txlock=immediate, so balance updates and
//     inserts serialize instead of racing into SQLITE_BUSY.
//   - "read":  MaxOpenConns=maxOpen (0 defaults to 4) for concurrent reads.
//
// Both modes use WAL, busy_timeout=5000ms, synchronous=NORMAL, and enforce
// foreign keys.
func Open(path string, mode string, maxOpen int) (*sql.DB, error) {
	if mode != "read" && mode != "write" {
		return nil, fmt.Errorf("invalid SQLite mode %q: must be \"read\" or \"write\"", mode)
	}

	pool, err := sql.Open("sqlite3", buildDSN(path, mode))
	if err != nil {
		return nil, fmt.Errorf("open sqlite (%s): %w", mode, err)
	}

	switch mode {
	case "write":
		pool.SetMaxOpenConns(1)
		pool.SetMaxIdleConns(1)
	case "read":
		if maxOpen <= 0 {
			maxOpen = 4
		}
		pool.SetMaxOpenConns(maxOpen)
		pool.SetMaxIdleConns(maxOpen)
	}
	pool.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping sqlite (%s): %w", mode, err)
	}

	return pool, nil
}

// OpenPair opens a write pool (MaxOpenConns=1) and a read pool for the same
// SQLite file. readMaxOpen of 0 defaults to 4.
func OpenPair(path string, readMaxOpen int) (writeDB, readDB *sql.DB, err error) {
	writeDB, err = Open(path, "write", 0)
	if err != nil {
		return nil, nil, err
	}

	readDB, err = Open(path, "read", readMaxOpen)
	if err != nil {
		_ = writeDB.Close()
		return nil, nil, err
	}

	return writeDB, readDB, nil
}

func buildDSN(path string, mode string) string {
	params := url.Values{}
	params.Set("_journal_mode", journalMode)
	params.Set("_busy_timeout", busyTimeoutMillis)
	params.Set("_synchronous", synchronousMode)
	params.Set("_foreign_keys", "on")

	if mode == "write" {
		params.Set("_txlock", "immediate")
	}

	return path + "?" + params.Encode()
}

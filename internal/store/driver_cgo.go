//go:build cgo_sqlite

// CGO SQLite driver, used when built with -tags cgo_sqlite.
// Requires CGO_ENABLED=1.
package store

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)

const (
	driverName = "sqlite3"
	driverType = "cgo"
)

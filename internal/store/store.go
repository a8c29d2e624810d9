// Package store exports parsed documents to SQLite, one row per node.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	"github.com/FocuswithJustin/usfmkit/core/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id          INTEGER PRIMARY KEY,
	path        TEXT NOT NULL UNIQUE,
	fingerprint TEXT NOT NULL,
	exported_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS nodes (
	document_id INTEGER NOT NULL REFERENCES documents(id),
	seq         INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	book        TEXT,
	section     INTEGER,
	chapter     INTEGER,
	verse_start INTEGER,
	verse_end   INTEGER,
	content     TEXT,
	heading     INTEGER,
	align       TEXT,
	PRIMARY KEY (document_id, seq)
);
CREATE INDEX IF NOT EXISTS nodes_ref ON nodes (book, chapter, verse_start);
`

// DriverName returns the database/sql driver in use.
func DriverName() string { return driverName }

// DriverType returns "purego" or "cgo".
func DriverType() string { return driverType }

// Open opens the database at dsn and creates the schema if needed.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.NewIO("open", dsn, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.NewIO("create schema", dsn, err)
	}
	return db, nil
}

// Export opens dsn and writes nodes as the document at path. See Write.
func Export(ctx context.Context, dsn, path string, nodes []ast.Node) error {
	db, err := Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return Write(ctx, db, path, nodes)
}

// Write stores nodes as the document at path in one transaction, replacing
// an earlier export of the same path.
func Write(ctx context.Context, db *sql.DB, path string, nodes []ast.Node) error {
	fingerprint, err := ast.Fingerprint(nodes)
	if err != nil {
		return err
	}
	rows, err := buildRows(nodes)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin export")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM nodes WHERE document_id IN (SELECT id FROM documents WHERE path = ?)`, path); err != nil {
		return errors.Wrap(err, "delete old nodes")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
		return errors.Wrap(err, "delete old document")
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (path, fingerprint, exported_at) VALUES (?, ?, ?)`,
		path, fingerprint, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.Wrap(err, "insert document")
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "document id")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes
		(document_id, seq, kind, book, section, chapter, verse_start, verse_end, content, heading, align)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare node insert")
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, docID, r.seq, r.kind, r.book, r.section, r.chapter,
			r.verseStart, r.verseEnd, r.content, r.heading, r.align); err != nil {
			return errors.Wrapf(err, "insert node %d", r.seq)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit export")
	}
	return nil
}

// Fingerprint returns the fingerprint stored for path.
func Fingerprint(ctx context.Context, db *sql.DB, path string) (string, error) {
	var fp string
	err := db.QueryRowContext(ctx, `SELECT fingerprint FROM documents WHERE path = ?`, path).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.NewNotFound("document", path)
	}
	if err != nil {
		return "", errors.Wrap(err, "query fingerprint")
	}
	return fp, nil
}

// Read returns the nodes stored for path, in order.
func Read(ctx context.Context, db *sql.DB, path string) ([]ast.Node, error) {
	rows, err := db.QueryContext(ctx, `SELECT n.seq, n.kind, n.book, n.section, n.chapter, n.verse_start,
		n.verse_end, n.content, n.heading, n.align
		FROM nodes n JOIN documents d ON d.id = n.document_id
		WHERE d.path = ? ORDER BY n.seq`, path)
	if err != nil {
		return nil, errors.Wrap(err, "query nodes")
	}
	defer rows.Close()

	var nodes []ast.Node
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.seq, &r.kind, &r.book, &r.section, &r.chapter, &r.verseStart,
			&r.verseEnd, &r.content, &r.heading, &r.align); err != nil {
			return nil, errors.Wrap(err, "scan node")
		}
		n, err := r.node()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "read nodes")
	}
	if nodes == nil {
		if _, err := Fingerprint(ctx, db, path); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	usfmerrors "github.com/FocuswithJustin/usfmkit/core/errors"
	"github.com/FocuswithJustin/usfmkit/core/usfm"
)

const psalm = `\id PSA
\ts\*
\c 1
\s1 The Way of the Righteous
\q1
\v 1 Blessed is the man
\q2 who does not walk in the counsel of the wicked,
\v 2-3 But his delight is in the law of the \nd LORD\nd*.
\qr Selah
`

func openTemp(t *testing.T) (string, context.Context) {
	t.Helper()
	return filepath.Join(t.TempDir(), "export.db"), context.Background()
}

func TestExportRoundTrip(t *testing.T) {
	dsn, ctx := openTemp(t)
	nodes := usfm.Parse(psalm).Canonical()

	if err := Export(ctx, dsn, "psa.usfm", nodes); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer db.Close()

	got, err := Read(ctx, db, "psa.usfm")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if diff := cmp.Diff(nodes, got); diff != "" {
		t.Errorf("Read() mismatch (-exported +read):\n%s", diff)
	}

	fp, err := Fingerprint(ctx, db, "psa.usfm")
	if err != nil {
		t.Fatalf("Fingerprint() error: %v", err)
	}
	want, _ := ast.Fingerprint(nodes)
	if fp != want {
		t.Errorf("stored fingerprint = %s, want %s", fp, want)
	}
}

func TestExportReferenceColumns(t *testing.T) {
	dsn, ctx := openTemp(t)
	if err := Export(ctx, dsn, "psa.usfm", usfm.Parse(psalm).Canonical()); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var content string
	err = db.QueryRowContext(ctx, `SELECT group_concat(content, '') FROM (
		SELECT content FROM nodes
		WHERE kind = 'text' AND book = 'PSA' AND section = 1 AND chapter = 1
		AND verse_start <= 3 AND verse_end >= 3
		ORDER BY seq)`).Scan(&content)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if want := "But his delight is in the law of the LORD. Selah"; content != want {
		t.Errorf("verse 3 text = %q, want %q", content, want)
	}

	var headings int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM nodes WHERE heading = 3`).Scan(&headings); err != nil {
		t.Fatal(err)
	}
	if headings != 1 {
		t.Errorf("found %d h3 rows, want 1", headings)
	}
}

func TestExportReplaces(t *testing.T) {
	dsn, ctx := openTemp(t)
	first := []ast.Node{ast.Book{Name: "GEN"}, ast.Chapter{Number: 1}}
	second := []ast.Node{ast.Book{Name: "GEN"}}

	if err := Export(ctx, dsn, "gen.usfm", first); err != nil {
		t.Fatal(err)
	}
	if err := Export(ctx, dsn, "gen.usfm", second); err != nil {
		t.Fatal(err)
	}
	if err := Export(ctx, dsn, "exo.usfm", first); err != nil {
		t.Fatal(err)
	}

	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	got, err := Read(ctx, db, "gen.usfm")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("Read(gen) mismatch (-want +got):\n%s", diff)
	}

	var docs int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&docs); err != nil {
		t.Fatal(err)
	}
	if docs != 2 {
		t.Errorf("documents = %d, want 2", docs)
	}
}

func TestReadMissing(t *testing.T) {
	dsn, ctx := openTemp(t)
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := Read(ctx, db, "nope.usfm"); !errors.Is(err, usfmerrors.ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

type foreignNode struct{ ast.Node }

func TestExportUnknownNode(t *testing.T) {
	dsn, ctx := openTemp(t)
	err := Export(ctx, dsn, "x.usfm", []ast.Node{ast.Book{Name: "GEN"}, foreignNode{}})
	if err == nil {
		t.Fatal("Export() error = nil")
	}
}

func TestDriver(t *testing.T) {
	if DriverName() == "" || DriverType() == "" {
		t.Errorf("driver = %q/%q", DriverName(), DriverType())
	}
}

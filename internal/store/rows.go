package store

import (
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	"github.com/FocuswithJustin/usfmkit/core/errors"
)

// row is one nodes table row. book, section, chapter and verse hold the
// reference each node falls under, so text can be queried by passage.
type row struct {
	seq        int
	kind       string
	book       sql.NullString
	section    sql.NullInt64
	chapter    sql.NullInt64
	verseStart sql.NullInt64
	verseEnd   sql.NullInt64
	content    sql.NullString
	heading    sql.NullInt64
	align      sql.NullString
}

// rowBuilder tracks the enclosing reference while walking nodes.
type rowBuilder struct {
	rows    []row
	book    sql.NullString
	section sql.NullInt64
	chapter sql.NullInt64
	start   sql.NullInt64
	end     sql.NullInt64
}

func buildRows(nodes []ast.Node) ([]row, error) {
	b := &rowBuilder{}
	if err := ast.Walk(b, nodes); err != nil {
		return nil, err
	}
	return b.rows, nil
}

func nullInt(n int) sql.NullInt64 { return sql.NullInt64{Int64: int64(n), Valid: true} }

func nullString(s string) sql.NullString { return sql.NullString{String: s, Valid: s != ""} }

func (b *rowBuilder) add(i int, kind string) *row {
	b.rows = append(b.rows, row{
		seq:        i,
		kind:       kind,
		book:       b.book,
		section:    b.section,
		chapter:    b.chapter,
		verseStart: b.start,
		verseEnd:   b.end,
	})
	return &b.rows[len(b.rows)-1]
}

func (b *rowBuilder) Book(n ast.Book, i int) error {
	b.book = sql.NullString{String: n.Name, Valid: true}
	b.section, b.chapter, b.start, b.end = sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{}
	b.add(i, "book")
	return nil
}

func (b *rowBuilder) Section(n ast.Section, i int) error {
	b.section = nullInt(n.Index)
	b.add(i, "section")
	return nil
}

func (b *rowBuilder) Chapter(n ast.Chapter, i int) error {
	b.chapter = nullInt(n.Number)
	b.start, b.end = sql.NullInt64{}, sql.NullInt64{}
	b.add(i, "chapter")
	return nil
}

func (b *rowBuilder) Verse(n ast.Verse, i int) error {
	b.start, b.end = nullInt(n.Start), nullInt(n.End)
	b.add(i, "verse")
	return nil
}

func (b *rowBuilder) Text(n ast.Text, i int) error {
	r := b.add(i, "text")
	r.content = sql.NullString{String: n.Content, Valid: true}
	if n.Heading != 0 {
		r.heading = nullInt(int(n.Heading))
	}
	r.align = nullString(string(n.Align))
	return nil
}

func (b *rowBuilder) Break(n ast.Break, i int) error {
	b.add(i, "break").content = sql.NullString{String: string(n.Kind), Valid: true}
	return nil
}

// node rebuilds the ast node a row was written from.
func (r row) node() (ast.Node, error) {
	switch r.kind {
	case "book":
		return ast.Book{Name: r.book.String}, nil
	case "section":
		return ast.Section{Index: int(r.section.Int64)}, nil
	case "chapter":
		return ast.Chapter{Number: int(r.chapter.Int64)}, nil
	case "verse":
		return ast.Verse{Start: int(r.verseStart.Int64), End: int(r.verseEnd.Int64)}, nil
	case "text":
		return ast.Text{
			Content: r.content.String,
			Heading: ast.HeadingLevel(r.heading.Int64),
			Align:   ast.Align(r.align.String),
		}, nil
	case "break":
		return ast.Break{Kind: ast.BreakKind(r.content.String)}, nil
	}
	return nil, errors.NewUnsupported("node kind", fmt.Sprintf("%q at seq %d", r.kind, r.seq))
}

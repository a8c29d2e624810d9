package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FocuswithJustin/usfmkit/core/usfm"
)

func TestLocate(t *testing.T) {
	src := "\\id GEN\n\\c 1\n“\\v x"
	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{7, 1, 8},
		{8, 2, 1},
		{13, 3, 1},
		{16, 3, 2}, // after a three-byte rune
		{-5, 1, 1},
		{1000, 3, 6},
	}
	for _, tt := range tests {
		line, col := Locate(src, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Locate(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestMessage(t *testing.T) {
	kinds := []usfm.ErrorKind{
		usfm.ExpectedSelfClose,
		usfm.ExpectedAttributeValue,
		usfm.ExpectedNumber,
		usfm.InvalidHeadingLevel,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		m := Message(k)
		if m == "" || m == k.String() || seen[m] {
			t.Errorf("Message(%s) = %q", k, m)
		}
		seen[m] = true
	}
	if got := Message(usfm.ErrorKind(99)); got != "ErrorKind(99)" {
		t.Errorf("Message(99) = %q", got)
	}
}

func TestPrint(t *testing.T) {
	src := "\\id GEN\n\\c 1\n\t\\v\\p"
	doc := usfm.Parse(src)
	if len(doc.Errors) != 1 {
		t.Fatalf("Parse() errors = %v, want one", doc.Errors)
	}

	var buf bytes.Buffer
	p := &Printer{W: &buf}
	n, err := p.PrintAll("gen.usfm", src, doc)
	if err != nil || n != 1 {
		t.Fatalf("PrintAll() = %d, %v", n, err)
	}
	want := "gen.usfm:3:2: error: expected a chapter or verse number\n" +
		"     \\v\\p\n" +
		"     ^\n"
	if buf.String() != want {
		t.Errorf("Print() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrintOpening(t *testing.T) {
	src := "\\v 1 \\qt-s\n\\qt*"
	doc := usfm.Parse(src)
	if len(doc.Errors) != 1 {
		t.Fatalf("Parse() errors = %v, want one", doc.Errors)
	}
	var buf bytes.Buffer
	if err := (&Printer{W: &buf}).Print("a.usfm", src, doc.Errors[0]); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "a.usfm:2:1: error: milestone is not closed with \\* (opened at 1:6)\n") {
		t.Errorf("Print() = %q", buf.String())
	}
}

func TestPrintTruncates(t *testing.T) {
	src := "\\c " + strings.Repeat("x", 200)
	doc := usfm.Parse(src)
	var buf bytes.Buffer
	if err := (&Printer{W: &buf, Width: 20}).Print("long.usfm", src, doc.Errors[0]); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if got := strings.TrimPrefix(lines[1], "    "); got != "\\c xxxxxxxxxxxxxxxx…" {
		t.Errorf("source line = %q", got)
	}
}

func TestPrintColor(t *testing.T) {
	src := `\c x`
	doc := usfm.Parse(src)
	var plain, colored bytes.Buffer
	(&Printer{W: &plain}).Print("c.usfm", src, doc.Errors[0])
	(&Printer{W: &colored, Color: true}).Print("c.usfm", src, doc.Errors[0])

	if strings.Contains(plain.String(), "\033[") {
		t.Errorf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\033[31m") {
		t.Errorf("colored output has no red: %q", colored.String())
	}
}

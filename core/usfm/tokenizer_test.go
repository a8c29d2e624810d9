package usfm

import (
	"strings"
	"testing"
)

type wantToken struct {
	kind Kind
	text string
}

func expectTokens(t *testing.T, src string, want []wantToken) {
	t.Helper()
	want = append(want, wantToken{kind: KindEOF})

	tokens := Tokenize(src)
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize(%q) returned %d tokens %v, want %d", src, len(tokens), tokens, len(want))
	}
	for i, tok := range tokens {
		got := src[tok.Start:tok.End]
		if tok.Kind != want[i].kind || got != want[i].text {
			t.Errorf("token %d = %s %q, want %s %q", i, tok.Kind, got, want[i].kind, want[i].text)
		}
	}
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []wantToken
	}{
		{
			name: "single simple tag",
			src:  `\id GEN EN_ULT en_English_ltr`,
			want: []wantToken{
				{KindTagOpen, `\id`},
				{KindText, "GEN EN_ULT en_English_ltr"},
			},
		},
		{
			name: "two simple tags",
			src:  "\\id GEN EN_ULT en_English_ltr\n\\usfm 3.0",
			want: []wantToken{
				{KindTagOpen, `\id`},
				{KindText, "GEN EN_ULT en_English_ltr\n"},
				{KindTagOpen, `\usfm`},
				{KindText, "3.0"},
			},
		},
		{
			name: "single attribute tag",
			src:  `\word hello |   x-occurences  =   "1"\word*`,
			want: []wantToken{
				{KindTagOpen, `\word`},
				{KindText, "hello "},
				{KindAttributeStart, "|"},
				{KindID, "x-occurences"},
				{KindKVSep, "="},
				{KindID, "1"},
				{KindTagClose, `\word*`},
			},
		},
		{
			name: "empty attribute tag",
			src:  `\word hello|\word*`,
			want: []wantToken{
				{KindTagOpen, `\word`},
				{KindText, "hello"},
				{KindAttributeStart, "|"},
				{KindTagClose, `\word*`},
			},
		},
		{
			name: "attributes with spaces",
			src:  `\zaln-s|x-lemma="a b" x-abc="123" \*\zaln-e\*`,
			want: []wantToken{
				{KindTagOpen, `\zaln-s`},
				{KindAttributeStart, "|"},
				{KindID, "x-lemma"},
				{KindKVSep, "="},
				{KindID, "a b"},
				{KindID, "x-abc"},
				{KindKVSep, "="},
				{KindID, "123"},
				{KindTagClose, `\*`},
				{KindTagOpen, `\zaln-e`},
				{KindTagClose, `\*`},
			},
		},
		{
			name: "milestones",
			src:  `\v 1 \zaln-s\*\w In\w*\zaln-e\*there`,
			want: []wantToken{
				{KindTagOpen, `\v`},
				{KindText, "1 "},
				{KindTagOpen, `\zaln-s`},
				{KindTagClose, `\*`},
				{KindTagOpen, `\w`},
				{KindText, "In"},
				{KindTagClose, `\w*`},
				{KindTagOpen, `\zaln-e`},
				{KindTagClose, `\*`},
				{KindText, "there"},
			},
		},
		{
			name: "self closing tag",
			src:  `\zaln-s hello\*`,
			want: []wantToken{
				{KindTagOpen, `\zaln-s`},
				{KindText, "hello"},
				{KindTagClose, `\*`},
			},
		},
		{
			name: "line breaks",
			src:  "\\v 1 \\w In\\w*\n\\w the\\w* 012\n\\w beginning\\w*.",
			want: []wantToken{
				{KindTagOpen, `\v`},
				{KindText, "1 "},
				{KindTagOpen, `\w`},
				{KindText, "In"},
				{KindTagClose, `\w*`},
				{KindText, "\n"},
				{KindTagOpen, `\w`},
				{KindText, "the"},
				{KindTagClose, `\w*`},
				{KindText, " 012\n"},
				{KindTagOpen, `\w`},
				{KindText, "beginning"},
				{KindTagClose, `\w*`},
				{KindText, "."},
			},
		},
		{
			name: "whitespace after marker is bounded",
			src:  "\\p  \n  \nasdf\n\n\n",
			want: []wantToken{
				{KindTagOpen, `\p`},
				{KindText, "\n  \nasdf\n\n\n"},
			},
		},
		{
			name: "escaped quote in value",
			src:  `|lemma="say \"hi\"" x`,
			want: []wantToken{
				{KindAttributeStart, "|"},
				{KindID, "lemma"},
				{KindKVSep, "="},
				{KindID, `say \"hi\"`},
				{KindID, "x"},
			},
		},
		{
			name: "unterminated quote runs to end",
			src:  `\w x|lemma="abc`,
			want: []wantToken{
				{KindTagOpen, `\w`},
				{KindText, "x"},
				{KindAttributeStart, "|"},
				{KindID, "lemma"},
				{KindKVSep, "="},
				{KindID, "abc"},
			},
		},
		{
			name: "lone backslash",
			src:  `a\`,
			want: []wantToken{
				{KindText, "a"},
				{KindTagOpen, `\`},
			},
		},
		{
			name: "empty input",
			src:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.src, tt.want)
		})
	}
}

func TestTokenizerPeek(t *testing.T) {
	src := `\w hello|lemma="x"\w*`
	tz := NewTokenizer(src)
	for {
		peeked := tz.Peek()
		again := tz.Peek()
		if peeked != again {
			t.Fatalf("Peek() not stable: %v then %v", peeked, again)
		}
		pos := tz.Pos()
		next := tz.Next()
		if next != peeked {
			t.Fatalf("Next() at %d = %v, Peek() said %v", pos, next, peeked)
		}
		if next.Kind == KindEOF {
			break
		}
	}
}

func TestTokenizerEOFRepeats(t *testing.T) {
	tz := NewTokenizer(`\p`)
	tz.Next()
	for i := 0; i < 3; i++ {
		tok := tz.Next()
		if tok.Kind != KindEOF || tok.Start != 2 || tok.End != 2 {
			t.Fatalf("call %d after end = %v, want eof[2:2]", i, tok)
		}
	}
}

func TestTokenizerSeek(t *testing.T) {
	tz := NewTokenizer("abc")
	tz.Seek(10)
	if tz.Pos() != 3 {
		t.Errorf("Seek(10) pos = %d, want 3", tz.Pos())
	}
	tz.Seek(-1)
	if tz.Pos() != 0 {
		t.Errorf("Seek(-1) pos = %d, want 0", tz.Pos())
	}
}

// checkRoundTrip verifies that the tokens of src, together with the
// whitespace and quotes skipped between them, rebuild src exactly.
func checkRoundTrip(t *testing.T, src string) {
	t.Helper()
	var b strings.Builder
	prev := 0
	for _, tok := range Tokenize(src) {
		if tok.Start < prev || tok.End < tok.Start || tok.End > len(src) {
			t.Fatalf("token %v out of order (prev end %d, len %d)", tok, prev, len(src))
		}
		gap := src[prev:tok.Start]
		if strings.Trim(gap, " \t\r\n\"") != "" {
			t.Fatalf("skipped %q before %v, want only whitespace or quotes", gap, tok)
		}
		b.WriteString(gap)
		b.WriteString(src[tok.Start:tok.End])
		prev = tok.End
	}
	b.WriteString(src[prev:])
	if prev != len(src) {
		if strings.Trim(src[prev:], " \t\r\n\"") != "" {
			t.Fatalf("tail %q not covered by tokens", src[prev:])
		}
	}
	if b.String() != src {
		t.Fatalf("round trip = %q, want %q", b.String(), src)
	}
}

func TestTokenizerRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		`\id GEN`,
		"\\p  \n  \nasdf\n\n\n",
		`\zaln-s|x-lemma="a b" x-abc="123" \*\zaln-e\*`,
		`\w x|lemma="abc`,
		`\w x|lemma = "a" ` + "\t\n" + `strong=H1 \w*`,
		`|||===   "" x`,
		`\\\\***`,
	}
	for _, src := range inputs {
		checkRoundTrip(t, src)
	}
}

func BenchmarkTokenize(b *testing.B) {
	src := strings.Repeat("\\v 1 \\w In|lemma=\"x\"\\w* the beginning\n", 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tokenize(src)
	}
}

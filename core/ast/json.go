package ast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/FocuswithJustin/usfmkit/core/errors"
)

// Each node marshals to a single-key object named after its type, so a dump
// reads like {"verse":1} {"text":"In the beginning"} {"break":"line"}.

type verseRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type textJSON struct {
	Text  string `json:"text"`
	Tag   string `json:"tag,omitempty"`
	Align Align  `json:"align,omitempty"`
}

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

func (b Book) MarshalJSON() ([]byte, error) {
	return jsonMarshal(map[string]string{"book": b.Name})
}

func (s Section) MarshalJSON() ([]byte, error) {
	return jsonMarshal(map[string]int{"section": s.Index})
}

func (c Chapter) MarshalJSON() ([]byte, error) {
	return jsonMarshal(map[string]int{"chapter": c.Number})
}

func (v Verse) MarshalJSON() ([]byte, error) {
	if v.IsRange() {
		return jsonMarshal(map[string]verseRange{"verse": {Start: v.Start, End: v.End}})
	}
	return jsonMarshal(map[string]int{"verse": v.Start})
}

func (t Text) MarshalJSON() ([]byte, error) {
	return jsonMarshal(textJSON{Text: t.Content, Tag: t.Heading.Tag(), Align: t.Align})
}

func (b Break) MarshalJSON() ([]byte, error) {
	return jsonMarshal(map[string]BreakKind{"break": b.Kind})
}

// UnmarshalNode decodes one node previously produced by json.Marshal.
func UnmarshalNode(data []byte) (Node, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(err, "decode node")
	}

	if raw, ok := fields["book"]; ok {
		var b Book
		if err := decodeField(raw, &b.Name); err != nil {
			return nil, err
		}
		return b, nil
	}
	if raw, ok := fields["section"]; ok {
		var s Section
		if err := decodeField(raw, &s.Index); err != nil {
			return nil, err
		}
		return s, nil
	}
	if raw, ok := fields["chapter"]; ok {
		var c Chapter
		if err := decodeField(raw, &c.Number); err != nil {
			return nil, err
		}
		return c, nil
	}
	if raw, ok := fields["verse"]; ok {
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return SingleVerse(n), nil
		}
		var r verseRange
		if err := decodeField(raw, &r); err != nil {
			return nil, err
		}
		if r.End < r.Start {
			return nil, errors.NewValidation("verse", fmt.Sprintf("range end %d before start %d", r.End, r.Start))
		}
		return Verse{Start: r.Start, End: r.End}, nil
	}
	if _, ok := fields["text"]; ok {
		var tj textJSON
		if err := json.Unmarshal(data, &tj); err != nil {
			return nil, errors.Wrap(err, "decode text node")
		}
		t := Text{Content: tj.Text, Align: tj.Align}
		if tj.Tag != "" {
			h, err := parseHeadingTag(tj.Tag)
			if err != nil {
				return nil, errors.NewValidation("tag", err.Error())
			}
			t.Heading = h
		}
		return t, nil
	}
	if raw, ok := fields["break"]; ok {
		var b Break
		if err := decodeField(raw, &b.Kind); err != nil {
			return nil, err
		}
		switch b.Kind {
		case BreakParagraph, BreakBlock, BreakLine:
			return b, nil
		}
		return nil, errors.NewValidation("break", fmt.Sprintf("unknown break kind %q", b.Kind))
	}

	return nil, errors.NewUnsupported("node", string(data))
}

func decodeField(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "decode node field")
	}
	return nil
}

// WriteJSONLines writes one JSON object per node, each on its own line.
func WriteJSONLines(w io.Writer, nodes []Node) error {
	bw := bufio.NewWriter(w)
	for i, n := range nodes {
		data, err := jsonMarshal(n)
		if err != nil {
			return errors.Wrapf(err, "marshal node %d", i)
		}
		bw.Write(data)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Package usfm parses Unified Standard Format Markers (USFM) scripture text
// into the flat node sequence of package ast.
//
// The pipeline has three stages:
//
//   - Tokenizer splits the buffer into spans: markers, text, and the pieces
//     of attribute lists ("|", keys, "=", values).
//   - Classify turns marker text into a Tag and answers whether it is a
//     paragraph, inline, milestone, character or heading marker.
//   - Parser pulls tokens one at a time and hands each opening marker to the
//     first handler that claims it: reference markers (\id \c \v \ts),
//     milestones, inline spans, paragraph markers, then character markers.
//     Text that no handler took is emitted verbatim.
//
// The parser accepts much more than the USFM grammar allows. It records only
// a small closed set of structural problems (see ErrorKind) and always
// returns a Document:
//
//	doc := usfm.Parse(`\id GEN \c 1 \v 1 In the beginning`)
//	for _, e := range doc.Errors {
//	    fmt.Println(e.Kind, e.Token.Start)
//	}
//	nodes := doc.Canonical()
//
// Footnotes, cross references and other study content are parsed and then
// dropped; only words-of-the-text styling such as \w, \nd and \wj survives.
package usfm

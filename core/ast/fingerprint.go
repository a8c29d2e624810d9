package ast

import (
	"bytes"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the BLAKE3-256 hex digest of the JSON-lines dump of
// nodes. Two documents with the same fingerprint dump identically.
func Fingerprint(nodes []Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteJSONLines(&buf, nodes); err != nil {
		return "", err
	}
	h := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(h[:]), nil
}

// Package source reads USFM input: plain files, gzip or xz compressed files,
// standard input, and tar bundles holding one file per book.
package source

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/usfmkit/core/errors"
)

// Stdin is read when the path is "-".
var Stdin io.Reader = os.Stdin

// File is one USFM document.
type File struct {
	Name string
	Data []byte
}

var extensions = []string{".usfm", ".sfm", ".ptx"}

type compression int

const (
	compressionNone compression = iota
	compressionGzip
	compressionXZ
)

// split strips a trailing .gz or .xz from name and reports which it was.
func split(name string) (string, compression) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return strings.TrimSuffix(name, ".gz"), compressionGzip
	case strings.HasSuffix(name, ".xz"):
		return strings.TrimSuffix(name, ".xz"), compressionXZ
	}
	return name, compressionNone
}

func isUSFMName(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Supported reports whether Load can read p.
func Supported(p string) bool {
	if p == "-" {
		return true
	}
	base, _ := split(p)
	return isUSFMName(base)
}

// IsBundle reports whether p is a .tar.gz or .tar.xz bundle.
func IsBundle(p string) bool {
	base, c := split(p)
	return c != compressionNone && strings.HasSuffix(base, ".tar")
}

// Load reads a single document. "-" reads Stdin.
func Load(p string) ([]byte, error) {
	if p == "-" {
		data, err := io.ReadAll(Stdin)
		if err != nil {
			return nil, errors.NewIO("read", "stdin", err)
		}
		return data, nil
	}
	if !Supported(p) {
		return nil, errors.NewUnsupported("input", p)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, errors.NewIO("open", p, err)
	}
	defer f.Close()

	r, err := decompress(f, p)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", p, err)
	}
	return data, nil
}

// decompress wraps f by the compression of p. Closing the result does not
// close f.
func decompress(f *os.File, p string) (io.ReadCloser, error) {
	_, c := split(p)
	switch c {
	case compressionGzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", p, err)
		}
		return gzr, nil
	case compressionXZ:
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", p, err)
		}
		return io.NopCloser(xzr), nil
	}
	return io.NopCloser(f), nil
}

// LoadBundle reads every USFM entry of a tar bundle, in archive order.
// Entries with other extensions are skipped.
func LoadBundle(p string) ([]File, error) {
	if !IsBundle(p) {
		return nil, errors.NewUnsupported("bundle", p)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.NewIO("open", p, err)
	}
	defer f.Close()

	r, err := decompress(f, p)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var files []File
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIO("read bundle", p, err)
		}
		if header.Typeflag != tar.TypeReg || !isUSFMName(header.Name) {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, errors.NewIO("read bundle entry", header.Name, err)
		}
		files = append(files, File{Name: p + ":" + header.Name, Data: data})
	}
	// tar stops at its end marker; reading on reaches the gzip trailer.
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, errors.NewIO("read bundle", p, err)
	}
	if len(files) == 0 {
		return nil, errors.NewNotFound("usfm entry", p)
	}
	return files, nil
}

// Open returns the documents at p: every entry of a bundle, or the single
// file Load reads.
func Open(p string) ([]File, error) {
	if IsBundle(p) {
		return LoadBundle(p)
	}
	data, err := Load(p)
	if err != nil {
		return nil, err
	}
	return []File{{Name: p, Data: data}}, nil
}

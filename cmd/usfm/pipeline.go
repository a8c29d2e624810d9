package main

import (
	"time"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	"github.com/FocuswithJustin/usfmkit/core/errors"
	"github.com/FocuswithJustin/usfmkit/core/ref"
	"github.com/FocuswithJustin/usfmkit/core/usfm"
	"github.com/FocuswithJustin/usfmkit/internal/diag"
	"github.com/FocuswithJustin/usfmkit/internal/logging"
	"github.com/FocuswithJustin/usfmkit/internal/source"
)

// parsed is one document run through the parser.
type parsed struct {
	name    string
	src     string
	doc     *usfm.Document
	elapsed time.Duration
}

func parseFile(f source.File) parsed {
	start := time.Now()
	src := string(f.Data)
	doc := usfm.Parse(src)
	return parsed{name: f.Name, src: src, doc: doc, elapsed: time.Since(start)}
}

// report prints diagnostics for p and logs the parse.
func (a *app) report(p parsed) error {
	for _, e := range p.doc.Errors {
		line, col := diag.Locate(p.src, e.Token.Start)
		logging.ParseIssue(a.ctx, p.name, e.Kind.String(), line, col)
	}
	logging.ParseFinished(a.ctx, p.name, len(p.doc.Nodes), len(p.doc.Errors), p.elapsed)
	_, err := a.diag.PrintAll(p.name, p.src, p.doc)
	return err
}

// load reads and parses every document at path, reporting each.
func (a *app) load(path string) ([]parsed, error) {
	files, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	out := make([]parsed, 0, len(files))
	for _, f := range files {
		p := parseFile(f)
		if err := a.report(p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Selection controls which nodes a command outputs.
type Selection struct {
	NoNormalize bool   `name:"no-normalize" help:"Output the raw node sequence without canonicalizing"`
	Ref         string `name:"ref" placeholder:"REF" help:"Only output the passage REF, e.g. \"GEN 1:1-3\""`
}

func (s Selection) nodes(p parsed) ([]ast.Node, error) {
	nodes := p.doc.Nodes
	if !s.NoNormalize {
		nodes = p.doc.Canonical()
	}
	if s.Ref == "" {
		return nodes, nil
	}
	r, err := ref.ParseRef(s.Ref)
	if err != nil {
		return nil, err
	}
	nodes = ref.Select(nodes, r)
	if len(nodes) == 0 {
		return nil, errors.NewNotFound("passage", r.String()+" in "+p.name)
	}
	return nodes, nil
}

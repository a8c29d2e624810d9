package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	"github.com/FocuswithJustin/usfmkit/core/errors"
	"github.com/FocuswithJustin/usfmkit/core/usfm"
	"github.com/FocuswithJustin/usfmkit/internal/logging"
	"github.com/FocuswithJustin/usfmkit/internal/render/html"
	"github.com/FocuswithJustin/usfmkit/internal/source"
	"github.com/FocuswithJustin/usfmkit/internal/store"
)

// RenderCmd renders documents as HTML.
type RenderCmd struct {
	Path string `arg:"" help:"USFM file, compressed file, tar bundle, or - for stdin"`
	Selection
	ChapterLabel string `name:"chapter-label" default:"Chapter %d" help:"Chapter heading format, with one %d for the number"`
}

func (c *RenderCmd) Run(a *app) error {
	if strings.Count(c.ChapterLabel, "%d") != 1 || strings.Count(c.ChapterLabel, "%") != 1 {
		return errors.NewValidation("chapter-label", "must contain exactly one %d")
	}
	docs, err := a.load(c.Path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(a.stdout)
	r := html.New(w)
	r.ChapterLabel = func(n int) string { return fmt.Sprintf(c.ChapterLabel, n) }
	for _, p := range docs {
		nodes, err := c.nodes(p)
		if err != nil {
			return err
		}
		if err := r.Render(nodes); err != nil {
			return errors.Wrapf(err, "render %s", p.name)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}

// ASTCmd prints the node sequence as JSON lines.
type ASTCmd struct {
	Path string `arg:"" help:"USFM file, compressed file, tar bundle, or - for stdin"`
	Selection
}

func (c *ASTCmd) Run(a *app) error {
	docs, err := a.load(c.Path)
	if err != nil {
		return err
	}
	for _, p := range docs {
		nodes, err := c.nodes(p)
		if err != nil {
			return err
		}
		if err := ast.WriteJSONLines(a.stdout, nodes); err != nil {
			return err
		}
	}
	return nil
}

// TokensCmd prints the token stream as JSON lines.
type TokensCmd struct {
	Path string `arg:"" help:"USFM file, compressed file, or - for stdin"`
}

type tokenLine struct {
	usfm.Token
	Text string `json:"text"`
}

func (c *TokensCmd) Run(a *app) error {
	data, err := source.Load(c.Path)
	if err != nil {
		return err
	}
	src := string(data)

	w := bufio.NewWriter(a.stdout)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, tok := range usfm.Tokenize(src) {
		if err := enc.Encode(tokenLine{Token: tok, Text: src[tok.Start:tok.End]}); err != nil {
			return errors.Wrap(err, "encode token")
		}
	}
	return w.Flush()
}

// CheckCmd parses documents concurrently and reports their errors.
type CheckCmd struct {
	Paths []string `arg:"" help:"Documents to check"`
	Jobs  int      `name:"jobs" short:"j" default:"0" help:"Documents parsed at once (0 for one per CPU)"`
}

func (c *CheckCmd) Run(a *app) error {
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([][]parsed, len(c.Paths))
	g, ctx := errgroup.WithContext(a.ctx)
	g.SetLimit(jobs)
	for i, path := range c.Paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := source.Open(path)
			if err != nil {
				return err
			}
			for _, f := range files {
				results[i] = append(results[i], parseFile(f))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total, failed int
	for _, docs := range results {
		for _, p := range docs {
			total++
			if len(p.doc.Errors) > 0 {
				failed++
			}
			if err := a.report(p); err != nil {
				return err
			}
		}
	}
	logging.LoggerFromContext(a.ctx).Info("check_finished", "documents", total, "failed", failed)
	if failed > 0 {
		return errors.NewValidation("documents", fmt.Sprintf("%d of %d documents have errors", failed, total))
	}
	return nil
}

// FingerprintCmd prints the fingerprint of each document.
type FingerprintCmd struct {
	Path string `arg:"" help:"USFM file, compressed file, tar bundle, or - for stdin"`
}

func (c *FingerprintCmd) Run(a *app) error {
	docs, err := a.load(c.Path)
	if err != nil {
		return err
	}
	for _, p := range docs {
		fp, err := ast.Fingerprint(p.doc.Canonical())
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s  %s\n", fp, p.name)
	}
	return nil
}

// ExportCmd writes documents to SQLite.
type ExportCmd struct {
	Path        string `arg:"" help:"USFM file, compressed file, tar bundle, or - for stdin"`
	DB          string `name:"db" required:"" type:"path" help:"SQLite database to write"`
	NoNormalize bool   `name:"no-normalize" help:"Export the raw node sequence without canonicalizing"`
}

func (c *ExportCmd) Run(a *app) error {
	docs, err := a.load(c.Path)
	if err != nil {
		return err
	}
	db, err := store.Open(a.ctx, c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, p := range docs {
		nodes := p.doc.Nodes
		if !c.NoNormalize {
			nodes = p.doc.Canonical()
		}
		if err := store.Write(a.ctx, db, p.name, nodes); err != nil {
			return errors.Wrapf(err, "export %s", p.name)
		}
		logging.LoggerFromContext(a.ctx).Info("exported", "path", p.name, "nodes", len(nodes), "db", c.DB)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.stdout, "usfm version %s (sqlite %s)\n", version, store.DriverType())
	return nil
}

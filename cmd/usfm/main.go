// Command usfm parses USFM scripture files and renders them as HTML, dumps
// their node sequence, checks them for errors, or exports them to SQLite.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/usfmkit/internal/diag"
	"github.com/FocuswithJustin/usfmkit/internal/logging"
)

const version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `name:"log-level" env:"USFM_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" env:"USFM_LOG_FORMAT" default:"text" enum:"text,json" help:"Log format (${enum})"`
}

// CLI defines the command-line interface for usfm.
type CLI struct {
	Globals

	Render      RenderCmd      `cmd:"" help:"Render a document as HTML"`
	AST         ASTCmd         `cmd:"" name:"ast" help:"Print the node sequence, one JSON object per line"`
	Tokens      TokensCmd      `cmd:"" help:"Print the token stream, one JSON object per line"`
	Check       CheckCmd       `cmd:"" help:"Report parse errors in one or more documents"`
	Fingerprint FingerprintCmd `cmd:"" help:"Print the BLAKE3 fingerprint of the canonical node sequence"`
	Export      ExportCmd      `cmd:"" help:"Export documents to a SQLite database"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// app is bound into every command's Run.
type app struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
	diag   *diag.Printer
}

func newApp(g Globals, stdout, stderr io.Writer) *app {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		level = logging.LevelWarn
	}
	format, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		format = logging.FormatText
	}
	logging.InitLoggerTo(stderr, level, format)

	a := &app{
		ctx:    logging.WithRunID(context.Background(), uuid.New().String()),
		stdout: stdout,
		stderr: stderr,
	}
	if f, ok := stderr.(*os.File); ok {
		a.diag = diag.NewPrinter(f)
	} else {
		a.diag = &diag.Printer{W: stderr, Width: diag.DefaultWidth}
	}
	return a
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("usfm"),
		kong.Description("Parse, check and render USFM scripture files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
	)
}

// execute parses args and runs the selected command.
func execute(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(false)
		}
		return err
	}
	return ctx.Run(newApp(cli.Globals, stdout, stderr))
}

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "usfm: error: %v\n", err)
		os.Exit(1)
	}
}

// Package cli implements the coolc command set: checking Cool programs
// and reporting the tool version.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/coolc/internal/analyzer"
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/config"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/lexer"
	"github.com/funvibe/coolc/internal/parser"
	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/funvibe/coolc/internal/prettyprinter"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/golang/glog"
	"github.com/google/subcommands"
)

// CheckCommand analyzes one or more Cool source files as a single
// program.
type CheckCommand struct {
	dumpTypes bool
}

func (*CheckCommand) Name() string     { return "check" }
func (*CheckCommand) Synopsis() string { return "semantically analyze Cool source files" }
func (*CheckCommand) Usage() string {
	return `check [-dump-types] <file.cl> [<file.cl> ...]:
  Lex, parse and semantically analyze the given files as one program.
  Diagnostics go to stderr; the exit status is nonzero if any were
  produced.
`
}

func (c *CheckCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dumpTypes, "dump-types", false, "print the decorated AST after a clean analysis")
}

func (c *CheckCommand) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "check: no input files")
		return subcommands.ExitUsageError
	}

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "coolc: %v\n", err)
		return subcommands.ExitUsageError
	}

	reporter := diagnostics.NewReporter(os.Stderr)
	reporter.MaxErrors = cfg.MaxErrors
	reporter.SetColorMode(diagnostics.ColorMode(cfg.Color))

	program, ok := c.parseFiles(f.Args(), reporter)
	if !ok {
		return subcommands.ExitUsageError
	}
	if reporter.Errors() > 0 {
		reporter.Flush()
		fmt.Fprintln(os.Stderr, "Compilation halted due to lex and parse errors")
		return subcommands.ExitFailure
	}

	interner := program.interner
	errors := analyzer.New(interner).Analyze(program.merged)
	reporter.ReportAll(errors)
	reporter.Flush()
	if reporter.Errors() > 0 {
		fmt.Fprintln(os.Stderr, "Compilation halted due to static semantic errors")
		return subcommands.ExitFailure
	}

	if c.dumpTypes || cfg.DumpTypes {
		prettyprinter.DumpProgram(os.Stdout, program.merged)
	}
	return subcommands.ExitSuccess
}

type parsedProgram struct {
	merged   *ast.Program
	interner *symbols.Table
}

// parseFiles lexes and parses every file with a shared interner and
// merges their classes into one program, the way the original compiler
// treated multiple source files on the command line. Returns ok=false on
// an environment failure (unreadable file); input-program errors go to
// the reporter instead.
func (c *CheckCommand) parseFiles(paths []string, reporter *diagnostics.Reporter) (*parsedProgram, bool) {
	interner := symbols.NewTable()
	merged := &ast.Program{}

	glog.V(1).Infof("checking %d source files", len(paths))
	for _, path := range paths {
		if !config.HasSourceExt(path) {
			glog.Warningf("%s does not have a recognized Cool extension", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "coolc: %v\n", err)
			return nil, false
		}

		ctx := pipeline.NewPipelineContext(string(data))
		ctx.FilePath = path
		ctx.Interner = interner

		final := pipeline.New(
			&lexer.LexerProcessor{},
			&parser.ParserProcessor{},
		).Run(ctx)

		reporter.ReportAll(final.Errors)
		if final.AstRoot != nil {
			if merged.File == "" {
				merged.File = final.AstRoot.File
			}
			merged.Classes = append(merged.Classes, final.AstRoot.Classes...)
		}
	}

	return &parsedProgram{merged: merged, interner: interner}, true
}

// VersionCommand prints the coolc version.
type VersionCommand struct{}

func (*VersionCommand) Name() string             { return "version" }
func (*VersionCommand) Synopsis() string         { return "print the coolc version" }
func (*VersionCommand) Usage() string            { return "version:\n  Print the coolc version.\n" }
func (*VersionCommand) SetFlags(f *flag.FlagSet) {}

func (*VersionCommand) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("coolc %s\n", config.Version)
	return subcommands.ExitSuccess
}

// The program coolc is the semantic-analysis front end for the Cool
// language: it lexes, parses and type-checks Cool programs, decorating
// the AST with inferred static types.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/funvibe/coolc/pkg/cli"
	"github.com/golang/glog"
	"github.com/google/subcommands"
)

func main() {
	ctx := context.Background()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	defaultExplain := commander.Explain
	commander.Explain = func(w io.Writer) {
		fmt.Fprintf(w, "coolc analyzes Cool programs: class hierarchy, features and expression types.\n\n")
		defaultExplain(w)
	}

	commander.Register(commander.HelpCommand(), "working with this tool")
	commander.Register(commander.FlagsCommand(), "working with this tool")
	commander.Register(&cli.VersionCommand{}, "working with this tool")

	commander.Register(&cli.CheckCommand{}, "analyzing programs")

	flag.Usage = func() {
		commander.HelpCommand().Execute(ctx, flag.CommandLine)
	}

	flag.Parse()

	code := int(commander.Execute(ctx))
	glog.Flush()
	os.Exit(code)
}

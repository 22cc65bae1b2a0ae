package prettyprinter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/coolc/internal/analyzer"
	"github.com/funvibe/coolc/internal/lexer"
	"github.com/funvibe/coolc/internal/parser"
	"github.com/funvibe/coolc/internal/pipeline"
)

func TestDumpDecoratedProgram(t *testing.T) {
	ctx := pipeline.NewPipelineContext(`
class Main {
  x : Int <- 41;
  main() : Object { x + 1 };
};
`)
	ctx.FilePath = "test.cl"
	final := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(ctx)
	if len(final.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", final.Errors)
	}

	var buf bytes.Buffer
	DumpProgram(&buf, final.AstRoot)
	out := buf.String()

	for _, want := range []string{
		"class Main inherits Object",
		"attr x : Int",
		"int 41 : Int",
		"method main() : Object",
		"+ : Int",
		"object x : Int",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<untyped>") {
		t.Errorf("dump contains untyped nodes:\n%s", out)
	}
}

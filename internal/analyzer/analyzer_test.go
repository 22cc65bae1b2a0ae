package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/lexer"
	"github.com/funvibe/coolc/internal/parser"
	"github.com/funvibe/coolc/internal/pipeline"
)

// parseSource lexes and parses input, failing the test on front-end
// errors so that analyzer tests only ever see well-formed trees.
func parseSource(t *testing.T, input string) (*ast.Program, *pipeline.PipelineContext) {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx.FilePath = "test.cl"
	final := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if len(final.Errors) > 0 {
		var msgs []string
		for _, e := range final.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("unexpected front-end errors:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return final.AstRoot, final
}

// analyzeSource runs the full analysis and returns the analyzer, the
// decorated program and the diagnostics.
func analyzeSource(t *testing.T, input string) (*Analyzer, *ast.Program, []*diagnostics.DiagnosticError) {
	t.Helper()
	program, ctx := parseSource(t, input)
	a := New(ctx.Interner)
	errs := a.Analyze(program)
	return a, program, errs
}

// expectSemantError asserts that analysis produces at least one error
// with the given code and returns the first match.
func expectSemantError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, _, errs := analyzeSource(t, input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, string(e.Code)+": "+e.Error())
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, strings.Join(msgs, "\n"), input)
	return nil
}

// expectSemantErrorContains additionally asserts the message mentions substr.
func expectSemantErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectSemantError(t, input, code)
	if !strings.Contains(e.Message, substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Message)
	}
}

// expectNoSemantErrors asserts a clean analysis and returns the analyzer
// and decorated program for further inspection.
func expectNoSemantErrors(t *testing.T, input string) (*Analyzer, *ast.Program) {
	t.Helper()
	a, program, errs := analyzeSource(t, input)
	if len(errs) > 0 {
		var msgs []string
		for _, e := range errs {
			msgs = append(msgs, string(e.Code)+": "+e.Error())
		}
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return a, program
}

// collectExpressions gathers every expression node of the program.
func collectExpressions(program *ast.Program) []ast.Expression {
	var out []ast.Expression
	var walk func(e ast.Expression)
	walk = func(e ast.Expression) {
		if e == nil {
			return
		}
		out = append(out, e)
		switch n := e.(type) {
		case *ast.Assign:
			walk(n.Value)
		case *ast.Dispatch:
			walk(n.Receiver)
			for _, arg := range n.Arguments {
				walk(arg)
			}
		case *ast.StaticDispatch:
			walk(n.Receiver)
			for _, arg := range n.Arguments {
				walk(arg)
			}
		case *ast.Conditional:
			walk(n.Predicate)
			walk(n.Then)
			walk(n.Else)
		case *ast.Loop:
			walk(n.Predicate)
			walk(n.Body)
		case *ast.Block:
			for _, sub := range n.Expressions {
				walk(sub)
			}
		case *ast.Let:
			walk(n.Init)
			walk(n.Body)
		case *ast.Case:
			walk(n.Scrutinee)
			for _, branch := range n.Branches {
				walk(branch.Body)
			}
		case *ast.PrefixExpression:
			walk(n.Right)
		case *ast.InfixExpression:
			walk(n.Left)
			walk(n.Right)
		}
	}

	for _, class := range program.Classes {
		for _, feature := range class.Features {
			switch f := feature.(type) {
			case *ast.Method:
				walk(f.Body)
			case *ast.Attribute:
				walk(f.Init)
			}
		}
	}
	return out
}

// methodBody returns the body expression of the named method of the
// named class.
func methodBody(t *testing.T, program *ast.Program, className, methodName string) ast.Expression {
	t.Helper()
	for _, class := range program.Classes {
		if class.Name.Name() != className {
			continue
		}
		for _, method := range class.Methods() {
			if method.Name.Name() == methodName {
				return method.Body
			}
		}
	}
	t.Fatalf("method %s.%s not found", className, methodName)
	return nil
}

// ---------------------------------------------------------------------------
// End-to-end scenarios.
// ---------------------------------------------------------------------------

func TestMinimalValidProgram(t *testing.T) {
	_, program := expectNoSemantErrors(t, `class Main { main() : Object { 0 }; };`)

	body := methodBody(t, program, "Main", "main")
	if got := body.StaticType().Name(); got != "Int" {
		t.Errorf("main body type = %s, want Int", got)
	}
}

func TestMissingMain(t *testing.T) {
	_, _, errs := analyzeSource(t, `class Foo inherits Object { };`)

	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d", len(errs))
	}
	e := errs[0]
	if e.Code != diagnostics.ErrS003 {
		t.Errorf("code = %s, want %s", e.Code, diagnostics.ErrS003)
	}
	if e.Error() != "Class Main is not defined." {
		t.Errorf("rendered = %q, want %q", e.Error(), "Class Main is not defined.")
	}
	if e.HasLocus() {
		t.Errorf("missing-Main diagnostic should carry no source locus, got file %q", e.File)
	}
}

func TestInheritanceCycle(t *testing.T) {
	_, _, errs := analyzeSource(t, `
class A inherits B { };
class B inherits A { };
class Main { main() : Object { 0 }; };
`)

	found := false
	for _, e := range errs {
		if e.Code == diagnostics.ErrS006 {
			found = true
			if !strings.Contains(e.Message, "A") && !strings.Contains(e.Message, "B") {
				t.Errorf("cycle diagnostic should reference A or B, got: %s", e.Message)
			}
		}
	}
	if !found {
		t.Fatalf("expected a cycle diagnostic, got %v", errs)
	}
}

func TestOverrideArityMismatch(t *testing.T) {
	input := `
class P { m(x : Int) : Int { x }; };
class C inherits P { m(x : Int, y : Int) : Int { x }; };
class Main { main() : Object { 0 }; };
`
	_, _, errs := analyzeSource(t, input)

	count := 0
	for _, e := range errs {
		if e.Code == diagnostics.ErrS012 {
			count++
			if !strings.Contains(e.Message, "(number)") {
				t.Errorf("expected an arity override diagnostic, got: %s", e.Message)
			}
			if !strings.Contains(e.Message, "C") || !strings.Contains(e.Message, "P") {
				t.Errorf("override diagnostic should name both classes, got: %s", e.Message)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 override diagnostic, got %d (%v)", count, errs)
	}
}

func TestSelfTypeReturn(t *testing.T) {
	_, program := expectNoSemantErrors(t, `
class C { me() : SELF_TYPE { self }; };
class Main { main() : Object { 0 }; };
`)

	body := methodBody(t, program, "C", "me")
	if got := body.StaticType().Name(); got != "SELF_TYPE" {
		t.Errorf("body of me() typed %s, want SELF_TYPE", got)
	}
}

func TestCaseLCA(t *testing.T) {
	_, program := expectNoSemantErrors(t, `
class Base { };
class A inherits Base { };
class B inherits Base { };
class Main {
  main() : Object {
    case 0 of
      x : A => new A;
      y : B => new B;
    esac
  };
};
`)

	body := methodBody(t, program, "Main", "main")
	if got := body.StaticType().Name(); got != "Base" {
		t.Errorf("case expression typed %s, want Base", got)
	}
}

// ---------------------------------------------------------------------------
// Universal invariants.
// ---------------------------------------------------------------------------

func TestEveryExpressionTypedAfterAnalysis(t *testing.T) {
	a, program := expectNoSemantErrors(t, `
class Shape {
  area : Int;
  name : String <- "shape";
  scale(factor : Int) : SELF_TYPE { { area <- area * factor; self; } };
  describe() : String { if area < 10 then "small" else name fi };
};
class Circle inherits Shape {
  describe() : String { "circle".concat(name) };
};
class Main inherits IO {
  main() : Object {
    let s : Shape <- new Circle in
      while false loop s.scale(2) pool
  };
};
`)

	for _, expr := range collectExpressions(program) {
		st := expr.StaticType()
		if st == nil {
			t.Fatalf("expression %T is untyped after analysis", expr)
		}
		if st == a.tab.SelfType || st == a.tab.NoType {
			continue
		}
		if _, ok := a.classes[st]; !ok {
			t.Errorf("expression %T typed with unregistered type %s", expr, st)
		}
	}
}

func TestReanalysisIsIdempotent(t *testing.T) {
	input := `
class Counter {
  count : Int <- 0;
  bump() : SELF_TYPE { { count <- count + 1; self; } };
};
class Main {
  main() : Object { (new Counter).bump().bump() };
};
`
	program, ctx := parseSource(t, input)

	first := New(ctx.Interner)
	if errs := first.Analyze(program); len(errs) > 0 {
		t.Fatalf("first analysis failed: %v", errs)
	}
	types1 := make(map[ast.Expression]string)
	for _, expr := range collectExpressions(program) {
		types1[expr] = expr.StaticType().Name()
	}

	second := New(ctx.Interner)
	if errs := second.Analyze(program); len(errs) > 0 {
		t.Fatalf("re-analysis produced diagnostics: %v", errs)
	}
	for expr, want := range types1 {
		if got := expr.StaticType().Name(); got != want {
			t.Errorf("re-analysis changed type of %T: %s -> %s", expr, want, got)
		}
	}
}

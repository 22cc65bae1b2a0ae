package parser

import (
	"strings"
	"testing"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/lexer"
	"github.com/funvibe/coolc/internal/pipeline"
)

func parseProgram(t *testing.T, input string) (*ast.Program, *pipeline.PipelineContext) {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx.FilePath = "test.cl"
	final := pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	if len(final.Errors) > 0 {
		var msgs []string
		for _, e := range final.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("unexpected parse errors:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	return final.AstRoot, final
}

// parseBody wraps the expression in a minimal method and returns the
// parsed body.
func parseBody(t *testing.T, expr string) ast.Expression {
	t.Helper()
	program, _ := parseProgram(t, "class Main { main() : Object { "+expr+" }; };")
	method := program.Classes[0].Features[0].(*ast.Method)
	return method.Body
}

func parseErrors(t *testing.T, input string) []string {
	t.Helper()
	ctx := pipeline.NewPipelineContext(input)
	ctx.FilePath = "test.cl"
	final := pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	var msgs []string
	for _, e := range final.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

func TestParseMinimalClass(t *testing.T) {
	program, _ := parseProgram(t, `class Main { main() : Object { 0 }; };`)

	if len(program.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(program.Classes))
	}
	class := program.Classes[0]
	if class.Name.Name() != "Main" {
		t.Errorf("class name = %s, want Main", class.Name)
	}
	if class.Parent.Name() != "Object" {
		t.Errorf("default parent = %s, want Object", class.Parent)
	}
	if class.Filename != "test.cl" {
		t.Errorf("filename = %s, want test.cl", class.Filename)
	}

	method, ok := class.Features[0].(*ast.Method)
	if !ok {
		t.Fatalf("feature is %T, want *ast.Method", class.Features[0])
	}
	if method.Name.Name() != "main" || method.ReturnType.Name() != "Object" {
		t.Errorf("got method %s : %s", method.Name, method.ReturnType)
	}
	if _, ok := method.Body.(*ast.IntegerLiteral); !ok {
		t.Errorf("body is %T, want *ast.IntegerLiteral", method.Body)
	}
}

func TestParseInherits(t *testing.T) {
	program, _ := parseProgram(t, `class A inherits IO { };`)
	if got := program.Classes[0].Parent.Name(); got != "IO" {
		t.Errorf("parent = %s, want IO", got)
	}
}

func TestParseAttributes(t *testing.T) {
	program, _ := parseProgram(t, `class A { x : Int; y : String <- "s"; };`)

	attrs := program.Classes[0].Attributes()
	if len(attrs) != 2 {
		t.Fatalf("got %d attributes, want 2", len(attrs))
	}
	if _, ok := attrs[0].Init.(*ast.NoExpr); !ok {
		t.Errorf("uninitialized attribute's Init is %T, want *ast.NoExpr", attrs[0].Init)
	}
	if _, ok := attrs[1].Init.(*ast.StringLiteral); !ok {
		t.Errorf("initialized attribute's Init is %T, want *ast.StringLiteral", attrs[1].Init)
	}
}

func TestParseFormals(t *testing.T) {
	program, _ := parseProgram(t, `class A { m(x : Int, y : String) : Object { x }; };`)

	method := program.Classes[0].Features[0].(*ast.Method)
	if len(method.Formals) != 2 {
		t.Fatalf("got %d formals, want 2", len(method.Formals))
	}
	if method.Formals[0].Name.Name() != "x" || method.Formals[0].DeclType.Name() != "Int" {
		t.Errorf("formal 0 = %s : %s", method.Formals[0].Name, method.Formals[0].DeclType)
	}
	if method.Formals[1].Name.Name() != "y" || method.Formals[1].DeclType.Name() != "String" {
		t.Errorf("formal 1 = %s : %s", method.Formals[1].Name, method.Formals[1].DeclType)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	body := parseBody(t, "1 + 2 * 3")

	plus, ok := body.(*ast.InfixExpression)
	if !ok || plus.Operator != "+" {
		t.Fatalf("top node = %T (%v), want + infix", body, body)
	}
	times, ok := plus.Right.(*ast.InfixExpression)
	if !ok || times.Operator != "*" {
		t.Fatalf("right of + is %T, want * infix", plus.Right)
	}
}

func TestComparisonBindsLooserThanArithmetic(t *testing.T) {
	body := parseBody(t, "1 + 2 < 3 * 4")

	lt, ok := body.(*ast.InfixExpression)
	if !ok || lt.Operator != "<" {
		t.Fatalf("top node = %T, want < infix", body)
	}
}

func TestNotBindsLooserThanComparison(t *testing.T) {
	body := parseBody(t, "not 1 < 2")

	neg, ok := body.(*ast.PrefixExpression)
	if !ok || neg.Operator != "not" {
		t.Fatalf("top node = %T, want not prefix", body)
	}
	if lt, ok := neg.Right.(*ast.InfixExpression); !ok || lt.Operator != "<" {
		t.Fatalf("operand of not is %T, want < infix", neg.Right)
	}
}

func TestTildeBindsTighterThanStar(t *testing.T) {
	body := parseBody(t, "~1 * 2")

	times, ok := body.(*ast.InfixExpression)
	if !ok || times.Operator != "*" {
		t.Fatalf("top node = %T, want * infix", body)
	}
	if _, ok := times.Left.(*ast.PrefixExpression); !ok {
		t.Fatalf("left of * is %T, want ~ prefix", times.Left)
	}
}

func TestAssignIsRightAssociative(t *testing.T) {
	body := parseBody(t, "a <- b <- 1")

	outer, ok := body.(*ast.Assign)
	if !ok || outer.Name.Name() != "a" {
		t.Fatalf("top node = %T, want assignment to a", body)
	}
	inner, ok := outer.Value.(*ast.Assign)
	if !ok || inner.Name.Name() != "b" {
		t.Fatalf("value of outer assign is %T, want assignment to b", outer.Value)
	}
}

func TestDispatchChains(t *testing.T) {
	body := parseBody(t, `x.f(1).g()`)

	g, ok := body.(*ast.Dispatch)
	if !ok || g.Method.Name() != "g" {
		t.Fatalf("top node = %T, want dispatch to g", body)
	}
	f, ok := g.Receiver.(*ast.Dispatch)
	if !ok || f.Method.Name() != "f" || len(f.Arguments) != 1 {
		t.Fatalf("receiver of g is %T, want dispatch to f with one argument", g.Receiver)
	}
}

func TestSelfDispatchSugar(t *testing.T) {
	body := parseBody(t, `helper(1, 2)`)

	d, ok := body.(*ast.Dispatch)
	if !ok || d.Method.Name() != "helper" || len(d.Arguments) != 2 {
		t.Fatalf("top node = %T, want self dispatch to helper/2", body)
	}
	recv, ok := d.Receiver.(*ast.Identifier)
	if !ok || recv.Value.Name() != "self" {
		t.Fatalf("receiver is %T, want the identifier self", d.Receiver)
	}
}

func TestStaticDispatchParse(t *testing.T) {
	body := parseBody(t, `x@P.f(1)`)

	d, ok := body.(*ast.StaticDispatch)
	if !ok {
		t.Fatalf("top node = %T, want *ast.StaticDispatch", body)
	}
	if d.TargetType.Name() != "P" || d.Method.Name() != "f" || len(d.Arguments) != 1 {
		t.Errorf("got @%s.%s/%d", d.TargetType, d.Method, len(d.Arguments))
	}
}

func TestDispatchOnArithmeticOperand(t *testing.T) {
	// Dot binds tighter than +: 1 + x.f()
	body := parseBody(t, `1 + x.f()`)

	plus, ok := body.(*ast.InfixExpression)
	if !ok || plus.Operator != "+" {
		t.Fatalf("top node = %T, want + infix", body)
	}
	if _, ok := plus.Right.(*ast.Dispatch); !ok {
		t.Fatalf("right of + is %T, want dispatch", plus.Right)
	}
}

func TestLetDesugarsToNestedBindings(t *testing.T) {
	body := parseBody(t, `let a : Int <- 1, b : String in b`)

	outer, ok := body.(*ast.Let)
	if !ok || outer.Name.Name() != "a" {
		t.Fatalf("top node = %T, want let binding a", body)
	}
	if _, ok := outer.Init.(*ast.IntegerLiteral); !ok {
		t.Errorf("init of a is %T, want integer literal", outer.Init)
	}
	inner, ok := outer.Body.(*ast.Let)
	if !ok || inner.Name.Name() != "b" {
		t.Fatalf("body of outer let is %T, want let binding b", outer.Body)
	}
	if _, ok := inner.Init.(*ast.NoExpr); !ok {
		t.Errorf("init of b is %T, want *ast.NoExpr", inner.Init)
	}
	if outer.Token != inner.Token {
		t.Error("nested lets should share the original let token")
	}
}

func TestLetBodyExtendsRight(t *testing.T) {
	body := parseBody(t, `let x : Int in x + 1`)

	let, ok := body.(*ast.Let)
	if !ok {
		t.Fatalf("top node = %T, want *ast.Let", body)
	}
	if _, ok := let.Body.(*ast.InfixExpression); !ok {
		t.Fatalf("let body is %T, want the whole + expression", let.Body)
	}
}

func TestParseCase(t *testing.T) {
	body := parseBody(t, `
    case x of
      a : Int => 1;
      b : Object => 2;
    esac`)

	c, ok := body.(*ast.Case)
	if !ok {
		t.Fatalf("top node = %T, want *ast.Case", body)
	}
	if len(c.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(c.Branches))
	}
	if c.Branches[0].Name.Name() != "a" || c.Branches[0].DeclType.Name() != "Int" {
		t.Errorf("branch 0 = %s : %s", c.Branches[0].Name, c.Branches[0].DeclType)
	}
}

func TestParseConditionalAndLoop(t *testing.T) {
	body := parseBody(t, `if x < 1 then while x < 2 loop 3 pool else 4 fi`)

	cond, ok := body.(*ast.Conditional)
	if !ok {
		t.Fatalf("top node = %T, want *ast.Conditional", body)
	}
	if _, ok := cond.Then.(*ast.Loop); !ok {
		t.Fatalf("then branch is %T, want *ast.Loop", cond.Then)
	}
}

func TestParseBlock(t *testing.T) {
	body := parseBody(t, `{ 1; "two"; true; }`)

	block, ok := body.(*ast.Block)
	if !ok {
		t.Fatalf("top node = %T, want *ast.Block", body)
	}
	if len(block.Expressions) != 3 {
		t.Fatalf("got %d block expressions, want 3", len(block.Expressions))
	}
}

func TestParseNewAndIsvoid(t *testing.T) {
	body := parseBody(t, `isvoid new SELF_TYPE`)

	pre, ok := body.(*ast.PrefixExpression)
	if !ok || pre.Operator != "isvoid" {
		t.Fatalf("top node = %T, want isvoid prefix", body)
	}
	n, ok := pre.Right.(*ast.New)
	if !ok || n.TypeName.Name() != "SELF_TYPE" {
		t.Fatalf("operand is %T, want new SELF_TYPE", pre.Right)
	}
}

func TestMissingSemicolonReported(t *testing.T) {
	msgs := parseErrors(t, `class Main { main() : Object { 0 } };`)
	if len(msgs) == 0 {
		t.Fatal("expected a parse error for the missing feature semicolon")
	}
}

func TestErrorRecoveryAcrossClasses(t *testing.T) {
	// The first class is malformed; the second should still parse.
	ctx := pipeline.NewPipelineContext(`
class Broken { 42; };
class Fine { m() : Int { 1 }; };
`)
	ctx.FilePath = "test.cl"
	final := pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)

	if len(final.Errors) == 0 {
		t.Fatal("expected parse errors for the malformed class")
	}
	found := false
	for _, c := range final.AstRoot.Classes {
		if c.Name.Name() == "Fine" {
			found = true
		}
	}
	if !found {
		t.Error("parser did not recover to parse the class after the broken one")
	}
}

// Package prettyprinter renders a decorated AST with the static type the
// analyzer inferred for every expression node.
package prettyprinter

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/coolc/internal/ast"
)

type printer struct {
	w     io.Writer
	depth int
}

// DumpProgram writes the program tree, one node per line, nested by
// indentation. Expression lines end with ": <type>".
func DumpProgram(w io.Writer, program *ast.Program) {
	p := &printer{w: w}
	for _, class := range program.Classes {
		p.dumpClass(class)
	}
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

func (p *printer) nested(f func()) {
	p.depth++
	f()
	p.depth--
}

func (p *printer) dumpClass(class *ast.Class) {
	p.line("class %s inherits %s", class.Name, class.Parent)
	p.nested(func() {
		for _, feature := range class.Features {
			switch f := feature.(type) {
			case *ast.Method:
				p.dumpMethod(f)
			case *ast.Attribute:
				p.dumpAttribute(f)
			}
		}
	})
}

func (p *printer) dumpMethod(method *ast.Method) {
	var formals []string
	for _, formal := range method.Formals {
		formals = append(formals, fmt.Sprintf("%s: %s", formal.Name, formal.DeclType))
	}
	p.line("method %s(%s) : %s", method.Name, strings.Join(formals, ", "), method.ReturnType)
	p.nested(func() { p.dumpExpression(method.Body) })
}

func (p *printer) dumpAttribute(attr *ast.Attribute) {
	p.line("attr %s : %s", attr.Name, attr.DeclType)
	if _, absent := attr.Init.(*ast.NoExpr); !absent {
		p.nested(func() { p.dumpExpression(attr.Init) })
	}
}

func (p *printer) dumpExpression(expr ast.Expression) {
	typeName := "<untyped>"
	if expr.StaticType() != nil {
		typeName = expr.StaticType().Name()
	}

	switch e := expr.(type) {
	case *ast.NoExpr:
		p.line("no_expr : %s", typeName)
	case *ast.IntegerLiteral:
		p.line("int %d : %s", e.Value, typeName)
	case *ast.StringLiteral:
		p.line("string %q : %s", e.Value, typeName)
	case *ast.BooleanLiteral:
		p.line("bool %t : %s", e.Value, typeName)
	case *ast.Identifier:
		p.line("object %s : %s", e.Value, typeName)
	case *ast.Assign:
		p.line("assign %s : %s", e.Name, typeName)
		p.nested(func() { p.dumpExpression(e.Value) })
	case *ast.New:
		p.line("new %s : %s", e.TypeName, typeName)
	case *ast.Dispatch:
		p.line("dispatch %s : %s", e.Method, typeName)
		p.nested(func() {
			p.dumpExpression(e.Receiver)
			for _, arg := range e.Arguments {
				p.dumpExpression(arg)
			}
		})
	case *ast.StaticDispatch:
		p.line("static dispatch @%s.%s : %s", e.TargetType, e.Method, typeName)
		p.nested(func() {
			p.dumpExpression(e.Receiver)
			for _, arg := range e.Arguments {
				p.dumpExpression(arg)
			}
		})
	case *ast.Conditional:
		p.line("if : %s", typeName)
		p.nested(func() {
			p.dumpExpression(e.Predicate)
			p.dumpExpression(e.Then)
			p.dumpExpression(e.Else)
		})
	case *ast.Loop:
		p.line("while : %s", typeName)
		p.nested(func() {
			p.dumpExpression(e.Predicate)
			p.dumpExpression(e.Body)
		})
	case *ast.Block:
		p.line("block : %s", typeName)
		p.nested(func() {
			for _, sub := range e.Expressions {
				p.dumpExpression(sub)
			}
		})
	case *ast.Let:
		p.line("let %s : %s in : %s", e.Name, e.DeclType, typeName)
		p.nested(func() {
			p.dumpExpression(e.Init)
			p.dumpExpression(e.Body)
		})
	case *ast.Case:
		p.line("case : %s", typeName)
		p.nested(func() {
			p.dumpExpression(e.Scrutinee)
			for _, branch := range e.Branches {
				p.line("branch %s : %s", branch.Name, branch.DeclType)
				p.nested(func() { p.dumpExpression(branch.Body) })
			}
		})
	case *ast.PrefixExpression:
		p.line("%s : %s", e.Operator, typeName)
		p.nested(func() { p.dumpExpression(e.Right) })
	case *ast.InfixExpression:
		p.line("%s : %s", e.Operator, typeName)
		p.nested(func() {
			p.dumpExpression(e.Left)
			p.dumpExpression(e.Right)
		})
	}
}

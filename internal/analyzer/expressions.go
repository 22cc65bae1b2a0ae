package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// checkExpression computes the static type of an expression, writes it
// into the node's type slot and returns it. A rule that fails emits a
// diagnostic and yields Object, the poison type, so that enclosing rules
// proceed without cascading errors. Sub-expressions are always checked,
// even under a failing parent, so every node ends up typed.
func (a *Analyzer) checkExpression(expr ast.Expression) *symbols.Symbol {
	var t *symbols.Symbol

	switch e := expr.(type) {
	case *ast.NoExpr:
		t = a.tab.NoType
	case *ast.IntegerLiteral:
		t = a.tab.Int
	case *ast.StringLiteral:
		t = a.tab.Str
	case *ast.BooleanLiteral:
		t = a.tab.Bool
	case *ast.Identifier:
		t = a.checkIdentifier(e)
	case *ast.Assign:
		t = a.checkAssign(e)
	case *ast.New:
		t = a.checkNew(e)
	case *ast.Conditional:
		t = a.checkConditional(e)
	case *ast.Loop:
		t = a.checkLoop(e)
	case *ast.Block:
		t = a.checkBlock(e)
	case *ast.Let:
		t = a.checkLet(e)
	case *ast.Case:
		t = a.checkCase(e)
	case *ast.PrefixExpression:
		t = a.checkPrefix(e)
	case *ast.InfixExpression:
		t = a.checkInfix(e)
	case *ast.Dispatch:
		t = a.checkDispatch(e)
	case *ast.StaticDispatch:
		t = a.checkStaticDispatch(e)
	default:
		t = a.tab.Object
	}

	expr.SetStaticType(t)
	return t
}

func (a *Analyzer) checkIdentifier(e *ast.Identifier) *symbols.Symbol {
	if e.Value == a.tab.Self {
		return a.tab.SelfType
	}
	if declType, ok := a.env.Lookup(e.Value); ok {
		return declType
	}
	a.nodeError(diagnostics.ErrT001, e.Token, "undeclared identifier %s", e.Value)
	return a.tab.Object
}

func (a *Analyzer) checkAssign(e *ast.Assign) *symbols.Symbol {
	valueType := a.checkExpression(e.Value)

	if e.Name == a.tab.Self {
		a.nodeError(diagnostics.ErrS009, e.Token, "cannot assign to 'self'")
		return a.tab.Object
	}
	declType, ok := a.env.Lookup(e.Name)
	if !ok {
		a.nodeError(diagnostics.ErrT001, e.Token, "assignment to undeclared variable %s", e.Name)
		return a.tab.Object
	}
	if !a.conforms(valueType, declType) {
		a.nodeError(diagnostics.ErrT002, e.Token,
			"type %s of assigned expression does not conform to declared type %s of identifier %s",
			valueType, declType, e.Name)
		return a.tab.Object
	}
	return valueType
}

func (a *Analyzer) checkNew(e *ast.New) *symbols.Symbol {
	if e.TypeName == a.tab.SelfType {
		return a.tab.SelfType
	}
	if _, ok := a.classes[e.TypeName]; ok {
		return e.TypeName
	}
	a.nodeError(diagnostics.ErrS011, e.Token, "'new' used with undefined class %s", e.TypeName)
	return a.tab.Object
}

func (a *Analyzer) checkConditional(e *ast.Conditional) *symbols.Symbol {
	predType := a.checkExpression(e.Predicate)
	thenType := a.checkExpression(e.Then)
	elseType := a.checkExpression(e.Else)

	if predType != a.tab.Bool {
		a.nodeError(diagnostics.ErrT003, e.Token, "predicate of 'if' does not have type Bool")
		return a.tab.Object
	}
	return a.lca(thenType, elseType)
}

func (a *Analyzer) checkLoop(e *ast.Loop) *symbols.Symbol {
	predType := a.checkExpression(e.Predicate)
	a.checkExpression(e.Body)

	if predType != a.tab.Bool {
		a.nodeError(diagnostics.ErrT003, e.Token, "loop condition does not have type Bool")
	}
	return a.tab.Object
}

func (a *Analyzer) checkBlock(e *ast.Block) *symbols.Symbol {
	result := a.tab.Object
	for _, sub := range e.Expressions {
		result = a.checkExpression(sub)
	}
	return result
}

func (a *Analyzer) checkLet(e *ast.Let) *symbols.Symbol {
	initType := a.checkExpression(e.Init)

	declValid := e.DeclType == a.tab.SelfType
	if !declValid {
		_, declValid = a.classes[e.DeclType]
		if !declValid {
			a.nodeError(diagnostics.ErrS011, e.Token,
				"class %s of let-bound identifier %s is undefined", e.DeclType, e.Name)
		}
	}

	if initType != a.tab.NoType && declValid {
		// A SELF_TYPE binding requires the initializer to conform to the
		// enclosing class.
		target := a.resolveSelfType(e.DeclType)
		if !a.conforms(initType, target) {
			a.nodeError(diagnostics.ErrT002, e.Token,
				"inferred type %s of initialization of %s does not conform to identifier's declared type %s",
				initType, e.Name, e.DeclType)
		}
	}

	if e.Name == a.tab.Self {
		a.nodeError(diagnostics.ErrS009, e.Token, "'self' cannot be bound in a 'let' expression")
		return a.checkExpression(e.Body)
	}

	a.env.Enter()
	defer a.env.Exit()
	a.env.Bind(e.Name, e.DeclType)
	return a.checkExpression(e.Body)
}

func (a *Analyzer) checkCase(e *ast.Case) *symbols.Symbol {
	a.checkExpression(e.Scrutinee)

	seen := make(map[*symbols.Symbol]bool)
	var result *symbols.Symbol
	for _, branch := range e.Branches {
		if branch.Name == a.tab.Self {
			a.nodeError(diagnostics.ErrS009, branch.Token, "'self' cannot be bound in a 'case' branch")
		}
		if _, ok := a.classes[branch.DeclType]; !ok {
			a.nodeError(diagnostics.ErrS011, branch.Token,
				"class %s of case branch is undefined", branch.DeclType)
		}
		if seen[branch.DeclType] {
			a.nodeError(diagnostics.ErrT006, branch.Token,
				"duplicate branch type %s in case expression", branch.DeclType)
		}
		seen[branch.DeclType] = true

		a.env.Enter()
		if branch.Name != a.tab.Self {
			a.env.Bind(branch.Name, branch.DeclType)
		}
		branchType := a.checkExpression(branch.Body)
		a.env.Exit()

		if result == nil {
			result = branchType
		} else {
			result = a.lca(result, branchType)
		}
	}

	if result == nil {
		result = a.tab.Object
	}
	return result
}

func (a *Analyzer) checkPrefix(e *ast.PrefixExpression) *symbols.Symbol {
	operandType := a.checkExpression(e.Right)

	switch e.Operator {
	case "isvoid":
		return a.tab.Bool
	case "~":
		if operandType != a.tab.Int {
			a.nodeError(diagnostics.ErrT003, e.Token, "argument of '~' has type %s instead of Int", operandType)
			return a.tab.Object
		}
		return a.tab.Int
	default: // not
		if operandType != a.tab.Bool {
			a.nodeError(diagnostics.ErrT003, e.Token, "argument of 'not' has type %s instead of Bool", operandType)
			return a.tab.Object
		}
		return a.tab.Bool
	}
}

func (a *Analyzer) checkInfix(e *ast.InfixExpression) *symbols.Symbol {
	leftType := a.checkExpression(e.Left)
	rightType := a.checkExpression(e.Right)

	switch e.Operator {
	case "+", "-", "*", "/":
		if leftType != a.tab.Int || rightType != a.tab.Int {
			a.nodeError(diagnostics.ErrT003, e.Token,
				"non-Int arguments: %s %s %s", leftType, e.Operator, rightType)
			return a.tab.Object
		}
		return a.tab.Int
	case "<", "<=":
		if leftType != a.tab.Int || rightType != a.tab.Int {
			a.nodeError(diagnostics.ErrT003, e.Token,
				"non-Int arguments: %s %s %s", leftType, e.Operator, rightType)
			return a.tab.Object
		}
		return a.tab.Bool
	default: // =
		if a.isPrimitiveClassName(leftType) || a.isPrimitiveClassName(rightType) {
			if leftType != rightType {
				a.nodeError(diagnostics.ErrT003, e.Token, "illegal comparison with a basic type")
				return a.tab.Object
			}
		}
		return a.tab.Bool
	}
}

func (a *Analyzer) checkDispatch(e *ast.Dispatch) *symbols.Symbol {
	receiverType := a.checkExpression(e.Receiver)
	argTypes := make([]*symbols.Symbol, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = a.checkExpression(arg)
	}

	resolved := a.resolveSelfType(receiverType)
	method := a.lookupMethod(resolved, e.Method)
	if method == nil {
		a.nodeError(diagnostics.ErrT004, e.Token, "dispatch to undefined method %s", e.Method)
		return a.tab.Object
	}

	a.checkArguments(e.Token, method, argTypes)

	// A SELF_TYPE return widens to the receiver's own type, preserving
	// SELF_TYPE for callers inside the class body.
	if method.ReturnType == a.tab.SelfType {
		return receiverType
	}
	return method.ReturnType
}

func (a *Analyzer) checkStaticDispatch(e *ast.StaticDispatch) *symbols.Symbol {
	receiverType := a.checkExpression(e.Receiver)
	argTypes := make([]*symbols.Symbol, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = a.checkExpression(arg)
	}

	if e.TargetType == a.tab.SelfType {
		a.nodeError(diagnostics.ErrS011, e.Token, "static dispatch to SELF_TYPE")
		return a.tab.Object
	}
	if _, ok := a.classes[e.TargetType]; !ok {
		a.nodeError(diagnostics.ErrS011, e.Token, "static dispatch to undefined class %s", e.TargetType)
		return a.tab.Object
	}
	if !a.conforms(receiverType, e.TargetType) {
		a.nodeError(diagnostics.ErrT002, e.Token,
			"expression type %s does not conform to declared static dispatch type %s",
			receiverType, e.TargetType)
	}

	method := a.lookupMethod(e.TargetType, e.Method)
	if method == nil {
		a.nodeError(diagnostics.ErrT004, e.Token, "static dispatch to undefined method %s", e.Method)
		return a.tab.Object
	}

	a.checkArguments(e.Token, method, argTypes)

	if method.ReturnType == a.tab.SelfType {
		return receiverType
	}
	return method.ReturnType
}

// checkArguments verifies arity and the conformance of each actual
// argument to the corresponding formal's declared type.
func (a *Analyzer) checkArguments(tok token.Token, method *ast.Method, argTypes []*symbols.Symbol) {
	if len(argTypes) != len(method.Formals) {
		a.nodeError(diagnostics.ErrT005, tok,
			"method %s called with wrong number of arguments", method.Name)
		return
	}
	for i, formal := range method.Formals {
		if !a.conforms(argTypes[i], formal.DeclType) {
			a.nodeError(diagnostics.ErrT002, tok,
				"in call of method %s, type %s of parameter %s does not conform to declared type %s",
				method.Name, argTypes[i], formal.Name, formal.DeclType)
		}
	}
}

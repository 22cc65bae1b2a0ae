package parser

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

// parseIdentifier parses a bare identifier or a self dispatch f(args),
// which is sugar for self.f(args).
func (p *Parser) parseIdentifier() ast.Expression {
	nameTok := p.curToken

	if !p.peekTokenIs(token.LPAREN) {
		return &ast.Identifier{Token: nameTok, Value: p.sym(nameTok)}
	}

	dispatch := &ast.Dispatch{
		Token:    nameTok,
		Receiver: &ast.Identifier{Token: nameTok, Value: p.interner.Self},
		Method:   p.sym(nameTok),
	}
	p.nextToken() // onto '('
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	dispatch.Arguments = args
	return dispatch
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(int64)
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	value, _ := p.curToken.Literal.(bool)
	return &ast.BooleanLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parsePrefixExpression handles ~, not and isvoid. The operator is
// canonicalized so the checker never sees keyword case variants.
func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken}
	switch p.curToken.Type {
	case token.NOT:
		expression.Operator = "not"
	case token.ISVOID:
		expression.Operator = "isvoid"
	default:
		expression.Operator = "~"
	}

	var prec int
	switch p.curToken.Type {
	case token.NOT:
		prec = NOT_PREC
	case token.ISVOID:
		prec = ISVOID_PREC
	default:
		prec = NEG_PREC
	}

	p.nextToken()
	expression.Right = p.parseExpression(prec)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseAssignExpression parses name <- expr; <- is right-associative.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	target, ok := left.(*ast.Identifier)
	if !ok {
		p.syntaxError(p.curToken, "left side of assignment must be an identifier")
		return nil
	}

	assign := &ast.Assign{Token: target.Token, Name: target.Value}
	p.nextToken()
	assign.Value = p.parseExpression(ASSIGN_PREC - 1)
	if assign.Value == nil {
		return nil
	}
	return assign
}

// parseDispatch parses receiver.method(args); curToken is '.'.
func (p *Parser) parseDispatch(receiver ast.Expression) ast.Expression {
	if !p.expectPeek(token.OBJECTID) {
		return nil
	}
	dispatch := &ast.Dispatch{
		Token:    p.curToken,
		Receiver: receiver,
		Method:   p.sym(p.curToken),
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	dispatch.Arguments = args
	return dispatch
}

// parseStaticDispatch parses receiver@Type.method(args); curToken is '@'.
func (p *Parser) parseStaticDispatch(receiver ast.Expression) ast.Expression {
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	targetType := p.sym(p.curToken)

	if !p.expectPeek(token.DOT) {
		return nil
	}
	if !p.expectPeek(token.OBJECTID) {
		return nil
	}
	dispatch := &ast.StaticDispatch{
		Token:      p.curToken,
		Receiver:   receiver,
		TargetType: targetType,
		Method:     p.sym(p.curToken),
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	dispatch.Arguments = args
	return dispatch
}

// parseArguments parses a parenthesized argument list; curToken is '(' on
// entry and ')' on exit.
func (p *Parser) parseArguments() ([]ast.Expression, bool) {
	var args []ast.Expression

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args, true
	}

	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseConditional() ast.Expression {
	expression := &ast.Conditional{Token: p.curToken}

	p.nextToken()
	expression.Predicate = p.parseExpression(LOWEST)
	if expression.Predicate == nil {
		return nil
	}
	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	expression.Then = p.parseExpression(LOWEST)
	if expression.Then == nil {
		return nil
	}
	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	expression.Else = p.parseExpression(LOWEST)
	if expression.Else == nil {
		return nil
	}
	if !p.expectPeek(token.FI) {
		return nil
	}
	return expression
}

func (p *Parser) parseLoop() ast.Expression {
	expression := &ast.Loop{Token: p.curToken}

	p.nextToken()
	expression.Predicate = p.parseExpression(LOWEST)
	if expression.Predicate == nil {
		return nil
	}
	if !p.expectPeek(token.LOOP) {
		return nil
	}
	p.nextToken()
	expression.Body = p.parseExpression(LOWEST)
	if expression.Body == nil {
		return nil
	}
	if !p.expectPeek(token.POOL) {
		return nil
	}
	return expression
}

func (p *Parser) parseBlock() ast.Expression {
	block := &ast.Block{Token: p.curToken}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		block.Expressions = append(block.Expressions, expr)
		if !p.expectPeek(token.SEMI) {
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if len(block.Expressions) == 0 {
		p.syntaxError(p.curToken, "a block needs at least one expression")
		return nil
	}
	return block
}

// parseLet parses let with one or more bindings. A multi-binding let
// desugars into nested single-binding Let nodes sharing the let token, so
// downstream passes only ever see the single-binding form.
func (p *Parser) parseLet() ast.Expression {
	return p.parseLetBindings(p.curToken)
}

func (p *Parser) parseLetBindings(letTok token.Token) ast.Expression {
	let := &ast.Let{Token: letTok}

	if !p.expectPeek(token.OBJECTID) {
		return nil
	}
	nameTok := p.curToken
	let.Name = p.sym(nameTok)

	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	let.DeclType = p.sym(p.curToken)

	let.Init = &ast.NoExpr{Token: nameTok}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		let.Init = p.parseExpression(LOWEST)
		if let.Init == nil {
			return nil
		}
	}

	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
		let.Body = p.parseLetBindings(letTok)
		if let.Body == nil {
			return nil
		}
		return let
	}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	let.Body = p.parseExpression(LOWEST)
	if let.Body == nil {
		return nil
	}
	return let
}

func (p *Parser) parseCase() ast.Expression {
	expression := &ast.Case{Token: p.curToken}

	p.nextToken()
	expression.Scrutinee = p.parseExpression(LOWEST)
	if expression.Scrutinee == nil {
		return nil
	}
	if !p.expectPeek(token.OF) {
		return nil
	}

	for !p.peekTokenIs(token.ESAC) && !p.peekTokenIs(token.EOF) {
		branch := p.parseCaseBranch()
		if branch == nil {
			return nil
		}
		expression.Branches = append(expression.Branches, branch)
	}

	if !p.expectPeek(token.ESAC) {
		return nil
	}
	if len(expression.Branches) == 0 {
		p.syntaxError(p.curToken, "a case expression needs at least one branch")
		return nil
	}
	return expression
}

func (p *Parser) parseCaseBranch() *ast.CaseBranch {
	if !p.expectPeek(token.OBJECTID) {
		return nil
	}
	branch := &ast.CaseBranch{Token: p.curToken, Name: p.sym(p.curToken)}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	branch.DeclType = p.sym(p.curToken)

	if !p.expectPeek(token.DARROW) {
		return nil
	}
	p.nextToken()
	branch.Body = p.parseExpression(LOWEST)
	if branch.Body == nil {
		return nil
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	return branch
}

func (p *Parser) parseNew() ast.Expression {
	expression := &ast.New{Token: p.curToken}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	expression.TypeName = p.sym(p.curToken)
	return expression
}

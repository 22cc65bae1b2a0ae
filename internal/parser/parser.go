package parser

import (
	"fmt"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// Operator precedences, lowest binds loosest. Cool's grammar, tightest
// first: . @ ~ isvoid * / + - (< <= =) not <-.
const (
	_ int = iota
	LOWEST
	ASSIGN_PREC // <-
	NOT_PREC    // not
	COMPARE     // < <= =
	SUM         // + -
	PRODUCT     // * /
	ISVOID_PREC // isvoid
	NEG_PREC    // ~
	AT_PREC     // @
	DOT_PREC    // .
)

var precedences = map[token.TokenType]int{
	token.ASSIGN: ASSIGN_PREC,
	token.LT:     COMPARE,
	token.LE:     COMPARE,
	token.EQ:     COMPARE,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.STAR:   PRODUCT,
	token.SLASH:  PRODUCT,
	token.AT:     AT_PREC,
	token.DOT:    DOT_PREC,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream   pipeline.TokenStream
	ctx      *pipeline.PipelineContext
	interner *symbols.Table

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{
		stream:   stream,
		ctx:      ctx,
		interner: ctx.Interner,
	}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.OBJECTID:   p.parseIdentifier,
		token.INT_CONST:  p.parseIntegerLiteral,
		token.STR_CONST:  p.parseStringLiteral,
		token.BOOL_CONST: p.parseBooleanLiteral,
		token.LPAREN:     p.parseGroupedExpression,
		token.IF:         p.parseConditional,
		token.WHILE:      p.parseLoop,
		token.LBRACE:     p.parseBlock,
		token.LET:        p.parseLet,
		token.CASE:       p.parseCase,
		token.NEW:        p.parseNew,
		token.NOT:        p.parsePrefixExpression,
		token.TILDE:      p.parsePrefixExpression,
		token.ISVOID:     p.parsePrefixExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:   p.parseInfixExpression,
		token.MINUS:  p.parseInfixExpression,
		token.STAR:   p.parseInfixExpression,
		token.SLASH:  p.parseInfixExpression,
		token.LT:     p.parseInfixExpression,
		token.LE:     p.parseInfixExpression,
		token.EQ:     p.parseInfixExpression,
		token.DOT:    p.parseDispatch,
		token.AT:     p.parseStaticDispatch,
		token.ASSIGN: p.parseAssignExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.ctx.AddError(diagnostics.NewError(
		diagnostics.ErrP001,
		p.peekToken,
		fmt.Sprintf("expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Lexeme),
	))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.ctx.AddError(diagnostics.NewError(
		diagnostics.ErrP002,
		tok,
		fmt.Sprintf("unexpected %s (%q) at start of expression", tok.Type, tok.Lexeme),
	))
}

func (p *Parser) syntaxError(tok token.Token, message string) {
	p.ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, tok, message))
}

func (p *Parser) sym(tok token.Token) *symbols.Symbol {
	return p.interner.Intern(tok.Lexeme)
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses (class ';')+ until EOF.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}

	for !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.CLASS) {
			p.ctx.AddError(diagnostics.NewError(
				diagnostics.ErrP001,
				p.curToken,
				fmt.Sprintf("expected 'class', got %s (%q)", p.curToken.Type, p.curToken.Lexeme),
			))
			p.skipToNextClass()
			continue
		}

		class := p.parseClass()
		if class == nil {
			p.skipToNextClass()
			continue
		}
		program.Classes = append(program.Classes, class)

		if !p.expectPeek(token.SEMI) {
			p.skipToNextClass()
			continue
		}
		p.nextToken()
	}

	return program
}

// skipToNextClass advances to the next 'class' keyword (or EOF) so that
// one malformed class doesn't hide errors in the rest of the file.
func (p *Parser) skipToNextClass() {
	p.nextToken()
	for !p.curTokenIs(token.CLASS) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

// parseClass parses CLASS TYPEID (INHERITS TYPEID)? '{' (feature ';')* '}'.
// curToken is the 'class' keyword on entry and the closing brace on a
// successful exit.
func (p *Parser) parseClass() *ast.Class {
	class := &ast.Class{Token: p.curToken, Filename: p.ctx.FilePath}

	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	class.Name = p.sym(p.curToken)

	class.Parent = p.interner.Object
	if p.peekTokenIs(token.INHERITS) {
		p.nextToken()
		if !p.expectPeek(token.TYPEID) {
			return nil
		}
		class.Parent = p.sym(p.curToken)
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		feature := p.parseFeature()
		if feature == nil {
			p.skipToFeatureBoundary()
			continue
		}
		class.Features = append(class.Features, feature)
		if !p.expectPeek(token.SEMI) {
			p.skipToFeatureBoundary()
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return class
}

// skipToFeatureBoundary advances past the current broken feature, leaving
// curToken on a ';' or just before a '}'.
func (p *Parser) skipToFeatureBoundary() {
	for !p.curTokenIs(token.SEMI) && !p.peekTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

// parseFeature parses either a method or an attribute; curToken is the
// feature's name on entry.
func (p *Parser) parseFeature() ast.Feature {
	if !p.curTokenIs(token.OBJECTID) {
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP001,
			p.curToken,
			fmt.Sprintf("expected feature name, got %s (%q)", p.curToken.Type, p.curToken.Lexeme),
		))
		return nil
	}

	nameTok := p.curToken
	if p.peekTokenIs(token.LPAREN) {
		return p.parseMethod(nameTok)
	}
	return p.parseAttribute(nameTok)
}

func (p *Parser) parseMethod(nameTok token.Token) ast.Feature {
	method := &ast.Method{Token: nameTok, Name: p.sym(nameTok)}

	p.nextToken() // onto '('
	formals, ok := p.parseFormals()
	if !ok {
		return nil
	}
	method.Formals = formals

	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	method.ReturnType = p.sym(p.curToken)

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	method.Body = p.parseExpression(LOWEST)
	if method.Body == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return method
}

// parseFormals parses the parenthesized formal list; curToken is '(' on
// entry and ')' on exit.
func (p *Parser) parseFormals() ([]*ast.Formal, bool) {
	var formals []*ast.Formal

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return formals, true
	}

	for {
		if !p.expectPeek(token.OBJECTID) {
			return nil, false
		}
		formal := &ast.Formal{Token: p.curToken, Name: p.sym(p.curToken)}
		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		if !p.expectPeek(token.TYPEID) {
			return nil, false
		}
		formal.DeclType = p.sym(p.curToken)
		formals = append(formals, formal)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return formals, true
}

func (p *Parser) parseAttribute(nameTok token.Token) ast.Feature {
	attr := &ast.Attribute{Token: nameTok, Name: p.sym(nameTok)}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	attr.DeclType = p.sym(p.curToken)

	attr.Init = &ast.NoExpr{Token: nameTok}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		attr.Init = p.parseExpression(LOWEST)
		if attr.Init == nil {
			return nil
		}
	}
	return attr
}

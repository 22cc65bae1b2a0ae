package ast

import (
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// Assign represents name <- Value.
type Assign struct {
	TypeInfo
	Token token.Token // The identifier token
	Name  *symbols.Symbol
	Value Expression
}

func (a *Assign) expressionNode()       {}
func (a *Assign) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assign) GetToken() token.Token { return a.Token }

// Dispatch represents Receiver.Method(Arguments). Self dispatch f(...) is
// parsed as a Dispatch whose receiver is the identifier self.
type Dispatch struct {
	TypeInfo
	Token     token.Token // The method name token
	Receiver  Expression
	Method    *symbols.Symbol
	Arguments []Expression
}

func (d *Dispatch) expressionNode()       {}
func (d *Dispatch) TokenLiteral() string  { return d.Token.Lexeme }
func (d *Dispatch) GetToken() token.Token { return d.Token }

// StaticDispatch represents Receiver@TargetType.Method(Arguments).
type StaticDispatch struct {
	TypeInfo
	Token      token.Token // The method name token
	Receiver   Expression
	TargetType *symbols.Symbol
	Method     *symbols.Symbol
	Arguments  []Expression
}

func (d *StaticDispatch) expressionNode()       {}
func (d *StaticDispatch) TokenLiteral() string  { return d.Token.Lexeme }
func (d *StaticDispatch) GetToken() token.Token { return d.Token }

// Conditional represents if Predicate then Then else Else fi.
type Conditional struct {
	TypeInfo
	Token     token.Token // The 'if' token
	Predicate Expression
	Then      Expression
	Else      Expression
}

func (c *Conditional) expressionNode()       {}
func (c *Conditional) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Conditional) GetToken() token.Token { return c.Token }

// Loop represents while Predicate loop Body pool.
type Loop struct {
	TypeInfo
	Token     token.Token // The 'while' token
	Predicate Expression
	Body      Expression
}

func (l *Loop) expressionNode()       {}
func (l *Loop) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Loop) GetToken() token.Token { return l.Token }

// Block represents { e1; e2; ...; en; }. The grammar guarantees at least
// one expression.
type Block struct {
	TypeInfo
	Token       token.Token // The '{' token
	Expressions []Expression
}

func (b *Block) expressionNode()       {}
func (b *Block) TokenLiteral() string  { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token { return b.Token }

// Let represents a single binding let Name : DeclType [<- Init] in Body.
// Multi-binding lets are desugared by the parser into nested Let nodes.
// An absent initializer is *NoExpr.
type Let struct {
	TypeInfo
	Token    token.Token // The 'let' token
	Name     *symbols.Symbol
	DeclType *symbols.Symbol
	Init     Expression
	Body     Expression
}

func (l *Let) expressionNode()       {}
func (l *Let) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Let) GetToken() token.Token { return l.Token }

// Case represents case Scrutinee of branches esac.
type Case struct {
	TypeInfo
	Token     token.Token // The 'case' token
	Scrutinee Expression
	Branches  []*CaseBranch
}

func (c *Case) expressionNode()       {}
func (c *Case) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Case) GetToken() token.Token { return c.Token }

// CaseBranch is one Name : DeclType => Body arm of a case.
type CaseBranch struct {
	Token    token.Token // The branch name token
	Name     *symbols.Symbol
	DeclType *symbols.Symbol
	Body     Expression
}

func (b *CaseBranch) TokenLiteral() string  { return b.Token.Lexeme }
func (b *CaseBranch) GetToken() token.Token { return b.Token }

// New represents new TypeName.
type New struct {
	TypeInfo
	Token    token.Token // The 'new' token
	TypeName *symbols.Symbol
}

func (n *New) expressionNode()       {}
func (n *New) TokenLiteral() string  { return n.Token.Lexeme }
func (n *New) GetToken() token.Token { return n.Token }

// InfixExpression covers the binary operators: + - * / < <= =.
type InfixExpression struct {
	TypeInfo
	Token    token.Token // The operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// PrefixExpression covers the unary operators: ~ not isvoid.
type PrefixExpression struct {
	TypeInfo
	Token    token.Token // The operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// Identifier is an object identifier reference, including self.
type Identifier struct {
	TypeInfo
	Token token.Token
	Value *symbols.Symbol
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral is an integer constant.
type IntegerLiteral struct {
	TypeInfo
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// StringLiteral is a string constant with escapes already processed.
type StringLiteral struct {
	TypeInfo
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	TypeInfo
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NoExpr is the distinguished empty expression used for absent attribute
// and let initializers. Its inferred type is the _no_type sentinel.
type NoExpr struct {
	TypeInfo
	Token token.Token
}

func (ne *NoExpr) expressionNode()       {}
func (ne *NoExpr) TokenLiteral() string  { return ne.Token.Lexeme }
func (ne *NoExpr) GetToken() token.Token { return ne.Token }

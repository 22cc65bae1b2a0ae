package ast

import (
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Expression is a Node that represents a Cool expression. Every
// expression owns a mutable static-type slot that the semantic analyzer
// fills in exactly once per analysis.
type Expression interface {
	Node
	expressionNode()
	StaticType() *symbols.Symbol
	SetStaticType(*symbols.Symbol)
}

// TypeInfo is embedded by every expression node to provide the
// static-type slot.
type TypeInfo struct {
	staticType *symbols.Symbol
}

func (ti *TypeInfo) StaticType() *symbols.Symbol     { return ti.staticType }
func (ti *TypeInfo) SetStaticType(s *symbols.Symbol) { ti.staticType = s }

// Program is the root node: an ordered sequence of classes. File is the
// path of the entry source file; individual classes carry their own
// filename so that multi-file programs diagnose correctly.
type Program struct {
	File    string
	Classes []*Class
}

func (p *Program) TokenLiteral() string {
	if len(p.Classes) > 0 {
		return p.Classes[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Classes) > 0 {
		return p.Classes[0].GetToken()
	}
	return token.Token{}
}

// Class declares a Cool class: a name, a parent (Object when the source
// has no inherits clause) and an ordered feature list.
type Class struct {
	Token    token.Token // The 'class' token
	Name     *symbols.Symbol
	Parent   *symbols.Symbol
	Features []Feature
	Filename string
}

func (c *Class) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Class) GetToken() token.Token { return c.Token }

// Methods returns the class's method features in declaration order.
func (c *Class) Methods() []*Method {
	var out []*Method
	for _, f := range c.Features {
		if m, ok := f.(*Method); ok {
			out = append(out, m)
		}
	}
	return out
}

// Attributes returns the class's attribute features in declaration order.
func (c *Class) Attributes() []*Attribute {
	var out []*Attribute
	for _, f := range c.Features {
		if a, ok := f.(*Attribute); ok {
			out = append(out, a)
		}
	}
	return out
}

// Feature is either a Method or an Attribute.
type Feature interface {
	Node
	featureNode()
	FeatureName() *symbols.Symbol
}

// Method is a feature of the form name(formals) : ReturnType { Body }.
type Method struct {
	Token      token.Token // The method name token
	Name       *symbols.Symbol
	Formals    []*Formal
	ReturnType *symbols.Symbol
	Body       Expression
}

func (m *Method) featureNode()                 {}
func (m *Method) TokenLiteral() string         { return m.Token.Lexeme }
func (m *Method) GetToken() token.Token        { return m.Token }
func (m *Method) FeatureName() *symbols.Symbol { return m.Name }

// Attribute is a feature of the form name : DeclType [<- Init]. An absent
// initializer is represented by *NoExpr, never by nil.
type Attribute struct {
	Token    token.Token // The attribute name token
	Name     *symbols.Symbol
	DeclType *symbols.Symbol
	Init     Expression
}

func (a *Attribute) featureNode()                 {}
func (a *Attribute) TokenLiteral() string         { return a.Token.Lexeme }
func (a *Attribute) GetToken() token.Token        { return a.Token }
func (a *Attribute) FeatureName() *symbols.Symbol { return a.Name }

// Formal is a declared method parameter.
type Formal struct {
	Token    token.Token // The formal name token
	Name     *symbols.Symbol
	DeclType *symbols.Symbol
}

func (f *Formal) TokenLiteral() string  { return f.Token.Lexeme }
func (f *Formal) GetToken() token.Token { return f.Token }

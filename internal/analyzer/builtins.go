package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/golang/glog"
)

const basicClassFile = "<basic class>"

// installBasicClasses registers Object, IO, Int, Bool and String with
// synthetic bodies so that method and attribute lookups treat them like
// any user class. Their method bodies are built into the runtime; the
// analyzer only needs the signatures.
func (a *Analyzer) installBasicClasses() {
	t := a.tab

	objectClass := a.basicClass(t.Object, t.NoClass,
		a.basicMethod(t.Abort, t.Object),
		a.basicMethod(t.TypeName, t.Str),
		a.basicMethod(t.Copy, t.SelfType),
	)

	ioClass := a.basicClass(t.IO, t.Object,
		a.basicMethod(t.OutStr, t.SelfType, basicFormal(t.Arg, t.Str)),
		a.basicMethod(t.OutInt, t.SelfType, basicFormal(t.Arg, t.Int)),
		a.basicMethod(t.InStr, t.Str),
		a.basicMethod(t.InInt, t.Int),
	)

	intClass := a.basicClass(t.Int, t.Object,
		basicAttr(t.Val, t.PrimSlot),
	)

	boolClass := a.basicClass(t.Bool, t.Object,
		basicAttr(t.Val, t.PrimSlot),
	)

	strClass := a.basicClass(t.Str, t.Object,
		basicAttr(t.Val, t.Int),
		basicAttr(t.StrField, t.PrimSlot),
		a.basicMethod(t.Length, t.Int),
		a.basicMethod(t.Concat, t.Str, basicFormal(t.Arg, t.Str)),
		a.basicMethod(t.Substr, t.Str, basicFormal(t.Arg, t.Int), basicFormal(t.Arg2, t.Int)),
	)

	for _, c := range []*ast.Class{objectClass, ioClass, intClass, boolClass, strClass} {
		a.classes[c.Name] = c
		a.basicClasses = append(a.basicClasses, c)
		glog.V(2).Infof("installed basic class %s", c.Name)
	}
}

func (a *Analyzer) basicClass(name, parent *symbols.Symbol, features ...ast.Feature) *ast.Class {
	return &ast.Class{
		Name:     name,
		Parent:   parent,
		Features: features,
		Filename: basicClassFile,
	}
}

func (a *Analyzer) basicMethod(name, returnType *symbols.Symbol, formals ...*ast.Formal) *ast.Method {
	return &ast.Method{
		Name:       name,
		Formals:    formals,
		ReturnType: returnType,
		Body:       &ast.NoExpr{},
	}
}

func basicFormal(name, declType *symbols.Symbol) *ast.Formal {
	return &ast.Formal{Name: name, DeclType: declType}
}

func basicAttr(name, declType *symbols.Symbol) *ast.Attribute {
	return &ast.Attribute{Name: name, DeclType: declType, Init: &ast.NoExpr{}}
}

// isBasicClassName reports whether name is one of the five installed
// basic classes.
func (a *Analyzer) isBasicClassName(name *symbols.Symbol) bool {
	t := a.tab
	return name == t.Object || name == t.IO || name == t.Int || name == t.Str || name == t.Bool
}

// isPrimitiveClassName reports whether name is a class no user class may
// inherit from.
func (a *Analyzer) isPrimitiveClassName(name *symbols.Symbol) bool {
	t := a.tab
	return name == t.Int || name == t.Str || name == t.Bool
}

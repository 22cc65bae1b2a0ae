package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/golang/glog"
)

// checkFeatures type-checks every feature of every user class against
// the inherited attribute environment.
func (a *Analyzer) checkFeatures() {
	for _, class := range a.userClasses {
		a.checkClass(class)
	}
	a.currentClass = nil
}

// checkClass enters one scope per class on the inheritance chain,
// root-first, binding the attributes each class declares. A subclass body
// therefore sees its own attributes innermost and inherited ones in the
// enclosing scopes. Declaration diagnostics are only emitted for the
// class under check; ancestors were or will be diagnosed on their own
// turn.
func (a *Analyzer) checkClass(class *ast.Class) {
	a.currentClass = class
	glog.V(1).Infof("type checking class %s", class.Name)

	entered := 0
	for _, ancestorName := range a.ancestors(class.Name) {
		ancestor, ok := a.classes[ancestorName]
		if !ok {
			continue
		}
		a.env.Enter()
		entered++
		for _, attr := range ancestor.Attributes() {
			a.bindAttribute(attr, ancestor == class)
		}
	}
	defer func() {
		for i := 0; i < entered; i++ {
			a.env.Exit()
		}
	}()

	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.Method:
			a.checkMethod(f)
		case *ast.Attribute:
			a.checkAttribute(f)
		}
	}
}

// bindAttribute adds one attribute to the innermost scope. An attribute
// named self is never bound; a name already visible in any open scope is
// a duplicate.
func (a *Analyzer) bindAttribute(attr *ast.Attribute, report bool) {
	if attr.Name == a.tab.Self {
		if report {
			a.nodeError(diagnostics.ErrS009, attr.Token, "'self' cannot be the name of an attribute")
		}
		return
	}
	if _, exists := a.env.Lookup(attr.Name); exists {
		if report {
			a.nodeError(diagnostics.ErrS008, attr.Token, "attribute %s is multiply defined", attr.Name)
		}
		return
	}
	a.env.Bind(attr.Name, attr.DeclType)
}

// checkMethod validates the signature, binds self and the formals in a
// fresh scope, checks the body and requires it to conform to the declared
// return type.
func (a *Analyzer) checkMethod(method *ast.Method) {
	validReturn := true
	if method.ReturnType != a.tab.SelfType {
		if _, ok := a.classes[method.ReturnType]; !ok {
			validReturn = false
			a.nodeError(diagnostics.ErrS011, method.Token,
				"undefined return type %s in method %s", method.ReturnType, method.Name)
		}
	}

	a.env.Enter()
	defer a.env.Exit()
	a.env.Bind(a.tab.Self, a.tab.SelfType)

	seen := make(map[*symbols.Symbol]bool)
	for _, formal := range method.Formals {
		if formal.Name == a.tab.Self {
			a.nodeError(diagnostics.ErrS009, formal.Token,
				"'self' cannot be the name of a formal parameter in method %s", method.Name)
			continue
		}
		if seen[formal.Name] {
			a.nodeError(diagnostics.ErrS010, formal.Token,
				"formal parameter %s is multiply defined in method %s", formal.Name, method.Name)
		}
		seen[formal.Name] = true

		if _, ok := a.classes[formal.DeclType]; !ok {
			a.nodeError(diagnostics.ErrS011, formal.Token,
				"class %s of formal parameter %s is undefined", formal.DeclType, formal.Name)
		}
		a.env.Bind(formal.Name, formal.DeclType)
	}

	bodyType := a.checkExpression(method.Body)

	if validReturn && bodyType != a.tab.NoType && !a.conforms(bodyType, method.ReturnType) {
		a.nodeError(diagnostics.ErrT002, method.Token,
			"inferred return type %s of method %s does not conform to declared return type %s",
			bodyType, method.Name, method.ReturnType)
	}
}

// checkAttribute validates the declared type and checks the initializer
// in a scope where self is bound. SELF_TYPE is not a legal attribute
// type.
func (a *Analyzer) checkAttribute(attr *ast.Attribute) {
	a.env.Enter()
	defer a.env.Exit()
	a.env.Bind(a.tab.Self, a.tab.SelfType)

	declValid := true
	if attr.DeclType == a.tab.SelfType {
		declValid = false
		a.nodeError(diagnostics.ErrS013, attr.Token,
			"attribute %s cannot have type SELF_TYPE", attr.Name)
	} else if _, ok := a.classes[attr.DeclType]; !ok {
		declValid = false
		a.nodeError(diagnostics.ErrS011, attr.Token,
			"class %s of attribute %s is undefined", attr.DeclType, attr.Name)
	}

	initType := a.checkExpression(attr.Init)
	if initType != a.tab.NoType && declValid && !a.conforms(initType, attr.DeclType) {
		a.nodeError(diagnostics.ErrT002, attr.Token,
			"inferred type %s of initialization of attribute %s does not conform to declared type %s",
			initType, attr.Name, attr.DeclType)
	}
}

package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/golang/glog"
)

// collectMethods builds the per-class method table. Methods sharing a
// name within one class are rejected; the first declaration wins.
func (a *Analyzer) collectMethods() {
	for _, class := range a.basicClasses {
		a.collectClassMethods(class)
	}
	for _, class := range a.userClasses {
		a.collectClassMethods(class)
	}
}

func (a *Analyzer) collectClassMethods(class *ast.Class) {
	table := make(map[*symbols.Symbol]*ast.Method)
	a.methods[class.Name] = table

	a.currentClass = class
	for _, method := range class.Methods() {
		if _, exists := table[method.Name]; exists {
			a.nodeError(diagnostics.ErrS007, method.Token, "method %s is multiply defined in class %s", method.Name, class.Name)
			continue
		}
		table[method.Name] = method
	}
	glog.V(2).Infof("collected %d methods for class %s", len(table), class.Name)
}

// lookupMethod resolves a method name against the named class, searching
// from the class itself up to Object.
func (a *Analyzer) lookupMethod(className, methodName *symbols.Symbol) *ast.Method {
	chain := a.ancestors(className)
	for i := len(chain) - 1; i >= 0; i-- {
		if table, ok := a.methods[chain[i]]; ok {
			if method, ok := table[methodName]; ok {
				return method
			}
		}
	}
	return nil
}

// checkMethodOverrides verifies that every method redeclared in a
// subclass matches the inherited signature: same arity, pairwise
// identical formal types and the identical return type. Formal names are
// irrelevant.
func (a *Analyzer) checkMethodOverrides() {
	for _, class := range a.userClasses {
		a.currentClass = class
		chain := a.ancestors(class.Name)

		for _, method := range class.Methods() {
			for _, ancestor := range chain[:len(chain)-1] {
				parentMethod, ok := a.methods[ancestor][method.Name]
				if !ok {
					continue
				}
				a.compareOverride(class, ancestor, method, parentMethod)
				break
			}
		}
	}
}

func (a *Analyzer) compareOverride(class *ast.Class, ancestor *symbols.Symbol, method, parentMethod *ast.Method) {
	if len(method.Formals) != len(parentMethod.Formals) {
		a.nodeError(diagnostics.ErrS012, method.Token,
			"wrong method inheritance (number) between %s and %s in %s", class.Name, ancestor, method.Name)
		return
	}

	for i, formal := range method.Formals {
		if formal.DeclType != parentMethod.Formals[i].DeclType {
			a.nodeError(diagnostics.ErrS012, method.Token,
				"wrong method inheritance (sequence) between %s and %s in %s", class.Name, ancestor, method.Name)
		}
	}

	if method.ReturnType != parentMethod.ReturnType {
		a.nodeError(diagnostics.ErrS012, method.Token,
			"wrong method inheritance (return) between %s and %s in %s", class.Name, ancestor, method.Name)
	}
}

package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/golang/glog"
)

// registerClasses indexes the user classes by name, rejecting reserved
// names and redefinitions, and verifies the program defines Main.
func (a *Analyzer) registerClasses(program *ast.Program) {
	for _, class := range program.Classes {
		name := class.Name

		if name == a.tab.SelfType {
			a.classError(diagnostics.ErrS001, class, "class name %s conflicts with a basic class", name)
			continue
		}
		if _, exists := a.classes[name]; exists {
			if a.isBasicClassName(name) {
				a.classError(diagnostics.ErrS001, class, "class name %s conflicts with a basic class", name)
			} else {
				a.classError(diagnostics.ErrS002, class, "redefinition of class %s", name)
			}
			continue
		}

		a.classes[name] = class
		a.userClasses = append(a.userClasses, class)
		glog.V(2).Infof("registered class %s (parent %s)", name, class.Parent)
	}

	if _, ok := a.classes[a.tab.Main]; !ok {
		a.programError(diagnostics.ErrS003, "Class Main is not defined.")
	}
}

// checkInheritance walks each user class's parent chain up to Object and
// rejects undeclared parents, primitive parents and cycles. Each chain
// stops at its first failure so a broken link yields one diagnostic per
// chain that crosses it.
func (a *Analyzer) checkInheritance() {
	for _, class := range a.userClasses {
		a.checkParentChain(class)
	}
}

func (a *Analyzer) checkParentChain(class *ast.Class) {
	seen := make(map[*symbols.Symbol]bool)
	current := class
	parent := class.Parent

	for parent != a.tab.Object {
		seen[current.Name] = true

		parentClass, ok := a.classes[parent]
		if !ok {
			a.classError(diagnostics.ErrS004, current, "class %s inherits undeclared class %s", current.Name, parent)
			return
		}
		if a.isPrimitiveClassName(parent) {
			a.classError(diagnostics.ErrS005, current, "class %s inherits from a basic class %s", current.Name, parent)
			return
		}
		if seen[parent] {
			a.classError(diagnostics.ErrS006, current, "cycle in class hierarchy involving class %s", parent)
			return
		}

		current = parentClass
		parent = parentClass.Parent
	}
}

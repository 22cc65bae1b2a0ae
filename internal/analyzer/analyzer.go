// Package analyzer implements semantic analysis for Cool programs: class
// registration, inheritance validation, method collection, override
// checking and expression type checking. On success every expression node
// of the input AST carries its inferred static type.
package analyzer

import (
	"fmt"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
	"github.com/golang/glog"
)

// Analyzer performs semantic analysis on a parsed program. It is not
// reusable: create a fresh Analyzer for every analysis.
type Analyzer struct {
	tab *symbols.Table

	// classes indexes every registered class (basic and user) by name.
	classes map[*symbols.Symbol]*ast.Class
	// userClasses preserves source order for deterministic diagnostics.
	userClasses []*ast.Class
	// basicClasses in installation order, for deterministic traversal.
	basicClasses []*ast.Class

	// methods is the per-class method table, populated by collectMethods
	// and read-only afterwards.
	methods map[*symbols.Symbol]map[*symbols.Symbol]*ast.Method

	// env is the attribute/variable environment, mutated strictly LIFO
	// while features are checked.
	env *objectEnv

	currentClass *ast.Class
	errors       []*diagnostics.DiagnosticError
}

func New(tab *symbols.Table) *Analyzer {
	return &Analyzer{
		tab:     tab,
		classes: make(map[*symbols.Symbol]*ast.Class),
		methods: make(map[*symbols.Symbol]map[*symbols.Symbol]*ast.Method),
		env:     newObjectEnv(),
	}
}

// Analyze runs all phases over the program and returns the accumulated
// diagnostics. Phases that depend on a well-formed class hierarchy or
// method table are skipped once an earlier phase group has recorded
// errors; within a phase, errors accumulate and analysis continues.
func (a *Analyzer) Analyze(program *ast.Program) []*diagnostics.DiagnosticError {
	glog.V(1).Infof("analyzing program with %d classes", len(program.Classes))

	a.installBasicClasses()
	a.registerClasses(program)
	a.checkInheritance()
	if len(a.errors) > 0 {
		return a.errors
	}

	a.collectMethods()
	a.checkMethodOverrides()
	if len(a.errors) > 0 {
		return a.errors
	}

	a.checkFeatures()
	return a.errors
}

// Errors returns the diagnostics recorded so far.
func (a *Analyzer) Errors() []*diagnostics.DiagnosticError { return a.errors }

// LookupClass returns the registered class with the given name.
func (a *Analyzer) LookupClass(name *symbols.Symbol) (*ast.Class, bool) {
	c, ok := a.classes[name]
	return c, ok
}

// classError records a diagnostic located at the class declaration.
func (a *Analyzer) classError(code diagnostics.ErrorCode, c *ast.Class, format string, args ...interface{}) {
	err := diagnostics.NewError(code, c.Token, fmt.Sprintf(format, args...))
	err.File = c.Filename
	a.errors = append(a.errors, err)
}

// nodeError records a diagnostic located at a node of the class currently
// being checked.
func (a *Analyzer) nodeError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, fmt.Sprintf(format, args...))
	if a.currentClass != nil {
		err.File = a.currentClass.Filename
	}
	a.errors = append(a.errors, err)
}

// programError records a program-level diagnostic with no source locus.
func (a *Analyzer) programError(code diagnostics.ErrorCode, format string, args ...interface{}) {
	a.errors = append(a.errors, diagnostics.NewError(code, token.Token{}, fmt.Sprintf(format, args...)))
}

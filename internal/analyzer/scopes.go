package analyzer

import "github.com/funvibe/coolc/internal/symbols"

// objectEnv is the attribute/variable environment: a stack of scopes
// mapping identifier symbols to their declared types. Lookups search from
// the innermost scope outward. Entries and exits must pair on every path;
// callers use defer where a scope spans an entire check.
type objectEnv struct {
	scopes []map[*symbols.Symbol]*symbols.Symbol
}

func newObjectEnv() *objectEnv {
	return &objectEnv{}
}

func (e *objectEnv) Enter() {
	e.scopes = append(e.scopes, make(map[*symbols.Symbol]*symbols.Symbol))
}

func (e *objectEnv) Exit() {
	if len(e.scopes) == 0 {
		panic("objectEnv: exit without matching enter")
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Bind records name with its declared type in the innermost scope.
func (e *objectEnv) Bind(name, declType *symbols.Symbol) {
	e.scopes[len(e.scopes)-1][name] = declType
}

// Lookup returns the declared type of the innermost binding of name.
func (e *objectEnv) Lookup(name *symbols.Symbol) (*symbols.Symbol, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Depth reports the number of open scopes.
func (e *objectEnv) Depth() int { return len(e.scopes) }

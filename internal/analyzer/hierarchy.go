package analyzer

import "github.com/funvibe/coolc/internal/symbols"

// resolveSelfType maps SELF_TYPE to the class currently being checked;
// every other type is returned unchanged.
func (a *Analyzer) resolveSelfType(t *symbols.Symbol) *symbols.Symbol {
	if t == a.tab.SelfType && a.currentClass != nil {
		return a.currentClass.Name
	}
	return t
}

// ancestors returns the inheritance chain of the named class from Object
// down to the class itself, both endpoints included: ancestors(Object) is
// [Object]. SELF_TYPE resolves to the current class first. The chain is
// only meaningful after checkInheritance has passed; the seen guard keeps
// the walk finite on malformed input.
func (a *Analyzer) ancestors(name *symbols.Symbol) []*symbols.Symbol {
	name = a.resolveSelfType(name)

	var chain []*symbols.Symbol
	seen := make(map[*symbols.Symbol]bool)
	for current := name; current != a.tab.Object; {
		if seen[current] {
			break
		}
		seen[current] = true
		chain = append(chain, current)

		class, ok := a.classes[current]
		if !ok {
			break
		}
		current = class.Parent
	}
	chain = append(chain, a.tab.Object)

	// Reverse into root-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// conforms reports whether child ≤ parent in the class hierarchy, with
// SELF_TYPE interpreted against the class currently being checked:
// SELF_TYPE conforms to SELF_TYPE, a concrete type never conforms to
// SELF_TYPE, and SELF_TYPE on the left stands for the current class.
func (a *Analyzer) conforms(child, parent *symbols.Symbol) bool {
	if child == parent {
		return true
	}
	if parent == a.tab.SelfType {
		return false
	}
	if child == a.tab.SelfType {
		child = a.resolveSelfType(child)
		if child == parent {
			return true
		}
	}
	for _, anc := range a.ancestors(child) {
		if anc == parent {
			return true
		}
	}
	return false
}

// lca returns the least common ancestor of two types over the tree rooted
// at Object. SELF_TYPE inputs are resolved against the current class
// before the walk.
func (a *Analyzer) lca(x, y *symbols.Symbol) *symbols.Symbol {
	x = a.resolveSelfType(x)
	y = a.resolveSelfType(y)
	if x == y {
		return x
	}

	xChain := a.ancestors(x)
	yChain := a.ancestors(y)

	ancestor := a.tab.Object
	for i := 0; i < len(xChain) && i < len(yChain); i++ {
		if xChain[i] != yChain[i] {
			break
		}
		ancestor = xChain[i]
	}
	return ancestor
}

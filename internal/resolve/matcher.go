package resolve

import (
	"talc/internal/source"
	"talc/internal/types"
)

// BinderFunc reports whether a name acts as a binder inside the pattern
// being matched (for declaration patterns: the declaration's own formal
// parameter names).
type BinderFunc func(source.StringID) bool

// Matcher unifies a formal parameter's declared pattern with an actual
// type, recording bindings for binder names. Pluggable so the resolver
// never hardcodes pattern forms.
type Matcher interface {
	// Match reports whether actual matches pattern. Successful matches
	// extend out with pattern-internal bindings; a binder already bound
	// to a different type fails the match.
	Match(pattern, actual types.TypeID, binder BinderFunc, out *ParamMap) bool
}

// StructuralMatcher matches patterns shape-by-shape: binder parameters
// capture the corresponding actual, everything else must agree
// structurally (which, with interned types, is TypeID equality at the
// leaves).
type StructuralMatcher struct {
	Types *types.Interner
}

func (m *StructuralMatcher) Match(pattern, actual types.TypeID, binder BinderFunc, out *ParamMap) bool {
	pt, ok := m.Types.Lookup(pattern)
	if !ok {
		return false
	}

	switch pt.Kind {
	case types.KindParam:
		info, ok := m.Types.ParamInfo(pattern)
		if !ok {
			return false
		}
		if binder != nil && binder(info.Name) {
			return out.Bind(info.Name, actual)
		}
		// A non-binder parameter reference only matches itself.
		return pattern == actual

	case types.KindPointer:
		at, ok := m.Types.Lookup(actual)
		if !ok || at.Kind != types.KindPointer {
			return false
		}
		return m.Match(pt.Elem, at.Elem, binder, out)

	case types.KindInstance:
		pi, ok := m.Types.InstanceInfo(pattern)
		if !ok {
			return false
		}
		ai, ok := m.Types.InstanceInfo(actual)
		if !ok || ai.Decl != pi.Decl || len(ai.Args) != len(pi.Args) {
			return false
		}
		for i := range pi.Args {
			if !m.Match(pi.Args[i], ai.Args[i], binder, out) {
				return false
			}
		}
		return true

	default:
		// Ground leaves: interning makes structural equality identity.
		return pattern == actual
	}
}

package resolve

import (
	"slices"

	"talc/internal/source"
	"talc/internal/templates"
	"talc/internal/types"
)

// Instance is the result of Gen: a canonical interned instance of a
// declaration plus the formal -> actual map derived from its arguments.
// Transient; lives only for the duration of one resolution.
type Instance struct {
	Type   types.TypeID
	Decl   *templates.Decl
	Args   []types.TypeID
	Params *ParamMap
}

// Gen builds the canonical instance of decl applied to args.
//
// Arity is checked first. Each formal with a destructuring pattern is
// unified against its actual via the Matcher; pattern-internal bindings
// (e.g. `A: A*` against `int*` binding A to int) land in the param map.
// A plain formal binds to its actual verbatim. Pure: no state outside
// the returned Instance is touched beyond type interning.
func (r *Resolver) Gen(decl *templates.Decl, args []types.TypeID) (Instance, error) {
	if len(args) != len(decl.Params) {
		return Instance{}, &ArityMismatchError{
			Decl:     decl.ID,
			DeclName: r.Strings.MustLookup(decl.Name),
			Got:      len(args),
			Want:     len(decl.Params),
		}
	}

	pm := NewParamMap(len(decl.Params))
	isFormal := func(name source.StringID) bool { return decl.FormalIndex(name) >= 0 }

	for i := range decl.Params {
		formal := &decl.Params[i]
		if formal.Pattern == types.NoTypeID {
			if !pm.Bind(formal.Name, args[i]) {
				return Instance{}, r.patternMismatch(decl, formal, args[i])
			}
			continue
		}
		if !r.Matcher.Match(formal.Pattern, args[i], BinderFunc(isFormal), pm) {
			return Instance{}, r.patternMismatch(decl, formal, args[i])
		}
		// A pattern may deduce a binding for the formal's own name
		// (`A: A*`). When it does not, the formal binds to the actual.
		if !pm.Has(formal.Name) {
			pm.Bind(formal.Name, args[i])
		}
	}

	return Instance{
		Type:   r.Types.InternInstance(decl.Name, decl.ID.Raw(), args),
		Decl:   decl,
		Args:   slices.Clone(args),
		Params: pm,
	}, nil
}

func (r *Resolver) patternMismatch(decl *templates.Decl, formal *templates.Formal, actual types.TypeID) error {
	return &PatternMismatchError{
		Decl:       decl.ID,
		DeclName:   r.Strings.MustLookup(decl.Name),
		FormalName: r.Strings.MustLookup(formal.Name),
		Actual:     actual,
		ActualStr:  r.Types.Render(actual, r.Strings),
	}
}

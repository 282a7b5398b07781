package resolve

import (
	"slices"

	"talc/internal/types"
)

// MatchParams rewrites every element of args under pm. The result has
// the same length as args; elements with no in-scope parameter
// references come back unchanged. A parameter reference missing from pm
// yields an UnboundParameterError.
func (r *Resolver) MatchParams(args []types.TypeID, pm *ParamMap) ([]types.TypeID, error) {
	out := slices.Clone(args)
	for i, a := range args {
		na, err := r.Substitute(a, pm)
		if err != nil {
			return nil, err
		}
		out[i] = na
	}
	return out, nil
}

// Substitute applies pm to a single type.
func (r *Resolver) Substitute(t types.TypeID, pm *ParamMap) (types.TypeID, error) {
	tt, ok := r.Types.Lookup(t)
	if !ok {
		return t, nil
	}

	switch tt.Kind {
	case types.KindParam:
		info, ok := r.Types.ParamInfo(t)
		if !ok {
			return t, nil
		}
		if repl, ok := pm.Get(info.Name); ok {
			return repl, nil
		}
		return types.NoTypeID, &UnboundParameterError{Name: r.Strings.MustLookup(info.Name)}

	case types.KindPointer:
		elem, err := r.Substitute(tt.Elem, pm)
		if err != nil {
			return types.NoTypeID, err
		}
		if elem == tt.Elem {
			return t, nil
		}
		return r.Types.Intern(types.MakePointer(elem)), nil

	case types.KindInstance:
		info, ok := r.Types.InstanceInfo(t)
		if !ok {
			return t, nil
		}
		newArgs := slices.Clone(info.Args)
		changed := false
		for i, a := range info.Args {
			na, err := r.Substitute(a, pm)
			if err != nil {
				return types.NoTypeID, err
			}
			newArgs[i] = na
			changed = changed || na != a
		}
		if !changed {
			return t, nil
		}
		return r.Types.InternInstance(info.Name, info.Decl, newArgs), nil

	default:
		return t, nil
	}
}

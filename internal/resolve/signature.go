package resolve

import (
	"fmt"

	"talc/internal/source"
	"talc/internal/templates"
	"talc/internal/types"
)

// ResolvedParam is one value parameter of a function template after
// alias resolution.
type ResolvedParam struct {
	Name source.StringID
	Type types.TypeID
}

// Signature is the outcome of resolving every parameter type of one
// function template, plus the unused-parameter report the caller needs
// to rewrite or reject the candidate.
type Signature struct {
	Fn     *templates.Decl
	Params []ResolvedParam
	// Kept holds the template formals that still appear in at least one
	// resolved parameter type, in declaration order.
	Kept []templates.Formal
	// Unused holds the template formals that no resolved parameter type
	// references. Whether that drops them or fails the template is the
	// caller's policy.
	Unused []templates.Formal
}

// ResolveSignature resolves each value-parameter type of the function
// template independently (sibling parameters never share cycle state)
// and reports which template parameters survived.
//
// Any resolution failure aborts the whole candidate; partial results are
// discarded, matching how overload resolution consumes this.
func (r *Resolver) ResolveSignature(fnID templates.DeclID) (*Signature, error) {
	fn := r.Reg.Get(fnID)
	if fn == nil || fn.Kind != templates.DeclFn {
		return nil, fmt.Errorf("resolve: %d is not a function template", fnID)
	}

	sig := &Signature{
		Fn:     fn,
		Params: make([]ResolvedParam, 0, len(fn.FnParams)),
	}

	used := make(map[source.StringID]struct{}, len(fn.Params))
	for _, p := range fn.FnParams {
		rt, err := r.Resolve(p.Type)
		if err != nil {
			return nil, err
		}
		sig.Params = append(sig.Params, ResolvedParam{Name: p.Name, Type: rt})
		r.collectOwnedParams(rt, fn.ID.Raw(), used)
	}

	for _, formal := range fn.Params {
		if _, ok := used[formal.Name]; ok {
			sig.Kept = append(sig.Kept, formal)
		} else {
			sig.Unused = append(sig.Unused, formal)
		}
	}
	return sig, nil
}

// UnusedError builds the error for a signature whose unused parameters
// the caller chose not to drop. Returns nil when nothing is unused.
func (r *Resolver) UnusedError(sig *Signature) error {
	if sig == nil || len(sig.Unused) == 0 {
		return nil
	}
	names := make([]string, 0, len(sig.Unused))
	for _, f := range sig.Unused {
		names = append(names, r.Strings.MustLookup(f.Name))
	}
	return &UnusedParameterError{
		Fn:     sig.Fn.ID,
		FnName: r.Strings.MustLookup(sig.Fn.Name),
		Params: names,
	}
}

// collectOwnedParams records every formal-parameter reference owned by
// owner that occurs anywhere in t.
func (r *Resolver) collectOwnedParams(t types.TypeID, owner uint32, out map[source.StringID]struct{}) {
	tt, ok := r.Types.Lookup(t)
	if !ok {
		return
	}
	switch tt.Kind {
	case types.KindParam:
		info, ok := r.Types.ParamInfo(t)
		if ok && info.Owner == owner {
			out[info.Name] = struct{}{}
		}
	case types.KindPointer:
		r.collectOwnedParams(tt.Elem, owner, out)
	case types.KindInstance:
		info, ok := r.Types.InstanceInfo(t)
		if !ok {
			return
		}
		for _, arg := range info.Args {
			r.collectOwnedParams(arg, owner, out)
		}
	}
}

package resolve

import (
	"slices"

	"talc/internal/source"
	"talc/internal/templates"
	"talc/internal/types"
)

// Resolver rewrites parameter types by expanding alias-template
// instances until a non-alias type remains. It only reads the registry
// and interner it borrows; per-call state lives in a cycle guard scoped
// to one top-level Resolve.
type Resolver struct {
	Types   *types.Interner
	Reg     *templates.Registry
	Strings *source.Interner
	Matcher Matcher
}

// New constructs a Resolver with the default structural pattern matcher.
func New(tys *types.Interner, reg *templates.Registry, strs *source.Interner) *Resolver {
	return &Resolver{
		Types:   tys,
		Reg:     reg,
		Strings: strs,
		Matcher: &StructuralMatcher{Types: tys},
	}
}

// Resolve expands alias-template instances in t and returns the fully
// resolved type. Non-instance types (ground types and bare parameter
// references) come back unchanged. Independent calls never share cycle
// state.
func (r *Resolver) Resolve(t types.TypeID) (types.TypeID, error) {
	return r.resolveNested(t, newCycleGuard())
}

func (r *Resolver) resolve(t types.TypeID, g *cycleGuard) (types.TypeID, error) {
	info, ok := r.Types.InstanceInfo(t)
	if !ok {
		// Ground type or bare formal reference: resolution is a no-op.
		return t, nil
	}

	decl := r.Reg.Get(templates.DeclID(info.Decl))
	if decl == nil {
		return t, nil
	}

	// Nested alias arguments resolve first, so an alias buried inside
	// another alias's argument list is fully expanded before the outer
	// instance is touched.
	args := slices.Clone(info.Args)
	changed := false
	for i, arg := range args {
		na, err := r.resolveNested(arg, g)
		if err != nil {
			return types.NoTypeID, err
		}
		args[i] = na
		changed = changed || na != arg
	}
	if changed {
		t = r.Types.InternInstance(decl.Name, decl.ID.Raw(), args)
	}

	if !decl.IsAlias() {
		return t, nil
	}

	// Gen validates arity and destructuring patterns and produces the
	// formal -> actual map for this instantiation.
	inst, err := r.Gen(decl, args)
	if err != nil {
		return types.NoTypeID, err
	}

	if !g.enter(decl.ID) {
		return types.NoTypeID, &AliasCycleError{
			Decl:     decl.ID,
			DeclName: r.Strings.MustLookup(decl.Name),
		}
	}
	// The declaration stays on the path while its expansion resolves;
	// that is what turns direct and mutual alias recursion into a
	// detected cycle instead of an unbounded loop.
	defer g.leave(decl.ID)

	target, isInstance := r.Types.InstanceInfo(decl.Aliased)
	if !isInstance {
		// The aliased type is a ground type or a bare formal reference:
		// substitute and stop, no further expansion.
		return r.Substitute(decl.Aliased, inst.Params)
	}

	newArgs, err := r.MatchParams(target.Args, inst.Params)
	if err != nil {
		return types.NoTypeID, err
	}
	targetDecl := r.Reg.Get(templates.DeclID(target.Decl))
	next, err := r.Gen(targetDecl, newArgs)
	if err != nil {
		return types.NoTypeID, err
	}
	return r.resolve(next.Type, g)
}

// resolveNested resolves alias instances reachable inside an argument,
// including through pointers and inside non-alias instances.
func (r *Resolver) resolveNested(t types.TypeID, g *cycleGuard) (types.TypeID, error) {
	tt, ok := r.Types.Lookup(t)
	if !ok {
		return t, nil
	}
	switch tt.Kind {
	case types.KindPointer:
		elem, err := r.resolveNested(tt.Elem, g)
		if err != nil {
			return types.NoTypeID, err
		}
		if elem == tt.Elem {
			return t, nil
		}
		return r.Types.Intern(types.MakePointer(elem)), nil
	case types.KindInstance:
		return r.resolve(t, g)
	default:
		return t, nil
	}
}

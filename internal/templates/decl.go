package templates

import (
	"talc/internal/source"
	"talc/internal/types"
)

// DeclID identifies a template declaration in the registry.
type DeclID uint32

// NoDeclID marks the absence of a declaration.
const NoDeclID DeclID = 0

// IsValid reports whether the ID refers to a registered declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// Raw returns the ID as the raw owner value used by the type interner.
func (id DeclID) Raw() uint32 { return uint32(id) }

// DeclKind enumerates the kinds of top-level declarations.
type DeclKind uint8

const (
	// DeclInvalid indicates an erroneous declaration slot.
	DeclInvalid DeclKind = iota
	// DeclStruct is an opaque aggregate template with no aliased type.
	DeclStruct
	// DeclAlias is an alias template that expands to its aliased type.
	DeclAlias
	// DeclFn is a function template whose value-parameter types the
	// resolver rewrites.
	DeclFn
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclAlias:
		return "alias"
	case DeclFn:
		return "fn"
	default:
		return "invalid"
	}
}

// Formal is one template formal parameter, optionally constrained by a
// destructuring pattern (e.g. `A: A*`). Pattern is NoTypeID when the
// formal is unconstrained.
type Formal struct {
	Name    source.StringID
	Pattern types.TypeID
	Span    source.Span
}

// FnParam is one value parameter of a function template.
type FnParam struct {
	Name source.StringID
	Type types.TypeID
	Span source.Span
}

// Decl is one top-level template declaration. Immutable once binding
// completes; the resolver only reads it.
type Decl struct {
	ID       DeclID
	Name     source.StringID
	Kind     DeclKind
	Params   []Formal
	Aliased  types.TypeID // DeclAlias only
	FnParams []FnParam    // DeclFn only
	Span     source.Span
}

// IsAlias reports whether the declaration is an alias template.
func (d *Decl) IsAlias() bool { return d.Kind == DeclAlias }

// FormalIndex returns the position of the named formal, or -1.
func (d *Decl) FormalIndex(name source.StringID) int {
	for i := range d.Params {
		if d.Params[i].Name == name {
			return i
		}
	}
	return -1
}

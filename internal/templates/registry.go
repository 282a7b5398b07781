package templates

import (
	"fmt"

	"fortio.org/safecast"

	"talc/internal/source"
	"talc/internal/types"
)

// Registry owns all template declarations bound from one compilation.
// Declarations share a single top-level namespace.
type Registry struct {
	decls  []Decl
	byName map[source.StringID]DeclID
}

// NewRegistry creates an empty registry. Slot 0 is the invalid sentinel.
func NewRegistry() *Registry {
	return &Registry{
		decls:  []Decl{{}},
		byName: make(map[source.StringID]DeclID, 16),
	}
}

// Declare allocates a declaration slot for name. Returns the existing ID
// and false when the name is already taken.
func (r *Registry) Declare(name source.StringID, kind DeclKind, span source.Span) (DeclID, bool) {
	if existing, ok := r.byName[name]; ok {
		return existing, false
	}
	slot, err := safecast.Conv[uint32](len(r.decls))
	if err != nil {
		panic(fmt.Errorf("decl slot overflow: %w", err))
	}
	id := DeclID(slot)
	r.decls = append(r.decls, Decl{
		ID:   id,
		Name: name,
		Kind: kind,
		Span: span,
	})
	r.byName[name] = id
	return id, true
}

// SetParams stores the formal parameter list for a declaration.
func (r *Registry) SetParams(id DeclID, params []Formal) {
	if d := r.get(id); d != nil {
		d.Params = params
	}
}

// SetAliased stores the aliased type for an alias declaration.
func (r *Registry) SetAliased(id DeclID, aliased types.TypeID) {
	if d := r.get(id); d != nil && d.Kind == DeclAlias {
		d.Aliased = aliased
	}
}

// SetFnParams stores the value parameters for a function template.
func (r *Registry) SetFnParams(id DeclID, params []FnParam) {
	if d := r.get(id); d != nil && d.Kind == DeclFn {
		d.FnParams = params
	}
}

// Get returns the declaration for id, or nil.
func (r *Registry) Get(id DeclID) *Decl {
	return r.get(id)
}

// LookupName finds a declaration by name.
func (r *Registry) LookupName(name source.StringID) (DeclID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Len returns the number of declarations, counting the sentinel slot.
func (r *Registry) Len() int {
	return len(r.decls)
}

// Decls iterates declaration IDs in declaration order.
func (r *Registry) Decls() []DeclID {
	out := make([]DeclID, 0, len(r.decls)-1)
	for i := 1; i < len(r.decls); i++ {
		out = append(out, DeclID(i)) // #nosec G115 -- bounded by decl slot allocation
	}
	return out
}

func (r *Registry) get(id DeclID) *Decl {
	if id == NoDeclID || int(id) >= len(r.decls) {
		return nil
	}
	return &r.decls[id]
}

package resolve

import (
	"talc/internal/source"
	"talc/internal/types"
)

// ParamMap is an ordered mapping from formal-parameter name to the actual
// type bound to it. Built once by Gen; read-only afterwards.
type ParamMap struct {
	names []source.StringID
	vals  []types.TypeID
	index map[source.StringID]int
}

// NewParamMap creates an empty map sized for n bindings.
func NewParamMap(n int) *ParamMap {
	return &ParamMap{
		names: make([]source.StringID, 0, n),
		vals:  make([]types.TypeID, 0, n),
		index: make(map[source.StringID]int, n),
	}
}

// Bind records name -> t. Rebinding an existing name keeps its position
// and succeeds only when the value is unchanged.
func (m *ParamMap) Bind(name source.StringID, t types.TypeID) bool {
	if i, ok := m.index[name]; ok {
		return m.vals[i] == t
	}
	m.index[name] = len(m.names)
	m.names = append(m.names, name)
	m.vals = append(m.vals, t)
	return true
}

// Get returns the binding for name.
func (m *ParamMap) Get(name source.StringID) (types.TypeID, bool) {
	if m == nil {
		return types.NoTypeID, false
	}
	i, ok := m.index[name]
	if !ok {
		return types.NoTypeID, false
	}
	return m.vals[i], true
}

// Has reports whether name is bound.
func (m *ParamMap) Has(name source.StringID) bool {
	_, ok := m.Get(name)
	return ok
}

// Len returns the number of bindings.
func (m *ParamMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns binding names in insertion order. The slice aliases
// internal storage; callers must not modify it.
func (m *ParamMap) Names() []source.StringID {
	return m.names
}

// Values returns bound types in insertion order. The slice aliases
// internal storage; callers must not modify it.
func (m *ParamMap) Values() []types.TypeID {
	return m.vals
}

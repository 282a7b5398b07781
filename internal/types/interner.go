package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive ground types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Structurally equal descriptors always map to the same TypeID, so type
// equivalence is TypeID equality.
type Interner struct {
	types     []Type
	index     map[typeKey]TypeID
	builtins  Builtins
	params    []ParamInfo
	paramIdx  map[paramKey]TypeID
	instances []InstanceInfo
	instIdx   map[instKey]TypeID
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[typeKey]TypeID, 64),
		paramIdx: make(map[paramKey]TypeID, 16),
		instIdx:  make(map[instKey]TypeID, 16),
	}
	// Slot 0 of each side table is an invalid sentinel.
	in.params = append(in.params, ParamInfo{})
	in.instances = append(in.instances, InstanceInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Uint = in.Intern(Type{Kind: KindUint})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// IsGround reports whether the type contains no formal-parameter
// references anywhere in its tree.
func (in *Interner) IsGround(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindParam:
		return false
	case KindPointer:
		return in.IsGround(tt.Elem)
	case KindInstance:
		info, ok := in.InstanceInfo(id)
		if !ok {
			return false
		}
		for _, arg := range info.Args {
			if !in.IsGround(arg) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

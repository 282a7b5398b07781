package types

import (
	"fmt"

	"fortio.org/safecast"

	"talc/internal/source"
)

// ParamInfo stores metadata about a template formal-parameter reference.
// Owner is the raw DeclID of the declaration that scopes the parameter;
// parameters with the same name under different owners stay distinct.
type ParamInfo struct {
	Name  source.StringID
	Owner uint32
}

type paramKey struct {
	Name  source.StringID
	Owner uint32
}

// InternParam returns the TypeID of the formal-parameter reference,
// allocating it on first sight.
func (in *Interner) InternParam(name source.StringID, owner uint32) TypeID {
	key := paramKey{Name: name, Owner: owner}
	if id, ok := in.paramIdx[key]; ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.params))
	if err != nil {
		panic(fmt.Errorf("param slot overflow: %w", err))
	}
	in.params = append(in.params, ParamInfo{Name: name, Owner: owner})
	id := in.internRaw(Type{Kind: KindParam, Payload: slot})
	in.paramIdx[key] = id
	return id
}

// ParamInfo returns metadata for a KindParam TypeID.
func (in *Interner) ParamInfo(id TypeID) (*ParamInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindParam {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.params) {
		return nil, false
	}
	return &in.params[tt.Payload], true
}

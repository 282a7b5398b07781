package types

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"talc/internal/source"
)

// InstanceInfo stores metadata for a template instance: the originating
// declaration (raw DeclID plus display name) and the ordered argument
// types. Args may repeat; equality is structural over (Decl, Args).
type InstanceInfo struct {
	Name source.StringID
	Decl uint32
	Args []TypeID
}

type instKey struct {
	Decl    uint32
	ArgsKey string
}

// InternInstance returns the TypeID for the declaration applied to args,
// reusing an existing instance with structurally equal arguments.
func (in *Interner) InternInstance(name source.StringID, decl uint32, args []TypeID) TypeID {
	key := instKey{Decl: decl, ArgsKey: typeArgsKey(args)}
	if id, ok := in.instIdx[key]; ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.instances))
	if err != nil {
		panic(fmt.Errorf("instance slot overflow: %w", err))
	}
	in.instances = append(in.instances, InstanceInfo{
		Name: name,
		Decl: decl,
		Args: slices.Clone(args),
	})
	id := in.internRaw(Type{Kind: KindInstance, Payload: slot})
	in.instIdx[key] = id
	return id
}

// InstanceInfo returns metadata for a KindInstance TypeID.
func (in *Interner) InstanceInfo(id TypeID) (*InstanceInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindInstance {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.instances) {
		return nil, false
	}
	return &in.instances[tt.Payload], true
}

// IsInstance reports whether id is a template instance.
func (in *Interner) IsInstance(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindInstance
}

// typeArgsKey produces a deterministic map key for an argument list.
func typeArgsKey(args []TypeID) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte('#')
		}
		b.WriteString(strconv.FormatUint(uint64(arg), 10))
	}
	return b.String()
}

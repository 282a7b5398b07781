package types

import (
	"strings"

	"talc/internal/source"
)

// Render formats a type as surface syntax, e.g. "Map!(string, Vec!int)*".
func (in *Interner) Render(id TypeID, strs *source.Interner) string {
	var b strings.Builder
	in.render(&b, id, strs)
	return b.String()
}

func (in *Interner) render(b *strings.Builder, id TypeID, strs *source.Interner) {
	tt, ok := in.Lookup(id)
	if !ok {
		b.WriteString("<invalid>")
		return
	}
	switch tt.Kind {
	case KindUnit, KindBool, KindString, KindInt, KindUint, KindFloat:
		b.WriteString(tt.Kind.String())
	case KindPointer:
		in.render(b, tt.Elem, strs)
		b.WriteByte('*')
	case KindParam:
		info, ok := in.ParamInfo(id)
		if !ok {
			b.WriteString("<param>")
			return
		}
		b.WriteString(strs.MustLookup(info.Name))
	case KindInstance:
		info, ok := in.InstanceInfo(id)
		if !ok {
			b.WriteString("<instance>")
			return
		}
		b.WriteString(strs.MustLookup(info.Name))
		b.WriteByte('!')
		if len(info.Args) == 1 && in.isBangShorthand(info.Args[0]) {
			in.render(b, info.Args[0], strs)
			return
		}
		b.WriteByte('(')
		for i, arg := range info.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			in.render(b, arg, strs)
		}
		b.WriteByte(')')
	default:
		b.WriteString("<invalid>")
	}
}

// isBangShorthand reports whether a single argument may be printed without
// parentheses after '!'.
func (in *Interner) isBangShorthand(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindUnit, KindBool, KindString, KindInt, KindUint, KindFloat, KindParam:
		return true
	default:
		return false
	}
}

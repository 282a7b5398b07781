package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"talc/internal/resolve"
	"talc/internal/source"
	"talc/internal/types"
)

// FormatSignaturesPretty prints rewritten function-template signatures
// after alias resolution, one per line:
//
//	fn lookup(K, V)(Map!(K, Vec!V) t, K key);
func FormatSignaturesPretty(w io.Writer, sigs []*resolve.Signature, tys *types.Interner, strs *source.Interner) {
	for _, sig := range sigs {
		fmt.Fprintln(w, RenderSignature(sig, tys, strs))
	}
}

// RenderSignature formats one resolved signature in surface syntax,
// keeping only the template parameters that survived resolution.
func RenderSignature(sig *resolve.Signature, tys *types.Interner, strs *source.Interner) string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(strs.MustLookup(sig.Fn.Name))
	b.WriteByte('(')
	for i, formal := range sig.Kept {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strs.MustLookup(formal.Name))
	}
	b.WriteString(")(")
	for i, p := range sig.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tys.Render(p.Type, strs))
		b.WriteByte(' ')
		b.WriteString(strs.MustLookup(p.Name))
	}
	b.WriteString(");")
	return b.String()
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"talc/internal/ast"
)

// FormatASTPretty writes an indented tree of the parsed file.
func FormatASTPretty(w io.Writer, file *ast.File) error {
	fmt.Fprintf(w, "File (span: %s)\n", file.Span)
	for i, item := range file.Items {
		last := i == len(file.Items)-1
		branch, prefix := "├─ ", "│  "
		if last {
			branch, prefix = "└─ ", "   "
		}
		fmt.Fprintf(w, "%sItem[%d]: ", branch, i)
		formatItem(w, item, prefix)
	}
	return nil
}

func formatItem(w io.Writer, item ast.Item, prefix string) {
	switch it := item.(type) {
	case *ast.StructItem:
		fmt.Fprintf(w, "Struct %s%s\n", it.Name.Text, renderParams(it.Params))
	case *ast.AliasItem:
		fmt.Fprintf(w, "Alias %s%s\n", it.Name.Text, renderParams(it.Params))
		fmt.Fprintf(w, "%s└─ = %s\n", prefix, RenderTypeExpr(it.Aliased))
	case *ast.FnItem:
		fmt.Fprintf(w, "Fn %s%s\n", it.Name.Text, renderParams(it.Params))
		for j, fp := range it.FnParams {
			branch := "├─ "
			if j == len(it.FnParams)-1 {
				branch = "└─ "
			}
			fmt.Fprintf(w, "%s%s%s %s\n", prefix, branch, RenderTypeExpr(fp.Type), fp.Name.Text)
		}
	default:
		fmt.Fprintln(w, "unknown item")
	}
}

func renderParams(params []ast.Param) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name.Text)
		if p.Pattern != nil {
			b.WriteString(": ")
			b.WriteString(RenderTypeExpr(p.Pattern))
		}
	}
	b.WriteByte(')')
	return b.String()
}

// RenderTypeExpr formats a parsed type expression back as surface syntax.
func RenderTypeExpr(expr ast.TypeExpr) string {
	switch e := expr.(type) {
	case *ast.PrimType:
		return e.Kind.String()
	case *ast.NameType:
		return e.Name.Text
	case *ast.PointerType:
		return RenderTypeExpr(e.Elem) + "*"
	case *ast.InstanceType:
		var b strings.Builder
		b.WriteString(e.Name.Text)
		b.WriteByte('!')
		if len(e.Args) == 1 {
			if _, ok := e.Args[0].(*ast.PrimType); ok {
				b.WriteString(RenderTypeExpr(e.Args[0]))
				return b.String()
			}
			if _, ok := e.Args[0].(*ast.NameType); ok {
				b.WriteString(RenderTypeExpr(e.Args[0]))
				return b.String()
			}
		}
		b.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(RenderTypeExpr(arg))
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "<unknown>"
	}
}

package bind

import (
	"fmt"

	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/source"
	"talc/internal/templates"
	"talc/internal/token"
	"talc/internal/types"
)

// scope resolves bare identifiers inside one declaration's types: the
// declaration's own formals shadow top-level template names.
type scope struct {
	owner   templates.DeclID
	formals map[source.StringID]struct{}
}

func newScope(decl *templates.Decl) *scope {
	s := &scope{
		owner:   decl.ID,
		formals: make(map[source.StringID]struct{}, len(decl.Params)),
	}
	for _, f := range decl.Params {
		s.formals[f.Name] = struct{}{}
	}
	return s
}

func (s *scope) isFormal(name source.StringID) bool {
	_, ok := s.formals[name]
	return ok
}

// lowerType interns the type expression, resolving names against the
// scope. Errors report a diagnostic and yield the Invalid builtin so
// binding can continue.
func (b *Binder) lowerType(expr ast.TypeExpr, sc *scope) types.TypeID {
	switch e := expr.(type) {
	case *ast.PrimType:
		return b.lowerPrim(e)

	case *ast.PointerType:
		elem := b.lowerType(e.Elem, sc)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return b.types.Intern(types.MakePointer(elem))

	case *ast.NameType:
		name := b.strings.Intern(e.Name.Text)
		if sc.isFormal(name) {
			return b.types.InternParam(name, sc.owner.Raw())
		}
		declID, ok := b.reg.LookupName(name)
		if !ok {
			diag.ReportError(b.reporter, diag.BindUnknownName, e.Name.Span,
				fmt.Sprintf("unknown name %s", e.Name.Text)).Emit()
			return types.NoTypeID
		}
		decl := b.reg.Get(declID)
		if decl.Kind == templates.DeclFn {
			diag.ReportError(b.reporter, diag.BindNotATemplate, e.Name.Span,
				fmt.Sprintf("%s is a function template, not a type", e.Name.Text)).Emit()
			return types.NoTypeID
		}
		if len(decl.Params) != 0 {
			diag.ReportError(b.reporter, diag.BindArityMismatch, e.Name.Span,
				fmt.Sprintf("template %s expects %d argument(s)", e.Name.Text, len(decl.Params))).Emit()
			return types.NoTypeID
		}
		return b.types.InternInstance(decl.Name, decl.ID.Raw(), nil)

	case *ast.InstanceType:
		name := b.strings.Intern(e.Name.Text)
		if sc.isFormal(name) {
			diag.ReportError(b.reporter, diag.BindNotATemplate, e.Name.Span,
				fmt.Sprintf("template parameter %s cannot be instantiated", e.Name.Text)).Emit()
			return types.NoTypeID
		}
		declID, ok := b.reg.LookupName(name)
		if !ok {
			diag.ReportError(b.reporter, diag.BindUnknownName, e.Name.Span,
				fmt.Sprintf("unknown template %s", e.Name.Text)).Emit()
			return types.NoTypeID
		}
		decl := b.reg.Get(declID)
		if decl.Kind == templates.DeclFn {
			diag.ReportError(b.reporter, diag.BindNotATemplate, e.Name.Span,
				fmt.Sprintf("%s is a function template, not a type", e.Name.Text)).Emit()
			return types.NoTypeID
		}
		if len(e.Args) != len(decl.Params) {
			diag.ReportError(b.reporter, diag.BindArityMismatch, e.Span,
				fmt.Sprintf("template %s expects %d argument(s), got %d",
					e.Name.Text, len(decl.Params), len(e.Args))).Emit()
			return types.NoTypeID
		}
		args := make([]types.TypeID, 0, len(e.Args))
		for _, argExpr := range e.Args {
			arg := b.lowerType(argExpr, sc)
			if arg == types.NoTypeID {
				return types.NoTypeID
			}
			args = append(args, arg)
		}
		return b.types.InternInstance(decl.Name, decl.ID.Raw(), args)

	default:
		return types.NoTypeID
	}
}

func (b *Binder) lowerPrim(e *ast.PrimType) types.TypeID {
	bt := b.types.Builtins()
	switch e.Kind {
	case token.KwInt:
		return bt.Int
	case token.KwUint:
		return bt.Uint
	case token.KwFloat:
		return bt.Float
	case token.KwBool:
		return bt.Bool
	case token.KwString:
		return bt.String
	case token.KwUnit:
		return bt.Unit
	default:
		return types.NoTypeID
	}
}

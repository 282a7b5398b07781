// Package bind lowers parsed declarations into the template registry and
// the type interner. After binding, declarations are immutable: the
// resolver only reads what this package produced.
package bind

import (
	"fmt"

	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/source"
	"talc/internal/templates"
	"talc/internal/types"
)

// Result carries everything later stages need.
type Result struct {
	Registry *templates.Registry
	Types    *types.Interner
	Strings  *source.Interner
	// Fns lists function-template declarations in source order.
	Fns []templates.DeclID
}

// Binder binds one file's items.
type Binder struct {
	reg      *templates.Registry
	types    *types.Interner
	strings  *source.Interner
	reporter diag.Reporter
}

// New creates a Binder reporting into reporter.
func New(reporter diag.Reporter) *Binder {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Binder{
		reg:      templates.NewRegistry(),
		types:    types.NewInterner(),
		strings:  source.NewInterner(),
		reporter: reporter,
	}
}

// Bind processes the file in three phases: declare names, attach formal
// parameter lists, then lower pattern/alias/fn-parameter types. The
// phasing lets declarations reference each other in any order.
func (b *Binder) Bind(file *ast.File) *Result {
	ids := b.declareAll(file)
	b.bindFormals(file, ids)
	b.bindBodies(file, ids)

	res := &Result{
		Registry: b.reg,
		Types:    b.types,
		Strings:  b.strings,
	}
	for i, item := range file.Items {
		if !ids[i].IsValid() {
			continue
		}
		if _, ok := item.(*ast.FnItem); ok {
			res.Fns = append(res.Fns, ids[i])
		}
	}
	return res
}

func (b *Binder) declareAll(file *ast.File) []templates.DeclID {
	ids := make([]templates.DeclID, len(file.Items))
	for i, item := range file.Items {
		name := item.ItemName()
		kind := declKind(item)
		id, fresh := b.reg.Declare(b.strings.Intern(name.Text), kind, item.ItemSpan())
		if !fresh {
			prev := b.reg.Get(id)
			diag.ReportError(b.reporter, diag.BindDuplicateDecl, name.Span,
				fmt.Sprintf("duplicate declaration of %s", name.Text)).
				WithNote(prev.Span, "previously declared here").
				Emit()
			ids[i] = templates.NoDeclID
			continue
		}
		ids[i] = id
	}
	return ids
}

func (b *Binder) bindFormals(file *ast.File, ids []templates.DeclID) {
	for i, item := range file.Items {
		id := ids[i]
		if !id.IsValid() {
			continue
		}
		b.reg.SetParams(id, b.lowerFormals(itemParams(item)))
	}
}

func (b *Binder) bindBodies(file *ast.File, ids []templates.DeclID) {
	for i, item := range file.Items {
		id := ids[i]
		if !id.IsValid() {
			continue
		}
		decl := b.reg.Get(id)
		sc := newScope(decl)

		// Patterns see the declaration's own formals as binders.
		// Indexing goes through the name: duplicate formals were dropped
		// during lowering, so positions may not line up with the AST.
		for _, p := range itemParams(item) {
			if p.Pattern == nil {
				continue
			}
			j := decl.FormalIndex(b.strings.Intern(p.Name.Text))
			if j < 0 {
				continue
			}
			decl.Params[j].Pattern = b.lowerType(p.Pattern, sc)
		}

		switch it := item.(type) {
		case *ast.AliasItem:
			b.reg.SetAliased(id, b.lowerType(it.Aliased, sc))
		case *ast.FnItem:
			params := make([]templates.FnParam, 0, len(it.FnParams))
			for _, fp := range it.FnParams {
				params = append(params, templates.FnParam{
					Name: b.strings.Intern(fp.Name.Text),
					Type: b.lowerType(fp.Type, sc),
					Span: fp.Span,
				})
			}
			b.reg.SetFnParams(id, params)
		}
	}
}

func (b *Binder) lowerFormals(params []ast.Param) []templates.Formal {
	out := make([]templates.Formal, 0, len(params))
	seen := make(map[source.StringID]struct{}, len(params))
	for _, p := range params {
		name := b.strings.Intern(p.Name.Text)
		if _, dup := seen[name]; dup {
			diag.ReportError(b.reporter, diag.BindDuplicateFormal, p.Name.Span,
				fmt.Sprintf("duplicate template parameter %s", p.Name.Text)).Emit()
			continue
		}
		seen[name] = struct{}{}
		out = append(out, templates.Formal{
			Name: name,
			Span: p.Span,
		})
	}
	return out
}

func declKind(item ast.Item) templates.DeclKind {
	switch item.(type) {
	case *ast.StructItem:
		return templates.DeclStruct
	case *ast.AliasItem:
		return templates.DeclAlias
	case *ast.FnItem:
		return templates.DeclFn
	default:
		return templates.DeclInvalid
	}
}

func itemParams(item ast.Item) []ast.Param {
	switch it := item.(type) {
	case *ast.StructItem:
		return it.Params
	case *ast.AliasItem:
		return it.Params
	case *ast.FnItem:
		return it.Params
	default:
		return nil
	}
}

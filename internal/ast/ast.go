package ast

import (
	"talc/internal/source"
	"talc/internal/token"
)

// File is one parsed source file.
type File struct {
	Span  source.Span
	Items []Item
}

// Ident is an identifier with its location.
type Ident struct {
	Text string
	Span source.Span
}

// Item is a top-level declaration.
type Item interface {
	ItemSpan() source.Span
	ItemName() Ident
}

// Param is one template formal parameter, optionally with a
// destructuring pattern (`A: A*`).
type Param struct {
	Name    Ident
	Pattern TypeExpr // nil when unconstrained
	Span    source.Span
}

// StructItem is `struct Name(params);`.
type StructItem struct {
	Name   Ident
	Params []Param
	Span   source.Span
}

func (s *StructItem) ItemSpan() source.Span { return s.Span }
func (s *StructItem) ItemName() Ident       { return s.Name }

// AliasItem is `alias Name(params) = type;`.
type AliasItem struct {
	Name    Ident
	Params  []Param
	Aliased TypeExpr
	Span    source.Span
}

func (a *AliasItem) ItemSpan() source.Span { return a.Span }
func (a *AliasItem) ItemName() Ident       { return a.Name }

// FnParam is one value parameter of a function template.
type FnParam struct {
	Type TypeExpr
	Name Ident
	Span source.Span
}

// FnItem is `fn name(tparams)(Type ident, ...);`.
type FnItem struct {
	Name     Ident
	Params   []Param
	FnParams []FnParam
	Span     source.Span
}

func (f *FnItem) ItemSpan() source.Span { return f.Span }
func (f *FnItem) ItemName() Ident       { return f.Name }

// TypeExpr is a parsed type expression tree.
type TypeExpr interface {
	TypeSpan() source.Span
}

// PrimType is a built-in ground type keyword.
type PrimType struct {
	Kind token.Kind
	Span source.Span
}

func (p *PrimType) TypeSpan() source.Span { return p.Span }

// NameType is a bare identifier: a formal parameter reference or a
// zero-parameter template.
type NameType struct {
	Name Ident
}

func (n *NameType) TypeSpan() source.Span { return n.Name.Span }

// InstanceType is `Name!Arg` or `Name!(A1, ..., An)`.
type InstanceType struct {
	Name Ident
	Args []TypeExpr
	Span source.Span
}

func (i *InstanceType) TypeSpan() source.Span { return i.Span }

// PointerType is a postfix `*`.
type PointerType struct {
	Elem TypeExpr
	Span source.Span
}

func (p *PointerType) TypeSpan() source.Span { return p.Span }

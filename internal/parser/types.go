package parser

import (
	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/token"
)

// parseType handles a full type expression with postfix '*'.
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	ty, ok := p.parsePrimaryType()
	if !ok {
		return nil, false
	}
	for p.at(token.Star) {
		star := p.advance()
		ty = &ast.PointerType{
			Elem: ty,
			Span: ty.TypeSpan().Cover(star.Span),
		}
	}
	return ty, true
}

// parsePrimaryType handles primitives, bare names, and instantiations.
func (p *Parser) parsePrimaryType() (ast.TypeExpr, bool) {
	tok := p.lx.Peek()
	if tok.Kind.IsPrimitive() {
		p.advance()
		return &ast.PrimType{Kind: tok.Kind, Span: tok.Span}, true
	}
	if tok.Kind != token.Ident {
		p.errorf(diag.SynExpectType, tok.Span,
			"expected type, found %q", tok.Text)
		return nil, false
	}
	p.advance()
	name := ast.Ident{Text: tok.Text, Span: tok.Span}
	if !p.at(token.Bang) {
		return &ast.NameType{Name: name}, true
	}
	p.advance() // !
	return p.parseInstanceArgs(name)
}

// parseInstanceArgs handles the argument part after `Name!`: either a
// parenthesized list or a single-token shorthand (`Vec!int`, `Vec!T`).
// Postfix stars after a shorthand bind to the whole instance.
func (p *Parser) parseInstanceArgs(name ast.Ident) (ast.TypeExpr, bool) {
	if p.at(token.LParen) {
		p.advance()
		var args []ast.TypeExpr
		for {
			arg, ok := p.parseType()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if !p.at(token.RParen) {
			p.errorf(diag.SynExpectRParen, p.lx.Peek().Span,
				"expected ')' to close template arguments")
			return nil, false
		}
		rparen := p.advance()
		return &ast.InstanceType{
			Name: name,
			Args: args,
			Span: name.Span.Cover(rparen.Span),
		}, true
	}

	tok := p.lx.Peek()
	if tok.Kind.IsPrimitive() {
		p.advance()
		arg := &ast.PrimType{Kind: tok.Kind, Span: tok.Span}
		return &ast.InstanceType{
			Name: name,
			Args: []ast.TypeExpr{arg},
			Span: name.Span.Cover(tok.Span),
		}, true
	}
	if tok.Kind == token.Ident {
		p.advance()
		arg := &ast.NameType{Name: ast.Ident{Text: tok.Text, Span: tok.Span}}
		return &ast.InstanceType{
			Name: name,
			Args: []ast.TypeExpr{arg},
			Span: name.Span.Cover(tok.Span),
		}, true
	}
	p.errorf(diag.SynExpectType, tok.Span,
		"expected template argument after '!', found %q", tok.Text)
	return nil, false
}

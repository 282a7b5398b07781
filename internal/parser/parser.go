package parser

import (
	"fmt"

	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/lexer"
	"talc/internal/source"
	"talc/internal/token"
)

// Options configures a parse.
type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	lastSpan source.Span
}

// ParseFile parses a whole file from an existing lexer.
func ParseFile(lx *lexer.Lexer, opts Options) *ast.File {
	p := Parser{
		lx:       lx,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	return p.parseItems()
}

func (p *Parser) parseItems() *ast.File {
	file := &ast.File{Span: p.lx.Peek().Span}
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			break
		}
		item, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		file.Items = append(file.Items, item)
		file.Span = file.Span.Cover(item.ItemSpan())
	}
	return file
}

func (p *Parser) parseItem() (ast.Item, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwStruct:
		return p.parseStruct()
	case token.KwAlias:
		return p.parseAlias()
	case token.KwFn:
		return p.parseFn()
	default:
		p.errorf(diag.SynUnexpectedTopLevel, tok.Span,
			"expected struct, alias, or fn, found %q", tok.Text)
		return nil, false
	}
}

// parseStruct handles `struct Name(params);`.
func (p *Parser) parseStruct() (ast.Item, bool) {
	start := p.advance().Span // struct
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	end, ok := p.expectSemicolon()
	if !ok {
		return nil, false
	}
	return &ast.StructItem{
		Name:   name,
		Params: params,
		Span:   start.Cover(end),
	}, true
}

// parseAlias handles `alias Name(params) = type;`.
func (p *Parser) parseAlias() (ast.Item, bool) {
	start := p.advance().Span // alias
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	if !p.at(token.Assign) {
		p.errorf(diag.SynExpectEquals, p.lx.Peek().Span,
			"expected '=' after alias parameter list")
		return nil, false
	}
	p.advance()
	aliased, ok := p.parseType()
	if !ok {
		return nil, false
	}
	end, ok := p.expectSemicolon()
	if !ok {
		return nil, false
	}
	return &ast.AliasItem{
		Name:    name,
		Params:  params,
		Aliased: aliased,
		Span:    start.Cover(end),
	}, true
}

// parseFn handles `fn name(tparams)(Type ident, ...);`.
func (p *Parser) parseFn() (ast.Item, bool) {
	start := p.advance().Span // fn
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	fnParams, ok := p.parseFnParamList()
	if !ok {
		return nil, false
	}
	end, ok := p.expectSemicolon()
	if !ok {
		return nil, false
	}
	return &ast.FnItem{
		Name:     name,
		Params:   params,
		FnParams: fnParams,
		Span:     start.Cover(end),
	}, true
}

// parseParamList handles `(Ident (: pattern)?, ...)`. The list may be
// empty.
func (p *Parser) parseParamList() ([]ast.Param, bool) {
	if !p.at(token.LParen) {
		p.errorf(diag.SynUnexpectedToken, p.lx.Peek().Span,
			"expected '(' to open parameter list")
		return nil, false
	}
	p.advance()

	var params []ast.Param
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		name, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		param := ast.Param{Name: name, Span: name.Span}
		if p.at(token.Colon) {
			p.advance()
			pattern, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.Pattern = pattern
			param.Span = param.Span.Cover(pattern.TypeSpan())
		}
		params = append(params, param)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(token.RParen) {
		p.errorf(diag.SynExpectRParen, p.lx.Peek().Span,
			"expected ')' to close parameter list")
		return nil, false
	}
	p.advance()
	return params, true
}

// parseFnParamList handles `(Type ident, ...)`.
func (p *Parser) parseFnParamList() ([]ast.FnParam, bool) {
	if !p.at(token.LParen) {
		p.errorf(diag.SynUnexpectedToken, p.lx.Peek().Span,
			"expected '(' to open function parameter list")
		return nil, false
	}
	p.advance()

	var params []ast.FnParam
	if p.at(token.RParen) {
		p.advance()
		return params, true
	}
	for {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		name, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		params = append(params, ast.FnParam{
			Type: ty,
			Name: name,
			Span: ty.TypeSpan().Cover(name.Span),
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(token.RParen) {
		p.errorf(diag.SynExpectRParen, p.lx.Peek().Span,
			"expected ')' to close function parameter list")
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) expectIdent() (ast.Ident, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.errorf(diag.SynExpectIdentifier, tok.Span,
			"expected identifier, found %q", tok.Text)
		return ast.Ident{}, false
	}
	p.advance()
	return ast.Ident{Text: tok.Text, Span: tok.Span}, true
}

func (p *Parser) expectSemicolon() (source.Span, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Semicolon {
		p.errorf(diag.SynExpectSemicolon, tok.Span,
			"expected ';' after declaration")
		return source.Span{}, false
	}
	p.advance()
	return tok.Span, true
}

// resyncTop skips to the token after the next semicolon, or to the next
// top-level keyword, so one bad declaration does not drown the rest.
func (p *Parser) resyncTop() {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.KwStruct, token.KwAlias, token.KwFn:
			return
		default:
			p.advance()
		}
	}
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
	}
}

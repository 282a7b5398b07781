package lexer

import (
	"fmt"

	"talc/internal/diag"
	"talc/internal/source"
	"talc/internal/token"
)

// Lexer produces tokens for one source file. Whitespace and comments are
// consumed as trivia and never surface as tokens.
type Lexer struct {
	file *source.File
	pos  uint32
	opts Options
	look *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts,
	}
}

// Next returns the next significant token. After EOF it keeps returning
// EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdent()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.pos, End: lx.pos}
}

func (lx *Lexer) eof() bool {
	return int(lx.pos) >= len(lx.file.Content)
}

func (lx *Lexer) peek() byte {
	return lx.file.Content[lx.pos]
}

func (lx *Lexer) peekAt(off uint32) (byte, bool) {
	i := lx.pos + off
	if int(i) >= len(lx.file.Content) {
		return 0, false
	}
	return lx.file.Content[i], true
}

// skipTrivia consumes whitespace, line comments, and block comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.pos++
		case ch == '/':
			next, ok := lx.peekAt(1)
			if !ok {
				return
			}
			switch next {
			case '/':
				for !lx.eof() && lx.peek() != '\n' {
					lx.pos++
				}
			case '*':
				lx.skipBlockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.pos
	lx.pos += 2
	for !lx.eof() {
		if lx.peek() == '*' {
			if next, ok := lx.peekAt(1); ok && next == '/' {
				lx.pos += 2
				return
			}
		}
		lx.pos++
	}
	sp := source.Span{File: lx.file.ID, Start: start, End: lx.pos}
	diag.ReportError(lx.opts.reporter(), diag.LexUnterminatedBlockComment, sp,
		"unterminated block comment").Emit()
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentContinue(lx.peek()) {
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: source.Span{File: lx.file.ID, Start: start, End: lx.pos},
		Text: text,
	}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.pos
	ch := lx.peek()
	lx.pos++
	sp := source.Span{File: lx.file.ID, Start: start, End: lx.pos}

	var kind token.Kind
	switch ch {
	case '!':
		kind = token.Bang
	case '*':
		kind = token.Star
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '=':
		kind = token.Assign
	default:
		diag.ReportError(lx.opts.reporter(), diag.LexUnknownChar, sp,
			fmt.Sprintf("unexpected character %q", ch)).Emit()
		kind = token.Invalid
	}
	return token.Token{Kind: kind, Span: sp, Text: string(ch)}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

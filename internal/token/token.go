package token

import (
	"talc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a declaration or primitive keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwStruct, KwAlias, KwFn, KwInt, KwUint, KwFloat, KwBool, KwString, KwUnit:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges are reserved per phase:
// 1000 lexer, 2000 parser, 3000 binder, 4000 resolver.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002

	// Syntax
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectRParen       Code = 2005
	SynExpectEquals       Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynEmptyParamList     Code = 2008

	// Binding
	BindDuplicateDecl   Code = 3001
	BindUnknownName     Code = 3002
	BindNotATemplate    Code = 3003
	BindArityMismatch   Code = 3004
	BindDuplicateFormal Code = 3005

	// Resolution
	ResArityMismatch   Code = 4001
	ResPatternMismatch Code = 4002
	ResUnboundParam    Code = 4003
	ResAliasCycle      Code = 4004
	ResUnusedParam     Code = 4005
)

func (c Code) String() string {
	return fmt.Sprintf("TL%04d", uint16(c))
}

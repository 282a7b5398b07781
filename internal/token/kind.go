package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwAlias represents the 'alias' keyword.
	KwAlias // alias
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwInt represents the 'int' primitive type keyword.
	KwInt // int
	// KwUint represents the 'uint' primitive type keyword.
	KwUint // uint
	// KwFloat represents the 'float' primitive type keyword.
	KwFloat // float
	// KwBool represents the 'bool' primitive type keyword.
	KwBool // bool
	// KwString represents the 'string' primitive type keyword.
	KwString // string
	// KwUnit represents the 'unit' primitive type keyword.
	KwUnit // unit

	// Bang represents '!', the instantiation operator.
	Bang // !
	// Star represents '*', the postfix pointer marker.
	Star // *
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// Colon represents ':'.
	Colon // :
	// Comma represents ','.
	Comma // ,
	// Semicolon represents ';'.
	Semicolon // ;
	// Assign represents '='.
	Assign // =
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Ident:     "ident",
	KwStruct:  "struct",
	KwAlias:   "alias",
	KwFn:      "fn",
	KwInt:     "int",
	KwUint:    "uint",
	KwFloat:   "float",
	KwBool:    "bool",
	KwString:  "string",
	KwUnit:    "unit",
	Bang:      "!",
	Star:      "*",
	LParen:    "(",
	RParen:    ")",
	Colon:     ":",
	Comma:     ",",
	Semicolon: ";",
	Assign:    "=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind names a built-in ground type.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KwInt, KwUint, KwFloat, KwBool, KwString, KwUnit:
		return true
	default:
		return false
	}
}

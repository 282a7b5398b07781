package token

var keywords = map[string]Kind{
	"struct": KwStruct,
	"alias":  KwAlias,
	"fn":     KwFn,
	"int":    KwInt,
	"uint":   KwUint,
	"float":  KwFloat,
	"bool":   KwBool,
	"string": KwString,
	"unit":   KwUnit,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Returns Ident when the spelling is not reserved.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}

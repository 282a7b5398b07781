package lexer

import (
	"talc/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. Nil means discard.
	Reporter diag.Reporter
}

func (o *Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}

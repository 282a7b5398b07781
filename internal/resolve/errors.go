package resolve

import (
	"fmt"

	"talc/internal/templates"
	"talc/internal/types"
)

// ArityMismatchError reports Gen being handed an argument list whose
// length does not match the declaration's formal parameter count.
type ArityMismatchError struct {
	Decl     templates.DeclID
	DeclName string
	Got      int
	Want     int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("template %s expects %d argument(s), got %d", e.DeclName, e.Want, e.Got)
}

// PatternMismatchError reports an actual argument failing a formal
// parameter's destructuring pattern.
type PatternMismatchError struct {
	Decl       templates.DeclID
	DeclName   string
	FormalName string
	Actual     types.TypeID
	ActualStr  string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("argument %s does not match pattern of parameter %s of template %s", e.ActualStr, e.FormalName, e.DeclName)
}

// UnboundParameterError reports a formal-parameter reference with no
// entry in the substitution map. Given correct callers this is
// unreachable; it indicates a scope-tracking fault, not bad input.
type UnboundParameterError struct {
	Name string
}

func (e *UnboundParameterError) Error() string {
	return fmt.Sprintf("internal: formal parameter %s has no binding in substitution map", e.Name)
}

// AliasCycleError reports declaration-level recursion detected while
// expanding an alias template.
type AliasCycleError struct {
	Decl     templates.DeclID
	DeclName string
}

func (e *AliasCycleError) Error() string {
	return fmt.Sprintf("alias template %s expands through itself", e.DeclName)
}

// UnusedParameterError reports function-template parameters that no
// longer appear in any resolved parameter type. Whether this is fatal is
// caller policy; the driver maps it per its unused-params mode.
type UnusedParameterError struct {
	Fn     templates.DeclID
	FnName string
	Params []string
}

func (e *UnusedParameterError) Error() string {
	if len(e.Params) == 1 {
		return fmt.Sprintf("template parameter %s of %s is unused after alias resolution", e.Params[0], e.FnName)
	}
	return fmt.Sprintf("template parameters %v of %s are unused after alias resolution", e.Params, e.FnName)
}

package driver

import (
	"errors"
	"fmt"

	"talc/internal/bind"
	"talc/internal/diag"
	"talc/internal/diagfmt"
	"talc/internal/resolve"
	"talc/internal/source"
)

// UnusedPolicy decides what happens to function-template parameters that
// no resolved parameter type references anymore.
type UnusedPolicy uint8

const (
	// UnusedDrop removes dead template parameters from the rewritten
	// signature and reports a warning.
	UnusedDrop UnusedPolicy = iota
	// UnusedError rejects the function template instead.
	UnusedError
)

// ParseUnusedPolicy maps the CLI spelling to a policy.
func ParseUnusedPolicy(s string) (UnusedPolicy, error) {
	switch s {
	case "drop":
		return UnusedDrop, nil
	case "error":
		return UnusedError, nil
	default:
		return UnusedDrop, fmt.Errorf("unknown unused-params policy %q (want drop or error)", s)
	}
}

// CheckOptions configures a check run.
type CheckOptions struct {
	MaxDiagnostics int
	Unused         UnusedPolicy
}

// CheckResult carries the outcome of checking one file: resolved
// function-template signatures plus all diagnostics.
type CheckResult struct {
	FileSet    *source.FileSet
	Bag        *diag.Bag
	Bind       *bind.Result
	Signatures []*resolve.Signature
}

// Check runs the full pipeline on a file from disk: lex, parse, bind,
// then alias-resolve every function template's parameter types.
func Check(path string, opts CheckOptions) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return checkFile(fs, fileID, opts), nil
}

// CheckSource checks an in-memory buffer under the given display name.
func CheckSource(name string, src []byte, opts CheckOptions) *CheckResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return checkFile(fs, fileID, opts)
}

func checkFile(fs *source.FileSet, fileID source.FileID, opts CheckOptions) *CheckResult {
	parsed := parse(fs, fileID, opts.MaxDiagnostics)
	bag := parsed.Bag
	reporter := diag.BagReporter{Bag: bag}

	binder := bind.New(reporter)
	bound := binder.Bind(parsed.File)

	result := &CheckResult{
		FileSet: fs,
		Bag:     bag,
		Bind:    bound,
	}
	if bag.HasErrors() {
		// Resolution over a broken registry only manufactures noise.
		return result
	}

	r := resolve.New(bound.Types, bound.Registry, bound.Strings)
	for _, fnID := range bound.Fns {
		fn := bound.Registry.Get(fnID)
		sig, err := r.ResolveSignature(fnID)
		if err != nil {
			reportResolveError(reporter, fn.Span, err)
			continue
		}
		if len(sig.Unused) > 0 {
			reportUnused(reporter, r, sig, opts.Unused)
			if opts.Unused == UnusedError {
				continue
			}
		}
		result.Signatures = append(result.Signatures, sig)
	}
	return result
}

// reportResolveError maps kernel failures onto diagnostic codes. Every
// failure kills only the one candidate being resolved.
func reportResolveError(reporter diag.Reporter, sp source.Span, err error) {
	code := diag.UnknownCode
	var (
		arity   *resolve.ArityMismatchError
		pattern *resolve.PatternMismatchError
		unbound *resolve.UnboundParameterError
		cycle   *resolve.AliasCycleError
	)
	switch {
	case errors.As(err, &arity):
		code = diag.ResArityMismatch
	case errors.As(err, &pattern):
		code = diag.ResPatternMismatch
	case errors.As(err, &unbound):
		code = diag.ResUnboundParam
	case errors.As(err, &cycle):
		code = diag.ResAliasCycle
	}
	diag.ReportError(reporter, code, sp, err.Error()).Emit()
}

func reportUnused(reporter diag.Reporter, r *resolve.Resolver, sig *resolve.Signature, policy UnusedPolicy) {
	msg := r.UnusedError(sig).Error()
	sev := diag.SevWarning
	if policy == UnusedError {
		sev = diag.SevError
		msg += " (rejected by unused-params policy)"
	} else {
		msg += " (dropped from signature)"
	}
	b := diag.NewReportBuilder(reporter, sev, diag.ResUnusedParam, sig.Fn.Span, msg)
	for _, f := range sig.Unused {
		b.WithNote(f.Span, "declared here")
	}
	b.Emit()
}

// RenderedSignatures returns the resolved signatures as surface syntax.
func (c *CheckResult) RenderedSignatures() []string {
	out := make([]string, 0, len(c.Signatures))
	for _, sig := range c.Signatures {
		out = append(out, diagfmt.RenderSignature(sig, c.Bind.Types, c.Bind.Strings))
	}
	return out
}

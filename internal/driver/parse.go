package driver

import (
	"talc/internal/ast"
	"talc/internal/diag"
	"talc/internal/lexer"
	"talc/internal/parser"
	"talc/internal/source"
)

// ParseResult carries the outcome of parsing one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *ast.File
	Bag     *diag.Bag
}

// Parse lexes and parses a file from disk.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parse(fs, fileID, maxDiagnostics), nil
}

func parse(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	parsed := parser.ParseFile(lx, parser.Options{
		MaxErrors: uint(maxDiagnostics), // #nosec G115 -- validated CLI value
		Reporter:  reporter,
	})

	return &ParseResult{
		FileSet: fs,
		File:    parsed,
		Bag:     bag,
	}
}

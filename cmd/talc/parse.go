package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"talc/internal/diagfmt"
	"talc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.tc",
	Short: "Parse a declaration file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	if err := diagfmt.FormatASTPretty(os.Stdout, result.File); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("parsing finished with errors")
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"talc/internal/diagfmt"
	"talc/internal/driver"
	"talc/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.tc|dir]",
	Short: "Resolve template aliases and rewrite function signatures",
	Long: `Check parses declaration files, expands template aliases in every
function parameter type, and prints the rewritten signatures. With a
directory argument files are checked in parallel; with no argument the
directory comes from talc.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("unused-params", "drop", "unused template parameters (drop|error)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (0 = NumCPU)")
	checkCmd.Flags().Bool("no-cache", false, "skip the on-disk result cache")
	checkCmd.Flags().Bool("ui", false, "show interactive progress for directory checks")
}

type checkFlags struct {
	format  string
	opts    driver.CheckOptions
	jobs    int
	noCache bool
	ui      bool
	quiet   bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var fl checkFlags
	var err error
	if fl.format, err = cmd.Flags().GetString("format"); err != nil {
		return fl, err
	}
	if fl.format != "pretty" && fl.format != "json" {
		return fl, fmt.Errorf("unknown format: %s", fl.format)
	}
	policy, err := cmd.Flags().GetString("unused-params")
	if err != nil {
		return fl, err
	}
	if fl.opts.Unused, err = driver.ParseUnusedPolicy(policy); err != nil {
		return fl, err
	}
	fl.opts.MaxDiagnostics = maxDiagnostics(cmd)
	if fl.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fl, err
	}
	if fl.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return fl, err
	}
	if fl.ui, err = cmd.Flags().GetBool("ui"); err != nil {
		return fl, err
	}
	fl.quiet, _ = cmd.Root().PersistentFlags().GetBool("quiet")
	return fl, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	fl, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}

	target, isDir, err := resolveCheckTarget(args)
	if err != nil {
		return err
	}
	if isDir {
		return checkDirectory(cmd, target, fl)
	}
	return checkSingleFile(cmd, target, fl)
}

// resolveCheckTarget turns the optional positional argument into a
// concrete path. No argument means "the project's check directory".
func resolveCheckTarget(args []string) (string, bool, error) {
	if len(args) == 0 {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, fmt.Errorf("%s", noTalcTomlMessage)
		}
		return manifest.CheckDir(), true, nil
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return "", false, err
	}
	return args[0], info.IsDir(), nil
}

func checkSingleFile(cmd *cobra.Command, path string, fl checkFlags) error {
	result, err := driver.Check(path, fl.opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	if err := printSignatures(fl, path, result.RenderedSignatures()); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("check finished with errors")
	}
	return nil
}

func checkDirectory(cmd *cobra.Command, dir string, fl checkFlags) error {
	var cache *driver.DiskCache
	if !fl.noCache {
		var err error
		if cache, err = driver.OpenDiskCache("talc"); err != nil {
			// The cache is an optimization; never fail a check over it.
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		}
	}

	var events chan driver.CheckEvent
	var uiDone chan error
	showUI := fl.ui && isTerminal(os.Stdout)
	if showUI {
		files, err := driver.ListSourceFiles(dir)
		if err != nil {
			return err
		}
		events = make(chan driver.CheckEvent, 16)
		uiDone = make(chan error, 1)
		go func() {
			uiDone <- ui.RunProgress("checking "+dir, files, events)
		}()
	}

	results, err := driver.CheckDir(context.Background(), dir, fl.opts, fl.jobs, cache, events)
	if showUI {
		if uiErr := <-uiDone; uiErr != nil {
			fmt.Fprintf(os.Stderr, "warning: progress ui: %v\n", uiErr)
		}
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	prettyOpts := diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: 2,
	}
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			failed++
			continue
		}
		if res.Result != nil && res.Result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, res.Result.Bag, res.Result.FileSet, prettyOpts)
			if res.Result.Bag.HasErrors() {
				failed++
			}
		}
		if err := printSignatures(fl, res.Path, res.Signatures); err != nil {
			return err
		}
	}

	if !fl.quiet {
		fmt.Fprintf(os.Stdout, "checked %d file(s), %d failed\n", len(results), failed)
	}
	if failed > 0 {
		return fmt.Errorf("check finished with errors")
	}
	return nil
}

type signaturesPayload struct {
	Path       string   `json:"path"`
	Signatures []string `json:"signatures"`
}

func printSignatures(fl checkFlags, path string, sigs []string) error {
	if fl.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(signaturesPayload{Path: path, Signatures: sigs})
	}
	if fl.quiet {
		return nil
	}
	for _, sig := range sigs {
		fmt.Fprintln(os.Stdout, sig)
	}
	return nil
}

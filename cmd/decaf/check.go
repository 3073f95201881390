package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"decaf/internal/diag"
	"decaf/internal/diagfmt"
	"decaf/internal/driver"
	"decaf/internal/source"
	"decaf/internal/trace"
	"decaf/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.decaf|directory>",
	Short: "Type check a Decaf file or every *.decaf file in a directory",
	Long: `Check parses, binds and type checks Decaf sources. Settings come from the
nearest decaf.toml; command-line flags override them. The exit status is 1
when any error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("require-main", false, "report a program without class Main { static void main() }")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("emit-annotations", false, "write the typed-AST annotation table (msgpack) for every clean file")
	checkCmd.Flags().String("annotations-dir", "", "directory for annotation files (default: next to the source)")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	checkCmd.Flags().String("config", "", "path to decaf.toml (default: search upwards)")
	checkCmd.Flags().Bool("no-config", false, "ignore decaf.toml")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	cfg, err := resolveCheckConfig(cmd, target)
	if err != nil {
		return err
	}

	ctx, cleanup, err := setupTracing(cmd.Context(), cfg.trace, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "decaf check", 0)
	ctx = trace.WithSpan(ctx, span)
	opts := driver.Options{
		MaxDiagnostics: cfg.maxDiagnostics,
		Jobs:           cfg.jobs,
		RequireMain:    cfg.requireMain,
		Timings:        cfg.timings,
		CrashOut:       cmd.ErrOrStderr(),
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if st.IsDir() {
		files, listErr := driver.ListSources(target)
		if listErr != nil {
			return listErr
		}
		if shouldUseTUI(cfg.ui, cfg.format) && len(files) > 1 {
			fs, results, err = runCheckDirWithUI(ctx, target, files, opts)
		} else {
			fs, results, err = driver.CheckDir(ctx, target, opts)
		}
	} else {
		var res *driver.FileResult
		fs, res, err = driver.CheckFile(ctx, target, opts)
		if res != nil {
			results = []driver.FileResult{*res}
		}
	}
	span.WithExtra("files", fmt.Sprint(len(results))).End("")
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := renderResults(out, fs, results, cfg, colored); err != nil {
		return err
	}

	if cfg.emitAnnotations {
		if err := emitAnnotations(cmd.ErrOrStderr(), fs, results, cfg.annotationsDir); err != nil {
			return err
		}
	}
	if cfg.timings {
		fmt.Fprint(cmd.ErrOrStderr(), driver.MergeTimings(results).String())
	}

	for i := range results {
		if results[i].Bag.HasErrors() {
			return errHasErrors
		}
	}
	return nil
}

// renderResults prints every bag in cfg.format.
func renderResults(w io.Writer, fs *source.FileSet, results []driver.FileResult, cfg checkConfig, colored bool) error {
	switch cfg.format {
	case "pretty":
		opts := diagfmt.PrettyOpts{Color: colored, Context: 2, PathMode: cfg.pathMode, ShowNotes: cfg.withNotes}
		printed := 0
		for i := range results {
			r := &results[i]
			if r.Bag.Len() == 0 && r.Bag.Dropped() == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(w)
			}
			printed++
			diagfmt.Pretty(w, r.Bag, fs, opts)
		}
		if printed == 0 {
			fmt.Fprintf(w, "ok: %d file(s) checked\n", len(results))
		}
		return nil

	case "short":
		merged := driver.MergeBags(results, cfg.maxDiagnostics)
		diagfmt.Short(w, merged, fs, cfg.pathMode)
		return nil

	case "json":
		jsonOpts := diagfmt.JSONOpts{IncludePositions: true, PathMode: cfg.pathMode, IncludeNotes: cfg.withNotes}
		if len(results) == 1 {
			return diagfmt.JSON(w, results[0].Bag, fs, jsonOpts, semanticsOf(&results[0]))
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for i := range results {
			r := &results[i]
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts, semanticsOf(r))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)

	case "sarif":
		bags := make([]*diag.Bag, 0, len(results))
		for i := range results {
			bags = append(bags, results[i].Bag)
		}
		return diagfmt.Sarif(w, bags, fs, diagfmt.SarifRunMeta{
			ToolName:       "decaf",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	return fmt.Errorf("unknown format: %s", cfg.format)
}

func semanticsOf(r *driver.FileResult) *diagfmt.SemanticsInput {
	if r.Sema == nil || r.Builder == nil {
		return nil
	}
	return &diagfmt.SemanticsInput{Builder: r.Builder, Result: r.Sema}
}

// emitAnnotations writes annotations for every file that checked clean.
func emitAnnotations(errOut io.Writer, fs *source.FileSet, results []driver.FileResult, dir string) error {
	for i := range results {
		r := &results[i]
		if r.Bag.HasErrors() {
			continue
		}
		ann, err := driver.BuildAnnotations(r, fs.Get(r.FileID), version.Version)
		if err != nil {
			return fmt.Errorf("%s: %w", r.Path, err)
		}
		path := driver.AnnotationsPath(r.Path, dir)
		if err := driver.WriteAnnotations(path, ann); err != nil {
			return fmt.Errorf("failed to write annotations for %s: %w", r.Path, err)
		}
		fmt.Fprintf(errOut, "wrote %s\n", path)
	}
	return nil
}

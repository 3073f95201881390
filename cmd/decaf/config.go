package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"decaf/internal/diag"
	"decaf/internal/diagfmt"
	"decaf/internal/project"
)

type traceSettings struct {
	output   string
	level    string
	mode     string
	ringSize int
}

// checkConfig is decaf.toml merged with command-line flags; flags win.
type checkConfig struct {
	manifest        *project.Manifest
	maxDiagnostics  int
	format          string
	jobs            int
	requireMain     bool
	emitAnnotations bool
	annotationsDir  string
	timings         bool
	withNotes       bool
	pathMode        diagfmt.PathMode
	ui              uiMode
	trace           traceSettings
}

// loadManifest finds decaf.toml for target unless --no-config or --config say otherwise.
func loadManifest(cmd *cobra.Command, target string) (*project.Manifest, error) {
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-config flag: %w", err)
	}
	if noConfig {
		return nil, nil
	}
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	var m *project.Manifest
	if explicit != "" {
		m, err = project.LoadManifest(explicit)
	} else {
		m, _, err = project.Discover(target)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diag.ProjManifestInvalid.ID(), err)
	}
	return m, nil
}

func resolveCheckConfig(cmd *cobra.Command, target string) (checkConfig, error) {
	var cfg checkConfig
	m, err := loadManifest(cmd, target)
	if err != nil {
		return cfg, err
	}
	cfg.manifest = m
	if m == nil {
		m = &project.Manifest{}
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if cfg.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !root.Changed("max-diagnostics") && m.Check.MaxDiagnostics > 0 {
		cfg.maxDiagnostics = m.Check.MaxDiagnostics
	}

	if cfg.format, err = flags.GetString("format"); err != nil {
		return cfg, fmt.Errorf("failed to get format flag: %w", err)
	}
	if !flags.Changed("format") && m.Check.Format != "" {
		cfg.format = m.Check.Format
	}
	cfg.format = strings.ToLower(cfg.format)
	if !slices.Contains(project.Formats, cfg.format) {
		return cfg, fmt.Errorf("unknown format: %s (expected: %s)", cfg.format, strings.Join(project.Formats, "|"))
	}

	if cfg.jobs, err = flags.GetInt("jobs"); err != nil {
		return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !flags.Changed("jobs") && m.Check.Jobs > 0 {
		cfg.jobs = m.Check.Jobs
	}

	if cfg.requireMain, err = flags.GetBool("require-main"); err != nil {
		return cfg, fmt.Errorf("failed to get require-main flag: %w", err)
	}
	if !flags.Changed("require-main") {
		cfg.requireMain = m.Check.RequireMain
	}

	if cfg.emitAnnotations, err = flags.GetBool("emit-annotations"); err != nil {
		return cfg, fmt.Errorf("failed to get emit-annotations flag: %w", err)
	}
	if cfg.annotationsDir, err = flags.GetString("annotations-dir"); err != nil {
		return cfg, fmt.Errorf("failed to get annotations-dir flag: %w", err)
	}
	if !flags.Changed("annotations-dir") && m.Check.Annotations != "" {
		cfg.annotationsDir = m.Resolve(m.Check.Annotations)
	}

	if cfg.timings, err = root.GetBool("timings"); err != nil {
		return cfg, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if cfg.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return cfg, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return cfg, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		cfg.pathMode = diagfmt.PathModeAbsolute
	}

	uiValue, err := flags.GetString("ui")
	if err != nil {
		return cfg, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if cfg.ui, err = readUIMode(uiValue); err != nil {
		return cfg, err
	}

	cfg.trace, err = resolveTrace(cmd, m)
	return cfg, err
}

func resolveTrace(cmd *cobra.Command, m *project.Manifest) (traceSettings, error) {
	var ts traceSettings
	var err error
	root := cmd.Root().PersistentFlags()
	if ts.output, err = root.GetString("trace"); err != nil {
		return ts, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if !root.Changed("trace") && m.Trace.Output != "" {
		ts.output = m.Resolve(m.Trace.Output)
	}
	if ts.level, err = root.GetString("trace-level"); err != nil {
		return ts, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if !root.Changed("trace-level") && m.Trace.Level != "" {
		ts.level = m.Trace.Level
	}
	if ts.mode, err = root.GetString("trace-mode"); err != nil {
		return ts, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if !root.Changed("trace-mode") && m.Trace.Mode != "" {
		ts.mode = m.Trace.Mode
	}
	if ts.ringSize, err = root.GetInt("trace-ring-size"); err != nil {
		return ts, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	return ts, nil
}

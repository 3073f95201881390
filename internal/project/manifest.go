package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidManifest wraps every semantic problem found in decaf.toml.
var ErrInvalidManifest = errors.New("invalid " + ManifestName)

// ErrAlreadyInitialized is returned by WriteManifest when decaf.toml exists.
var ErrAlreadyInitialized = errors.New("project already initialized")

// Formats accepted by [check] format.
var Formats = []string{"pretty", "short", "json", "sarif"}

// Manifest is the parsed decaf.toml. Zero values mean "not set" so that
// command-line flags can fill them in.
type Manifest struct {
	Path string `toml:"-"`
	Root string `toml:"-"`

	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
	Trace   TraceConfig   `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics,omitempty"`
	Format         string `toml:"format,omitempty"`
	Jobs           int    `toml:"jobs,omitempty"`
	RequireMain    bool   `toml:"require_main,omitempty"`
	// Annotations is the output directory for --emit-annotations.
	Annotations string `toml:"annotations,omitempty"`
}

type TraceConfig struct {
	Level  string `toml:"level,omitempty"`
	Mode   string `toml:"mode,omitempty"`
	Output string `toml:"output,omitempty"`
}

// DefaultManifest is what `decaf init` writes.
func DefaultManifest(name string) Manifest {
	return Manifest{
		Package: PackageConfig{Name: name},
		Check:   CheckConfig{MaxDiagnostics: 100, Format: "pretty", RequireMain: true},
		Trace:   TraceConfig{Level: "off"},
	}
}

// LoadManifest parses path. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidManifest, strings.Join(keys, ", "))
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

func (m *Manifest) validate() error {
	var errs []error
	if m.Check.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("%w: check.max_diagnostics must be >= 0, got %d", ErrInvalidManifest, m.Check.MaxDiagnostics))
	}
	if m.Check.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: check.jobs must be >= 0, got %d", ErrInvalidManifest, m.Check.Jobs))
	}
	if m.Check.Format != "" && !slices.Contains(Formats, m.Check.Format) {
		errs = append(errs, fmt.Errorf("%w: check.format %q (expected: %s)", ErrInvalidManifest, m.Check.Format, strings.Join(Formats, "|")))
	}
	return errors.Join(errs...)
}

// Discover finds and loads the manifest governing startDir.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// WriteManifest creates dir/decaf.toml and refuses to overwrite an existing one.
func WriteManifest(dir string, m Manifest) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w: %s exists", ErrAlreadyInitialized, path)
	}

	var buf bytes.Buffer
	buf.WriteString("# decaf project\n")
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return path, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return path, fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// Resolve makes a path from the manifest relative to its directory.
func (m *Manifest) Resolve(p string) string {
	if m == nil || m.Root == "" || p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

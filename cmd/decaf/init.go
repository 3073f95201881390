package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"decaf/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new decaf project",
	Long: `Initialize a new decaf project by creating a project file (decaf.toml)
and a hello-world program (main.decaf). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized decaf project in %s\n", rel)
	for _, name := range created {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}

// initProject creates target if needed and writes decaf.toml plus main.decaf.
// An existing main.decaf is kept. Returns what was written.
func initProject(target string) ([]string, error) {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "decaf-project"
	}
	if _, err := project.WriteManifest(target, project.DefaultManifest(name)); err != nil {
		return nil, err
	}
	created := []string{project.ManifestName}

	mainPath := filepath.Join(target, "main.decaf")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o600); err != nil {
			return created, fmt.Errorf("failed to write main.decaf: %w", err)
		}
		created = append(created, "main.decaf")
	}
	return created, nil
}

const defaultMain = `class Greeter {
	string name;

	void init(string who) { name = who; }
	string greet() { return name; }
}

class Main {
	static void main() {
		class Greeter g = new Greeter();
		g.init("world");
		Print("hello, ", g.greet());
	}
}
`

package driver

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"decaf/internal/ast"
	"decaf/internal/project"
	"decaf/internal/sema"
	"decaf/internal/source"
	"decaf/internal/symbols"
	"decaf/internal/types"
)

// Current schema version - increment when Annotations format changes
const annotationsSchema uint16 = 1

// AnnotationsExt is appended to the source path when no output dir is given.
const AnnotationsExt = ".annot"

// ErrNoAnnotations is returned for files that never reached the checker.
var ErrNoAnnotations = errors.New("file was not type checked")

// Annotations is the typed-AST table handed to code generation: one row per
// expression plus the foreach variables the checker declared.
type Annotations struct {
	Schema uint16 `msgpack:"schema"`
	Source string `msgpack:"source"`
	// Key = Combine(source hash, tool version hash); stale when either moves.
	Key     project.Digest   `msgpack:"key"`
	Exprs   []ExprAnnotation `msgpack:"exprs"`
	Foreach []IterAnnotation `msgpack:"foreach,omitempty"`
}

type ExprAnnotation struct {
	ID          uint32 `msgpack:"id"`
	Kind        string `msgpack:"kind"`
	Type        string `msgpack:"type"`
	Symbol      string `msgpack:"symbol,omitempty"`
	SymbolKind  string `msgpack:"symbol_kind,omitempty"`
	LValue      string `msgpack:"lvalue,omitempty"`
	ClassRef    bool   `msgpack:"class_ref,omitempty"`
	ArrayLength bool   `msgpack:"array_length,omitempty"`
	Start       uint32 `msgpack:"start"`
	End         uint32 `msgpack:"end"`
}

// IterAnnotation describes a foreach iteration variable.
type IterAnnotation struct {
	Stmt uint32 `msgpack:"stmt"`
	Name string `msgpack:"name"`
	Type string `msgpack:"type"`
}

func annotationKey(file *source.File, toolVersion string) project.Digest {
	return project.Combine(project.Digest(file.Hash), project.DigestString(toolVersion))
}

// BuildAnnotations flattens the checker output of res.
func BuildAnnotations(res *FileResult, file *source.File, toolVersion string) (*Annotations, error) {
	if res == nil || res.Sema == nil || res.Bound == nil || res.Builder == nil {
		return nil, ErrNoAnnotations
	}
	checked, table, b := res.Sema, res.Bound.Table, res.Builder
	out := &Annotations{
		Schema: annotationsSchema,
		Source: file.Path,
		Key:    annotationKey(file, toolVersion),
		Exprs:  make([]ExprAnnotation, 0, b.Exprs.Len()),
	}
	for raw := uint32(1); raw <= b.Exprs.Len(); raw++ {
		id := ast.ExprID(raw)
		e := b.Exprs.Get(id)
		row := ExprAnnotation{
			ID:          raw,
			Kind:        e.Kind.String(),
			Type:        types.Label(checked.TypeInterner, checked.ExprTypes[id]),
			ClassRef:    checked.ClassRefs[id],
			ArrayLength: checked.ArrayLength[id],
			Start:       e.Span.Start,
			End:         e.Span.End,
		}
		if lv := checked.LValues[id]; lv != sema.LValueNone {
			row.LValue = lv.String()
		}
		if symID, ok := checked.ExprSymbols[id]; ok {
			if sym := table.Symbols.Get(symID); sym != nil {
				row.Symbol = symbolName(table, symID)
				row.SymbolKind = sym.Kind.String()
			}
		}
		out.Exprs = append(out.Exprs, row)
	}
	for stmt, symID := range checked.StmtSymbols {
		sym := table.Symbols.Get(symID)
		if sym == nil {
			continue
		}
		out.Foreach = append(out.Foreach, IterAnnotation{
			Stmt: uint32(stmt),
			Name: table.Strings.MustLookup(sym.Name),
			Type: types.Label(checked.TypeInterner, sym.Type),
		})
	}
	slices.SortFunc(out.Foreach, func(x, y IterAnnotation) int { return cmp.Compare(x.Stmt, y.Stmt) })
	return out, nil
}

// symbolName qualifies members with their class: "A.f".
func symbolName(table *symbols.Table, id symbols.SymbolID) string {
	sym := table.Symbols.Get(id)
	name := table.Strings.MustLookup(sym.Name)
	if sym.Kind == symbols.SymbolClass || sym.VarKind == symbols.VarLocal || sym.VarKind == symbols.VarParam {
		return name
	}
	if scope := table.Scopes.Get(sym.Scope); scope != nil && scope.Kind == symbols.ScopeClass && scope.Owner.IsValid() {
		owner := table.Symbols.Get(scope.Owner)
		return table.Strings.MustLookup(owner.Name) + "." + name
	}
	return name
}

// Fresh reports whether a was produced from file's current content by toolVersion.
func (a *Annotations) Fresh(file *source.File, toolVersion string) bool {
	return a != nil && a.Schema == annotationsSchema && a.Key == annotationKey(file, toolVersion)
}

// AnnotationsPath returns where annotations for src are written. With an
// empty outDir they sit next to the source.
func AnnotationsPath(src, outDir string) string {
	if outDir == "" {
		return src + AnnotationsExt
	}
	return filepath.Join(outDir, filepath.Base(src)+AnnotationsExt)
}

// WriteAnnotations serializes a to path through a temp file and rename.
func WriteAnnotations(path string, a *Annotations) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(a); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode annotations: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadAnnotations decodes a file written by WriteAnnotations.
func ReadAnnotations(path string) (*Annotations, error) {
	// #nosec G304 -- path is an annotations file chosen by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Annotations
	if err := msgpack.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if a.Schema != annotationsSchema {
		return nil, fmt.Errorf("%s: annotations schema %d, want %d", path, a.Schema, annotationsSchema)
	}
	return &a, nil
}

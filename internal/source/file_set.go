package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every file loaded for one compilation.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the directory used for relative paths, falling back to cwd.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add registers content under path and returns a fresh FileID.
// A later Add with the same path shadows the earlier one for GetByPath.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	clean := filepath.ToSlash(filepath.Clean(path))
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    clean,
		Content: content,
		LineIdx: lineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.byPath[clean] = id
	return id
}

// Load reads path from disk, strips a UTF-8 BOM and folds CRLF to LF.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the command line
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	var flags FileFlags
	raw, bom := stripBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	raw, crlf := foldCRLF(raw)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, raw, flags), nil
}

func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

func (fs *FileSet) Len() int { return len(fs.files) }

func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.byPath[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts both ends of span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return f.position(span.Start), f.position(span.End)
}

// Line returns the text of the 1-based line n without its terminator.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	total, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	var start uint32
	if n > 1 {
		if n-2 >= lines {
			return ""
		}
		start = f.LineIdx[n-2] + 1
	}
	end := total
	if n-1 < lines {
		end = f.LineIdx[n-1]
	}
	if start > total {
		return ""
	}
	return string(f.Content[start:end])
}

// DisplayPath renders the path relative to base when possible.
func (f *File) DisplayPath(mode, base string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if base == "" {
			return f.Path
		}
		if rel, err := filepath.Rel(base, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	}
	return f.Path
}

func (f *File) position(off uint32) LineCol {
	// бинпоиск последнего '\n' строго перед off
	lo, hi := 0, len(f.LineIdx)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if f.LineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line, err := safecast.Conv[uint32](lo)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	var lineStart uint32
	if lo > 0 {
		lineStart = f.LineIdx[lo-1] + 1
	}
	return LineCol{Line: line + 1, Col: off - lineStart + 1}
}

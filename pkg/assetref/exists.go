package assetref

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/macropower/assetref/pkg/pathutil"
)

// Exister reports whether a file exists at a slash-separated,
// project-relative path.
type Exister interface {
	Exists(path string) bool
}

// ExistsFunc adapts a function to [Exister].
type ExistsFunc func(path string) bool

// Exists calls f(path).
func (f ExistsFunc) Exists(path string) bool {
	return f(path)
}

var (
	_ Exister = ExistsFunc(nil)
	_ Exister = (*FSExister)(nil)
	_ Exister = (*ConfinedExister)(nil)
)

// FSExister checks for files in an [afero.Fs]. Directories do not count as
// existing files.
type FSExister struct {
	fs afero.Fs
}

// NewFSExister creates an [FSExister] for fs.
func NewFSExister(fs afero.Fs) *FSExister {
	return &FSExister{fs: fs}
}

// NewProjectExister creates an [FSExister] over the OS file system, rooted
// at root. Paths outside root never exist.
func NewProjectExister(root string) (*FSExister, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	return NewFSExister(afero.NewBasePathFs(afero.NewOsFs(), abs)), nil
}

func (e *FSExister) Exists(path string) bool {
	if path == "" {
		return false
	}

	fi, err := e.fs.Stat(filepath.FromSlash(path))
	if err != nil {
		return false
	}

	return !fi.IsDir()
}

// ConfinedExister is an OS-backed [Exister] that also rejects files whose
// symbolic links resolve outside the project root.
type ConfinedExister struct {
	base Exister
	root string
}

// NewConfinedExister creates a [ConfinedExister] rooted at root.
func NewConfinedExister(root string) (*ConfinedExister, error) {
	base, err := NewProjectExister(root)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	return &ConfinedExister{base: base, root: abs}, nil
}

func (e *ConfinedExister) Exists(path string) bool {
	if !e.base.Exists(path) {
		return false
	}

	ok, err := pathutil.IsWithin(e.root, filepath.FromSlash(path))

	return err == nil && ok
}

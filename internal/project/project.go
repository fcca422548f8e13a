// Package project derives the fixed directory layout of a TeX project from
// its root path.
//
// A project root always contains three sibling subdirectories:
//
//	root/
//	  src/  (source files, caller-populated)
//	  bld/  (src is mirrored here, the PDF is compiled here)
//	  dst/  (the finished PDF is published here)
//
// The build directory has no persistent identity: deleting it resets all
// compiler state, which is the point of the layout.
package project

import (
	"path/filepath"

	"git.home.luguber.info/inful/texbuild/internal/fsops"
)

// Subdirectory names, fixed by contract.
const (
	srcName = "src"
	bldName = "bld"
	dstName = "dst"
)

// Project is an immutable view over a project root. The three subdirectory
// paths are pure joins; nothing is created until an operation needs it.
type Project struct {
	root string
}

// New returns a Project rooted at root. The path may be relative or
// absolute; it is used as given, with no normalization or I/O.
func New(root string) Project {
	return Project{root: root}
}

// Root returns the project root path as supplied.
func (p Project) Root() string { return p.root }

// Src returns the source directory path.
func (p Project) Src() string { return filepath.Join(p.root, srcName) }

// Bld returns the build directory path.
func (p Project) Bld() string { return filepath.Join(p.root, bldName) }

// Dst returns the destination directory path.
func (p Project) Dst() string { return filepath.Join(p.root, dstName) }

// InitDirs explicitly initializes a project: the root is created with all
// missing parents, then an empty source directory inside it. Both steps are
// idempotent. bld and dst are left to appear on demand.
func (p Project) InitDirs() error {
	if err := fsops.EnsureDir(p.root, true); err != nil {
		return err
	}
	return fsops.EnsureDir(p.Src(), false)
}

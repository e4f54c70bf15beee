package include

import (
	"path/filepath"
)

// Resolver turns cited paths into absolute paths. Relative paths handed to
// it directly (templates, outputs) are anchored at Root; the resolver never
// consults the process working directory.
type Resolver struct {
	Root string
}

// NewResolver creates a resolver anchored at root, which should be absolute.
func NewResolver(root string) Resolver {
	return Resolver{Root: filepath.Clean(root)}
}

// Abs anchors path at the root unless it is already absolute.
func (r Resolver) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(r.Root, path)
}

// Resolve joins cited against the directory of includer and normalizes the
// result. The target does not need to exist.
func (r Resolver) Resolve(includer, cited string) string {
	if filepath.IsAbs(cited) {
		return filepath.Clean(cited)
	}

	return filepath.Join(filepath.Dir(r.Abs(includer)), cited)
}

// Canonicalize resolves symlinks in path. It returns false when the target
// does not exist, leaving the read to report the missing file.
func (r Resolver) Canonicalize(path string) (string, bool) {
	canonical, err := filepath.EvalSymlinks(r.Abs(path))
	if err != nil {
		return "", false
	}

	return canonical, true
}

// Rel returns path relative to the root for display, falling back to the
// absolute path when no relative form exists.
func (r Resolver) Rel(path string) string {
	abs := r.Abs(path)
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil {
		return abs
	}

	return rel
}

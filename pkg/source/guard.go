package source

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// Guard limits the datasets a remote caller may name. The zero Guard
// rejects every dataset.
type Guard struct {
	// Root is the directory file datasets must live in. Relative paths are
	// resolved against it. Empty disables file datasets.
	Root string

	// AllowDatabase permits postgres datasets.
	AllowDatabase bool
}

// Confine returns spec with its file path resolved under g.Root. Standard
// input is never allowed. The error does not tell whether the path exists.
func (g Guard) Confine(spec Spec) (Spec, error) {
	uri := strings.TrimSpace(spec.URI)
	switch {
	case uri == StdinURI:
		return Spec{}, dqerrors.New(dqerrors.ErrCodeInvalidRequest, "reading the dataset from standard input is not allowed")
	case isDatabaseURI(uri):
		if !g.AllowDatabase {
			return Spec{}, dqerrors.New(dqerrors.ErrCodeInvalidRequest, "database datasets are not allowed")
		}
		return spec, nil
	case strings.Contains(uri, "://") && !strings.HasPrefix(uri, "file://"):
		return Spec{}, dqerrors.New(dqerrors.ErrCodeInvalidRequest, "unsupported dataset uri scheme")
	}

	path, err := g.ConfinePath(localPath(uri))
	if err != nil {
		return Spec{}, err
	}
	spec.URI = path
	return spec, nil
}

// ConfinePath resolves path under g.Root, following symbolic links, and
// rejects it when it points outside the root.
func (g Guard) ConfinePath(path string) (string, error) {
	denied := dqerrors.New(dqerrors.ErrCodeInvalidRequest, "path is outside the data root")
	if g.Root == "" {
		return "", dqerrors.New(dqerrors.ErrCodeInvalidRequest, "file datasets are not allowed, no data root is configured")
	}

	root, err := filepath.Abs(g.Root)
	if err != nil {
		return "", dqerrors.Wrap(dqerrors.ErrCodeInternal, "invalid data root", err)
	}
	if resolved, rerr := filepath.EvalSymlinks(root); rerr == nil {
		root = resolved
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)
	if !within(root, path) {
		return "", denied
	}

	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		if !within(root, resolved) {
			return "", denied
		}
		return resolved, nil
	case errors.Is(err, fs.ErrNotExist):
		return path, nil
	default:
		return "", denied
	}
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func isDatabaseURI(uri string) bool {
	return strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://")
}

package assert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// WriteTree creates the given relative path -> content files under a
// fresh temp directory and returns its path. Parent directories are
// created as needed; an empty content map still yields a usable root.
func (a *Assert) WriteTree(files map[string]string) string {
	a.T.Helper()
	root := a.T.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		a.NoError(os.MkdirAll(filepath.Dir(path), 0755))
		a.NoError(os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

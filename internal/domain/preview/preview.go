// Package preview manages the local copy of a submitted video that the
// result view plays back next to the reference clip. The copy is a plain
// temp file with a client-managed lifetime: whoever holds the Reference
// last must Release it, or the bytes leak until the OS cleans up.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/swingmatch/pkg/metrics"
)

// filePrefix names preview temp files so stray ones are recognizable.
const filePrefix = "swing-preview-"

// Reference points at a released-on-demand local copy of the video bytes.
type Reference struct {
	mu       sync.Mutex
	path     string
	released bool
}

// New copies video into a fresh temp file. The original filename only
// contributes its extension so players can sniff the container format.
func New(filename string, video io.Reader) (*Reference, error) {
	path := filepath.Join(os.TempDir(), filePrefix+uuid.NewString()+filepath.Ext(filename))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	if _, err := io.Copy(f, video); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrCreate, err)
	}

	metrics.IncActivePreviews()
	return &Reference{path: path}, nil
}

// Path returns the location of the local copy, or "" after release.
func (r *Reference) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return ""
	}
	return r.path
}

// Release deletes the local copy. Releasing twice is a no-op.
func (r *Reference) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return nil
	}
	r.released = true
	metrics.DecActivePreviews()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", ErrRelease, err)
	}
	return nil
}

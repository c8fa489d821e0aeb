package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/subpack/pkg/filesystem"
)

// RecordingFS wraps an in-memory filesystem, records every ReadFile,
// WriteFile and Rename, and returns injected errors for chosen paths.
type RecordingFS struct {
	filesystem.FS

	mu        sync.Mutex
	reads     []string
	writes    []string
	renames   []string
	readErrs  map[string]error
	writeErrs map[string]error
}

// NewRecordingFS creates an empty recording filesystem
func NewRecordingFS() *RecordingFS {
	return &RecordingFS{
		FS:        filesystem.NewMemory(),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// FailRead makes ReadFile of path return err
func (r *RecordingFS) FailRead(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readErrs[filepath.Clean(path)] = err
}

// FailWrite makes writing path return err, both directly and by renaming
// another file onto it
func (r *RecordingFS) FailWrite(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeErrs[filepath.Clean(path)] = err
}

func (r *RecordingFS) ReadFile(name string) ([]byte, error) {
	r.mu.Lock()
	r.reads = append(r.reads, name)
	err := r.readErrs[filepath.Clean(name)]
	r.mu.Unlock()

	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return r.FS.ReadFile(name)
}

func (r *RecordingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	r.mu.Lock()
	r.writes = append(r.writes, name)
	err := r.writeErrs[filepath.Clean(name)]
	r.mu.Unlock()

	if err != nil {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	return r.FS.WriteFile(name, data, perm)
}

func (r *RecordingFS) Rename(oldpath, newpath string) error {
	r.mu.Lock()
	r.renames = append(r.renames, newpath)
	err := r.writeErrs[filepath.Clean(newpath)]
	r.mu.Unlock()

	if err != nil {
		return &fs.PathError{Op: "rename", Path: newpath, Err: err}
	}
	return r.FS.Rename(oldpath, newpath)
}

// Reads returns the paths passed to ReadFile, in call order
func (r *RecordingFS) Reads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reads...)
}

// Writes returns the paths passed to WriteFile, in call order
func (r *RecordingFS) Writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

// Renames returns the rename targets, in call order
func (r *RecordingFS) Renames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.renames...)
}

// Touched reports whether any file was read or written
func (r *RecordingFS) Touched() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reads)+len(r.writes)+len(r.renames) > 0
}

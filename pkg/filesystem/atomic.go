package filesystem

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFileAtomic replaces name with data by writing a sibling temp file
// and renaming it over the target. The target keeps its previous content
// if any step fails.
func WriteFileAtomic(fsys FS, name string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Split(name)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))

	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}

	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}

	return nil
}

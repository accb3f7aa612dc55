package dropper

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/imagedrop/internal/filex"
)

// OSFile is a regular file on the local filesystem.
type OSFile struct {
	Path string
}

func (f OSFile) Name() string { return filepath.Base(f.Path) }

func (f OSFile) Open() (io.ReadCloser, error) { return os.Open(f.Path) }

// PathHandle names a filesystem entry that cannot be read as a file, such as
// a directory.
type PathHandle struct {
	Path string
}

func (h PathHandle) Name() string { return filepath.Base(h.Path) }

// HandleForPath returns an OSFile for regular files and a PathHandle for
// everything else that exists.
func HandleForPath(path string) (Handle, error) {
	ok, err := filex.IsRegular(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return PathHandle{Path: path}, nil
	}
	return OSFile{Path: path}, nil
}

// HandlesFromPaths maps each path to a handle. Paths that do not exist become
// PathHandles so they are reported instead of silently skipped.
func HandlesFromPaths(paths []string) []Handle {
	out := make([]Handle, 0, len(paths))
	for _, p := range paths {
		h, err := HandleForPath(p)
		if err != nil {
			h = PathHandle{Path: p}
		}
		out = append(out, h)
	}
	return out
}

package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/negarit"
)

// Ensure SourceDir implements negarit.SourceStore at compile time.
var _ negarit.SourceStore = (*SourceDir)(nil)

// SourceDir discovers gazette files in a directory and stages working
// copies of them in a destination directory.
type SourceDir struct {
	dir     string
	destDir string
}

// NewSourceDir creates a SourceDir reading from dir and staging into
// destDir. An empty destDir stages next to the sources.
func NewSourceDir(dir, destDir string) *SourceDir {
	if destDir == "" {
		destDir = dir
	}
	return &SourceDir{dir: dir, destDir: destDir}
}

// Dir returns the source directory.
func (s *SourceDir) Dir() string {
	return s.dir
}

// Discover returns the regular files in the source directory sorted by name.
// Hidden files and staged copies are skipped.
func (s *SourceDir) Discover(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, negarit.Errorf(negarit.ENOTFOUND, "source directory not found: %s", s.dir)
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.Type().IsRegular() || !IsSourceName(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	return paths, nil
}

// Stage copies the file at path into the destination directory under its
// staged name and returns its raw content.
func (s *SourceDir) Stage(ctx context.Context, path string) (*negarit.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, negarit.Errorf(negarit.ENOTFOUND, "source file not found: %s", path)
		}
		return nil, err
	}

	staged := filepath.Join(s.destDir, negarit.StagedName(filepath.Base(path)))
	if err := WriteFileAtomic(staged, data); err != nil {
		return nil, err
	}

	return &negarit.Source{
		Path:       path,
		StagedPath: staged,
		Content:    string(data),
	}, nil
}

// SaveCleaned replaces the staged copy of src with cleaned.
func (s *SourceDir) SaveCleaned(ctx context.Context, src *negarit.Source, cleaned string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if src.StagedPath == "" {
		return negarit.Errorf(negarit.EINVALID, "source %s has not been staged", src.Path)
	}
	return WriteFileAtomic(src.StagedPath, []byte(cleaned))
}

// IsSourceName reports whether a file name is a candidate gazette source:
// not hidden, not a temporary file and not a staged copy.
func IsSourceName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, ".tmp") {
		return false
	}
	return !negarit.IsStagedName(name)
}

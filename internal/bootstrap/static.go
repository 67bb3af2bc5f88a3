package bootstrap

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// CollectStatic copies every file under the source trees into root,
// preserving relative paths. Files already present with matching size and a
// destination mtime at or after the source's are skipped, so repeated runs
// are no-ops. Missing source directories are skipped with a warning; later
// sources override earlier ones on path collisions. Returns the number of
// files copied.
func CollectStatic(sources []string, root string) (int, error) {
	if err := os.MkdirAll(root, dataDirMode); err != nil {
		return 0, fmt.Errorf("create static root: %w", err)
	}

	copied := 0
	for _, source := range sources {
		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			log.WithField("source", source).Warn("static source missing, skipping")
			continue
		}

		err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(source, path)
			if err != nil {
				return err
			}
			dest := filepath.Join(root, rel)
			changed, err := copyIfStale(path, dest)
			if err != nil {
				return err
			}
			if changed {
				copied++
			}
			return nil
		})
		if err != nil {
			return copied, fmt.Errorf("collect static from %s: %w", source, err)
		}
	}
	return copied, nil
}

func copyIfStale(src, dest string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if destInfo, err := os.Stat(dest); err == nil {
		if destInfo.Size() == srcInfo.Size() && !destInfo.ModTime().Before(srcInfo.ModTime()) {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), dataDirMode); err != nil {
		return false, err
	}

	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	out, err := os.CreateTemp(filepath.Dir(dest), ".collect-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(out.Name())

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, err
	}
	if err := out.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(out.Name(), dataFileMode); err != nil {
		return false, err
	}
	if err := os.Rename(out.Name(), dest); err != nil {
		return false, err
	}
	return true, nil
}

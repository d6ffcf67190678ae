package fsio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Hooks for filesystem operations
var (
	ReadFile       = os.ReadFile
	WriteFile      = os.WriteFile
	StatFile       = os.Stat
	ReadDir        = os.ReadDir
	Remove         = os.Remove
	RemoveAll      = os.RemoveAll
	Rename         = os.Rename
	MkdirAll       = os.MkdirAll
	CreateTempFile = os.CreateTemp
)

// CopyFile copies src to dst, preserving the source modification time.
// The destination directory is created if missing.
func CopyFile(src, dst string) error {
	fi, err := StatFile(src)
	if err != nil {
		return fmt.Errorf("stat %q: %w", src, err)
	}

	if err := MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %q: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %q: %w", dst, err)
	}

	// Best effort: mtimes are informational only.
	_ = os.Chtimes(dst, fi.ModTime(), fi.ModTime())
	return nil
}

// CopyTree recursively copies srcDir into dstDir, skipping any entry
// whose base name is listed in exclude. Existing files are overwritten.
func CopyTree(srcDir, dstDir string, exclude ...string) error {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	return filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if skip[d.Name()] && path != srcDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstDir, rel)

		if d.IsDir() {
			return MkdirAll(target, 0o755)
		}
		return CopyFile(path, target)
	})
}

// ListFiles returns the relative, slash-separated paths of all regular
// files under root. A missing root yields an empty list.
func ListFiles(root string) ([]string, error) {
	if _, err := StatFile(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %q: %w", root, err)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// Exists reports whether path points at an existing file or directory.
func Exists(path string) bool {
	_, err := StatFile(path)
	return err == nil
}

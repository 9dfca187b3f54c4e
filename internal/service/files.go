package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yokitheyo/declutter/internal/model"
)

// ReadDir normalizes dir, checks that it is a readable directory and returns
// its immediate children. Listing and cleanup share it so both see the same
// flat scope.
func ReadDir(dir string) (string, []fs.DirEntry, error) {
	clean, err := NormalizePath(dir)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(clean)
	if err != nil {
		return "", nil, model.Classify(err, clean)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", model.ErrNotADirectory, clean)
	}
	entries, err := os.ReadDir(clean)
	if err != nil {
		return "", nil, model.Classify(err, clean)
	}
	return clean, entries, nil
}

// ListDir returns every immediate child of dir. Symlinks are not followed and
// are reported as TypeOther. Entries that vanish between enumeration and stat
// are left out.
func ListDir(dir string) ([]model.FileEntry, error) {
	clean, entries, err := ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]model.FileEntry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, toEntry(clean, info))
	}
	return files, nil
}

// ListSubdirs returns the immediate subdirectories of dir.
func ListSubdirs(dir string) ([]model.DirEntry, error) {
	clean, entries, err := ReadDir(dir)
	if err != nil {
		return nil, err
	}
	dirs := make([]model.DirEntry, 0)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dirs = append(dirs, model.DirEntry{
			Name: e.Name(),
			Path: WirePath(filepath.Join(clean, e.Name())),
		})
	}
	return dirs, nil
}

func toEntry(dir string, info fs.FileInfo) model.FileEntry {
	entry := model.FileEntry{
		Name:         info.Name(),
		Path:         WirePath(filepath.Join(dir, info.Name())),
		ModifiedTime: info.ModTime().Unix(),
	}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		entry.Type = model.TypeFile
		entry.Size = info.Size()
		entry.Extension = filepath.Ext(info.Name())
	case mode.IsDir():
		entry.Type = model.TypeDirectory
	default:
		entry.Type = model.TypeOther
	}
	return entry
}

// CreateFile creates an empty file named filename inside dir. It never
// truncates an existing file.
func CreateFile(dir, filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	clean, err := NormalizePath(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(clean)
	if err != nil {
		return "", model.Classify(err, clean)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", model.ErrNotADirectory, clean)
	}

	target := filepath.Join(clean, filename)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", model.Classify(err, target)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return WirePath(target), nil
}

// DeleteFile removes exactly one non-directory entry. A symlink is removed
// itself, its target is left alone.
func DeleteFile(path string) error {
	clean, err := NormalizePath(path)
	if err != nil {
		return err
	}
	info, err := os.Lstat(clean)
	if err != nil {
		return model.Classify(err, clean)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", model.ErrIsADirectory, clean)
	}
	if err := os.Remove(clean); err != nil {
		return model.Classify(err, clean)
	}
	return nil
}

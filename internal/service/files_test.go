package service

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/yokitheyo/declutter/internal/model"
)

func mustWriteSized(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func byName(entries []model.FileEntry) map[string]model.FileEntry {
	out := make(map[string]model.FileEntry, len(entries))
	for _, e := range entries {
		out[e.Name] = e
	}
	return out
}

func TestListDir(t *testing.T) {
	root := t.TempDir()
	mustWriteSized(t, filepath.Join(root, "a.log"), 100)
	mustWriteSized(t, filepath.Join(root, "b.txt"), 7)
	mustWriteSized(t, filepath.Join(root, "sub", "nested.log"), 999)

	entries, err := ListDir(root)
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries want 3 (listing must not recurse)", len(entries))
	}
	got := byName(entries)
	if got["a.log"].Type != model.TypeFile || got["a.log"].Size != 100 || got["a.log"].Extension != ".log" {
		t.Fatalf("a.log entry wrong: %+v", got["a.log"])
	}
	if got["sub"].Type != model.TypeDirectory || got["sub"].Size != 0 {
		t.Fatalf("sub entry wrong: %+v", got["sub"])
	}
	if want := filepath.ToSlash(filepath.Join(root, "b.txt")); got["b.txt"].Path != want {
		t.Fatalf("path: got %q want %q", got["b.txt"].Path, want)
	}
	if got["a.log"].ModifiedTime == 0 {
		t.Fatalf("modified time not set")
	}
	if total := model.TotalSize(entries); total != 107 {
		t.Fatalf("total size: got %d want 107", total)
	}
}

func TestListDirSymlinkReportedAsOther(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "target.log")
	mustWriteSized(t, target, 500)
	if err := os.Symlink(target, filepath.Join(root, "link.log")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	entries, err := ListDir(root)
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries want 1", len(entries))
	}
	if entries[0].Type != model.TypeOther || entries[0].Size != 0 {
		t.Fatalf("symlink entry wrong: %+v", entries[0])
	}
}

func TestListDirErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	mustWriteSized(t, file, 1)

	cases := []struct {
		name string
		dir  string
		want error
	}{
		{"missing", filepath.Join(root, "missing"), model.ErrNotFound},
		{"file", file, model.ErrNotADirectory},
		{"relative", "relative/dir", model.ErrInvalidInput},
		{"empty", "", model.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := ListDir(tc.dir)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
			if entries != nil {
				t.Fatalf("expected no entries on error")
			}
		})
	}
}

func TestListDirPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	if err := os.Mkdir(locked, 0o000); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	if _, err := ListDir(locked); !errors.Is(err, model.ErrPermissionDenied) {
		t.Fatalf("got %v want ErrPermissionDenied", err)
	}
}

func TestListSubdirs(t *testing.T) {
	root := t.TempDir()
	mustWriteSized(t, filepath.Join(root, "Videos", "a.mp4"), 1)
	mustWriteSized(t, filepath.Join(root, "Music", "b.mp3"), 1)
	mustWriteSized(t, filepath.Join(root, "note.txt"), 1)

	dirs, err := ListSubdirs(root)
	if err != nil {
		t.Fatalf("ListSubdirs: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("got %d dirs want 2: %+v", len(dirs), dirs)
	}
	for _, d := range dirs {
		if d.Name != "Videos" && d.Name != "Music" {
			t.Fatalf("unexpected dir %q", d.Name)
		}
	}
}

func TestCreateFileThenList(t *testing.T) {
	root := t.TempDir()
	path, err := CreateFile(root, "new.txt")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if want := filepath.ToSlash(filepath.Join(root, "new.txt")); path != want {
		t.Fatalf("path: got %q want %q", path, want)
	}

	entries, err := ListDir(root)
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	got, ok := byName(entries)["new.txt"]
	if !ok {
		t.Fatalf("new.txt missing from listing")
	}
	if got.Size != 0 || got.Type != model.TypeFile {
		t.Fatalf("new.txt entry wrong: %+v", got)
	}
}

func TestCreateFileAlreadyExists(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "keep.txt")
	mustWriteSized(t, existing, 42)

	if _, err := CreateFile(root, "keep.txt"); !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("got %v want ErrAlreadyExists", err)
	}
	info, err := os.Stat(existing)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 42 {
		t.Fatalf("existing file was truncated to %d bytes", info.Size())
	}
}

func TestCreateFileInvalid(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		name     string
		dir      string
		filename string
		want     error
	}{
		{"empty name", root, "", model.ErrInvalidName},
		{"dot dot", root, "..", model.ErrInvalidName},
		{"separator", root, "a/b.txt", model.ErrInvalidName},
		{"backslash", root, `a\b.txt`, model.ErrInvalidName},
		{"missing dir", filepath.Join(root, "nope"), "x.txt", model.ErrNotFound},
		{"relative dir", "rel", "x.txt", model.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CreateFile(tc.dir, tc.filename); !errors.Is(err, tc.want) {
				t.Fatalf("got %v want %v", err, tc.want)
			}
		})
	}
}

func TestDeleteFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "gone.txt")
	mustWriteSized(t, path, 3)

	if err := DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
}

func TestDeleteFileMissing(t *testing.T) {
	root := t.TempDir()
	other := filepath.Join(root, "other.txt")
	mustWriteSized(t, other, 1)

	err := DeleteFile(filepath.Join(root, "missing.txt"))
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("unrelated file affected: %v", err)
	}
}

func TestDeleteFileRefusesDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sub")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := DeleteFile(dir); !errors.Is(err, model.ErrIsADirectory) {
		t.Fatalf("got %v want ErrIsADirectory", err)
	}
}

func TestDeleteFileSymlinkKeepsTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	link := filepath.Join(root, "link.txt")
	mustWriteSized(t, target, 5)
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := DeleteFile(link); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Fatalf("link still present")
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("target removed: %v", err)
	}
}

package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, statErr := os.Stat(missing)

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"stat missing", statErr, ErrNotFound},
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, ErrPermissionDenied},
		{"exists", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrExist}, ErrAlreadyExists},
		{"already classified", fmt.Errorf("%w: bad", ErrInvalidName), ErrInvalidName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err, "/x")
			if !errors.Is(got, tc.want) {
				t.Fatalf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestClassifyUnknownAndNil(t *testing.T) {
	if Classify(nil, "/x") != nil {
		t.Fatalf("nil error should stay nil")
	}
	other := errors.New("boom")
	if got := Classify(other, "/x"); got != other {
		t.Fatalf("unmapped error changed: %v", got)
	}
}

func TestTotalSize(t *testing.T) {
	entries := []FileEntry{{Size: 100}, {Size: 0}, {Size: 50}}
	if got := TotalSize(entries); got != 150 {
		t.Fatalf("got %d want 150", got)
	}
}

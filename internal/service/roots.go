package service

import (
	"os"
	"runtime"
)

// ListRoots returns the filesystem roots a directory picker starts from:
// every mounted drive letter on Windows, "/" elsewhere.
func ListRoots() []string {
	return listRoots(runtime.GOOS, func(p string) error {
		_, err := os.Stat(p)
		return err
	})
}

func listRoots(goos string, stat func(string) error) []string {
	if goos != "windows" {
		return []string{"/"}
	}
	roots := make([]string, 0)
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if stat(root) == nil {
			roots = append(roots, string(letter)+":/")
		}
	}
	return roots
}

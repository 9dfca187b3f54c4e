package model

type EntryType string

const (
	TypeFile      EntryType = "file"
	TypeDirectory EntryType = "directory"
	TypeOther     EntryType = "other"
)

// FileEntry is one immediate child of a listed directory. Directories and
// non-regular entries (symlinks, devices, sockets) report a size of 0.
type FileEntry struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Type         EntryType `json:"type"`
	Extension    string    `json:"extension,omitempty"`
	Size         int64     `json:"size"`
	ModifiedTime int64     `json:"modifiedTime"`
}

type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// TotalSize sums the sizes of entries the way the UI reports them.
func TotalSize(entries []FileEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}

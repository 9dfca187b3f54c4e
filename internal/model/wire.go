package model

// Request and response bodies of the HTTP API. Field names follow the
// browser client, which predates this server.

type ListFilesResponse struct {
	Files []FileEntry `json:"files"`
	Error string      `json:"error,omitempty"`
}

type ListDrivesResponse struct {
	Drives []string `json:"drives"`
}

type ListDirsResponse struct {
	Directories []DirEntry `json:"directories"`
	Error       string     `json:"error,omitempty"`
}

type CreateFileRequest struct {
	Directory string `json:"directory" binding:"required"`
	Filename  string `json:"filename"`
}

type DeleteFileRequest struct {
	Filepath string `json:"filepath" binding:"required"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

type ScanResponse struct {
	Success   bool     `json:"success"`
	Count     int      `json:"count"`
	TotalSize int64    `json:"totalSize"`
	Files     []string `json:"files"`
	Message   string   `json:"message,omitempty"`
}

type CleanupRequest struct {
	Directory       string `json:"directory" binding:"required"`
	FileType        string `json:"fileType" binding:"required"`
	BeforeTimestamp *int64 `json:"beforeTimestamp" binding:"required"`
}

type CleanupResponse struct {
	Success   bool   `json:"success"`
	Count     int    `json:"count"`
	TotalSize int64  `json:"totalSize"`
	Failed    int    `json:"failed"`
	Message   string `json:"message,omitempty"`
}

type HistoryResponse struct {
	Records []CleanupRecord `json:"records"`
	Error   string          `json:"error,omitempty"`
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yokitheyo/declutter/internal/cleanup"
	"github.com/yokitheyo/declutter/internal/model"
	"github.com/yokitheyo/declutter/internal/service"
)

// HistoryLister is the read side of the cleanup history store.
type HistoryLister interface {
	Recent(ctx context.Context, limit int) ([]model.CleanupRecord, error)
}

type APIHandler struct {
	Cleaner *cleanup.Cleaner
	History HistoryLister
	Logger  *zap.Logger
}

func RegisterHandlers(r *gin.Engine, h *APIHandler) {
	r.GET("/health", h.health)

	r.GET("/files", h.listFiles)
	r.GET("/drives", h.listDrives)
	r.GET("/directories", h.listDirectories)
	r.POST("/file", h.createFile)
	r.DELETE("/file", h.deleteFile)

	r.GET("/scan-cleanup", h.scanCleanup)
	r.POST("/cleanup", h.executeCleanup)
	r.GET("/cleanup/history", h.cleanupHistory)
}

func (h *APIHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *APIHandler) listFiles(c *gin.Context) {
	dir := c.Query("directory")
	if dir == "" {
		c.JSON(http.StatusBadRequest, model.ListFilesResponse{Files: []model.FileEntry{}, Error: "directory is required"})
		return
	}

	files, err := service.ListDir(dir)
	if err != nil {
		h.logFailure(c, "list files", err)
		c.JSON(statusFor(err), model.ListFilesResponse{Files: []model.FileEntry{}, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ListFilesResponse{Files: files})
}

func (h *APIHandler) listDrives(c *gin.Context) {
	c.JSON(http.StatusOK, model.ListDrivesResponse{Drives: service.ListRoots()})
}

func (h *APIHandler) listDirectories(c *gin.Context) {
	dir := c.Query("path")
	if dir == "" {
		c.JSON(http.StatusBadRequest, model.ListDirsResponse{Directories: []model.DirEntry{}, Error: "path is required"})
		return
	}

	dirs, err := service.ListSubdirs(dir)
	if err != nil {
		h.logFailure(c, "list directories", err)
		c.JSON(statusFor(err), model.ListDirsResponse{Directories: []model.DirEntry{}, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.ListDirsResponse{Directories: dirs})
}

func (h *APIHandler) createFile(c *gin.Context) {
	var req model.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.StatusResponse{Message: "invalid request body"})
		return
	}

	path, err := service.CreateFile(req.Directory, req.Filename)
	if err != nil {
		h.logFailure(c, "create file", err)
		c.JSON(statusFor(err), model.StatusResponse{Message: err.Error()})
		return
	}
	h.Logger.Info("file created", zap.String("path", path))
	c.JSON(http.StatusCreated, model.StatusResponse{Success: true, Message: "File created successfully", Path: path})
}

func (h *APIHandler) deleteFile(c *gin.Context) {
	var req model.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.StatusResponse{Message: "invalid request body"})
		return
	}

	if err := service.DeleteFile(req.Filepath); err != nil {
		h.logFailure(c, "delete file", err)
		c.JSON(statusFor(err), model.StatusResponse{Message: err.Error()})
		return
	}
	h.Logger.Info("file deleted", zap.String("path", req.Filepath))
	c.JSON(http.StatusOK, model.StatusResponse{Success: true, Message: "File deleted successfully"})
}

func (h *APIHandler) scanCleanup(c *gin.Context) {
	dir := c.Query("directory")
	fileType := c.Query("fileType")
	rawTS := c.Query("beforeTimestamp")
	if dir == "" || fileType == "" || rawTS == "" {
		c.JSON(http.StatusBadRequest, scanError("Missing required parameters"))
		return
	}
	cutoff, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, scanError("Invalid timestamp format"))
		return
	}

	f := model.CleanupFilter{Directory: dir, Extension: fileType, Cutoff: cutoff}
	res, err := h.Cleaner.Scan(c.Request.Context(), f)
	if err != nil {
		h.logFailure(c, "scan cleanup", err)
		c.JSON(statusFor(err), scanError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, model.ScanResponse{
		Success:   true,
		Count:     res.MatchCount,
		TotalSize: res.TotalBytes,
		Files:     res.SampleNames,
		Message:   cleanup.ScanMessage(res),
	})
}

func (h *APIHandler) executeCleanup(c *gin.Context) {
	var req model.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.CleanupResponse{Message: "Missing required parameters"})
		return
	}

	f := model.CleanupFilter{Directory: req.Directory, Extension: req.FileType, Cutoff: *req.BeforeTimestamp}
	res, err := h.Cleaner.Execute(c.Request.Context(), f)
	if err != nil {
		h.logFailure(c, "execute cleanup", err)
		c.JSON(statusFor(err), model.CleanupResponse{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.CleanupResponse{
		Success:   true,
		Count:     res.DeletedCount,
		TotalSize: res.FreedBytes,
		Failed:    res.FailedCount,
		Message:   cleanup.ExecuteMessage(res),
	})
}

func (h *APIHandler) cleanupHistory(c *gin.Context) {
	if h.History == nil {
		c.JSON(http.StatusOK, model.HistoryResponse{Records: []model.CleanupRecord{}})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, model.HistoryResponse{Records: []model.CleanupRecord{}, Error: "invalid limit"})
			return
		}
		limit = n
	}

	records, err := h.History.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logFailure(c, "cleanup history", err)
		c.JSON(http.StatusInternalServerError, model.HistoryResponse{Records: []model.CleanupRecord{}, Error: "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, model.HistoryResponse{Records: records})
}

func scanError(msg string) model.ScanResponse {
	return model.ScanResponse{Files: []string{}, Message: msg}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidName),
		errors.Is(err, model.ErrNotADirectory),
		errors.Is(err, model.ErrIsADirectory):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *APIHandler) logFailure(c *gin.Context, op string, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	}
	if statusFor(err) == http.StatusInternalServerError {
		h.Logger.Error("request failed", fields...)
		return
	}
	h.Logger.Warn("request rejected", fields...)
}

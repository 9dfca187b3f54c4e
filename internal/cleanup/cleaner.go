package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yokitheyo/declutter/internal/model"
	"github.com/yokitheyo/declutter/internal/service"
)

// Remover deletes a single path. Tests substitute it to simulate locked or
// vanished files.
type Remover interface {
	Remove(path string) error
}

type osRemover struct{}

func (osRemover) Remove(path string) error { return os.Remove(path) }

// Recorder stores the outcome of an executed cleanup.
type Recorder interface {
	Record(ctx context.Context, rec model.CleanupRecord) error
}

type Cleaner struct {
	logger        *zap.Logger
	caseSensitive bool
	protected     []string
	remover       Remover
	recorder      Recorder
	now           func() time.Time
}

type Option func(*Cleaner)

func WithCaseSensitive(on bool) Option {
	return func(c *Cleaner) { c.caseSensitive = on }
}

// WithProtected excludes names matching any wildcard pattern from cleanup.
func WithProtected(patterns []string) Option {
	return func(c *Cleaner) { c.protected = append([]string(nil), patterns...) }
}

func WithRemover(r Remover) Option {
	return func(c *Cleaner) { c.remover = r }
}

func WithRecorder(r Recorder) Option {
	return func(c *Cleaner) { c.recorder = r }
}

func NewCleaner(logger *zap.Logger, opts ...Option) *Cleaner {
	c := &Cleaner{
		logger:  logger,
		remover: osRemover{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scan lists the regular files in f.Directory that match f. It never
// modifies the filesystem.
func (c *Cleaner) Scan(ctx context.Context, f model.CleanupFilter) (*model.ScanResult, error) {
	res, _, err := c.scan(ctx, f)
	return res, err
}

func (c *Cleaner) scan(ctx context.Context, f model.CleanupFilter) (*model.ScanResult, matcher, error) {
	m, err := newMatcher(f, c.caseSensitive, c.protected)
	if err != nil {
		return nil, matcher{}, err
	}
	dir, entries, err := service.ReadDir(f.Directory)
	if err != nil {
		return nil, matcher{}, err
	}

	res := &model.ScanResult{Extension: m.ext, SampleNames: make([]string, 0)}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, matcher{}, err
		}
		if !e.Type().IsRegular() || !m.nameMatches(e.Name()) || m.isProtected(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		res.ExtensionMatches++
		if !m.olderThanCutoff(info.ModTime().Unix()) {
			continue
		}
		res.MatchCount++
		res.TotalBytes += info.Size()
		res.Paths = append(res.Paths, filepath.Join(dir, e.Name()))
		if len(res.SampleNames) < model.SampleLimit {
			res.SampleNames = append(res.SampleNames, e.Name())
		}
	}

	c.logger.Debug("scan finished",
		zap.String("directory", dir),
		zap.String("extension", m.ext),
		zap.Int64("cutoff", m.cutoff),
		zap.Int("extension_matches", res.ExtensionMatches),
		zap.Int("matches", res.MatchCount),
		zap.Int64("bytes", res.TotalBytes))
	return res, m, nil
}

// Execute re-resolves f against the directory and deletes every match.
// Files that vanish, stop matching or cannot be removed are skipped and
// counted as failed; only directory level problems abort the call.
func (c *Cleaner) Execute(ctx context.Context, f model.CleanupFilter) (*model.ExecuteResult, error) {
	scan, m, err := c.scan(ctx, f)
	if err != nil {
		return nil, err
	}

	res := &model.ExecuteResult{}
	for i, path := range scan.Paths {
		if ctx.Err() != nil {
			res.FailedCount += len(scan.Paths) - i
			c.logger.Warn("cleanup interrupted", zap.Error(ctx.Err()))
			break
		}
		info, err := os.Lstat(path)
		if err != nil {
			res.FailedCount++
			c.logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		if !info.Mode().IsRegular() || !m.olderThanCutoff(info.ModTime().Unix()) {
			res.FailedCount++
			c.logger.Warn("skipping file that no longer matches", zap.String("path", path))
			continue
		}
		if err := c.remover.Remove(path); err != nil {
			res.FailedCount++
			c.logger.Warn("failed to remove file", zap.String("path", path), zap.Error(err))
			continue
		}
		res.DeletedCount++
		res.FreedBytes += info.Size()
		c.logger.Debug("removed file", zap.String("path", path), zap.Int64("size", info.Size()))
	}

	c.logger.Info("cleanup finished",
		zap.String("directory", f.Directory),
		zap.String("extension", m.ext),
		zap.Int("deleted", res.DeletedCount),
		zap.Int("failed", res.FailedCount),
		zap.Int64("freed_bytes", res.FreedBytes))

	c.record(ctx, f, scan.Extension, res)
	return res, nil
}

func (c *Cleaner) record(ctx context.Context, f model.CleanupFilter, ext string, res *model.ExecuteResult) {
	if c.recorder == nil {
		return
	}
	dir, err := service.NormalizePath(f.Directory)
	if err != nil {
		dir = f.Directory
	}
	rec := model.CleanupRecord{
		ID:           uuid.New().String(),
		Directory:    service.WirePath(dir),
		Extension:    ext,
		Cutoff:       f.Cutoff,
		DeletedCount: res.DeletedCount,
		FreedBytes:   res.FreedBytes,
		FailedCount:  res.FailedCount,
		CreatedAt:    c.now().UTC(),
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		c.logger.Error("failed to record cleanup", zap.String("id", rec.ID), zap.Error(err))
	}
}

// ScanMessage describes a scan result for the user.
func ScanMessage(res *model.ScanResult) string {
	ext := res.Extension
	switch {
	case res.ExtensionMatches == 0:
		return fmt.Sprintf("No files found with extension %s in directory", ext)
	case res.MatchCount == 0:
		return fmt.Sprintf("Found %d files with extension %s, but none are older than the specified date",
			res.ExtensionMatches, ext)
	default:
		return fmt.Sprintf("Found %d file(s) to delete", res.MatchCount)
	}
}

// ExecuteMessage reports what an execute actually achieved.
func ExecuteMessage(res *model.ExecuteResult) string {
	msg := fmt.Sprintf("Deleted %d file(s)", res.DeletedCount)
	if res.FailedCount > 0 {
		msg += fmt.Sprintf(", %d failed", res.FailedCount)
	}
	return msg
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

// DiskStaging writes uploads to unique files under a staging directory
type DiskStaging struct {
	dir    string
	logger *zap.Logger
}

var _ repositories.UploadStaging = (*DiskStaging)(nil)

// NewDiskStaging creates a staging area rooted at dir, creating it if needed
func NewDiskStaging(dir string, logger *zap.Logger) (*DiskStaging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &DiskStaging{dir: dir, logger: logger}, nil
}

// Stage copies src into a new file named <uuid><ext>.
// On any failure the partial file is removed before returning.
func (s *DiskStaging) Stage(ctx context.Context, src io.Reader, format entities.DocumentFormat) (repositories.StagedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, uuid.NewString()+format.Extension())
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged file: %w", err)
	}

	size, copyErr := io.Copy(out, src)
	closeErr := out.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("Failed to remove partial staged file", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	s.logger.Debug("Upload staged",
		zap.String("path", path),
		zap.Int64("size", size))

	return &stagedFile{path: path}, nil
}

type stagedFile struct {
	path string
	once sync.Once
	err  error
}

func (f *stagedFile) Path() string {
	return f.path
}

func (f *stagedFile) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			f.err = err
		}
	})
	return f.err
}

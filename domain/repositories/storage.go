package repositories

import (
	"context"
	"io"

	"github.com/satriahrh/suara/domain/entities"
)

// StagedFile is an upload materialized on disk for the duration of one request
type StagedFile interface {
	Path() string
	// Release deletes the file. It is safe to call more than once.
	Release() error
}

// UploadStaging places request-scoped uploads on disk under unique names
type UploadStaging interface {
	Stage(ctx context.Context, src io.Reader, format entities.DocumentFormat) (StagedFile, error)
}

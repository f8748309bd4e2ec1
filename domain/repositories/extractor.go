package repositories

import (
	"context"

	"github.com/satriahrh/suara/domain/entities"
)

// TextExtractor turns a staged document of one format into plain text.
// It returns the raw concatenation; trimming and emptiness checks belong to the caller.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
	Format() entities.DocumentFormat
}

package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Loader reads a seed document.
type Loader interface {
	Load(ctx context.Context, path string) (*Document, error)
}

// fileLoader implements Loader for documents on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed document, gzipped when the name ends in ".gz".
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	doc, err := decode(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read seed file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("categories", len(doc.Categories)).
		Int("products", doc.ProductCount()).
		Msg("seed file loaded successfully")

	return doc, nil
}

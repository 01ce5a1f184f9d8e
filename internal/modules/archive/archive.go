package archive

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pixelpage/internal/models"

	"go.uber.org/zap"
)

// ManifestName is the index file the manifest stage appends to.
const ManifestName = "manifest.csv"

// Writer persists fetched payloads to a directory, one file per blob id.
type Writer struct {
	dir string
}

// NewWriter creates a writer stage targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Execute saves each item's payload as <id><ext> and forwards the item
// downstream with Path filled in. Items that fail to persist are dropped.
func (w *Writer) Execute(ctx context.Context, input <-chan models.ArchiveItem, output chan<- models.ArchiveItem, logger *zap.Logger) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	saved := 0
	failed := 0

	for item := range input {
		select {
		case <-ctx.Done():
			logger.Warn("archive writer interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		default:
			path := filepath.Join(w.dir, item.ID+extFor(item.Payload.ContentType))
			if err := os.WriteFile(path, item.Payload.Data, 0644); err != nil {
				logger.Warn("archive write failed",
					zap.String("id", item.ID),
					zap.String("path", path),
					zap.Error(err))
				failed++
				continue
			}
			item.Path = path
			output <- item
			saved++
		}
	}

	logger.Info("archive writer finished",
		zap.Int("saved", saved),
		zap.Int("failed", failed))
	return nil
}

// Manifest appends one CSV record per archived item: id, source endpoint,
// payload size and timestamp.
type Manifest struct {
	dir string
}

// NewManifest creates a manifest stage targeting dir.
func NewManifest(dir string) *Manifest {
	return &Manifest{dir: dir}
}

func (m *Manifest) Execute(ctx context.Context, input <-chan models.ArchiveItem, output chan<- models.ArchiveItem, logger *zap.Logger) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(m.dir, ManifestName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for item := range input {
		select {
		case <-ctx.Done():
			logger.Warn("manifest stage interrupted", zap.Error(ctx.Err()))
			return ctx.Err()
		default:
			record := []string{
				item.ID,
				item.Source,
				strconv.Itoa(len(item.Payload.Data)),
				time.Now().UTC().Format(time.RFC3339),
			}
			if err := writer.Write(record); err != nil {
				logger.Warn("manifest append failed",
					zap.String("id", item.ID),
					zap.Error(err))
				continue
			}
			writer.Flush()
			logger.Debug("manifest entry appended", zap.String("id", item.ID))
		}
	}

	return writer.Error()
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/repository"
	"github.com/frontandrew/parking/internal/snapshot"
)

type snapshotRepository struct {
	path   string
	logger logger.Logger
}

// NewSnapshotRepository создает хранилище снимка в JSON файле
func NewSnapshotRepository(path string, logger logger.Logger) repository.SnapshotRepository {
	return &snapshotRepository{path: path, logger: logger}
}

func (r *snapshotRepository) Load(ctx context.Context) (*snapshot.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("Snapshot file not found, creating empty one", map[string]interface{}{
			"path": r.path,
		})
		doc := snapshot.Empty()
		if err := r.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", r.path, err)
	}

	doc := snapshot.Empty()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSnapshot, r.path, err)
	}

	r.logger.Debug("Snapshot loaded", map[string]interface{}{
		"path":     r.path,
		"zones":    len(doc.ParkingZones),
		"vehicles": len(doc.Vehicles),
	})
	return doc, nil
}

// Save пишет во временный файл рядом с целевым и переименовывает его
func (r *snapshotRepository) Save(ctx context.Context, doc *snapshot.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(r.path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(r.path), uuid.NewString()))
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	r.logger.Info("Snapshot saved", map[string]interface{}{
		"path": r.path,
	})
	return nil
}

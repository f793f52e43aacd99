package repository

import (
	"context"

	"github.com/frontandrew/parking/internal/snapshot"
)

// SnapshotRepository определяет методы для хранения состояния парковки целиком
type SnapshotRepository interface {
	// Load читает документ. Если хранилища еще нет, создает его с пустым документом.
	// Синтаксически неверный документ - ошибка domain.ErrCorruptSnapshot.
	Load(ctx context.Context) (*snapshot.Document, error)

	// Save записывает документ целиком. Частично записанный документ никогда не виден.
	Save(ctx context.Context, doc *snapshot.Document) error
}

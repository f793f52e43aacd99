package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/frontandrew/parking/internal/delivery/cli"
	"github.com/frontandrew/parking/internal/pkg/config"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/repository/file"
	"github.com/frontandrew/parking/internal/snapshot"
	"github.com/frontandrew/parking/internal/usecase/allocation"
	"github.com/frontandrew/parking/internal/usecase/billing"
	"github.com/frontandrew/parking/internal/usecase/exit"
	"github.com/frontandrew/parking/internal/usecase/parking"
	"github.com/frontandrew/parking/internal/usecase/staff"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output).
		With("session_id", uuid.NewString())

	seed := cfg.Random.SeedOrNow(time.Now())
	log.Info("Starting parking application", map[string]interface{}{
		"snapshot":    cfg.Snapshot.Path,
		"retry_zones": cfg.Allocation.RetryZones,
		"seed":        seed,
	})

	// =========================================================================
	// Загрузка снимка
	// =========================================================================

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := file.NewSnapshotRepository(cfg.Snapshot.Path, log)

	doc, err := store.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load snapshot", map[string]interface{}{
			"path":  cfg.Snapshot.Path,
			"error": err.Error(),
		})
	}

	state, err := snapshot.Decode(doc)
	if err != nil {
		log.Fatal("Snapshot is corrupt", map[string]interface{}{
			"path":  cfg.Snapshot.Path,
			"error": err.Error(),
		})
	}

	// =========================================================================
	// Создание use case services
	// =========================================================================

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	registry := allocation.NewRegistry()
	service := parking.NewService(
		registry,
		allocation.NewAllocator(registry, rng, log),
		billing.NewLedger(log),
		exit.NewRegistry(cfg.Exit.TokenValidity, rng, log),
		staff.NewRoster(rng, log),
		parking.Settings{
			Name:       cfg.Facility.Name,
			RetryZones: cfg.Allocation.RetryZones,
		},
		log,
	)
	service.Restore(state)

	// =========================================================================
	// Запуск меню
	// =========================================================================

	menu := cli.NewMenu(service, store, os.Stdin, os.Stdout, log)

	done := make(chan error, 1)
	go func() {
		done <- menu.Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Fatal("Menu stopped with error", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Info("Parking application stopped")

	case <-ctx.Done():
		log.Info("Shutdown signal received, unsaved changes are discarded")
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/dgraph-io/badger/v3"
	"github.com/robfig/cron/v3"

	"github.com/haneulsoft/customs-fx-dashboard/internal/application/service"
	"github.com/haneulsoft/customs-fx-dashboard/internal/config"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/api"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/db"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/logger"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/render"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/snapshot"
)

func main() {
	daemon := flag.Bool("daemon", false, "keep running and regenerate on the configured cron schedule")
	flag.Parse()

	cfg := config.Load()
	log := logger.GetDefaultLogger().WithField("component", "generator")

	if cfg.ServiceKey == "" {
		log.Warn("No service key configured, live fetch disabled", nil)
	}

	// Week archive
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		log.Fatal("Failed to create archive directory", map[string]interface{}{
			"dir":   cfg.ArchiveDir,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.ArchiveDir)
	badgerOpts.Logger = nil // Disable Badger's default logger

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open week archive", map[string]interface{}{
			"dir":   cfg.ArchiveDir,
			"error": err.Error(),
		})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing week archive", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	archive := db.NewBadgerWeekArchive(badgerDB)
	store := snapshot.NewFileStore(cfg.SnapshotPath)

	client := api.NewCustomsAPIClient(cfg.ServiceKey, nil, log)
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}

	generator := service.NewGeneratorService(store, archive, client, cfg.Weeks, log)

	runOnce := func() {
		ctx := context.Background()

		dataset, err := generator.Run(ctx)
		if err != nil {
			log.Fatal("Generation cycle failed", map[string]interface{}{
				"error": err.Error(),
			})
		}

		html, err := render.LatestWeekHTML(dataset)
		if err != nil {
			if errors.Is(err, render.ErrEmptyDataset) {
				log.Warn("No weeks to render, skipping HTML output", nil)
				return
			}
			log.Fatal("Failed to render latest week", map[string]interface{}{
				"error": err.Error(),
			})
		}

		if err := os.WriteFile(cfg.HTMLPath, html, 0o644); err != nil {
			log.Fatal("Failed to write latest-week HTML", map[string]interface{}{
				"path":  cfg.HTMLPath,
				"error": err.Error(),
			})
		}

		log.Info("Outputs written", map[string]interface{}{
			"snapshot": cfg.SnapshotPath,
			"html":     cfg.HTMLPath,
		})
	}

	if !*daemon {
		runOnce()
		return
	}

	// The schedule is interpreted in the upstream authority's timezone so
	// the default Monday-morning spec fires at 09:10 KST on any host
	scheduler := cron.New(cron.WithLocation(service.KST))
	if _, err := scheduler.AddFunc(cfg.CronSpec, runOnce); err != nil {
		log.Fatal("Invalid cron spec", map[string]interface{}{
			"spec":  cfg.CronSpec,
			"error": err.Error(),
		})
	}

	log.Info("Starting generation scheduler", map[string]interface{}{
		"spec": cfg.CronSpec,
	})

	// First cycle runs immediately, the scheduler handles the rest
	runOnce()
	scheduler.Run()
}

package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/haneulsoft/customs-fx-dashboard/internal/config"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/cache"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/handler"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/logger"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/middleware"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/snapshot"
)

func main() {
	cfg := config.Load()
	log := logger.GetDefaultLogger().WithField("component", "server")

	store := snapshot.NewFileStore(cfg.SnapshotPath)
	snapshotCache := cache.NewSnapshotCache(store, time.Minute)

	dashboardHandler := handler.NewDashboardHandler(snapshotCache, log)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	dashboardHandler.RegisterRoutes(router)

	addr := ":" + cfg.Port
	log.Info("Dashboard server listening", map[string]interface{}{
		"addr":     addr,
		"snapshot": cfg.SnapshotPath,
	})

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

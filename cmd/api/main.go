// Package main provides the entry point for the LeafLog server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/leaflogapp/leaflog-server/internal/di"
	"github.com/leaflogapp/leaflog-server/internal/di/providers"
	"github.com/leaflogapp/leaflog-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The databases use wrapper types, so close them explicitly in case
	// the container skipped them during shutdown.
	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		log.Info("Closing entity store...")
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close entity store", "error", err)
		} else {
			log.Info("Entity store closed successfully")
		}
	}

	if historyHandle, err := do.Invoke[*providers.HistoryHandle](injector); err == nil {
		log.Info("Closing reading history...")
		if err := historyHandle.Shutdown(); err != nil {
			log.Error("Failed to close reading history", "error", err)
		} else {
			log.Info("Reading history closed successfully")
		}
	}

	log.Info("Happy reading!")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/story-collection/internal/config"
	"github.com/jwebster45206/story-collection/internal/logger"
	"github.com/jwebster45206/story-collection/pkg/content"
	"github.com/jwebster45206/story-collection/pkg/narrative"
)

// The terminal belongs to the UI, so logs go to a file.
const logFileName = "story-collection-console.log"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logPath := filepath.Join(os.TempDir(), logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close()
	}()
	log := logger.New(logFile, cfg)

	lib, err := content.LoadLibrary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load story copy: %v\n", err)
		os.Exit(1)
	}

	var driver Driver
	var remote *remoteDriver
	if cfg.APIBaseURL != "" {
		client := &http.Client{Timeout: 30 * time.Second}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if !testConnection(ctx, client, cfg.APIBaseURL) {
			fmt.Fprintf(os.Stderr, "Could not connect to API at %s. Please ensure the API is running.\nTry: docker-compose up -d\n", cfg.APIBaseURL)
			os.Exit(1)
		}
		remote, err = newRemoteDriver(ctx, client, cfg.APIBaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		log.Info("Playing hosted game", "api", cfg.APIBaseURL, "game_id", remote.id.String())
		driver = remote
	} else {
		log.Info("Playing in-process")
		driver = newLocalDriver(narrative.NewEngine(log))
	}

	p := tea.NewProgram(NewConsoleUI(driver, lib),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	_, runErr := p.Run()

	if remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := remote.Close(ctx); err != nil {
			log.Warn("Failed to delete hosted game", "error", err)
		}
		cancel()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
}

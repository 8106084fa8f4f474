package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lanezero/heatsheet/internal/config"
	"github.com/lanezero/heatsheet/internal/heats"
	"github.com/lanezero/heatsheet/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

const shutdownTimeout = 10 * time.Second

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.IsServerMode() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	return logger
}

// runServerMode handles server mode execution with signal handling
func runServerMode(cfg *config.Config, logger *slog.Logger) {
	srv := server.New(cfg, logger)

	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Start server in a goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

		// Wait for the listener to drain
		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runConvertMode performs a one-shot conversion of the input PDF
func runConvertMode(cfg *config.Config) {
	svc := heats.NewService(cfg.MaxFileSize, cfg.MaxHeatsPerEvent)

	format, err := heats.ParseFormat(cfg.Format)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}

	result, err := svc.ConvertFile(heats.ConvertFileRequest{
		Path:   cfg.InputPath,
		Format: format,
	})
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	if err := writeOutputs(cfg.OutputPath, result); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	doc := result.Document
	fmt.Printf("%s\n", doc.Title)
	fmt.Printf("Wrote %s: %d events, %d heats, %d alternates\n",
		cfg.OutputPath, len(doc.Events), doc.HeatCount(), len(doc.Alternates))
}

// writeOutputs writes the rendered artifacts. The xlsx workbook holds both
// tables; delimited formats get a sibling *_alternates file.
func writeOutputs(path string, result *heats.ConvertResult) error {
	if err := os.WriteFile(path, result.Primary, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if result.Alternates != nil {
		altPath := alternatesPath(path, result.Format)
		if err := os.WriteFile(altPath, result.Alternates, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", altPath, err)
		}
		fmt.Printf("Alternates written to %s\n", altPath)
	}
	return nil
}

// alternatesPath derives the sibling alternates file name for delimited output
func alternatesPath(path string, format heats.Format) string {
	ext := format.Ext()
	if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
		return path[:len(path)-len(ext)] + "_alternates" + ext
	}
	return path + "_alternates" + ext
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging based on mode
	logger := setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	// Handle different modes
	if cfg.IsServerMode() {
		runServerMode(cfg, logger)
	} else {
		runConvertMode(cfg)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("heatsheet\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}

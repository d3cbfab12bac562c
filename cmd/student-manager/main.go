// main is the entry point of the Student Management System.
//
// STARTUP SEQUENCE:
//  1. Load configuration (env vars, optionally a YAML file)
//  2. Initialise the logger
//  3. Create the in-memory store and the controller that owns it
//  4. Run the interactive menu loop until the user exits
//
// RUNNING:
//
//	go run ./cmd/student-manager
//
// or with an explicit environment / config file:
//
//	ENV=prod go run ./cmd/student-manager
//	go run ./cmd/student-manager --config=config/local.yaml
package main

import (
	"log/slog"
	"os"

	"github.com/MuhammadAnbiya/student-manager/internal/cli"
	"github.com/MuhammadAnbiya/student-manager/internal/config"
	"github.com/MuhammadAnbiya/student-manager/internal/controller"
	"github.com/MuhammadAnbiya/student-manager/internal/storage/memory"
)

func main() {
	cfg := config.MustLoad()

	// Logs go to stderr — stdout belongs to the menu UI.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-manager",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// The store is created here and handed to the controller, which is
	// its sole owner from now on. Everything lives in process memory —
	// records are gone when the program exits.
	store := memory.New()
	ctrl := controller.New(store)

	// The menu loop blocks until the user picks Exit (or stdin closes).
	// No goroutines, no signal dance: a synchronous tool ends when its
	// loop returns.
	app := cli.New(ctrl)
	app.Run()

	log.Info("student-manager stopped",
		slog.Int("records_at_exit", store.Len()))
}

// setupLogger returns a *slog.Logger configured for the given
// environment: human-readable text at DEBUG level for dev, JSON at
// INFO level for prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}

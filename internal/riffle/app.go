// Package riffle wires the application's services together for commands
// and the TUI.
package riffle

import (
	"github.com/rs/zerolog/log"

	"github.com/colonyops/riffle/internal/core/batch"
	"github.com/colonyops/riffle/internal/core/capture"
	"github.com/colonyops/riffle/internal/core/config"
	"github.com/colonyops/riffle/internal/data/db"
	"github.com/colonyops/riffle/pkg/executil"
)

// App is the central entry point for all riffle operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Batches *batch.Service
	Store   batch.Store
	Capture *capture.Runner

	Config *config.Config
	DB     *db.DB
	Exec   executil.Executor
}

// NewApp constructs an App from explicit dependencies.
func NewApp(store batch.Store, cfg *config.Config, database *db.DB, exec executil.Executor) *App {
	return &App{
		Batches: batch.NewService(store, log.With().Str("component", "batch").Logger()),
		Store:   store,
		Capture: capture.NewRunner(cfg.Capture, exec, log.With().Str("component", "capture").Logger()),
		Config:  cfg,
		DB:      database,
		Exec:    exec,
	}
}

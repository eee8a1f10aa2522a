// Package tui hosts the interactive visualizer: a plot view over the last
// submitted figure and a series panel for editing the pending request
// list. All plot state changes flow through explicit messages so the
// render pass always sees a consistent snapshot.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scline/collegevis/internal/config"
	"github.com/scline/collegevis/internal/logging"
	"github.com/scline/collegevis/internal/scorecard"
)

// App wraps the Bubbletea program.
type App struct {
	program *tea.Program
	model   Model
	log     *logging.Logger
}

// New creates the TUI application over an opened query engine.
func New(engine *scorecard.Engine, catalog *scorecard.Catalog, cfg *config.Config, log *logging.Logger) *App {
	return &App{
		model: NewModel(engine, catalog, cfg, log),
		log:   log,
	}
}

// Run starts the program in the alternate screen and blocks until the
// user quits or a termination signal arrives.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	a.log.WithComponent("tui").Info("starting interface")
	_, err := a.program.Run()
	return err
}

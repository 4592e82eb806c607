package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tab-merge-control/internal/backend"
	"github.com/atomicstack/tab-merge-control/internal/bridge"
	"github.com/atomicstack/tab-merge-control/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	ListenAddr string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Run bootstraps the bridge server and executes the Bubble Tea program.
func Run(cfg Config) error {
	server := bridge.NewServer()
	if _, err := server.Listen(cfg.ListenAddr); err != nil {
		return fmt.Errorf("bridge listen: %w", err)
	}
	defer server.Close()

	watcher := backend.NewWatcher(server, server.Notifications())
	defer watcher.Stop()

	model := ui.NewModel(server, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"workshops/internal/adapters/tui"
	"workshops/internal/bootstrap"
	"workshops/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "browse:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The alt screen owns the terminal, so logs go to a file.
	logFile, err := tea.LogToFile("browse.log", "")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	bootstrap.InitLogging(cfg, logFile)

	rt, err := bootstrap.Setup(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = tea.NewProgram(tui.New(rt.Store), tea.WithAltScreen()).Run()
	return err
}

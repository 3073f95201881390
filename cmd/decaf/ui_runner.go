package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"decaf/internal/driver"
	"decaf/internal/source"
	"decaf/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckDirWithUI checks dir while a Bubble Tea view follows the progress
// events on stderr.
func runCheckDirWithUI(ctx context.Context, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("decaf check "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// окно могли закрыть раньше времени: дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

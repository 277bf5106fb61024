package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vantalint/internal/driver"
	"vantalint/internal/ui"
)

type outcome[T any] struct {
	result T
	err    error
}

// runWithUI runs work in a goroutine feeding the progress view and waits
// for both. Leaving the view early (Ctrl+C) cancels the work.
func runWithUI[T any](ctx context.Context, title string, files []string, work func(ctx context.Context, sink driver.ProgressSink) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome[T], 1)

	go func() {
		res, err := work(ctx, driver.ChannelSink{Ch: events})
		outcomeCh <- outcome[T]{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	cancel()
	// никто больше не читает события: не даём воркерам заблокироваться
	go func() {
		for range events {
		}
	}()
	out := <-outcomeCh
	if uiErr != nil {
		return out.result, uiErr
	}
	return out.result, out.err
}

func runLintWithUI(ctx context.Context, title string, files []string, opts *driver.Options) (*driver.Result, error) {
	if opts == nil {
		return nil, fmt.Errorf("missing lint options")
	}
	return runWithUI(ctx, title, files, func(ctx context.Context, sink driver.ProgressSink) (*driver.Result, error) {
		optsCopy := *opts
		optsCopy.Progress = sink
		return driver.Lint(ctx, &optsCopy)
	})
}

func runFixWithUI(ctx context.Context, title string, files []string, opts *driver.FixOptions) (*driver.FixResult, error) {
	if opts == nil {
		return nil, fmt.Errorf("missing fix options")
	}
	return runWithUI(ctx, title, files, func(ctx context.Context, sink driver.ProgressSink) (*driver.FixResult, error) {
		optsCopy := *opts
		optsCopy.Progress = sink
		return driver.Fix(ctx, &optsCopy)
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"

	"github.com/vanderheijden86/quire/pkg/debug"
	"github.com/vanderheijden86/quire/pkg/loader"
	"github.com/vanderheijden86/quire/pkg/ui"
)

// openBook loads path, or the embedded sample when path is empty.
func openBook(path string) (loader.Result, error) {
	if path == "" {
		return loader.Default()
	}
	return loader.Load(path)
}

func readAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return fmt.Errorf("expected at most one BOOK, got %d arguments", cmd.Args().Len())
	}
	env := envFromContext(ctx)

	res, err := openBook(cmd.Args().First())
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.Root().ErrWriter, "warning: %s\n", w)
	}

	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	// Log lines on stderr would tear through the alt screen.
	if debug.Enabled() && env.cfg.Logging.File == "" {
		if err := debug.SetOutput(env.cfg.DebugLogPath()); err != nil {
			return fmt.Errorf("unable to open debug log: %w", err)
		}
	}
	debug.Logw("opening book", "source", res.Source, "pages", res.Book.Len())

	return runTUIProgram(ui.NewModel(res.Book, env.cfg))
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set QUIRE_TUI_AUTOCLOSE_MS.
	if d := autocloseAfter(os.Getenv("QUIRE_TUI_AUTOCLOSE_MS")); d > 0 {
		go func() {
			timer := time.NewTimer(d)
			defer timer.Stop()

			select {
			case <-runDone:
				return
			case <-timer.C:
			}

			p.Quit()

			select {
			case <-runDone:
				return
			case <-time.After(2 * time.Second):
			}

			p.Kill()
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// autocloseAfter parses the autoclose hook; anything but a positive number of
// milliseconds disables it.
func autocloseAfter(v string) time.Duration {
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

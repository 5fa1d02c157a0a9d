package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/vanderheijden86/quire/pkg/config"
	"github.com/vanderheijden86/quire/pkg/debug"
	"github.com/vanderheijden86/quire/pkg/version"
)

// ErrNotTerminal is returned when the reader is started without a terminal.
var ErrNotTerminal = errors.New("quire needs an interactive terminal (stdout is not a TTY)")

// isTerminal is swapped out in tests.
var isTerminal = func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }

type envKey struct{}

// appEnv is what Before prepares for the actions.
type appEnv struct {
	cfg config.Config
}

func envFromContext(ctx context.Context) *appEnv {
	if env, ok := ctx.Value(envKey{}).(*appEnv); ok {
		return env
	}
	return &appEnv{cfg: config.DefaultConfig()}
}

// initializeAppContext loads configuration and turns on debug logging once
// the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := &appEnv{}

	path := cmd.String("config")
	var err error
	switch {
	case path != "":
		if _, statErr := os.Stat(path); statErr != nil {
			return ctx, fmt.Errorf("unable to read configuration: %w", statErr)
		}
		env.cfg, err = config.LoadFrom(path)
	default:
		env.cfg, err = config.Load()
	}
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	if cmd.Bool("debug") {
		debug.SetEnabled(true)
	}
	if debug.Enabled() && env.cfg.Logging.File != "" {
		if err := debug.SetOutput(env.cfg.Logging.File); err != nil {
			return ctx, fmt.Errorf("unable to open debug log: %w", err)
		}
	}
	debug.Logw("program started", "args", os.Args, "version", version.String())
	return context.WithValue(ctx, envKey{}, env), nil
}

func destroyAppContext(_ context.Context, _ *cli.Command) (err error) {
	debug.Logw("program ended")
	if er := debug.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug log: %w", er))
	}
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "quire",
		Usage:           "read a book one page at a time in the terminal",
		Version:         version.String(),
		ArgsUsage:       "[BOOK]",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		Action:          readAction,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "write a debug log (see logging.file in the configuration)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validates a book file and reports its pages and warnings",
				ArgsUsage: "BOOK",
				Action:    checkAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "re-check every time the file is saved"},
				},
			},
			{
				Name:   "version",
				Usage:  "Prints the version",
				Action: versionAction,
			},
		},
	}
}

func versionAction(_ context.Context, cmd *cli.Command) error {
	_, err := fmt.Fprintf(cmd.Root().Writer, "quire %s\n", version.String())
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var err error
	// os.Exit skips deferred calls, so it has to be the last thing that runs.
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "quire: %v\n", err)
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}

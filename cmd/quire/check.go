package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/quire/pkg/loader"
	"github.com/vanderheijden86/quire/pkg/watcher"
)

// errCheckFailed is returned by check when the book did not validate; the
// details have already been printed.
var errCheckFailed = errors.New("book is not valid")

func checkAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("check: missing BOOK argument")
	}
	out := cmd.Root().Writer

	err := report(out, path)
	if !cmd.Bool("watch") {
		return err
	}
	return watch(ctx, out, path)
}

// report validates path and prints the outcome.
func report(w io.Writer, path string) error {
	res, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(w, "%s: invalid\n", path)
		for _, e := range multierr.Errors(unwrapLoad(err)) {
			fmt.Fprintf(w, "  - %v\n", e)
		}
		return errCheckFailed
	}

	b := res.Book
	title := b.Title()
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "%s: ok, %q, %d pages\n", path, title, b.Len())
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
	return nil
}

// unwrapLoad finds the accumulated validation errors under the loader's
// wrapping so they can be listed one per line.
func unwrapLoad(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if len(multierr.Errors(e)) > 1 {
			return e
		}
	}
	return err
}

// watch re-runs report on every save until ctx is cancelled.
func watch(ctx context.Context, out io.Writer, path string) error {
	w, err := watcher.New(path)
	if err != nil {
		return fmt.Errorf("unable to watch %s: %w", path, err)
	}
	fmt.Fprintf(out, "watching %s (ctrl+c to stop)\n", w.Path())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-w.Events():
				switch ev.Kind {
				case watcher.EventChanged:
					_ = report(out, path)
				case watcher.EventRemoved:
					fmt.Fprintf(out, "%s: removed, waiting for it to come back\n", path)
				case watcher.EventError:
					fmt.Fprintf(out, "%s: %s\n", path, strings.TrimSpace(ev.Err.Error()))
				}
			}
		}
	})
	return g.Wait()
}

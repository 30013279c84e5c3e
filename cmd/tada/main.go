// Package main is the tada entry point. It loads configuration, wires the
// stores with samber/do and hands control to the cobra command tree.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				slog.Warn("close failed", slog.Any("error", err))
			}
		}
	}()

	root := cli.NewRootCommand(version, func(cmd *cobra.Command, configPath string) (*cli.Deps, error) {
		deps, opened, err := build(cmd, configPath)
		closers = append(closers, opened...)
		return deps, err
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dqgate/pkg/logging"
)

const (
	name           = "dqgate"
	versionDefault = "dev"

	// ExitCodeError is returned for usage and execution errors.
	ExitCodeError = 1

	// ExitCodeCanceled is returned when the run is interrupted or times out.
	ExitCodeCanceled = 2
)

var (
	// overridden during build with ldflags to reflect actual version info
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with the process arguments and exits with
// the resulting status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes args and maps the outcome to an exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newRootCmd(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}

	code := exitCode(err)
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(stderr, "Error: %s\n", msg)
	}
	return code
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	switch {
	case errors.As(err, &ec):
		return ec.ExitCode()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCodeCanceled
	default:
		return ExitCodeError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Data-quality gate for tabular datasets",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Writer:                stdout,
		ErrWriter:             stderr,
		// exit codes are mapped by run
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefaultLogger(level, cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			schemaCmd(),
			serveCmd(),
		},
	}
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dqgate/pkg/serializer"
	"github.com/NVIDIA/dqgate/pkg/source"
)

// Flags hold parse state, so every command gets its own instances.

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination: file path, "-" for stdout, ConfigMap URI (cm://namespace/name)
	or Redis URI (redis://host:port/db?key=name)`,
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format %v", serializer.SupportedFormats()),
	}
}

func dataFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Required: required,
		Usage:    `Dataset URI: file path, "-" for stdin, or postgres:// connection string`,
	}
}

func dataFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "data-format",
		Usage: fmt.Sprintf("dataset format, detected from the URI when empty %v", source.SupportedFormats),
	}
}

func queryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "query",
		Usage: "SQL query for postgres datasets",
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %v", outFormat, serializer.SupportedFormats())
	}
	return outFormat, nil
}

// datasetSpec builds a dataset spec from the data flags.
func datasetSpec(cmd *cli.Command) (source.Spec, error) {
	spec := source.Spec{
		URI:   cmd.String("data"),
		Query: cmd.String("query"),
	}
	if f := cmd.String("data-format"); f != "" {
		format, err := source.ParseFormat(f)
		if err != nil {
			return source.Spec{}, err
		}
		spec.Format = format
	}
	return spec, nil
}

// write serializes doc to the output flag destination.
func write(ctx context.Context, cmd *cli.Command, format serializer.Format, doc any) error {
	ser, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if err != nil {
		return err
	}
	if c, ok := ser.(serializer.Closer); ok {
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}()
	}
	return ser.Serialize(ctx, doc)
}

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
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/dqgate/pkg/header"
	"github.com/NVIDIA/dqgate/pkg/rules"
	"github.com/NVIDIA/dqgate/pkg/runner"
	"github.com/NVIDIA/dqgate/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Run data-quality checks against a dataset",
		Description: `Loads a dataset, runs the checks of a rules document and aggregates the
results. Every failing check is reported, then the command exits with status 65.

Flags override the matching fields of the rules document. Without --rules,
the dataset comes from --data and only the checks named by flags run.

# Examples

Run a rules document:
  dqgate validate --rules rules.yaml

Override the minimum row count and the not-null columns:
  dqgate validate -r rules.yaml --min-rows 1000 --not-null id,name

Check types only, ignoring technical columns:
  dqgate validate --data orders.csv --dictionary dict.csv --ignore '_*'

Store the report in a ConfigMap:
  dqgate validate -r rules.yaml -o cm://data-quality/orders-report`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rules",
				Aliases: []string{"r"},
				Usage:   "Path to the rules document (YAML or JSON)",
			},
			dataFlag(false),
			dataFormatFlag(),
			queryFlag(),
			&cli.StringFlag{
				Name:  "dictionary",
				Usage: "Expected-type dictionary (YAML/JSON document or CSV with final_name,migration_type)",
			},
			&cli.IntFlag{
				Name:  "min-rows",
				Usage: "Minimum expected number of rows",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Columns excluded from the type check (supports * prefix/suffix wildcards)",
			},
			&cli.StringSliceFlag{
				Name:  "not-null",
				Usage: "Columns that must not hold null, empty or sentinel values",
			},
			&cli.StringSliceFlag{
				Name:  "essential",
				Usage: "Columns that must be present in the dataset",
			},
			&cli.StringSliceFlag{
				Name:  "unique",
				Usage: "Key columns that must not repeat",
			},
			&cli.BoolFlag{
				Name:  "duplicates",
				Usage: "Fail on fully duplicated rows",
			},
			&cli.BoolFlag{
				Name:  "report-only",
				Usage: "Exit 0 even when checks fail",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			rs, err := rulesFromFlags(cmd)
			if err != nil {
				return err
			}

			slog.Debug("running validation",
				"rules", cmd.String("rules"),
				"dataset", rs.Dataset.URI)

			r := runner.New(
				runner.WithVersion(version),
				runner.WithOutput(cmd.Root().Writer),
			)

			report, err := r.Run(ctx, rs)
			if err != nil {
				return fmt.Errorf("validation failed to run: %w", err)
			}

			if cmd.String("output") != "" {
				if err := write(ctx, cmd, outFormat, report); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			}

			if !report.Passed && !cmd.Bool("report-only") {
				return cli.Exit("", validator.ExitCodeDataError)
			}
			return nil
		},
	}
}

// rulesFromFlags loads --rules when given and applies flag overrides.
func rulesFromFlags(cmd *cli.Command) (*rules.Rules, error) {
	rs := &rules.Rules{}
	rs.Kind = header.KindValidationRules

	if path := cmd.String("rules"); path != "" {
		loaded, err := rules.Load(path)
		if err != nil {
			return nil, err
		}
		rs = loaded
	}

	if cmd.IsSet("data") {
		spec, err := datasetSpec(cmd)
		if err != nil {
			return nil, err
		}
		rs.Dataset = spec
	}
	if cmd.IsSet("dictionary") {
		rs.Dictionary = cmd.String("dictionary")
	}

	c := &rs.Checks
	if cmd.IsSet("min-rows") {
		c.MinRows = ptr.To(int(cmd.Int("min-rows")))
	}
	if cmd.IsSet("ignore") {
		c.Types.Ignore = cmd.StringSlice("ignore")
	}
	if cmd.IsSet("not-null") {
		c.NotNull = cmd.StringSlice("not-null")
	}
	if cmd.IsSet("essential") {
		c.Essential = cmd.StringSlice("essential")
	}
	if cmd.IsSet("unique") {
		c.Unique = cmd.StringSlice("unique")
	}
	if cmd.IsSet("duplicates") {
		c.Duplicates = cmd.Bool("duplicates")
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	"github.com/NVIDIA/dqgate/pkg/dictionary"
	"github.com/NVIDIA/dqgate/pkg/header"
	"github.com/NVIDIA/dqgate/pkg/source"
)

// schemaDocument lists the inferred columns of a dataset.
type schemaDocument struct {
	header.Header `json:",inline" yaml:",inline"`

	Columns dataset.Schema `json:"columns" yaml:"columns"`
}

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:                  "schema",
		EnableShellCompletion: true,
		Usage:                 "Print the column names and inferred types of a dataset",
		Description: `Loads a dataset the way validate does and prints its (name, type) pairs.
Use --as-dictionary to produce a TypeDictionary document to review and pass
to validate --dictionary.

# Examples

  dqgate schema --data orders.parquet
  dqgate schema --data orders.csv --as-dictionary -o dict.yaml
  dqgate schema --data 'postgres://user@db/warehouse' --query 'select * from orders'`,
		Flags: []cli.Flag{
			dataFlag(true),
			dataFormatFlag(),
			queryFlag(),
			&cli.BoolFlag{
				Name:  "as-dictionary",
				Usage: "Emit a TypeDictionary document",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			spec, err := datasetSpec(cmd)
			if err != nil {
				return err
			}

			ds, err := source.Open(ctx, spec)
			if err != nil {
				return fmt.Errorf("failed to load dataset %q: %w", source.Redact(spec.URI), err)
			}

			if cmd.Bool("as-dictionary") {
				return write(ctx, cmd, outFormat, dictionary.NewDocument(dictionary.FromSchema(ds.Schema()), version))
			}

			doc := &schemaDocument{Columns: ds.Schema()}
			doc.Init(header.KindDatasetSchema, header.APIVersion, version)
			doc.Metadata["dataset"] = source.Redact(spec.URI)
			doc.Metadata["rows"] = strconv.Itoa(ds.Count())

			return write(ctx, cmd, outFormat, doc)
		},
	}
}

/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/dqgate/pkg/api"
	"github.com/NVIDIA/dqgate/pkg/server"
	"github.com/NVIDIA/dqgate/pkg/source"
)

func serveCmd() *cli.Command {
	defaults := server.DefaultConfig()

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP validation service",
		Description: `Serves POST /v1/validate, which takes a rules document (YAML or JSON) and
answers with the validation report: 200 when every check passes, 422 when
any fails. Probes: GET /health, GET /ready. Metrics: GET /metrics.

Datasets and dictionaries named by requests must live under --data-root;
relative paths are resolved against it. Without a data root, file datasets
are rejected. Standard input is never read. PostgreSQL datasets need
--allow-database.

Under systemd with Type=notify the service reports READY and STOPPING.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Value: defaults.Address,
				Usage: "listen address",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: defaults.Port,
				Usage: "listen port (env PORT)",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Value: float64(defaults.RateLimit),
				Usage: "validation requests per second",
			},
			&cli.IntFlag{
				Name:  "rate-limit-burst",
				Value: defaults.RateLimitBurst,
				Usage: "validation request burst",
			},
			&cli.StringFlag{
				Name:    "data-root",
				Usage:   "directory holding the datasets and dictionaries requests may read",
				Sources: cli.EnvVars("DQGATE_DATA_ROOT"),
			},
			&cli.BoolFlag{
				Name:  "allow-database",
				Usage: "allow requests to query PostgreSQL datasets",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			cfg.Address = cmd.String("address")
			cfg.Port = int(cmd.Int("port"))
			cfg.RateLimit = rate.Limit(cmd.Float("rate-limit"))
			cfg.RateLimitBurst = int(cmd.Int("rate-limit-burst"))

			return api.Serve(ctx, api.Config{
				Server: cfg,
				Guard: source.Guard{
					Root:          cmd.String("data-root"),
					AllowDatabase: cmd.Bool("allow-database"),
				},
				Version: version,
				Commit:  commit,
				Date:    date,
			})
		},
	}
}

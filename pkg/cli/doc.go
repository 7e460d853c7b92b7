// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface of the dqgate tool.
//
// # Overview
//
// dqgate is a data-quality gate for tabular datasets at the end of an
// ingestion pipeline. It loads a dataset, runs the configured checks and
// stops the pipeline with exit status 65 when any check fails.
//
// # Commands
//
// validate - Run the checks of a rules document:
//
//	dqgate validate --rules rules.yaml
//	dqgate validate -r rules.yaml --min-rows 1000 --not-null id,name
//	dqgate validate --data orders.csv --dictionary dict.csv --ignore '_*'
//	dqgate validate -r rules.yaml -o cm://data-quality/orders-report
//	dqgate validate -r rules.yaml -o 'redis://cache:6379/0?key=dq:orders&ttl=24h'
//
// Check diagnostics are written to stdout. The report is written only when
// --output is given ("-" for stdout).
//
// schema - Print the inferred column types of a dataset:
//
//	dqgate schema --data orders.parquet
//	dqgate schema --data 'postgres://user@db/warehouse' --query 'select * from orders'
//	dqgate schema --data orders.csv --as-dictionary -o dict.yaml
//
// --as-dictionary emits a TypeDictionary document that validate accepts as
// its --dictionary.
//
// serve - Run the HTTP validation service:
//
//	dqgate serve --port 8080 --data-root /srv/datasets
//
// Routes: POST /v1/validate, GET /health, GET /ready, GET /metrics.
// Requests may only read datasets under --data-root.
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-level    Log level (debug, info, warn, error)
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL              Set logging verbosity (debug, info, warn, error)
//	PORT                   Listen port for serve
//	DQGATE_DATA_ROOT       Dataset directory for serve
//	KUBECONFIG             Path to kubeconfig file for cm:// outputs
//	POD_NAMESPACE          Default namespace for cm:// outputs
//
// # Exit Codes
//
//	0   Success, every check passed
//	1   General error (invalid arguments, invalid rules, execution failure)
//	2   Context canceled or timeout
//	65  Data error, at least one check failed
//
// Version information is embedded at build time using ldflags. The serve
// command passes it on to the service:
//
//	go build -ldflags="-X 'github.com/NVIDIA/dqgate/pkg/cli.version=1.0.0' -X 'github.com/NVIDIA/dqgate/pkg/cli.commit=abc123'"
package cli

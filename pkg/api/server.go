// Package api wires the validation service: the runner's HTTP handler
// behind the shared server.
package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/dqgate/pkg/logging"
	"github.com/NVIDIA/dqgate/pkg/runner"
	"github.com/NVIDIA/dqgate/pkg/server"
	"github.com/NVIDIA/dqgate/pkg/source"
)

const (
	name           = "dqgate-api-server"
	versionDefault = "dev"

	// ValidatePath is the route of the validation endpoint.
	ValidatePath = "/v1/validate"
)

// Config configures the validation service.
type Config struct {
	// Server holds the listener settings; nil means server.DefaultConfig.
	Server *server.Config

	// Guard limits the datasets requests may name. The zero Guard rejects
	// every dataset.
	Guard source.Guard

	// Version, Commit and Date describe the build.
	Version string
	Commit  string
	Date    string
}

func (c Config) version() string {
	if c.Version == "" {
		return versionDefault
	}
	return c.Version
}

// Routes returns the API handlers served by the validation service.
func Routes(r *runner.Runner) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		ValidatePath: r.HandleValidate,
	}
}

// NewServer builds the validation service. Check diagnostics are returned
// in the report's checkDiagnostics, so the runner's text output is discarded.
func NewServer(cfg Config) *server.Server {
	r := runner.New(
		runner.WithVersion(cfg.version()),
		runner.WithOutput(io.Discard),
		runner.WithGuard(cfg.Guard),
	)

	return server.New(
		server.WithName(name),
		server.WithVersion(cfg.version()),
		server.WithConfig(cfg.Server),
		server.WithHandler(Routes(r)),
	)
}

// Serve starts the API server and blocks until ctx is canceled or the
// process is signaled.
func Serve(ctx context.Context, cfg Config) error {
	logging.SetDefaultStructuredLogger(name, cfg.version())
	slog.Info("starting",
		"name", name,
		"version", cfg.version(),
		"commit", cfg.Commit,
		"date", cfg.Date,
		"dataRoot", cfg.Guard.Root,
		"allowDatabase", cfg.Guard.AllowDatabase,
	)
	if cfg.Guard.Root == "" && !cfg.Guard.AllowDatabase {
		slog.Warn("no data root and no database access configured, every validation request will be rejected")
	}

	if err := NewServer(cfg).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

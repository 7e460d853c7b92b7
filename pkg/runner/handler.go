/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NVIDIA/dqgate/pkg/defaults"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
	"github.com/NVIDIA/dqgate/pkg/rules"
	"github.com/NVIDIA/dqgate/pkg/serializer"
	"github.com/NVIDIA/dqgate/pkg/server"
	"github.com/NVIDIA/dqgate/pkg/source"
)

const (
	// DefaultValidateTimeout bounds a single validation request.
	DefaultValidateTimeout = defaults.ValidateHandlerTimeout

	// HeaderVerdict carries "pass" or "fail" on validation responses.
	HeaderVerdict = "X-Dqgate-Verdict"
)

// HandleValidate runs the rules document in the request body (YAML or JSON)
// and responds with the report. A failing verdict is answered with 422.
// Datasets and dictionaries the runner's guard does not allow are answered
// with 400 before anything is read.
//
// Example:
//
//	POST /v1/validate
//	Content-Type: application/yaml
//	Body: { "kind": "ValidationRules", "dataset": { "uri": "/data/orders.csv" }, ... }
func (r *Runner) HandleValidate(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, req, http.StatusMethodNotAllowed, dqerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": req.Method,
			})
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), DefaultValidateTimeout)
	defer cancel()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		server.WriteError(w, req, http.StatusBadRequest, dqerrors.ErrCodeInvalidRequest,
			"Failed to read request body", false, map[string]any{
				"error": err.Error(),
			})
		return
	}

	rs, err := rules.Parse(body)
	if err != nil {
		server.WriteErrorFromErr(w, req, err, "Invalid rules document", nil)
		return
	}

	if err := r.confine(rs); err != nil {
		slog.Warn("validation request rejected",
			"error", err,
			"requestId", server.RequestIDFrom(req.Context()),
		)
		server.WriteErrorFromErr(w, req, err, "Dataset not allowed", nil)
		return
	}

	slog.Debug("validation request received",
		"dataset", source.Redact(rs.Dataset.URI),
		"requestId", server.RequestIDFrom(req.Context()),
	)

	report, err := r.Run(ctx, rs)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			server.WriteError(w, req, http.StatusGatewayTimeout, dqerrors.ErrCodeTimeout,
				"Validation timed out", true, map[string]any{
					"timeout": DefaultValidateTimeout.String(),
				})
			return
		}
		server.WriteErrorFromErr(w, req, err, "Validation failed to run", nil)
		return
	}

	status := http.StatusOK
	verdict := "pass"
	if !report.Passed {
		status = http.StatusUnprocessableEntity
		verdict = "fail"
	}
	w.Header().Set(HeaderVerdict, verdict)
	w.Header().Set("X-Dqgate-Failures", strconv.Itoa(len(report.Failures)))

	serializer.Respond(w, req, status, report)
}

package server

import (
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
	"github.com/NVIDIA/dqgate/pkg/serializer"
)

// WriteError writes an ErrorResponse with the request ID of r.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code dqerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as an ErrorResponse. Structured errors keep
// their code, message and context; anything else is an internal error
// described by fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *dqerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			if details == nil {
				details = map[string]any{}
			}
			details["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extraDetails, nil)
	if err != nil {
		if details == nil {
			details = map[string]any{}
		}
		details["error"] = err.Error()
	}
	WriteError(w, r, http.StatusInternalServerError, dqerrors.ErrCodeInternal, fallbackMessage, true, details)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code dqerrors.ErrorCode) int {
	switch code {
	case dqerrors.ErrCodeInvalidRequest, dqerrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case dqerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case dqerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case dqerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dqerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case dqerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case dqerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code dqerrors.ErrorCode) bool {
	switch code {
	case dqerrors.ErrCodeTimeout, dqerrors.ErrCodeUnavailable,
		dqerrors.ErrCodeRateLimitExceeded, dqerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map holding a then b, or nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}

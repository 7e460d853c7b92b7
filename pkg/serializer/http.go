package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, "application/json", buf.Bytes())
}

// Respond writes data as YAML when the request accepts application/yaml
// and as JSON otherwise.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if !acceptsYAML(r) {
		RespondJSON(w, statusCode, data)
		return
	}

	b, err := Marshal(FormatYAML, data)
	if err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, "application/yaml", b)
}

func acceptsYAML(r *http.Request) bool {
	if r == nil {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/yaml") || strings.Contains(accept, "application/x-yaml")
}

func write(w http.ResponseWriter, statusCode int, contentType string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(b); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

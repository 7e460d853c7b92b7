/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Serializer writes a document to a destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers holding a resource.
type Closer interface {
	Close() error
}

// Writer serializes documents to an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer

	mu     sync.Mutex
	closed bool
}

// NewWriter returns a Writer encoding in format to output.
// Unknown formats fall back to JSON; a nil output means stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Warn("unknown output format, using json", "format", format)
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer encoding in format to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a serializer for path:
//   - "" or "-" writes to stdout
//   - cm://namespace/name writes a Kubernetes ConfigMap
//   - redis://host:port/db?key=name writes a Redis key
//   - anything else creates (or truncates) a file
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)

	switch {
	case path == "" || path == StdoutURI:
		return NewStdoutWriter(format), nil
	case strings.HasPrefix(path, ConfigMapURIScheme):
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(namespace, name, format), nil
	case strings.HasPrefix(path, RedisURIScheme) || strings.HasPrefix(path, RedisTLSURIScheme):
		return NewRedisWriter(path, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize encodes data and writes it to the output.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := Marshal(w.format, data)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	if _, err := w.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Close releases the underlying file, if any. It is safe to call more than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.closer == nil {
		return nil
	}
	w.closed = true
	return w.closer.Close()
}

// Marshal encodes data in format. JSON is indented and newline terminated.
func Marshal(format Format, data any) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return nil, fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTable:
		return marshalTable(data)
	default:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to json: %w", err)
		}
		return append(b, '\n'), nil
	}
}

package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatJSONL    Format = "jsonl"
	FormatJSON     Format = "json"
	FormatParquet  Format = "parquet"
	FormatPostgres Format = "postgres"
)

// StdinURI reads the dataset from standard input; Spec.Format is required.
const StdinURI = "-"

// SupportedFormats lists the accepted Format values.
var SupportedFormats = []Format{FormatCSV, FormatTSV, FormatJSONL, FormatJSON, FormatParquet, FormatPostgres}

// Spec describes where a dataset lives.
type Spec struct {
	// URI is a file path, file:// URL, "-" for stdin, or a postgres:// URL.
	URI string `json:"uri" yaml:"uri"`

	// Format overrides detection from the URI.
	Format Format `json:"format,omitempty" yaml:"format,omitempty"`

	// Query is the SQL statement producing the rows of a postgres dataset.
	Query string `json:"query,omitempty" yaml:"query,omitempty"`
}

// ParseFormat converts a string to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SupportedFormats {
		if f == known {
			return f, nil
		}
	}
	return "", dqerrors.New(dqerrors.ErrCodeInvalidConfig,
		fmt.Sprintf("unsupported dataset format %q, supported: %v", s, SupportedFormats))
}

// Detect returns the format of spec: the explicit Format, else from the URI.
func Detect(spec Spec) (Format, error) {
	if spec.Format != "" {
		return ParseFormat(string(spec.Format))
	}

	uri := strings.TrimSpace(spec.URI)
	if isDatabaseURI(uri) {
		return FormatPostgres, nil
	}
	if uri == StdinURI {
		return "", dqerrors.New(dqerrors.ErrCodeInvalidConfig, "format is required when reading from stdin")
	}

	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(strings.ToLower(uri), ".gz")))
	switch ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	}

	return "", dqerrors.New(dqerrors.ErrCodeInvalidConfig,
		fmt.Sprintf("cannot detect dataset format of %q, set the format explicitly", spec.URI))
}

// Open loads the dataset described by spec.
func Open(ctx context.Context, spec Spec) (dataset.Dataset, error) {
	if strings.TrimSpace(spec.URI) == "" {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig, "dataset uri is required")
	}

	format, err := Detect(spec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var ds dataset.Dataset
	switch format {
	case FormatPostgres:
		ds, err = QueryPostgres(ctx, spec.URI, spec.Query)
	case FormatParquet:
		ds, err = openParquet(localPath(spec.URI))
	default:
		ds, err = openText(format, spec.URI)
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	loadTotal.WithLabelValues(string(format), outcome).Inc()
	if err != nil {
		return nil, err
	}
	loadDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())

	slog.Debug("dataset loaded",
		"uri", Redact(spec.URI),
		"format", format,
		"rows", ds.Count(),
		"columns", len(ds.Schema()),
		"duration", time.Since(start))

	return ds, nil
}

func openText(format Format, uri string) (dataset.Dataset, error) {
	r, closeFn, err := openReader(uri)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	switch format {
	case FormatCSV:
		return ReadCSV(r, ',')
	case FormatTSV:
		return ReadCSV(r, '\t')
	case FormatJSONL, FormatJSON:
		return ReadJSON(r)
	default:
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig, fmt.Sprintf("unsupported dataset format %q", format))
	}
}

// openReader opens uri for reading, decompressing ".gz" files.
func openReader(uri string) (io.Reader, func(), error) {
	if uri == StdinURI {
		return os.Stdin, func() {}, nil
	}

	path := localPath(uri)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, dqerrors.Wrap(dqerrors.ErrCodeNotFound, fmt.Sprintf("failed to open dataset %q", path), err)
	}
	closeFile := func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close dataset", "path", path, "error", cerr)
		}
	}

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, closeFile, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		closeFile()
		return nil, nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, fmt.Sprintf("failed to decompress dataset %q", path), err)
	}
	return gz, func() {
		if cerr := gz.Close(); cerr != nil {
			slog.Warn("failed to close gzip reader", "path", path, "error", cerr)
		}
		closeFile()
	}, nil
}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// normalizeName trims a loaded column name and converts it to NFC.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// Redact hides the password of a connection URL.
func Redact(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return uri
	}
	if user, _, hasPass := strings.Cut(creds, ":"); hasPass {
		return scheme + "://" + user + ":xxxxx@" + host
	}
	return uri
}

// Package header provides the Kubernetes-style Kind/APIVersion/Metadata
// header stamped on every document dqgate reads or writes.
package header

import (
	"time"
)

// APIVersion is the API version of all dqgate documents.
const APIVersion = "dqgate.nvidia.com/v1alpha1"

// Kind identifies the type of a document.
type Kind string

const (
	KindValidationReport Kind = "ValidationReport"
	KindValidationRules  Kind = "ValidationRules"
	KindTypeDictionary   Kind = "TypeDictionary"
	KindDatasetSchema    Kind = "DatasetSchema"
)

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Header contains metadata and versioning information for dqgate documents.
// It follows Kubernetes-style resource conventions with Kind, APIVersion, and Metadata fields.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and API version and records the creation time and, when
// not empty, the producing tool version in Metadata.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[MetadataTimestamp] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Is reports whether the header declares the given kind. An empty kind is
// accepted so hand-written documents may omit it.
func (h *Header) Is(kind Kind) bool {
	return h.Kind == "" || h.Kind == kind
}

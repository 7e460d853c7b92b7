package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(
		WithKind(KindValidationReport),
		WithAPIVersion(APIVersion),
		WithMetadata("source", "orders.csv"),
	)

	assert.Equal(t, KindValidationReport, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "orders.csv", h.Metadata["source"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindValidationReport, APIVersion, "v1.2.3")

	assert.Equal(t, KindValidationReport, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata[MetadataVersion])

	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	var noVersion Header
	noVersion.Init(KindDatasetSchema, APIVersion, "")
	_, ok := noVersion.Metadata[MetadataVersion]
	assert.False(t, ok)
}

func TestIs(t *testing.T) {
	assert.True(t, (&Header{}).Is(KindValidationRules))
	assert.True(t, (&Header{Kind: KindValidationRules}).Is(KindValidationRules))
	assert.False(t, (&Header{Kind: KindTypeDictionary}).Is(KindValidationRules))
}

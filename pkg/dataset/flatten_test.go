package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	record := map[string]any{
		"id": 1.0,
		"customer": map[string]any{
			"name": "ada",
			"address": map[string]any{
				"city": "london",
			},
		},
		"tags": []any{"a", "b"},
	}

	flat := Flatten(record)

	assert.Equal(t, map[string]any{
		"id":                    1.0,
		"customer.name":         "ada",
		"customer.address.city": "london",
		"tags":                  []any{"a", "b"},
	}, flat)

	assert.Equal(t, []string{"customer.address.city", "customer.name", "id", "tags"}, FlattenedKeys(record))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2013-01-01", time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05-06 07:08:09", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"2024-05-06T07:08:09Z", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"20240506", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	_, err := ParseTime("NULL")
	assert.Error(t, err)
	assert.True(t, IsDateOnly("2024-01-02"))
	assert.False(t, IsDateOnly("2024-01-02 10:00:00"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "NULLIFY", FormatValue("NULLIFY"))
	assert.Equal(t, "42", FormatValue(int64(42)))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "2024-01-02", FormatValue(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02 03:04:05", FormatValue(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.True(t, IsNaN(math.NaN()))
	assert.True(t, IsNaN(float32(math.NaN())))
	assert.False(t, IsNaN("NaN"))
}

func TestFormatTyped(t *testing.T) {
	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02 00:00:00", FormatTyped(midnight, TypeTimestamp))
	assert.Equal(t, "2024-01-02", FormatTyped(midnight, TypeDate))
	assert.Equal(t, "2024-01-02", FormatTyped(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), TypeDate))
	assert.Equal(t, "2024-01-02", FormatTyped(midnight, TypeString))
	assert.Equal(t, "7", FormatTyped(int32(7), TypeTimestamp))
}

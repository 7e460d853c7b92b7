package check

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

func rangeTable(t *testing.T) *dataset.Table {
	t.Helper()
	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }
	return newTable(t,
		dataset.Schema{
			{Name: "qty", Type: dataset.TypeInt},
			{Name: "price", Type: dataset.TypeDouble},
			{Name: "day", Type: dataset.TypeDate},
			{Name: "code", Type: dataset.TypeString},
		},
		[]any{int32(0), 1.0, d(1), "A"},
		[]any{int32(5), 2.5, d(2), "B"},
		[]any{int32(10), 3.0, d(3), "C"},
		[]any{int32(11), math.NaN(), d(4), "D"},
		[]any{nil, nil, nil, nil},
	)
}

func TestMinMaxRange(t *testing.T) {
	tbl := rangeTable(t)

	tests := []struct {
		name   string
		column string
		min    any
		max    any
		want   int
	}{
		{"values equal to limits pass", "qty", 0, 11, 0},
		{"above max", "qty", 0, 10, 1},
		{"below min and above max", "qty", 1, 10, 2},
		{"float limits on int column", "qty", 0.5, 10.5, 2},
		{"string limits on numeric column", "qty", "5", "10", 2},
		{"NaN orders above all numbers", "price", 0.0, 100.0, 1},
		{"date limits as text", "day", "2024-01-02", "2024-01-03", 2},
		{"date limits as time", "day", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), 0},
		{"timestamp text against date column", "day", "2024-01-01 12:00:00", "2024-01-04 00:00:00", 1},
		{"lexicographic strings", "code", "B", "C", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newChecker()
			got, present, err := c.MinMaxRange(tbl, tt.column, tt.min, tt.max)
			require.NoError(t, err)
			assert.True(t, present)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Count())
			if tt.want > 0 {
				assert.Contains(t, out.String(), "WARNING: parameter "+tt.column+" out of range in:")
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestMinMaxRange_ViolationsKeepSchema(t *testing.T) {
	c, out := newChecker()
	got, present, err := c.MinMaxRange(rangeTable(t), "qty", 1, 10)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, rangeTable(t).Schema(), got.Schema())

	qty, err := got.Column("qty")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(0), int32(11)}, qty)
	assert.Equal(t, "WARNING: parameter qty out of range in: 2 entries!\n", out.String())
}

func TestMinMaxRange_MissingColumn(t *testing.T) {
	c, out := newChecker()
	got, present, err := c.MinMaxRange(rangeTable(t), "ghost", 0, 1)
	require.NoError(t, err)
	assert.False(t, present)
	assert.Nil(t, got)
	assert.Equal(t, "ghost column is not in the dataset\n", out.String())
}

func TestMinMaxRange_InvalidLimits(t *testing.T) {
	tests := []struct {
		name   string
		column string
		min    any
		max    any
	}{
		{"nil min", "qty", nil, 1},
		{"text on numeric column", "qty", "low", 1},
		{"NaN limit", "price", math.NaN(), 1.0},
		{"unparseable date", "day", "yesterday", "2024-01-01"},
		{"number on string column", "code", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newChecker()
			_, _, err := c.MinMaxRange(rangeTable(t), tt.column, tt.min, tt.max)
			require.Error(t, err)
			assert.True(t, dqerrors.IsConfig(err))
		})
	}
}

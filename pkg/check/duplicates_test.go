package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

func TestDuplicates(t *testing.T) {
	schema := dataset.Schema{
		{Name: "id", Type: dataset.TypeBigInt},
		{Name: "name", Type: dataset.TypeString},
	}

	tests := []struct {
		name string
		rows [][]any
		keys []string
		want bool
	}{
		{
			name: "distinct rows",
			rows: [][]any{{int64(1), "a"}, {int64(2), "a"}},
			want: true,
		},
		{
			name: "identical rows",
			rows: [][]any{{int64(1), "a"}, {int64(1), "a"}},
			want: false,
		},
		{
			name: "duplicate key only",
			rows: [][]any{{int64(1), "a"}, {int64(1), "b"}},
			keys: []string{"id"},
			want: false,
		},
		{
			name: "nulls are equal",
			rows: [][]any{{nil, "a"}, {nil, "a"}},
			want: false,
		},
		{
			name: "null differs from empty text",
			rows: [][]any{{int64(1), nil}, {int64(1), ""}},
			want: true,
		},
		{
			name: "same text different type",
			rows: [][]any{{int64(1), "a"}, {"1", "a"}},
			want: true,
		},
		{
			name: "empty dataset",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newChecker()
			got, err := c.Duplicates(newTable(t, schema, tt.rows...), tt.keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if !tt.want {
				assert.Contains(t, out.String(), "WARNING: 1 duplicated rows found")
			}
		})
	}
}

func TestDuplicates_UnknownKey(t *testing.T) {
	tbl := newTable(t, dataset.Schema{{Name: "id", Type: dataset.TypeInt}})

	c, _ := newChecker()
	_, err := c.Duplicates(tbl, "ghost")
	require.Error(t, err)
	assert.True(t, dqerrors.IsConfig(err))
}

package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

func TestReadJSON_Lines(t *testing.T) {
	data := `{"id": 1, "name": "alice", "address": {"city": "Madrid", "zip": "28001"}, "score": 1.5, "ok": true}
{"id": 2, "name": null, "address": {"city": "Paris"}, "score": 2, "tags": ["a", "b"]}
`
	tbl, err := ReadJSON(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Count())

	assert.Equal(t, dataset.Schema{
		{Name: "address.city", Type: dataset.TypeString},
		{Name: "address.zip", Type: dataset.TypeString},
		{Name: "id", Type: dataset.TypeBigInt},
		{Name: "name", Type: dataset.TypeString},
		{Name: "ok", Type: dataset.TypeBoolean},
		{Name: "score", Type: dataset.TypeDouble},
		{Name: "tags", Type: dataset.TypeString},
	}, tbl.Schema())

	ids, err := tbl.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, ids)

	zips, err := tbl.Column("address.zip")
	require.NoError(t, err)
	assert.Equal(t, []any{"28001", nil}, zips)

	scores, err := tbl.Column("score")
	require.NoError(t, err)
	assert.Equal(t, []any{1.5, 2.0}, scores)

	ok, err := tbl.Column("ok")
	require.NoError(t, err)
	assert.Equal(t, []any{true, nil}, ok)

	tags, err := tbl.Column("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{nil, `["a","b"]`}, tags)
}

func TestReadJSON_Array(t *testing.T) {
	tbl, err := ReadJSON(strings.NewReader(`
  [{"a": 1}, {"a": "x"}]`))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Count())

	f, ok := tbl.Schema().Lookup("a")
	require.True(t, ok)
	assert.Equal(t, dataset.TypeString, f.Type)

	values, err := tbl.Column("a")
	require.NoError(t, err)
	assert.Equal(t, []any{"1", "x"}, values)
}

func TestReadJSON_Empty(t *testing.T) {
	tbl, err := ReadJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Count())
	assert.Empty(t, tbl.Schema())
}

func TestReadJSON_Invalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{\"a\": 1}\n{oops}\n"))
	require.Error(t, err)
	assert.Equal(t, dqerrors.ErrCodeInvalidRequest, dqerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "record 2")
}

package source

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

func TestReadCSV_InfersTypes(t *testing.T) {
	data := "id,big,price,active,day,created,name,mixed,empty\n" +
		"1,5000000000,1.5,true,2024-01-02,2024-01-02 10:00:00,alice,1,\n" +
		"2,3,2,FALSE,2024-01-03,2024-01-03T11:30:00Z,bob,x,\n" +
		",,NaN,,,,,,\n"

	tbl, err := ReadCSV(strings.NewReader(data), ',')
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Count())

	want := dataset.Schema{
		{Name: "id", Type: dataset.TypeInt},
		{Name: "big", Type: dataset.TypeBigInt},
		{Name: "price", Type: dataset.TypeDouble},
		{Name: "active", Type: dataset.TypeBoolean},
		{Name: "day", Type: dataset.TypeDate},
		{Name: "created", Type: dataset.TypeTimestamp},
		{Name: "name", Type: dataset.TypeString},
		{Name: "mixed", Type: dataset.TypeString},
		{Name: "empty", Type: dataset.TypeString},
	}
	assert.Equal(t, want, tbl.Schema())

	ids, err := tbl.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), int32(2), nil}, ids)

	big, err := tbl.Column("big")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(5000000000), int64(3), nil}, big)

	prices, err := tbl.Column("price")
	require.NoError(t, err)
	assert.Equal(t, 1.5, prices[0])
	assert.Equal(t, 2.0, prices[1])
	assert.True(t, math.IsNaN(prices[2].(float64)))

	active, err := tbl.Column("active")
	require.NoError(t, err)
	assert.Equal(t, []any{true, false, nil}, active)

	days, err := tbl.Column("day")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), days[0])

	mixed, err := tbl.Column("mixed")
	require.NoError(t, err)
	assert.Equal(t, []any{"1", "x", nil}, mixed)
}

func TestReadCSV_TextStaysText(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("code\n007\nNULL\n"), ',')
	require.NoError(t, err)

	f, ok := tbl.Schema().Lookup("code")
	require.True(t, ok)
	assert.Equal(t, dataset.TypeString, f.Type)

	values, err := tbl.Column("code")
	require.NoError(t, err)
	assert.Equal(t, []any{"007", "NULL"}, values)
}

func TestReadCSV_HeaderNames(t *testing.T) {
	data := "\ufeff id ,,name,name,Cafe\u0301\n1,2,a,b,c\n"

	tbl, err := ReadCSV(strings.NewReader(data), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "_c1", "name2", "name3", "Caf\u00e9"}, tbl.Schema().Names())
}

func TestReadCSV_Tab(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a\tb\n1\tx\n"), '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Schema().Names())
	assert.Equal(t, 1, tbl.Count())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), ',')
	require.Error(t, err)
	assert.Equal(t, dqerrors.ErrCodeInvalidRequest, dqerrors.CodeOf(err))

	_, err = ReadCSV(strings.NewReader("a,b\n1\n"), ',')
	require.Error(t, err)
	assert.Equal(t, dqerrors.ErrCodeInvalidRequest, dqerrors.CodeOf(err))
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Count())
	assert.Equal(t, dataset.Schema{
		{Name: "a", Type: dataset.TypeString},
		{Name: "b", Type: dataset.TypeString},
	}, tbl.Schema())
}
